package ops

import (
	"database/sql"
	"time"

	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/revision"
)

// RevertInput contains parameters for the Revert operation.
type RevertInput struct {
	Ref

	// Rev is the revision identifier to restore.
	Rev string `json:"rev"`
}

// RevertOutput contains the result of the Revert operation.
type RevertOutput struct {
	ID        string `json:"id"`
	Rev       string `json:"rev"`
	PageCount int    `json:"page_count"`
}

// Revert replaces the document's live pages and settings with a prior
// revision's snapshot. The history itself is never modified: reverting is
// non-destructive, and persisting the restored state as a new revision
// requires a subsequent AddRevision.
func Revert(database *sql.DB, input RevertInput) (*RevertOutput, error) {
	doc, err := input.Resolve(database, false)
	if err != nil {
		return nil, err
	}

	records, err := db.ListRevisions(database, doc.ID)
	if err != nil {
		return nil, err
	}

	snapshot, err := revision.NewManager(records).Revert(input.Rev)
	if err != nil {
		return nil, err
	}

	doc.Pages = snapshot.Content
	doc.Settings = snapshot.Settings
	doc.UpdatedAt = time.Now().Unix()
	if err := db.UpdateDocumentState(database, doc); err != nil {
		return nil, err
	}

	return &RevertOutput{ID: doc.ID, Rev: snapshot.Rev, PageCount: len(doc.Pages)}, nil
}
