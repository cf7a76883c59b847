package ops

import (
	"database/sql"
	"time"

	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/revision"
)

// AddRevisionInput contains parameters for the AddRevision operation.
type AddRevisionInput struct {
	Ref

	Rev         string `json:"rev"`
	Date        string `json:"date,omitempty"` // defaults to today
	Description string `json:"description"`
	Author      string `json:"author"`
	Approver    string `json:"approver"`
}

// AddRevisionOutput contains the result of the AddRevision operation.
type AddRevisionOutput struct {
	ID  string `json:"id"`
	Rev string `json:"rev"`
}

// AddRevision snapshots the document's current pages and settings as a new
// revision. Validation happens in the revision manager before any write; a
// rejected revision leaves both history and live state unchanged.
func AddRevision(database *sql.DB, input AddRevisionInput) (*AddRevisionOutput, error) {
	doc, err := input.Resolve(database, false)
	if err != nil {
		return nil, err
	}

	records, err := db.ListRevisions(database, doc.ID)
	if err != nil {
		return nil, err
	}

	if input.Date == "" {
		input.Date = isoToday()
	}

	manager := revision.NewManager(records)
	record, err := manager.Add(revision.AddInput{
		Rev:         input.Rev,
		Date:        input.Date,
		Description: input.Description,
		Author:      input.Author,
		Approver:    input.Approver,
		Content:     doc.Pages,
		Settings:    doc.Settings,
	})
	if err != nil {
		return nil, err
	}

	revID, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := time.Now().Unix()
	if err := db.InsertRevision(database, doc.ID, revID, record, now); err != nil {
		return nil, err
	}

	// Keep the settings' revision label in step with the new head.
	doc.Settings.Revision = record.Rev
	doc.UpdatedAt = now
	if err := db.UpdateDocumentState(database, doc); err != nil {
		return nil, err
	}

	return &AddRevisionOutput{ID: doc.ID, Rev: record.Rev}, nil
}
