package ops

import (
	"database/sql"
	"time"

	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/errors"
)

// SetContentInput contains parameters for the SetContent operation.
type SetContentInput struct {
	Ref

	// Pages replaces the live page list when non-nil.
	Pages []string `json:"pages,omitempty"`

	// Settings replaces the live settings when non-nil.
	Settings *document.Settings `json:"settings,omitempty"`
}

// SetContentOutput contains the result of the SetContent operation.
type SetContentOutput struct {
	ID        string `json:"id"`
	PageCount int    `json:"page_count"`
	UpdatedAt int64  `json:"updated_at"`
}

// SetContent replaces a document's live pages and/or settings. Revision
// history is untouched; persisting edits as a revision requires AddRevision.
func SetContent(database *sql.DB, input SetContentInput) (*SetContentOutput, error) {
	if input.Pages == nil && input.Settings == nil {
		return nil, errors.NewInvalidRequest("must provide pages and/or settings")
	}

	doc, err := input.Resolve(database, false)
	if err != nil {
		return nil, err
	}

	if input.Pages != nil {
		doc.Pages = input.Pages
	}
	if input.Settings != nil {
		doc.Settings = *input.Settings
	}
	doc.UpdatedAt = time.Now().Unix()

	if err := db.UpdateDocumentState(database, doc); err != nil {
		return nil, err
	}
	return &SetContentOutput{ID: doc.ID, PageCount: len(doc.Pages), UpdatedAt: doc.UpdatedAt}, nil
}
