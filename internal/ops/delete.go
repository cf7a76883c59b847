package ops

import (
	"database/sql"
	"time"

	"github.com/qmskit/qdoc/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Ref
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	ID        string `json:"id"`
	DeletedAt int64  `json:"deleted_at"`
}

// Delete soft-deletes a document. Its revision history is retained.
func Delete(database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	doc, err := input.Resolve(database, false)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	if err := db.SoftDeleteDocument(database, doc.ID, now); err != nil {
		return nil, err
	}
	return &DeleteOutput{ID: doc.ID, DeletedAt: now}, nil
}
