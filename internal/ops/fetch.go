package ops

import (
	"database/sql"

	"github.com/qmskit/qdoc/internal/document"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	Ref
	IncludeDeleted bool `json:"include_deleted,omitempty"`

	// IncludePages controls whether page HTML is returned (default true).
	IncludePages *bool `json:"include_pages,omitempty"`
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	ID        string            `json:"id"`
	Settings  document.Settings `json:"settings"`
	Pages     []string          `json:"pages,omitempty"`
	PageCount int               `json:"page_count"`
	CreatedAt int64             `json:"created_at"`
	UpdatedAt int64             `json:"updated_at"`
	DeletedAt *int64            `json:"deleted_at,omitempty"`
}

// Fetch retrieves a document's live state.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	doc, err := input.Resolve(database, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	out := &FetchOutput{
		ID:        doc.ID,
		Settings:  doc.Settings,
		PageCount: len(doc.Pages),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		DeletedAt: doc.DeletedAt,
	}
	if input.IncludePages == nil || *input.IncludePages {
		out.Pages = doc.Pages
	}
	return out, nil
}
