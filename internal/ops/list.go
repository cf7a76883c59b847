package ops

import (
	"database/sql"

	"github.com/qmskit/qdoc/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit          int  `json:"limit,omitempty"`
	Offset         int  `json:"offset,omitempty"`
	IncludeDeleted bool `json:"include_deleted,omitempty"`
}

// ListItem is one document summary row.
type ListItem struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Title     string `json:"title"`
	Status    string `json:"status,omitempty"`
	Revision  string `json:"revision,omitempty"`
	PageCount int    `json:"page_count"`
	UpdatedAt int64  `json:"updated_at"`
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []ListItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// List returns document summaries ordered by most recently updated.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	docs, err := db.ListDocuments(database, limit, offset, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}
	total, err := db.CountDocuments(database, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, ListItem{
			ID:        d.ID,
			Code:      d.Settings.EffectiveID(),
			Title:     d.Settings.EffectiveTitle(),
			Status:    d.Settings.Status,
			Revision:  d.Settings.Revision,
			PageCount: len(d.Pages),
			UpdatedAt: d.UpdatedAt,
		})
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}
