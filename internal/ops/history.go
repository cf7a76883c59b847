package ops

import (
	"database/sql"

	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/revision"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Ref
}

// HistoryEntry is one revision row without its snapshots.
type HistoryEntry struct {
	Rev         string `json:"rev"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Approver    string `json:"approver"`
	PageCount   int    `json:"page_count"`
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	ID      string         `json:"id"`
	Current string         `json:"current"`
	Entries []HistoryEntry `json:"entries"`
}

// History returns a document's ordered revision list. Current is always the
// last entry's identifier, regardless of any prior revert.
func History(database *sql.DB, input HistoryInput) (*HistoryOutput, error) {
	doc, err := input.Resolve(database, false)
	if err != nil {
		return nil, err
	}

	records, err := db.ListRevisions(database, doc.ID)
	if err != nil {
		return nil, err
	}

	manager := revision.NewManager(records)
	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, HistoryEntry{
			Rev:         r.Rev,
			Date:        r.Date,
			Description: r.Description,
			Author:      r.Author,
			Approver:    r.Approver,
			PageCount:   len(r.Content),
		})
	}

	out := &HistoryOutput{ID: doc.ID, Entries: entries}
	if current := manager.Current(); current != nil {
		out.Current = current.Rev
	}
	return out, nil
}
