// Package revision owns the ordered revision history of a document: snapshot
// records, identifier validation, and non-destructive reverting.
package revision

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/errors"
)

// SeedRev is the identifier of the revision every document history starts
// with; the history list is never empty.
const SeedRev = "A"

// Record is one revision: the textual history entry plus a full snapshot of
// the page content and settings at the time the revision was added.
type Record struct {
	// Rev is the revision identifier, conventionally a single letter
	Rev string `json:"rev"`

	// Date is the revision date as an ISO YYYY-MM-DD string
	Date string `json:"date"`

	// Description summarizes the change
	Description string `json:"description"`

	// Author is who made the change
	Author string `json:"author"`

	// Approver is who approved the change
	Approver string `json:"approver"`

	// Content holds one HTML snapshot per page
	Content []string `json:"content"`

	// Settings is the full settings snapshot
	Settings document.Settings `json:"settings"`
}

// AddInput contains parameters for adding a revision.
type AddInput struct {
	Rev         string `json:"rev"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Approver    string `json:"approver"`

	// Content and Settings are the live editor state to snapshot.
	Content  []string          `json:"content"`
	Settings document.Settings `json:"settings"`
}

// Manager owns the ordered revision list for one document.
type Manager struct {
	records []Record
}

// NewManager creates a Manager over an existing history. The caller seeds new
// documents with Seed before first use.
func NewManager(records []Record) *Manager {
	return &Manager{records: records}
}

// Seed returns the initial "A" revision for a newly created document.
func Seed(date string, content []string, settings document.Settings) Record {
	return Record{
		Rev:         SeedRev,
		Date:        date,
		Description: "Initial issue",
		Author:      settings.Author,
		Approver:    settings.Approver,
		Content:     content,
		Settings:    settings,
	}
}

// Add validates and appends a new revision. On any validation failure the
// list is unchanged and a validation error is returned.
//
// Sequencing compares only the first character of the new identifier against
// the first character of the current last identifier. Multi-character
// identifiers such as "A1" therefore sequence by their leading letter only;
// this matches the established history format (single letters) and is kept
// as-is rather than generalized to a full string compare.
func (m *Manager) Add(input AddInput) (*Record, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Rev, validation.Required),
		validation.Field(&input.Date, validation.Required),
		validation.Field(&input.Description, validation.Required),
		validation.Field(&input.Author, validation.Required),
		validation.Field(&input.Approver, validation.Required),
	)
	if err != nil {
		return nil, errors.NewValidation(err.Error())
	}

	for _, r := range m.records {
		if r.Rev == input.Rev {
			return nil, errors.NewRevisionExists(input.Rev)
		}
	}

	if len(m.records) > 0 {
		last := m.records[len(m.records)-1].Rev
		if []rune(input.Rev)[0] <= []rune(last)[0] {
			return nil, errors.NewOutOfSequence(input.Rev, last)
		}
	}

	record := Record{
		Rev:         input.Rev,
		Date:        input.Date,
		Description: input.Description,
		Author:      input.Author,
		Approver:    input.Approver,
		Content:     input.Content,
		Settings:    input.Settings,
	}
	m.records = append(m.records, record)
	return &record, nil
}

// Revert returns the snapshot for the given revision identifier. The caller
// installs the snapshot as live state; the history itself is never modified
// by a revert.
func (m *Manager) Revert(rev string) (*Record, error) {
	for i := range m.records {
		if m.records[i].Rev == rev {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, errors.NewNotFound("revision " + rev)
}

// Records returns the ordered revision list.
func (m *Manager) Records() []Record {
	return m.records
}

// Current returns the last revision in the list, which is canonical
// regardless of what was last reverted to. Returns nil for an empty list.
func (m *Manager) Current() *Record {
	if len(m.records) == 0 {
		return nil
	}
	r := m.records[len(m.records)-1]
	return &r
}
