// Package ops implements the editor-shell operations over stored documents:
// CRUD, revision management, and the export sequences. Each operation follows
// the same shape: validate input, act on the database, return a typed output.
package ops

import (
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Ref identifies a stored document by exactly one addressing mode: the row
// ULID or the user-facing document code (e.g. "DOC-001").
type Ref struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
}

// Resolve fetches the document a Ref addresses.
func (r Ref) Resolve(database *sql.DB, includeDeleted bool) (*db.Document, error) {
	id := strings.TrimSpace(r.ID)
	code := strings.TrimSpace(r.Code)

	switch {
	case id != "" && code != "":
		return nil, errors.NewInvalidRequest("cannot specify both id and code; use one addressing mode")
	case id != "":
		return db.GetDocumentByID(database, id, includeDeleted)
	case code != "":
		return db.GetDocumentByCode(database, code, includeDeleted)
	default:
		return nil, errors.NewInvalidRequest("must specify either id or code")
	}
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// isoToday returns today's date as an ISO YYYY-MM-DD string.
func isoToday() string {
	return time.Now().Format("2006-01-02")
}
