package db

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/revision"
	"github.com/qmskit/qdoc/internal/template"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.QdocError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// Document is the stored live state of one document: current settings plus
// one HTML snapshot per page.
type Document struct {
	// ID is a ULID that uniquely identifies this document row
	ID string

	// Settings is the current settings record
	Settings document.Settings

	// Pages holds the current page HTML, one entry per page
	Pages []string

	// CreatedAt is the Unix timestamp when the document was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the document was last updated
	UpdatedAt int64

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64
}

// InsertDocument stores a new document.
func InsertDocument(db *sql.DB, d *Document) error {
	settingsJSON, contentJSON, err := marshalState(d.Settings, d.Pages)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO documents (id, doc_code, title, settings_json, content_json, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
	`
	_, err = db.Exec(query,
		d.ID, d.Settings.EffectiveID(), d.Settings.EffectiveTitle(),
		settingsJSON, contentJSON, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}
	return nil
}

// UpdateDocumentState replaces a document's live settings and pages.
func UpdateDocumentState(db *sql.DB, d *Document) error {
	settingsJSON, contentJSON, err := marshalState(d.Settings, d.Pages)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		UPDATE documents
		SET doc_code = ?, title = ?, settings_json = ?, content_json = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := db.Exec(query,
		d.Settings.EffectiveID(), d.Settings.EffectiveTitle(),
		settingsJSON, contentJSON, d.UpdatedAt, d.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(d.ID)
	}
	return nil
}

// GetDocumentByID retrieves a document by its ULID.
func GetDocumentByID(db *sql.DB, id string, includeDeleted bool) (*Document, error) {
	query := docSelect + " WHERE id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	return scanDocument(db.QueryRow(query, id), id)
}

// GetDocumentByCode retrieves a document by its user-facing document ID
// (e.g. "DOC-001").
func GetDocumentByCode(db *sql.DB, code string, includeDeleted bool) (*Document, error) {
	query := docSelect + " WHERE doc_code = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	return scanDocument(db.QueryRow(query, code), code)
}

// ListDocuments returns documents ordered by most recently updated.
func ListDocuments(db *sql.DB, limit, offset int, includeDeleted bool) ([]*Document, error) {
	query := docSelect
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY updated_at DESC LIMIT ? OFFSET ?"

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		d, err := scanDocumentRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return docs, nil
}

// CountDocuments returns the number of documents.
func CountDocuments(db *sql.DB, includeDeleted bool) (int, error) {
	query := "SELECT COUNT(*) FROM documents"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	var count int
	if err := db.QueryRow(query).Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// SoftDeleteDocument marks a document deleted.
func SoftDeleteDocument(db *sql.DB, id string, now int64) error {
	result, err := db.Exec(
		"UPDATE documents SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, now, id,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// InsertRevision appends one revision record for a document. The UNIQUE
// (document_id, rev) index backs the manager's duplicate check.
func InsertRevision(db *sql.DB, documentID, ulid string, r *revision.Record, createdAt int64) error {
	settingsJSON, contentJSON, err := marshalState(r.Settings, r.Content)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO revisions (id, document_id, rev, date, description, author, approver, content_json, settings_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.Exec(query,
		ulid, documentID, r.Rev, r.Date, r.Description, r.Author, r.Approver,
		contentJSON, settingsJSON, createdAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewRevisionExists(r.Rev)
		}
		return errors.NewInternal(err)
	}
	return nil
}

// ListRevisions returns a document's revision records in insertion order.
func ListRevisions(db *sql.DB, documentID string) ([]revision.Record, error) {
	query := `
		SELECT rev, date, description, author, approver, content_json, settings_json
		FROM revisions
		WHERE document_id = ?
		ORDER BY created_at, rev
	`
	rows, err := db.Query(query, documentID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var records []revision.Record
	for rows.Next() {
		var r revision.Record
		var contentJSON, settingsJSON string
		if err := rows.Scan(&r.Rev, &r.Date, &r.Description, &r.Author, &r.Approver, &contentJSON, &settingsJSON); err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := unmarshalState(settingsJSON, contentJSON, &r.Settings, &r.Content); err != nil {
			return nil, errors.NewInternal(err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return records, nil
}

// InsertTemplate stores a new template.
func InsertTemplate(db *sql.DB, t *template.Template) error {
	query := `
		INSERT INTO templates (id, name, category, body_md, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL)
	`
	_, err := db.Exec(query, t.ID, t.Name, t.Category, t.Body, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}
	return nil
}

// ListTemplates returns templates ordered by category then name.
func ListTemplates(db *sql.DB) ([]template.Template, error) {
	query := `
		SELECT id, name, category, body_md, created_at, updated_at
		FROM templates
		WHERE deleted_at IS NULL
		ORDER BY category, name
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var templates []template.Template
	for rows.Next() {
		var t template.Template
		var category sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &category, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		t.Category = category.String
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return templates, nil
}

const docSelect = `
	SELECT id, settings_json, content_json, created_at, updated_at, deleted_at
	FROM documents`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row *sql.Row, identifier string) (*Document, error) {
	d, err := scanDocumentRows(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(identifier)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return d, nil
}

func scanDocumentRows(row rowScanner) (*Document, error) {
	var d Document
	var settingsJSON, contentJSON string
	var deletedAt sql.NullInt64
	if err := row.Scan(&d.ID, &settingsJSON, &contentJSON, &d.CreatedAt, &d.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		d.DeletedAt = &deletedAt.Int64
	}
	if err := unmarshalState(settingsJSON, contentJSON, &d.Settings, &d.Pages); err != nil {
		return nil, err
	}
	return &d, nil
}

func marshalState(settings document.Settings, pages []string) (settingsJSON, contentJSON string, err error) {
	sj, err := json.Marshal(settings)
	if err != nil {
		return "", "", err
	}
	if pages == nil {
		pages = []string{}
	}
	cj, err := json.Marshal(pages)
	if err != nil {
		return "", "", err
	}
	return string(sj), string(cj), nil
}

func unmarshalState(settingsJSON, contentJSON string, settings *document.Settings, pages *[]string) error {
	if err := json.Unmarshal([]byte(settingsJSON), settings); err != nil {
		return err
	}
	return json.Unmarshal([]byte(contentJSON), pages)
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
