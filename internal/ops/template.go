package ops

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/template"
)

// TemplateAddInput contains parameters for the TemplateAdd operation.
type TemplateAddInput struct {
	// Name is the human-readable template name (required).
	Name string `json:"name"`

	// Category groups templates in the library (required).
	Category string `json:"category"`

	// Body is the markdown source text (required).
	Body string `json:"body"`
}

// TemplateAddOutput contains the result of the TemplateAdd operation.
type TemplateAddOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TemplateAdd stores a new template in the library.
func TemplateAdd(database *sql.DB, input TemplateAddInput) (*TemplateAddOutput, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name, validation.Required),
		validation.Field(&input.Category, validation.Required),
		validation.Field(&input.Body, validation.Required),
	)
	if err != nil {
		return nil, errors.NewValidation(err.Error())
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := time.Now().Unix()
	t := &template.Template{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Category:  strings.TrimSpace(input.Category),
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.InsertTemplate(database, t); err != nil {
		return nil, err
	}
	return &TemplateAddOutput{ID: t.ID, Name: t.Name}, nil
}

// TemplateListInput contains parameters for the TemplateList operation.
type TemplateListInput struct{}

// TemplateListItem is one template row without its body.
type TemplateListItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UpdatedAt int64  `json:"updated_at"`
}

// TemplateListOutput contains the result of the TemplateList operation.
type TemplateListOutput struct {
	Templates []TemplateListItem `json:"templates"`
	Total     int                `json:"total"`
}

// TemplateList returns all templates ordered by category then name.
func TemplateList(database *sql.DB, _ TemplateListInput) (*TemplateListOutput, error) {
	templates, err := db.ListTemplates(database)
	if err != nil {
		return nil, err
	}
	items := make([]TemplateListItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, TemplateListItem{
			ID: t.ID, Name: t.Name, Category: t.Category, UpdatedAt: t.UpdatedAt,
		})
	}
	return &TemplateListOutput{Templates: items, Total: len(items)}, nil
}

// TemplateExportInput contains parameters for the TemplateExport operation.
type TemplateExportInput struct {
	// Dir is the target directory. Defaults to ~/.qdoc/exports.
	Dir string `json:"dir,omitempty"`
}

// TemplateExportOutput contains the result of the TemplateExport operation.
type TemplateExportOutput struct {
	Dir      string         `json:"dir"`
	Files    []ExportedFile `json:"files"`
	Statuses []ExportStatus `json:"statuses"`
}

// TemplateExport serializes the whole template library into every library
// export format, writing the artifacts into the target directory. Like the
// document sequence it is fail-fast.
func TemplateExport(database *sql.DB, cfg *config.Config, input TemplateExportInput) (*TemplateExportOutput, error) {
	templates, err := db.ListTemplates(database)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, errors.NewInvalidRequest("template library is empty; nothing to export")
	}

	dir := input.Dir
	if dir == "" {
		dir, err = DefaultExportsDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	out := &TemplateExportOutput{Dir: dir}
	save := func(a *template.Artifact) error {
		path := filepath.Join(dir, a.Filename)
		if err := ValidateExportPath(path, cfg); err != nil {
			return err
		}
		f, err := openFileNoFollow(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if _, err := f.Write(a.Data); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		out.Files = append(out.Files, ExportedFile{
			Format:   a.Format,
			Filename: a.Filename,
			Size:     len(a.Data),
		})
		return nil
	}
	status := func(format string, success bool) {
		out.Statuses = append(out.Statuses, ExportStatus{Format: format, Success: success})
	}

	if _, err := template.ExportLibrary(templates, time.Now(), save, status); err != nil {
		return nil, err
	}
	return out, nil
}
