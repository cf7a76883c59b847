package ops

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/export"
)

// ExportAllInput contains parameters for the ExportAll operation.
type ExportAllInput struct {
	Ref

	// Dir is the target directory. Defaults to ~/.qdoc/exports.
	Dir string `json:"dir,omitempty"`
}

// ExportedFile describes one artifact written to disk.
type ExportedFile struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}

// ExportStatus is one per-format progress report from the export sequence.
type ExportStatus struct {
	Format  string `json:"format"`
	Success bool   `json:"success"`
}

// ExportAllOutput contains the result of the ExportAll operation.
type ExportAllOutput struct {
	ID       string         `json:"id"`
	Dir      string         `json:"dir"`
	Files    []ExportedFile `json:"files"`
	Statuses []ExportStatus `json:"statuses"`
}

// ExportAll serializes a document into every export format and writes the
// artifacts into the target directory. The sequence is fail-fast: the first
// failing format aborts the run and no later artifact is produced.
func ExportAll(database *sql.DB, cfg *config.Config, input ExportAllInput) (*ExportAllOutput, error) {
	doc, err := input.Resolve(database, false)
	if err != nil {
		return nil, err
	}

	records, err := db.ListRevisions(database, doc.ID)
	if err != nil {
		return nil, err
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

	pages := make([]export.Page, 0, len(doc.Pages))
	for _, html := range doc.Pages {
		pages = append(pages, export.NewPage(html))
	}
	src := &export.Source{
		Settings:  doc.Settings,
		Pages:     pages,
		Revisions: records,
		View:      &export.ViewState{},
	}

	out := &ExportAllOutput{ID: doc.ID, Dir: dir}
	save := func(a *export.Artifact) error {
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
			Format:   string(a.Format),
			Filename: a.Filename,
			Size:     len(a.Data),
		})
		return nil
	}
	status := func(format export.Format, success bool) {
		out.Statuses = append(out.Statuses, ExportStatus{Format: string(format), Success: success})
	}

	if _, err := export.NewCoordinator(save, status).Run(src); err != nil {
		return nil, err
	}
	return out, nil
}
