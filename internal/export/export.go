// Package export implements the multi-format document export pipeline:
// per-format exporters producing downloadable artifacts from a single source
// of truth, and a coordinator running them in a fixed fail-fast sequence.
package export

import (
	"fmt"
	"strings"

	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/revision"
)

// Format identifies one export target. These are the status-callback keys.
type Format string

const (
	FormatDOCX     Format = "docx"
	FormatPDF      Format = "pdf"
	FormatPDFClean Format = "pdf_clean"
	FormatTXT      Format = "txt"
	FormatXLSX     Format = "xlsx"
	FormatCSV      Format = "csv"
)

// Label returns the format name used in error messages.
func (f Format) Label() string {
	if f == FormatPDFClean {
		return "PDF"
	}
	return strings.ToUpper(string(f))
}

// PageImage is an optional pre-rendered raster of a page, supplied by the
// editor shell when a pixel-faithful PDF capture is wanted.
type PageImage struct {
	// PNG is the encoded image data
	PNG []byte

	// Width and Height are the raster dimensions in pixels
	Width  int
	Height int
}

// Page is one content element: the raw HTML snapshot, its processed block
// sequence, and an optional raster.
type Page struct {
	HTML   string
	Blocks []document.Block
	Image  *PageImage
}

// NewPage builds a Page from an HTML fragment, processing it into blocks.
func NewPage(html string) Page {
	return Page{HTML: html, Blocks: document.ProcessContent(html)}
}

// ViewState is the shared on-screen state the PDF capture depends on. The
// viewer owns it; the PDF exporter toggles revision-table visibility around a
// capture and always restores the prior value.
type ViewState struct {
	revisionTableVisible bool
}

// RevisionTableVisible reports whether the revision table is shown.
func (v *ViewState) RevisionTableVisible() bool {
	return v.revisionTableVisible
}

// SetRevisionTableVisible sets revision-table visibility.
func (v *ViewState) SetRevisionTableVisible(visible bool) {
	v.revisionTableVisible = visible
}

// withRevisionTableVisible runs fn with the revision table toggled to the
// given visibility, restoring the prior value on every path.
func withRevisionTableVisible(view *ViewState, visible bool, fn func() error) error {
	if view == nil {
		return fn()
	}
	prev := view.RevisionTableVisible()
	view.SetRevisionTableVisible(visible)
	defer view.SetRevisionTableVisible(prev)
	return fn()
}

// Source is the immutable input every exporter consumes: current settings,
// ordered pages, and the full revision history. Exporters never mutate it.
type Source struct {
	Settings  document.Settings
	Pages     []Page
	Revisions []revision.Record
	View      *ViewState
}

// Artifact is one produced export file. Persisting it is the caller's
// responsibility.
type Artifact struct {
	Format   Format `json:"format"`
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
}

// Exporter is the common contract of all format exporters.
type Exporter interface {
	// Format returns the status-callback key for this exporter.
	Format() Format

	// Export serializes the source into one artifact. Errors are returned
	// with a "{FORMAT} export failed:" prefix.
	Export(src *Source) (*Artifact, error)
}

// revisionTableColumns is the fixed revision-history header shared by the
// DOCX, XLSX and CSV renderings.
var revisionTableColumns = []string{"Rev", "Date", "Description", "Author", "Approved By"}

// wrapErr prefixes an exporter failure with its format name.
func wrapErr(f Format, err error) error {
	return fmt.Errorf("%s export failed: %w", f.Label(), err)
}

// headerFields is the fixed-format metadata header shared by the DOCX and TXT
// renderings. Dates are formatted with the document's own date pattern.
func headerFields(s document.Settings) []document.Field {
	pattern := s.DateFormat
	if pattern == "" {
		pattern = "DD/MM/YYYY"
	}
	classification := s.Classification
	if s.Status != "" {
		if classification != "" {
			classification += " / "
		}
		classification += s.Status
	}
	return []document.Field{
		{Label: "Document ID", Value: s.EffectiveID()},
		{Label: "Title", Value: s.EffectiveTitle()},
		{Label: "Author", Value: s.Author},
		{Label: "Department", Value: s.Department},
		{Label: "Classification", Value: classification},
		{Label: "Language", Value: s.Language},
		{Label: "Tags", Value: strings.Join(s.Tags, ", ")},
		{Label: "Revision", Value: s.Revision},
		{Label: "Effective Date", Value: document.FormatDate(s.EffectiveDate, pattern)},
		{Label: "Revised Date", Value: document.FormatDate(s.RevisedDate, pattern)},
	}
}

// pagesPlainText flattens all pages to plain text joined by the page-break
// marker used in flat text targets.
func pagesPlainText(pages []Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, document.PagePlainText(p.Blocks))
	}
	return strings.Join(parts, "\n\n--- Page Break ---\n\n")
}
