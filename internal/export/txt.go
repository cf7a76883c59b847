package export

import (
	"fmt"
	"strings"

	"github.com/qmskit/qdoc/internal/document"
)

// TXTExporter renders the document as flat text: metadata block, page content
// joined with explicit page-break markers, and the revision history.
type TXTExporter struct{}

// Format returns the txt status key.
func (e *TXTExporter) Format() Format { return FormatTXT }

// Export serializes the source to plain text.
func (e *TXTExporter) Export(src *Source) (*Artifact, error) {
	var b strings.Builder

	for _, f := range headerFields(src.Settings) {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(pagesPlainText(src.Pages))
	b.WriteString("\n\n" + strings.Repeat("=", 60) + "\n")

	b.WriteString("Revision History\n")
	for _, r := range src.Revisions {
		fmt.Fprintf(&b, "Rev %s (%s): %s - %s / %s\n",
			r.Rev, r.Date, r.Description, r.Author, r.Approver)
	}

	return &Artifact{
		Format:   FormatTXT,
		Filename: document.DeriveFilename(src.Settings, "txt"),
		Data:     []byte(b.String()),
	}, nil
}
