// Package template holds the reusable text template library and its bulk
// export pipeline, a simplified parallel of the document export sequence.
package template

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/qmskit/qdoc/internal/document"
)

// Template is one reusable content snippet. Bodies are authored in markdown
// and rendered to HTML before structured processing.
type Template struct {
	// ID is a ULID that uniquely identifies this template
	ID string `json:"id"`

	// Name is the human-readable template name
	Name string `json:"name"`

	// Category groups templates in the library (e.g. "SOP", "Policy")
	Category string `json:"category"`

	// Body is the markdown source text
	Body string `json:"body"`

	// CreatedAt is the Unix timestamp when the template was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the template was last updated
	UpdatedAt int64 `json:"updated_at"`
}

// Blocks renders the markdown body to HTML and processes it into the shared
// block model used by structured export targets. Rendering never fails
// outward: on a markdown error the raw body degrades to one paragraph.
func (t *Template) Blocks() []document.Block {
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(t.Body), &html); err != nil {
		return []document.Block{document.Paragraph{Text: strings.TrimSpace(t.Body)}}
	}
	return document.ProcessContent(html.String())
}

// PlainText flattens the template body via its block model.
func (t *Template) PlainText() string {
	return document.PagePlainText(t.Blocks())
}
