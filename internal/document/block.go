package document

import (
	"fmt"
	"strings"
)

// Block is one structural node of a processed page. The variant set is
// closed: Heading, Paragraph, Table, List.
type Block interface {
	isBlock()
}

// Heading is an h1-h3 node.
type Heading struct {
	// Level is 1-3
	Level int

	// Text is the heading text
	Text string
}

// Paragraph is a plain text node. Bold/Italic are set when any descendant of
// the source node carried strong/b or em/i markup, not only direct styling.
type Paragraph struct {
	Text   string
	Bold   bool
	Italic bool
}

// TableCell is one cell of a Table row.
type TableCell struct {
	Text     string
	IsHeader bool
}

// Table is a grid of rows of cells.
type Table struct {
	Rows [][]TableCell
}

// List is an ordered or bulleted list.
type List struct {
	Ordered bool
	Items   []string
}

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (Table) isBlock()     {}
func (List) isBlock()      {}

// headingSizes maps heading level to font size in half-points.
var headingSizes = map[int]int{1: 32, 2: 28, 3: 26}

// HeadingSize returns the fixed half-point font size for a heading level.
// Unknown levels get the h3 size.
func HeadingSize(level int) int {
	if size, ok := headingSizes[level]; ok {
		return size
	}
	return headingSizes[3]
}

// PrefixedItems returns the list items with their plain-text prefixes applied:
// "{n}. " for ordered lists, "• " for bulleted lists.
func (l List) PrefixedItems() []string {
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		if l.Ordered {
			items[i] = fmt.Sprintf("%d. %s", i+1, item)
		} else {
			items[i] = "• " + item
		}
	}
	return items
}

// PlainText flattens a block to its plain-text rendering.
func PlainText(b Block) string {
	switch v := b.(type) {
	case Heading:
		return v.Text
	case Paragraph:
		return v.Text
	case Table:
		var rows []string
		for _, row := range v.Rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = c.Text
			}
			rows = append(rows, strings.Join(cells, " | "))
		}
		return strings.Join(rows, "\n")
	case List:
		return strings.Join(v.PrefixedItems(), "\n")
	default:
		return ""
	}
}

// PagePlainText flattens a processed page to plain text, one block per line
// group separated by blank lines.
func PagePlainText(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if text := PlainText(b); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
