package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Placeholder blocks emitted when a page or element cannot be converted.
const (
	EmptyPagePlaceholder  = "[Empty page]"
	ConversionPlaceholder = "[Table/List content could not be converted]"
)

// ProcessContent converts one page's HTML fragment into an ordered sequence of
// Blocks. Conversion never fails outright: a malformed element degrades to a
// placeholder Paragraph, an unparsable page degrades to its plain text.
func ProcessContent(pageHTML string) []Block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		text := strings.TrimSpace(pageHTML)
		if text == "" {
			text = EmptyPagePlaceholder
		}
		return []Block{Paragraph{Text: text}}
	}

	body := doc.Find("body")
	children := body.Children()

	// No element children: fall back to the fragment's full trimmed text.
	if children.Length() == 0 {
		text := strings.TrimSpace(body.Text())
		if text == "" {
			text = EmptyPagePlaceholder
		}
		return []Block{Paragraph{Text: text}}
	}

	var blocks []Block
	children.Each(func(_ int, sel *goquery.Selection) {
		if block, ok := convertElement(sel); ok {
			blocks = append(blocks, block)
		}
	})

	if len(blocks) == 0 {
		return []Block{Paragraph{Text: EmptyPagePlaceholder}}
	}
	return blocks
}

// convertElement maps one top-level element to a Block. A panic during
// structured conversion is recovered and replaced with a placeholder so one
// bad element never aborts the rest of the page.
func convertElement(sel *goquery.Selection) (block Block, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			block = Paragraph{Text: ConversionPlaceholder}
			ok = true
		}
	}()

	tag := goquery.NodeName(sel)
	text := strings.TrimSpace(sel.Text())

	switch tag {
	case "h1", "h2", "h3":
		if text == "" {
			return nil, false
		}
		return Heading{Level: int(tag[1] - '0'), Text: text}, true

	case "table":
		return convertTable(sel), true

	case "ul", "ol":
		return convertList(sel, tag == "ol"), true

	default:
		if text == "" {
			return nil, false
		}
		return Paragraph{
			Text:   text,
			Bold:   sel.Find("strong, b").Length() > 0,
			Italic: sel.Find("em, i").Length() > 0,
		}, true
	}
}

func convertTable(sel *goquery.Selection) Table {
	var rows [][]TableCell
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []TableCell
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, TableCell{
				Text:     strings.TrimSpace(cell.Text()),
				IsHeader: goquery.NodeName(cell) == "th",
			})
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return Table{Rows: rows}
}

func convertList(sel *goquery.Selection, ordered bool) List {
	var items []string
	sel.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return List{Ordered: ordered, Items: items}
}
