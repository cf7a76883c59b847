package export

import (
	"bytes"
	"strconv"

	"github.com/fumiama/go-docx"

	"github.com/qmskit/qdoc/internal/document"
)

// DOCXExporter renders the document as a Word file: metadata header block,
// page content with explicit page breaks between input pages, and a trailing
// revision-history table on its own page.
type DOCXExporter struct{}

// Format returns the docx status key.
func (e *DOCXExporter) Format() Format { return FormatDOCX }

// Export serializes the source to DOCX.
func (e *DOCXExporter) Export(src *Source) (*Artifact, error) {
	w := docx.New().WithDefaultTheme()

	writeHeaderBlock(w, src.Settings)

	for i, page := range src.Pages {
		// Page breaks separate input pages, never blocks within a page.
		if i > 0 {
			w.AddParagraph().AddPageBreaks()
		}
		writeBlocks(w, page.Blocks)
	}

	w.AddParagraph().AddPageBreaks()
	writeRevisionTable(w, src)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, wrapErr(FormatDOCX, err)
	}

	return &Artifact{
		Format:   FormatDOCX,
		Filename: document.DeriveFilename(src.Settings, "docx"),
		Data:     buf.Bytes(),
	}, nil
}

func writeHeaderBlock(w *docx.Docx, s document.Settings) {
	title := w.AddParagraph().AddText(s.EffectiveID() + " - " + s.EffectiveTitle())
	title.Size(strconv.Itoa(document.HeadingSize(1)))
	title.Bold()

	for _, f := range headerFields(s) {
		w.AddParagraph().AddText(f.Label + ": " + f.Value)
	}
}

func writeBlocks(w *docx.Docx, blocks []document.Block) {
	for _, b := range blocks {
		switch v := b.(type) {
		case document.Heading:
			run := w.AddParagraph().AddText(v.Text)
			run.Size(strconv.Itoa(document.HeadingSize(v.Level)))
			run.Bold()
		case document.Paragraph:
			run := w.AddParagraph().AddText(v.Text)
			if v.Bold {
				run.Bold()
			}
			if v.Italic {
				run.Italic()
			}
		case document.List:
			// List items use their plain-paragraph encoding with prefixes
			// applied at render time.
			for _, item := range v.PrefixedItems() {
				w.AddParagraph().AddText(item)
			}
		case document.Table:
			writeTable(w, v.Rows)
		}
	}
}

func writeTable(w *docx.Docx, rows [][]document.TableCell) {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if len(rows) == 0 || cols == 0 {
		return
	}

	table := w.AddTable(len(rows), cols, 0, nil)
	for r, row := range rows {
		for c, cell := range row {
			run := table.TableRows[r].TableCells[c].AddParagraph().AddText(cell.Text)
			if cell.IsHeader {
				run.Bold()
			}
		}
	}
}

func writeRevisionTable(w *docx.Docx, src *Source) {
	heading := w.AddParagraph().AddText("Revision History")
	heading.Size(strconv.Itoa(document.HeadingSize(2)))
	heading.Bold()

	rows := [][]document.TableCell{headerRow(revisionTableColumns)}
	for _, r := range src.Revisions {
		rows = append(rows, []document.TableCell{
			{Text: r.Rev}, {Text: r.Date}, {Text: r.Description},
			{Text: r.Author}, {Text: r.Approver},
		})
	}
	writeTable(w, rows)
}
