package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/qmskit/qdoc/internal/document"
)

// pdfMarginMM is the fixed 0.5in page margin.
const pdfMarginMM = 12.7

// PDFExporter renders the document as an A4 PDF. Pages that carry a
// pre-rendered raster are placed one per PDF page with aspect-preserving
// letterboxing; pages without one are rendered from their blocks.
//
// Two instances exist in the standard sequence: with the revision-history
// page (".pdf") and clean ("_clean.pdf"). The with-table capture toggles the
// shared view state and restores it whether the capture succeeds or fails.
type PDFExporter struct {
	withRevisionTable bool
}

// NewPDFExporter creates a PDF exporter. withRevisionTable selects whether a
// trailing revision-history page is appended.
func NewPDFExporter(withRevisionTable bool) *PDFExporter {
	return &PDFExporter{withRevisionTable: withRevisionTable}
}

// Format returns the pdf or pdf_clean status key.
func (e *PDFExporter) Format() Format {
	if e.withRevisionTable {
		return FormatPDF
	}
	return FormatPDFClean
}

// Export serializes the source to PDF.
func (e *PDFExporter) Export(src *Source) (*Artifact, error) {
	var data []byte
	err := withRevisionTableVisible(src.View, e.withRevisionTable, func() error {
		var buildErr error
		data, buildErr = e.build(src)
		return buildErr
	})
	if err != nil {
		return nil, wrapErr(e.Format(), err)
	}

	filename := document.DeriveFilename(src.Settings, "pdf")
	if !e.withRevisionTable {
		filename = document.DeriveFilenameSuffix(src.Settings, "_clean.pdf")
	}
	return &Artifact{Format: e.Format(), Filename: filename, Data: data}, nil
}

func (e *PDFExporter) build(src *Source) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginMM, pdfMarginMM, pdfMarginMM)
	pdf.SetAutoPageBreak(true, pdfMarginMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()

	for i, page := range src.Pages {
		pdf.AddPage()
		if page.Image != nil {
			placeRaster(pdf, fmt.Sprintf("page-%d", i), page.Image, pageW, pageH)
		} else {
			renderBlocks(pdf, tr, page.Blocks)
		}
	}

	if e.withRevisionTable {
		pdf.AddPage()
		renderRevisionPage(pdf, tr, src)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// placeRaster draws one page raster letterboxed onto the current PDF page.
func placeRaster(pdf *fpdf.Fpdf, name string, img *PageImage, pageW, pageH float64) {
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(img.PNG))
	x, y, w, h := fitRect(float64(img.Width), float64(img.Height), pageW, pageH)
	pdf.ImageOptions(name, x, y, w, h, false, opt, 0, "")
}

// fitRect computes the aspect-ratio-preserving placement of a canvas inside a
// page, centering the letterboxed remainder. Degenerate dimensions fall back
// to filling the full page without aspect correction.
func fitRect(canvasW, canvasH, pageW, pageH float64) (x, y, w, h float64) {
	if canvasW <= 0 || canvasH <= 0 || pageW <= 0 || pageH <= 0 {
		return 0, 0, pageW, pageH
	}

	canvasRatio := canvasW / canvasH
	pageRatio := pageW / pageH
	if canvasRatio > pageRatio {
		// Wider than the page: fit to width, center vertically.
		w = pageW
		h = pageW / canvasRatio
		y = (pageH - h) / 2
		return 0, y, w, h
	}
	// Taller than the page: fit to height, center horizontally.
	h = pageH
	w = pageH * canvasRatio
	x = (pageW - w) / 2
	return x, 0, w, h
}

func renderBlocks(pdf *fpdf.Fpdf, tr func(string) string, blocks []document.Block) {
	for _, b := range blocks {
		switch v := b.(type) {
		case document.Heading:
			// Heading sizes are half-points.
			pdf.SetFont("Helvetica", "B", float64(document.HeadingSize(v.Level))/2)
			pdf.MultiCell(0, 8, tr(v.Text), "", "L", false)
			pdf.Ln(2)
		case document.Paragraph:
			style := ""
			if v.Bold {
				style += "B"
			}
			if v.Italic {
				style += "I"
			}
			pdf.SetFont("Helvetica", style, 11)
			pdf.MultiCell(0, 6, tr(v.Text), "", "L", false)
			pdf.Ln(2)
		case document.List:
			pdf.SetFont("Helvetica", "", 11)
			for _, item := range v.PrefixedItems() {
				pdf.MultiCell(0, 6, tr(item), "", "L", false)
			}
			pdf.Ln(2)
		case document.Table:
			renderTable(pdf, tr, v)
			pdf.Ln(2)
		}
	}
}

func renderTable(pdf *fpdf.Fpdf, tr func(string) string, t document.Table) {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(cols)

	pdf.SetFillColor(230, 230, 230)
	for _, row := range t.Rows {
		for _, cell := range row {
			style := ""
			if cell.IsHeader {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, 10)
			pdf.CellFormat(colW, 7, tr(cell.Text), "1", 0, "L", cell.IsHeader, 0, "")
		}
		pdf.Ln(-1)
	}
}

func renderRevisionPage(pdf *fpdf.Fpdf, tr func(string) string, src *Source) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, "Revision History", "", "L", false)
	pdf.Ln(2)

	rows := [][]document.TableCell{headerRow(revisionTableColumns)}
	for _, r := range src.Revisions {
		rows = append(rows, []document.TableCell{
			{Text: r.Rev}, {Text: r.Date}, {Text: r.Description},
			{Text: r.Author}, {Text: r.Approver},
		})
	}
	renderTable(pdf, tr, document.Table{Rows: rows})
}

func headerRow(names []string) []document.TableCell {
	row := make([]document.TableCell, len(names))
	for i, n := range names {
		row[i] = document.TableCell{Text: n, IsHeader: true}
	}
	return row
}
