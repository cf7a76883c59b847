package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/qmskit/qdoc/internal/document"
)

const (
	sheetInfo    = "Document Info"
	sheetHistory = "Revision History"
)

// XLSXExporter renders the document as a two-sheet workbook: a key/value
// "Document Info" sheet (including the concatenated plain-text content) and a
// tabular "Revision History" sheet.
type XLSXExporter struct{}

// Format returns the xlsx status key.
func (e *XLSXExporter) Format() Format { return FormatXLSX }

// Export serializes the source to an XLSX workbook.
func (e *XLSXExporter) Export(src *Source) (*Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetInfo); err != nil {
		return nil, wrapErr(FormatXLSX, err)
	}

	row := 1
	setInfo := func(label, value string) error {
		if err := f.SetCellValue(sheetInfo, fmt.Sprintf("A%d", row), label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetInfo, fmt.Sprintf("B%d", row), value); err != nil {
			return err
		}
		row++
		return nil
	}

	for _, field := range src.Settings.Fields() {
		if err := setInfo(field.Label, field.Value); err != nil {
			return nil, wrapErr(FormatXLSX, err)
		}
	}
	if err := setInfo("Content", pagesPlainText(src.Pages)); err != nil {
		return nil, wrapErr(FormatXLSX, err)
	}

	if _, err := f.NewSheet(sheetHistory); err != nil {
		return nil, wrapErr(FormatXLSX, err)
	}
	for col, name := range revisionTableColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetHistory, cell, name); err != nil {
			return nil, wrapErr(FormatXLSX, err)
		}
	}
	for i, r := range src.Revisions {
		values := []string{r.Rev, r.Date, r.Description, r.Author, r.Approver}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetHistory, cell, v); err != nil {
				return nil, wrapErr(FormatXLSX, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, wrapErr(FormatXLSX, err)
	}

	return &Artifact{
		Format:   FormatXLSX,
		Filename: document.DeriveFilename(src.Settings, "xlsx"),
		Data:     buf.Bytes(),
	}, nil
}
