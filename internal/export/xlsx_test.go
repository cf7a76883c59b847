package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXLSXExport(t *testing.T) {
	artifact, err := (&XLSXExporter{}).Export(testSource())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if artifact.Filename != "DOC-001 - Quality_Policy - Policy - 240115 - 240301.xlsx" {
		t.Errorf("Filename = %q", artifact.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Document Info" || sheets[1] != "Revision History" {
		t.Fatalf("sheets = %v", sheets)
	}

	// First info row is the document ID.
	if v, _ := f.GetCellValue("Document Info", "A1"); v != "Document ID" {
		t.Errorf("A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Document Info", "B1"); v != "DOC-001" {
		t.Errorf("B1 = %q", v)
	}

	// The concatenated plain-text content is the final info row.
	rows, err := f.GetRows("Document Info")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	last := rows[len(rows)-1]
	if last[0] != "Content" || !strings.Contains(last[1], "We commit to quality.") {
		t.Errorf("content row = %v", last)
	}

	// History sheet header and first revision row.
	if v, _ := f.GetCellValue("Revision History", "A1"); v != "Rev" {
		t.Errorf("history A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Revision History", "E1"); v != "Approved By" {
		t.Errorf("history E1 = %q", v)
	}
	if v, _ := f.GetCellValue("Revision History", "C2"); v != "Initial issue" {
		t.Errorf("history C2 = %q", v)
	}
}
