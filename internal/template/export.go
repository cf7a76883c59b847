package template

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
	"github.com/xuri/excelize/v2"

	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/errors"
)

// Formats of the bulk library export, in their fixed execution order.
const (
	FormatTXT  = "txt"
	FormatDOCX = "docx"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// exportOrder is the fixed bulk-export sequence.
var exportOrder = []string{FormatTXT, FormatDOCX, FormatJSON, FormatCSV, FormatXLSX, FormatXML}

// SchemaVersion identifies the JSON/XML library export schema.
const SchemaVersion = "1.0"

// StatusFunc receives per-format success/failure as the sequence progresses.
type StatusFunc func(format string, success bool)

// Artifact is one produced library export file.
type Artifact struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
}

// SaveFunc persists one artifact.
type SaveFunc func(a *Artifact) error

// ExportLibrary serializes the whole template library to every format in the
// fixed order, saving each artifact as it is produced. Like the document
// pipeline, the sequence is strictly sequential and fail-fast: the first
// failing format aborts the remainder.
func ExportLibrary(templates []Template, now time.Time, save SaveFunc, status StatusFunc) ([]*Artifact, error) {
	stamp := now.Format("2006-01-02T150405")
	artifacts := make([]*Artifact, 0, len(exportOrder))

	for _, format := range exportOrder {
		data, err := serialize(format, templates, now)
		artifact := &Artifact{
			Format:   format,
			Filename: fmt.Sprintf("templates-%s.%s", stamp, format),
			Data:     data,
		}
		if err == nil && save != nil {
			if saveErr := save(artifact); saveErr != nil {
				err = saveErr
			}
		}

		if status != nil {
			status(format, err == nil)
		}
		if err != nil {
			err = fmt.Errorf("%s export failed: %w", strings.ToUpper(format), err)
			return artifacts, errors.NewExportFailed(format, err)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

func serialize(format string, templates []Template, now time.Time) ([]byte, error) {
	switch format {
	case FormatTXT:
		return serializeTXT(templates), nil
	case FormatDOCX:
		return serializeDOCX(templates)
	case FormatJSON:
		return serializeJSON(templates, now)
	case FormatCSV:
		return serializeCSV(templates)
	case FormatXLSX:
		return serializeXLSX(templates)
	case FormatXML:
		return serializeXML(templates, now)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func serializeTXT(templates []Template) []byte {
	var b strings.Builder
	for i, t := range templates {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 60) + "\n\n")
		}
		fmt.Fprintf(&b, "%s [%s]\n\n", t.Name, t.Category)
		b.WriteString(t.PlainText())
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func serializeDOCX(templates []Template) ([]byte, error) {
	w := docx.New().WithDefaultTheme()
	for i, t := range templates {
		if i > 0 {
			w.AddParagraph().AddPageBreaks()
		}
		title := w.AddParagraph().AddText(t.Name)
		title.Size(strconv.Itoa(document.HeadingSize(2)))
		title.Bold()
		w.AddParagraph().AddText("Category: " + t.Category)

		for _, block := range t.Blocks() {
			switch v := block.(type) {
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
				for _, item := range v.PrefixedItems() {
					w.AddParagraph().AddText(item)
				}
			case document.Table:
				// Library bodies are prose; tables flatten to their text.
				w.AddParagraph().AddText(document.PlainText(v))
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// libraryExport is the JSON library export envelope.
type libraryExport struct {
	SchemaVersion string     `json:"schema_version"`
	ExportedAt    int64      `json:"exported_at"`
	Templates     []Template `json:"templates"`
}

func serializeJSON(templates []Template, now time.Time) ([]byte, error) {
	return json.MarshalIndent(libraryExport{
		SchemaVersion: SchemaVersion,
		ExportedAt:    now.Unix(),
		Templates:     templates,
	}, "", "  ")
}

func serializeCSV(templates []Template) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Name", "Category", "Body"}); err != nil {
		return nil, err
	}
	for _, t := range templates {
		if err := w.Write([]string{t.ID, t.Name, t.Category, t.Body}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func serializeXLSX(templates []Template) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Templates"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	headers := []string{"ID", "Name", "Category", "Body"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, t := range templates {
		values := []string{t.ID, t.Name, t.Category, t.Body}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// xmlLibrary is the XML library export envelope.
type xmlLibrary struct {
	XMLName       xml.Name      `xml:"template_library"`
	SchemaVersion string        `xml:"schema_version,attr"`
	ExportedAt    int64         `xml:"exported_at,attr"`
	Templates     []xmlTemplate `xml:"template"`
}

type xmlTemplate struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name"`
	Category string `xml:"category"`
	Body     string `xml:"body"`
}

func serializeXML(templates []Template, now time.Time) ([]byte, error) {
	lib := xmlLibrary{
		SchemaVersion: SchemaVersion,
		ExportedAt:    now.Unix(),
	}
	for _, t := range templates {
		lib.Templates = append(lib.Templates, xmlTemplate{
			ID: t.ID, Name: t.Name, Category: t.Category, Body: t.Body,
		})
	}

	data, err := xml.MarshalIndent(lib, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}
