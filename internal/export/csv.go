package export

import (
	"bytes"
	"encoding/csv"

	"github.com/qmskit/qdoc/internal/document"
)

// CSVExporter renders the full settings field set plus the revision history
// as a single RFC-4180 CSV file.
type CSVExporter struct{}

// Format returns the csv status key.
func (e *CSVExporter) Format() Format { return FormatCSV }

// Export serializes the source to CSV. Empty values render as "-".
func (e *CSVExporter) Export(src *Source) (*Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	write := func(record []string) error {
		return w.Write(record)
	}

	if err := write([]string{"Field", "Value"}); err != nil {
		return nil, wrapErr(FormatCSV, err)
	}
	for _, f := range src.Settings.Fields() {
		value := f.Value
		if value == "" {
			value = "-"
		}
		if err := write([]string{f.Label, value}); err != nil {
			return nil, wrapErr(FormatCSV, err)
		}
	}

	// Blank separator row between settings and history.
	if err := write([]string{"", ""}); err != nil {
		return nil, wrapErr(FormatCSV, err)
	}

	if err := write(revisionTableColumns); err != nil {
		return nil, wrapErr(FormatCSV, err)
	}
	for _, r := range src.Revisions {
		if err := write([]string{r.Rev, r.Date, r.Description, r.Author, r.Approver}); err != nil {
			return nil, wrapErr(FormatCSV, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, wrapErr(FormatCSV, err)
	}

	return &Artifact{
		Format:   FormatCSV,
		Filename: document.DeriveFilenameSuffix(src.Settings, "_metadata.csv"),
		Data:     buf.Bytes(),
	}, nil
}
