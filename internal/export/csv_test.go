package export

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestCSVExport(t *testing.T) {
	artifact, err := (&CSVExporter{}).Export(testSource())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if artifact.Filename != "DOC-001 - Quality_Policy - Policy - 240115 - 240301_metadata.csv" {
		t.Errorf("Filename = %q", artifact.Filename)
	}

	r := csv.NewReader(bytes.NewReader(artifact.Data))
	r.FieldsPerRecord = -1 // settings rows have 2 fields, history rows 5
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if records[0][0] != "Field" || records[0][1] != "Value" {
		t.Errorf("header row = %v", records[0])
	}
	if records[1][0] != "Document ID" || records[1][1] != "DOC-001" {
		t.Errorf("first field row = %v", records[1])
	}

	// Empty settings values render as "-".
	foundPlaceholder := false
	for _, rec := range records {
		if len(rec) == 2 && rec[0] == "Legacy Number" {
			foundPlaceholder = rec[1] == "-"
		}
	}
	if !foundPlaceholder {
		t.Error("empty field not rendered as \"-\"")
	}

	// Revision table header and rows follow the settings block.
	var historyHeaderIdx int
	for i, rec := range records {
		if len(rec) == 5 && rec[0] == "Rev" {
			historyHeaderIdx = i
		}
	}
	if historyHeaderIdx == 0 {
		t.Fatal("revision table header not found")
	}
	revA := records[historyHeaderIdx+1]
	if revA[0] != "A" || revA[2] != "Initial issue" || revA[4] != "L. Chen" {
		t.Errorf("revision row = %v", revA)
	}
}

// Values containing quotes, commas and newlines survive a round-trip through
// the standard CSV reader.
func TestCSVExport_QuotingRoundTrip(t *testing.T) {
	src := testSource()
	src.Settings.ChangeSummary = `He said "hi", ok` + "\nsecond line"
	src.Revisions[0].Description = `rollout, phase "1"`

	artifact, err := (&CSVExporter{}).Export(src)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(artifact.Data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	foundSummary, foundDescription := false, false
	for _, rec := range records {
		if len(rec) == 2 && rec[0] == "Change Summary" {
			foundSummary = rec[1] == src.Settings.ChangeSummary
		}
		if len(rec) == 5 && rec[0] == "A" {
			foundDescription = rec[2] == `rollout, phase "1"`
		}
	}
	if !foundSummary {
		t.Error("change summary did not round-trip")
	}
	if !foundDescription {
		t.Error("revision description did not round-trip")
	}
}
