package document

import "testing"

func TestSanitizeFilenameField(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{"spaces to underscores", "Quality Policy", "Quality_Policy"},
		{"forbidden chars stripped", `a<b>c:d"e`, "abcde"},
		{"path separators stripped", `dir/file\name`, "dirfilename"},
		{"whitespace runs collapsed", "a   b\t c", "a_b_c"},
		{"stripped char leaves collapsed gap", "a / b", "a_b"},
		{"empty", "", ""},
		{"only forbidden", `<>:"/\|?*`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilenameField(tt.in)
			if got != tt.want {
				t.Errorf("SanitizeFilenameField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeriveFilename(t *testing.T) {
	s := Settings{
		ID:            "DOC-001",
		Title:         "Quality Policy",
		DocumentType:  "Policy",
		EffectiveDate: "2024-01-15",
		RevisedDate:   "2024-03-01",
	}

	got := DeriveFilename(s, "pdf")
	want := "DOC-001 - Quality_Policy - Policy - 240115 - 240301.pdf"
	if got != want {
		t.Errorf("DeriveFilename() = %q, want %q", got, want)
	}
}

func TestDeriveFilename_RevisedDateFallsBackToEffective(t *testing.T) {
	s := Settings{
		ID:            "DOC-002",
		Title:         "Spec",
		DocumentType:  "SOP",
		EffectiveDate: "2024-01-15",
	}

	got := DeriveFilename(s, "docx")
	want := "DOC-002 - Spec - SOP - 240115 - 240115.docx"
	if got != want {
		t.Errorf("DeriveFilename() = %q, want %q", got, want)
	}
}

func TestDeriveFilename_NoDates(t *testing.T) {
	s := Settings{ID: "DOC-003", Title: "Draft", DocumentType: "Form"}

	got := DeriveFilename(s, "txt")
	want := "DOC-003 - Draft - Form.txt"
	if got != want {
		t.Errorf("DeriveFilename() = %q, want %q", got, want)
	}
}

func TestDeriveFilename_IdentityDefaults(t *testing.T) {
	got := DeriveFilename(Settings{}, "txt")
	want := "DOC-001 - Document - Document.txt"
	if got != want {
		t.Errorf("DeriveFilename() = %q, want %q", got, want)
	}
}

func TestDeriveFilenameSuffix(t *testing.T) {
	s := Settings{
		ID:            "DOC-001",
		Title:         "Quality Policy",
		DocumentType:  "Policy",
		EffectiveDate: "2024-01-15",
		RevisedDate:   "2024-03-01",
	}

	tests := []struct {
		suffix string
		want   string
	}{
		{"_clean.pdf", "DOC-001 - Quality_Policy - Policy - 240115 - 240301_clean.pdf"},
		{"_metadata.csv", "DOC-001 - Quality_Policy - Policy - 240115 - 240301_metadata.csv"},
	}

	for _, tt := range tests {
		got := DeriveFilenameSuffix(s, tt.suffix)
		if got != tt.want {
			t.Errorf("DeriveFilenameSuffix(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}
