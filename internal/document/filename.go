package document

import "strings"

// forbiddenFilenameChars are stripped from every filename field.
const forbiddenFilenameChars = `<>:"/\|?*`

// DeriveFilename builds the canonical export filename for a document and
// extension. Every exporter shares this single naming contract; divergence
// between exporters is a correctness bug.
//
// Layout: "{id} - {title} - {type}[ - {effDate}][ - {revDate}].{ext}" where
// effDate is YYMMDD of the effective date and revDate is YYMMDD of the
// revised date, falling back to effDate when the revised date is absent.
func DeriveFilename(s Settings, ext string) string {
	return deriveBase(s) + "." + ext
}

// DeriveFilenameSuffix builds a filename with a raw suffix instead of a dotted
// extension, for variant artifacts such as "_clean.pdf" and "_metadata.csv".
func DeriveFilenameSuffix(s Settings, suffix string) string {
	return deriveBase(s) + suffix
}

func deriveBase(s Settings) string {
	id := SanitizeFilenameField(s.EffectiveID())
	title := SanitizeFilenameField(s.EffectiveTitle())
	docType := SanitizeFilenameField(s.EffectiveDocumentType())

	effDate := ShortDate(s.EffectiveDate)
	revDate := ShortDate(s.RevisedDate)
	if revDate == "" {
		revDate = effDate
	}

	base := id + " - " + title + " - " + docType
	if effDate != "" {
		base += " - " + effDate
	}
	if revDate != "" {
		base += " - " + revDate
	}
	return base
}

// SanitizeFilenameField strips characters that are invalid in filenames and
// collapses whitespace runs to single underscores.
func SanitizeFilenameField(s string) string {
	var cleaned strings.Builder
	for _, r := range s {
		if !strings.ContainsRune(forbiddenFilenameChars, r) {
			cleaned.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(cleaned.String()), "_")
}
