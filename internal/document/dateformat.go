package document

import (
	"strconv"
	"strings"
	"time"
)

// dateTokens lists the supported pattern tokens, longest first. MM and D are
// substrings of MMMM and DD, so match order matters.
var dateTokens = []string{"YYYY", "MMMM", "MM", "DD", "D"}

// FormatDate renders an ISO YYYY-MM-DD date string using a token pattern
// built from YYYY, MMMM, MM, DD and D. Empty input yields an empty string;
// an unparseable date is returned unchanged. Month names are English.
//
// The pattern is scanned once, matching the longest token at each position,
// so substituted values (e.g. "December") are never re-matched by shorter
// tokens and substitution is independent of token order.
func FormatDate(dateString, pattern string) string {
	if dateString == "" {
		return ""
	}

	// Parse in the local zone to anchor at local midnight; parsing as UTC
	// can shift the calendar day for west-of-UTC locales.
	t, err := time.ParseInLocation("2006-01-02", dateString, time.Local)
	if err != nil {
		return dateString
	}

	var out strings.Builder
	i := 0
	for i < len(pattern) {
		matched := false
		for _, token := range dateTokens {
			if strings.HasPrefix(pattern[i:], token) {
				out.WriteString(renderToken(token, t))
				i += len(token)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(pattern[i])
			i++
		}
	}
	return out.String()
}

func renderToken(token string, t time.Time) string {
	switch token {
	case "YYYY":
		return strconv.Itoa(t.Year())
	case "MMMM":
		return t.Month().String()
	case "MM":
		return pad2(int(t.Month()))
	case "DD":
		return pad2(t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	default:
		return token
	}
}

// ShortDate renders an ISO date as YYMMDD for filename stamps.
// Empty or unparseable input yields an empty string.
func ShortDate(dateString string) string {
	if dateString == "" {
		return ""
	}
	t, err := time.ParseInLocation("2006-01-02", dateString, time.Local)
	if err != nil {
		return ""
	}
	return t.Format("060102")
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
