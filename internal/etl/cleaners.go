package etl

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// nullPatterns are placeholder tokens vendors use for "no value".
var nullPatterns = map[string]struct{}{
	"null":      {},
	"n/a":       {},
	"na":        {},
	"none":      {},
	"undefined": {},
	"":          {},
}

// NormalizeNull collapses placeholder tokens and blank values to absence.
// The returned bool is false when the value is absent. Idempotent.
func NormalizeNull(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if _, ok := nullPatterns[strings.ToLower(trimmed)]; ok {
		return "", false
	}
	return trimmed, true
}

var numberCleaner = strings.NewReplacer(",", "", "$", "")

// ToFloat parses a numeric value, stripping currency symbols and thousands
// separators. Non-numeric input yields nil, never an error.
func ToFloat(value string) *float64 {
	cleaned := strings.TrimSpace(numberCleaner.Replace(value))
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ToInt parses an integer value with the same cleaning rules as ToFloat.
func ToInt(value string) *int64 {
	cleaned := strings.TrimSpace(numberCleaner.Replace(value))
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// millisThreshold separates epoch seconds from epoch milliseconds.
const millisThreshold = 1_000_000_000_000

// timestampLayouts are tried in order for non-epoch input.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// NormalizeTimestamp converts a timestamp to an RFC3339 UTC instant.
// All-digit input is an epoch count: values above 1e12 are milliseconds,
// smaller ones seconds. Anything else is tried against known calendar
// layouts. Unparseable input is returned unchanged.
func NormalizeTimestamp(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return trimmed
	}

	if isAllDigits(trimmed) {
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return trimmed
		}
		if n > millisThreshold {
			return time.UnixMilli(n).UTC().Format(time.RFC3339)
		}
		return time.Unix(n, 0).UTC().Format(time.RFC3339)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return trimmed
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ToTitleCase lowercases the value, then capitalizes the first letter at the
// start of the string and after whitespace, hyphen or slash boundaries.
func ToTitleCase(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	boundary := true
	for _, r := range strings.ToLower(value) {
		if boundary {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		boundary = unicode.IsSpace(r) || r == '-' || r == '/'
	}
	return b.String()
}

// IsInvalidUPC reports whether a UPC is blank or a vendor placeholder of six
// or more consecutive nines.
func IsInvalidUPC(upc string) bool {
	trimmed := strings.TrimSpace(upc)
	if trimmed == "" {
		return true
	}
	if len(trimmed) >= 6 && strings.Count(trimmed, "9") == len(trimmed) {
		return true
	}
	return false
}
