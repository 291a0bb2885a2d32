// Package ingest normalizes raw table rows into typed Event and Alert
// records. Normalization is a pure function of the cell values and the
// quality configuration: no row is ever dropped, unparseable fields are
// nulled and reported as warnings.
package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Date layouts seen across monitoring exports, tried in order. Day
// first; some revisions carry a time of day, some a dash separator.
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the day-first date formats the monitoring exports
// use. Leading non-digit decoration (weekday names, stray quotes) is
// stripped before matching.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsDigit)
	if i < 0 {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s[i:])

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a numeric cell, tolerating unit suffixes, embedded
// spaces, and both decimal conventions ("1.234,56" and "1,234.56").
// Sign is preserved; callers decide whether negatives are meaningful
// for the field.
func ParseNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	dots := strings.Count(cleaned, ".")
	commas := strings.Count(cleaned, ",")
	switch {
	case dots > 0 && commas > 0:
		// The rightmost separator is the decimal mark, the other groups
		// thousands.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case commas == 1:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case commas > 1:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case dots > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseFlag coerces the yes/no style cells the workbooks use ("Sí",
// "NO", "1"). known is false when the token is not recognized; empty
// cells read as a known false.
func ParseFlag(s string) (value, known bool) {
	switch foldLower(s) {
	case "si", "yes", "y", "true", "1", "verdadero":
		return true, true
	case "", "no", "n", "false", "0", "falso":
		return false, true
	default:
		return false, false
	}
}

var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldLower lowercases and strips accents ("Sí" → "si").
func foldLower(s string) string {
	folded, _, err := transform.String(accentFold, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
