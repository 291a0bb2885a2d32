// Package table loads spreadsheet-style tabular sources (XLSX, CSV)
// into an in-memory form with normalized, accent-insensitive column
// lookup, and validates them against per-entity schema requirements.
package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Table is one loaded tabular source: a header row plus data rows, all
// cells as text. Column lookup is case- and accent-insensitive and
// ignores spacing and punctuation, so "Zona monitoreo", "zona Monitoreo"
// and "Zóna  monitoreo." all address the same column.
type Table struct {
	Source string // label for errors and warnings ("events", "alerts")
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// New builds a Table over already-loaded rows. When two header cells
// normalize to the same key, the leftmost wins.
func New(source string, header []string, rows [][]string) *Table {
	t := &Table{Source: source, Header: header, Rows: rows}
	t.colIdx = make(map[string]int, len(header))
	for i, col := range header {
		key := NormalizeColumn(col)
		if _, ok := t.colIdx[key]; !ok {
			t.colIdx[key] = i
		}
	}
	return t
}

// Lookup returns the index of a column by any spelling of its name.
func (t *Table) Lookup(name string) (int, bool) {
	idx, ok := t.colIdx[NormalizeColumn(name)]
	return idx, ok
}

// Cell returns the trimmed value at the given data row for the first of
// the named columns that exists and is non-empty. Missing columns and
// short rows read as "".
func (t *Table) Cell(row int, names ...string) string {
	for _, name := range names {
		idx, ok := t.colIdx[NormalizeColumn(name)]
		if !ok {
			continue
		}
		if row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
			continue
		}
		if v := strings.TrimSpace(t.Rows[row][idx]); v != "" {
			return v
		}
	}
	return ""
}

// Missing returns the required column names absent from the header.
func (t *Table) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := t.colIdx[NormalizeColumn(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeColumn lowercases, folds accents, and strips everything but
// letters and digits, so header variants across workbook revisions
// collapse to one key: "Velocidad Máxima Últimas 12hrs. (mm/h)" and
// "Velocidad Máxima Últimas 12 hrs. (mm/h)" normalize identically.
func NormalizeColumn(s string) string {
	folded, _, err := transform.String(accentFold, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
