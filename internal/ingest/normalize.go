package ingest

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/table"
)

// Quality bounds the plausibility checks applied during normalization.
type Quality struct {
	MinYear      int // earliest plausible year for record dates
	MaxYearSlack int // years past the current year still accepted
	Bounds       model.CoordinateBounds
}

// ZoneUnknown is the bucket for records with no monitoring zone, so
// zone aggregations always have a home for every record.
const ZoneUnknown = "unknown"

// normalizer walks one table row by row, collecting warnings as fields
// fail to parse. Field accessors null the field on failure rather than
// rejecting the row.
type normalizer struct {
	t        *table.Table
	source   model.Source
	q        Quality
	row      int
	warnings []model.Warning
}

func (n *normalizer) warn(col, val string, kind model.WarningKind, msg string) {
	n.warnings = append(n.warnings, model.Warning{
		Source:  n.source,
		Row:     n.row + 2, // header is row 1
		Column:  col,
		Value:   val,
		Kind:    kind,
		Message: msg,
	})
}

// date parses the first non-empty of the named columns. Values that do
// not parse are nulled; parsed dates outside the plausible window are
// flagged but kept, since a suspect timestamp still beats none.
func (n *normalizer) date(names ...string) *time.Time {
	raw := n.t.Cell(n.row, names...)
	if raw == "" {
		return nil
	}
	parsed, ok := ParseDate(raw)
	if !ok {
		n.warn(names[0], raw, model.WarnBadDate, "unparsable date")
		return nil
	}
	maxYear := time.Now().Year() + n.q.MaxYearSlack
	if y := parsed.Year(); y < n.q.MinYear || y > maxYear {
		n.warn(names[0], raw, model.WarnDateOutOfRange,
			fmt.Sprintf("year %d outside plausible range %d..%d", y, n.q.MinYear, maxYear))
	}
	return &parsed
}

// measure parses a non-negative optional numeric field. Negative values
// are nulled, not clamped: a negative reading is instrument noise, and
// clamping would fabricate a zero measurement.
func (n *normalizer) measure(col string) *float64 {
	raw := n.t.Cell(n.row, col)
	if raw == "" {
		return nil
	}
	v, ok := ParseNumber(raw)
	if !ok {
		n.warn(col, raw, model.WarnBadNumber, "unparsable number")
		return nil
	}
	if v < 0 {
		n.warn(col, raw, model.WarnNegativeNumber, "negative value nulled")
		return nil
	}
	return &v
}

// coordinates parses the three components independently; the triple is
// valid for spatial use only when all three parsed.
func (n *normalizer) coordinates() model.Coordinates {
	c := model.Coordinates{
		East:      n.coordinate("Este"),
		North:     n.coordinate("Norte"),
		Elevation: n.coordinate("Cota"),
	}
	c.Valid = c.East != nil && c.North != nil && c.Elevation != nil
	if c.Valid && n.q.Bounds.Enabled() && !n.q.Bounds.Contains(c) {
		n.warn("Este", fmt.Sprintf("%v/%v", *c.East, *c.North), model.WarnCoordinateBounds,
			"easting/northing outside the configured plausible window")
	}
	return c
}

func (n *normalizer) coordinate(col string) *float64 {
	raw := n.t.Cell(n.row, col)
	if raw == "" {
		return nil
	}
	v, ok := ParseNumber(raw)
	if !ok {
		n.warn(col, raw, model.WarnBadCoordinate, "unparsable coordinate")
		return nil
	}
	return &v
}

func (n *normalizer) flag(col string) bool {
	raw := n.t.Cell(n.row, col)
	v, known := ParseFlag(raw)
	if !known {
		n.warn(col, raw, model.WarnBadBool, "unrecognized boolean token, defaulting to false")
	}
	return v
}

func (n *normalizer) zone(names ...string) string {
	if z := n.t.Cell(n.row, names...); z != "" {
		return z
	}
	return ZoneUnknown
}

// normalizeType canonicalizes the free-form event type so case variants
// group together: whitespace collapsed, first rune upper, rest lower.
func normalizeType(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}
