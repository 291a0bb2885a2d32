package model

// Coordinates is a projected (east, north, elevation) triple in the
// mine's local grid.
//
// Valid is set by the normalizer when all three components parsed to
// finite numbers. Spatial consumers (map layers, distance calculations)
// must check it rather than re-deriving validity; non-spatial
// aggregations use records regardless of it.
type Coordinates struct {
	East      *float64 `json:"east,omitempty"`
	North     *float64 `json:"north,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Valid     bool     `json:"valid"`
}

// CoordinateBounds is the plausible easting/northing window for the
// local grid. The zero value disables the check.
type CoordinateBounds struct {
	EastMin  float64 `json:"east_min"`
	EastMax  float64 `json:"east_max"`
	NorthMin float64 `json:"north_min"`
	NorthMax float64 `json:"north_max"`
}

// Enabled reports whether a plausibility window is configured.
func (b CoordinateBounds) Enabled() bool {
	return b != CoordinateBounds{}
}

// Contains reports whether a valid triple's easting and northing fall
// inside the window. Invalid triples are never contained.
func (b CoordinateBounds) Contains(c Coordinates) bool {
	if !c.Valid {
		return false
	}
	return *c.East >= b.EastMin && *c.East <= b.EastMax &&
		*c.North >= b.NorthMin && *c.North <= b.NorthMax
}
