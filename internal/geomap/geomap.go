// Package geomap builds the map-ready spatial subset of the dataset:
// only records whose coordinate triple parsed completely (and, when a
// plausibility window is configured, falls inside it) become GeoJSON
// features. Everything else stays out of map layers while remaining in
// the tabular aggregations.
package geomap

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/andina-geotech/slopewatch/internal/model"
)

// EventFeatures returns one XYZ point feature per map-ready event.
// Records with an incomplete triple, or with easting/northing outside
// the window, are skipped; the caller's aggregations still see them.
func EventFeatures(events []model.Event, window model.CoordinateBounds) []*geojson.Feature {
	features := make([]*geojson.Feature, 0, len(events))
	for _, e := range events {
		pt, ok := point(e.Coordinates, window)
		if !ok {
			continue
		}
		props := map[string]interface{}{
			"kind": "event",
			"type": e.Type,
			"zone": e.Zone,
		}
		if e.Volume != nil {
			props["volume_t"] = *e.Volume
		}
		if e.Velocity != nil {
			props["velocity_mmh"] = *e.Velocity
		}
		if e.AutoDetected {
			props["auto_detected"] = true
		}
		features = append(features, &geojson.Feature{
			ID:         e.ID,
			Geometry:   pt,
			Properties: props,
		})
	}
	return features
}

// AlertFeatures returns one XYZ point feature per map-ready alert.
func AlertFeatures(alerts []model.Alert, window model.CoordinateBounds) []*geojson.Feature {
	features := make([]*geojson.Feature, 0, len(alerts))
	for _, a := range alerts {
		pt, ok := point(a.Coordinates, window)
		if !ok {
			continue
		}
		props := map[string]interface{}{
			"kind":   "alert",
			"status": string(a.Status),
			"zone":   a.Zone,
		}
		if a.Level != "" {
			props["level"] = a.Level
		}
		if a.Velocity != nil {
			props["velocity_mmh"] = *a.Velocity
		}
		features = append(features, &geojson.Feature{
			ID:         a.ID,
			Geometry:   pt,
			Properties: props,
		})
	}
	return features
}

// Collection wraps feature groups into one GeoJSON FeatureCollection.
// The result always carries a non-nil feature slice so it encodes as
// "features": [] rather than null.
func Collection(groups ...[]*geojson.Feature) *geojson.FeatureCollection {
	all := []*geojson.Feature{}
	for _, g := range groups {
		all = append(all, g...)
	}
	return &geojson.FeatureCollection{Features: all}
}

// Extent is the bounding box of the map-ready subset, used by the
// dashboard for its initial camera position.
type Extent struct {
	EastMin      float64 `json:"east_min"`
	EastMax      float64 `json:"east_max"`
	NorthMin     float64 `json:"north_min"`
	NorthMax     float64 `json:"north_max"`
	ElevationMin float64 `json:"elevation_min"`
	ElevationMax float64 `json:"elevation_max"`
	Count        int     `json:"count"`
}

// FeatureExtent folds every feature's geometry into one bounding box.
// ok is false when no group holds a feature.
func FeatureExtent(groups ...[]*geojson.Feature) (Extent, bool) {
	bounds := geom.NewBounds(geom.XYZ)
	count := 0
	for _, g := range groups {
		for _, f := range g {
			bounds = bounds.Extend(f.Geometry)
			count++
		}
	}
	if count == 0 {
		return Extent{}, false
	}
	return Extent{
		EastMin:      bounds.Min(0),
		EastMax:      bounds.Max(0),
		NorthMin:     bounds.Min(1),
		NorthMax:     bounds.Max(1),
		ElevationMin: bounds.Min(2),
		ElevationMax: bounds.Max(2),
		Count:        count,
	}, true
}

// Distance is the planar easting/northing distance in meters between
// two records. ok is false when either triple is incomplete. Elevation
// does not contribute; separations are read in plan view.
func Distance(a, b model.Coordinates) (float64, bool) {
	if !a.Valid || !b.Valid {
		return 0, false
	}
	de := *b.East - *a.East
	dn := *b.North - *a.North
	return math.Hypot(de, dn), true
}

// point builds the XYZ geometry for a map-ready triple.
func point(c model.Coordinates, window model.CoordinateBounds) (*geom.Point, bool) {
	if !c.Valid {
		return nil, false
	}
	if window.Enabled() && !window.Contains(c) {
		return nil, false
	}
	return geom.NewPointFlat(geom.XYZ, []float64{*c.East, *c.North, *c.Elevation}), true
}
