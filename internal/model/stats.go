package model

import "time"

// MonthCount is the record count for one calendar month ("2006-01").
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// GroupCount is the record count for one group key (zone, type, level).
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// BucketCount is the record count for one classification bucket.
type BucketCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Distribution is the per-bucket count for one classification scheme,
// buckets in scheme order with Unclassified last.
type Distribution struct {
	Scheme  string        `json:"scheme"`
	Buckets []BucketCount `json:"buckets"`
}

// CorrelationResult carries the events/alerts temporal correlation.
// When the coefficient is not computable the result says so explicitly
// instead of smuggling a zero or a NaN into the bundle.
type CorrelationResult struct {
	Defined     bool    `json:"defined"`
	Coefficient float64 `json:"coefficient,omitempty"`
	Periods     int     `json:"periods"`
	Reason      string  `json:"reason,omitempty"`
}

// Summary holds the headline numbers for the dashboard.
type Summary struct {
	EventCount            int        `json:"event_count"`
	AlertCount            int        `json:"alert_count"`
	EventsFrom            *time.Time `json:"events_from,omitempty"`
	EventsTo              *time.Time `json:"events_to,omitempty"`
	AlertsFrom            *time.Time `json:"alerts_from,omitempty"`
	AlertsTo              *time.Time `json:"alerts_to,omitempty"`
	EventZones            int        `json:"event_zones"`
	AlertZones            int        `json:"alert_zones"`
	EventTypes            int        `json:"event_types"`
	AutoDetected          int        `json:"auto_detected"`
	OpenAlerts            int        `json:"open_alerts"`
	ClosedAlerts          int        `json:"closed_alerts"`
	EventsWithCoordinates int        `json:"events_with_coordinates"`
	AlertsWithCoordinates int        `json:"alerts_with_coordinates"`
}

// StatsBundle is the full derived-aggregation output.
type StatsBundle struct {
	Summary          Summary           `json:"summary"`
	EventsByMonth    []MonthCount      `json:"events_by_month"`
	AlertsByMonth    []MonthCount      `json:"alerts_by_month"`
	EventsByZone     []GroupCount      `json:"events_by_zone"`
	AlertsByZone     []GroupCount      `json:"alerts_by_zone"`
	EventTypes       []GroupCount      `json:"event_types"`
	AlertLevels      []GroupCount      `json:"alert_levels"`
	AlertStatuses    []GroupCount      `json:"alert_statuses"`
	EventSpeed       Distribution      `json:"event_speed"`
	AlertSpeed       Distribution      `json:"alert_speed"`
	EventVolume      Distribution      `json:"event_volume"`
	EventFaultHeight Distribution      `json:"event_fault_height"`
	Correlation      CorrelationResult `json:"correlation"`
}
