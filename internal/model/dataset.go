package model

import "time"

// Dataset is the output of one pipeline run: both normalized record
// collections, the combined warning list, and the derived statistics.
// It is immutable after load; consumers re-aggregate filtered subsets
// themselves rather than mutating it.
type Dataset struct {
	SnapshotID string      `json:"snapshot_id"`
	LoadedAt   time.Time   `json:"loaded_at"`
	Events     []Event     `json:"events"`
	Alerts     []Alert     `json:"alerts"`
	Warnings   []Warning   `json:"warnings"`
	Stats      StatsBundle `json:"stats"`
}
