// Package model defines the typed records produced by the ingestion
// pipeline and the derived-statistics bundle the dashboard consumes.
package model

import "time"

// Event is one geotechnical occurrence from the events workbook.
//
// The json tags double as the stable export contract: CSV/XLSX export
// and the JSON API use these names regardless of how the dashboard
// relabels fields for display.
type Event struct {
	ID               string      `json:"id"`
	Type             string      `json:"type"`
	Observer         string      `json:"observer,omitempty"`
	OccurredAt       *time.Time  `json:"occurred_at,omitempty"`
	Zone             string      `json:"zone"`
	Wall             string      `json:"wall,omitempty"`
	Coordinates      Coordinates `json:"coordinates"`
	AssociatedAlert  string      `json:"associated_alert,omitempty"`
	ActivationHours  *float64    `json:"activation_hours,omitempty"`
	BankHeight       *float64    `json:"bank_height_m,omitempty"`
	FaultHeight      *float64    `json:"fault_height_m,omitempty"`
	Displacement     *float64    `json:"displacement_mm,omitempty"`
	VelocityAvg      *float64    `json:"velocity_avg_mmh,omitempty"`
	Velocity         *float64    `json:"velocity_mmh,omitempty"` // max velocity over the last 12h window
	Volume           *float64    `json:"volume_t,omitempty"`
	AutoDetected     bool        `json:"auto_detected"`
	Radar            string      `json:"radar,omitempty"`
	FailureMechanism string      `json:"failure_mechanism,omitempty"`
}
