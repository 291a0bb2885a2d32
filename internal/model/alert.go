package model

import "time"

// AlertStatus is the lifecycle state of a safety alert.
type AlertStatus string

const (
	AlertOpen    AlertStatus = "open"
	AlertClosed  AlertStatus = "closed"
	AlertUnknown AlertStatus = "unknown"
)

// Alert is one declared safety alert from the alerts workbook.
type Alert struct {
	ID              string      `json:"id"`
	Level           string      `json:"level"` // declared severity ("Amarilla", "Naranja", "Roja")
	Status          AlertStatus `json:"status"`
	StatusRaw       string      `json:"status_raw,omitempty"` // source text behind Status, kept for audit
	Observer        string      `json:"observer,omitempty"`
	DeclaredAt      *time.Time  `json:"declared_at,omitempty"`
	ClosedAt        *time.Time  `json:"closed_at,omitempty"`
	EventRef        string      `json:"event_ref,omitempty"` // id of the associated geotechnical event
	Zone            string      `json:"zone"`
	LocationGeneral string      `json:"location_general,omitempty"`
	Wall            string      `json:"wall,omitempty"`
	Coordinates     Coordinates `json:"coordinates"`
	Displacement    *float64    `json:"displacement_mm,omitempty"`
	VelocityAvg     *float64    `json:"velocity_avg_mmh,omitempty"`
	Velocity        *float64    `json:"velocity_mmh,omitempty"` // max velocity over the last 12h window
}
