package stats

import "github.com/andina-geotech/slopewatch/internal/model"

// Summarize computes the headline numbers shown on the dashboard
// landing view.
func Summarize(events []model.Event, alerts []model.Alert) model.Summary {
	s := model.Summary{
		EventCount: len(events),
		AlertCount: len(alerts),
	}

	zones := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, e := range events {
		if e.Zone != "" {
			zones[e.Zone] = struct{}{}
		}
		if e.Type != "" {
			types[e.Type] = struct{}{}
		}
		if e.AutoDetected {
			s.AutoDetected++
		}
		if e.Coordinates.Valid {
			s.EventsWithCoordinates++
		}
		if e.OccurredAt != nil {
			if s.EventsFrom == nil || e.OccurredAt.Before(*s.EventsFrom) {
				s.EventsFrom = e.OccurredAt
			}
			if s.EventsTo == nil || e.OccurredAt.After(*s.EventsTo) {
				s.EventsTo = e.OccurredAt
			}
		}
	}
	s.EventZones = len(zones)
	s.EventTypes = len(types)

	alertZones := make(map[string]struct{})
	for _, a := range alerts {
		if a.Zone != "" {
			alertZones[a.Zone] = struct{}{}
		}
		switch a.Status {
		case model.AlertOpen:
			s.OpenAlerts++
		case model.AlertClosed:
			s.ClosedAlerts++
		}
		if a.Coordinates.Valid {
			s.AlertsWithCoordinates++
		}
		if a.DeclaredAt != nil {
			if s.AlertsFrom == nil || a.DeclaredAt.Before(*s.AlertsFrom) {
				s.AlertsFrom = a.DeclaredAt
			}
			if s.AlertsTo == nil || a.DeclaredAt.After(*s.AlertsTo) {
				s.AlertsTo = a.DeclaredAt
			}
		}
	}
	s.AlertZones = len(alertZones)

	return s
}
