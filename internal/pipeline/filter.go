package pipeline

import (
	"time"

	"github.com/andina-geotech/slopewatch/internal/model"
)

// Filter selects a record subset for re-aggregation. Zero fields mean
// no constraint. Types applies to events only; alerts carry no type.
type Filter struct {
	From  *time.Time
	To    *time.Time
	Zones []string
	Types []string
}

// Events returns the events passing the filter. Records without a
// parsed date are excluded whenever a date bound is set, since their
// position relative to the bound is unknowable.
func (f Filter) Events(events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !f.matchDate(e.OccurredAt) {
			continue
		}
		if !matchSet(f.Zones, e.Zone) {
			continue
		}
		if !matchSet(f.Types, e.Type) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Alerts returns the alerts passing the filter, keyed on DeclaredAt.
func (f Filter) Alerts(alerts []model.Alert) []model.Alert {
	out := make([]model.Alert, 0, len(alerts))
	for _, a := range alerts {
		if !f.matchDate(a.DeclaredAt) {
			continue
		}
		if !matchSet(f.Zones, a.Zone) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (f Filter) matchDate(t *time.Time) bool {
	if f.From == nil && f.To == nil {
		return true
	}
	if t == nil {
		return false
	}
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

func matchSet(allowed []string, v string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
