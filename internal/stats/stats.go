// Package stats derives the aggregate figures the dashboard renders
// from normalized event and alert records.
package stats

import (
	"sort"
	"time"

	"github.com/andina-geotech/slopewatch/internal/classify"
	"github.com/andina-geotech/slopewatch/internal/model"
)

const monthLayout = "2006-01"

// Compute derives the full statistics bundle in one pass over the
// records. It reads only its arguments, so callers may hand it any
// filtered subset and recompute freely.
func Compute(events []model.Event, alerts []model.Alert) model.StatsBundle {
	eventTimes := eventTimes(events)
	alertTimes := alertTimes(alerts)

	return model.StatsBundle{
		Summary:       Summarize(events, alerts),
		EventsByMonth: MonthlyCounts(eventTimes),
		AlertsByMonth: MonthlyCounts(alertTimes),
		EventsByZone:  CountBy(events, func(e model.Event) string { return e.Zone }),
		AlertsByZone:  CountBy(alerts, func(a model.Alert) string { return a.Zone }),
		EventTypes:    CountBy(events, func(e model.Event) string { return e.Type }),
		AlertLevels:   CountBy(alerts, func(a model.Alert) string { return a.Level }),
		AlertStatuses: CountBy(alerts, func(a model.Alert) string { return string(a.Status) }),
		EventSpeed: Distribute(classify.SchemeSpeed,
			measures(events, func(e model.Event) *float64 { return e.Velocity })),
		AlertSpeed: Distribute(classify.SchemeSpeed,
			measures(alerts, func(a model.Alert) *float64 { return a.Velocity })),
		EventVolume: Distribute(classify.SchemeVolume,
			measures(events, func(e model.Event) *float64 { return e.Volume })),
		EventFaultHeight: Distribute(classify.SchemeFaultHeight,
			measures(events, func(e model.Event) *float64 { return e.FaultHeight })),
		Correlation: Correlate(eventTimes, alertTimes),
	}
}

// MonthlyCounts buckets timestamps by calendar month and zero-fills
// every month between the earliest and latest observation, so chart
// axes have no gaps. An empty input yields an empty result.
func MonthlyCounts(times []time.Time) []model.MonthCount {
	if len(times) == 0 {
		return nil
	}

	counts := make(map[string]int, len(times))
	first, last := observedRange(times)
	for _, t := range times {
		counts[t.Format(monthLayout)]++
	}

	var out []model.MonthCount
	cur := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		key := cur.Format(monthLayout)
		out = append(out, model.MonthCount{Month: key, Count: counts[key]})
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// CountBy groups items by key and returns counts ordered largest
// first, ties broken by key, so repeated runs render identically.
// Empty keys are skipped; normalization buckets required groups (zone
// falls back to "unknown") before records reach this point.
func CountBy[T any](items []T, key func(T) string) []model.GroupCount {
	counts := make(map[string]int)
	for _, it := range items {
		if k := key(it); k != "" {
			counts[k]++
		}
	}

	out := make([]model.GroupCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, model.GroupCount{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Distribute classifies every value under the scheme and counts per
// bucket. All of the scheme's buckets appear, zero counts included,
// in the scheme's ascending order with Unclassified last.
func Distribute(scheme classify.Scheme, values []*float64) model.Distribution {
	counts := make(map[classify.Category]int, len(values))
	for _, v := range values {
		counts[classify.Classify(v, scheme)]++
	}

	buckets := classify.Buckets(scheme)
	out := make([]model.BucketCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, model.BucketCount{Category: string(b), Count: counts[b]})
	}
	return model.Distribution{Scheme: string(scheme), Buckets: out}
}

func eventTimes(events []model.Event) []time.Time {
	out := make([]time.Time, 0, len(events))
	for _, e := range events {
		if e.OccurredAt != nil {
			out = append(out, *e.OccurredAt)
		}
	}
	return out
}

func alertTimes(alerts []model.Alert) []time.Time {
	out := make([]time.Time, 0, len(alerts))
	for _, a := range alerts {
		if a.DeclaredAt != nil {
			out = append(out, *a.DeclaredAt)
		}
	}
	return out
}

func measures[T any](items []T, get func(T) *float64) []*float64 {
	out := make([]*float64, 0, len(items))
	for _, it := range items {
		out = append(out, get(it))
	}
	return out
}

func observedRange(times []time.Time) (first, last time.Time) {
	first, last = times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	return first, last
}
