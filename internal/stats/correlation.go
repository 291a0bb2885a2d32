package stats

import (
	"math"
	"time"

	"github.com/andina-geotech/slopewatch/internal/model"
)

const dayLayout = "2006-01-02"

// Correlate aligns events and alerts as daily count series over the
// combined observed range (a day without records contributes a zero,
// not a gap) and returns their Pearson coefficient. When the
// coefficient is not computable the result is explicitly marked
// undefined, never coerced to 0 or NaN.
func Correlate(eventTimes, alertTimes []time.Time) model.CorrelationResult {
	if len(eventTimes) == 0 || len(alertTimes) == 0 {
		return model.CorrelationResult{Reason: "one or both series have no dated records"}
	}

	eventDays := dailyCounts(eventTimes)
	alertDays := dailyCounts(alertTimes)

	first, last := observedRange(eventTimes)
	alertFirst, alertLast := observedRange(alertTimes)
	if alertFirst.Before(first) {
		first = alertFirst
	}
	if alertLast.After(last) {
		last = alertLast
	}

	var xs, ys []float64
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		xs = append(xs, float64(eventDays[key]))
		ys = append(ys, float64(alertDays[key]))
	}

	periods := len(xs)
	if periods < 2 {
		return model.CorrelationResult{Periods: periods, Reason: "fewer than two periods in the combined range"}
	}
	if !varies(xs) {
		return model.CorrelationResult{Periods: periods, Reason: "event series has zero variance"}
	}
	if !varies(ys) {
		return model.CorrelationResult{Periods: periods, Reason: "alert series has zero variance"}
	}

	return model.CorrelationResult{
		Defined:     true,
		Coefficient: pearson(xs, ys),
		Periods:     periods,
	}
}

func dailyCounts(times []time.Time) map[string]int {
	counts := make(map[string]int, len(times))
	for _, t := range times {
		counts[t.Format(dayLayout)]++
	}
	return counts
}

func varies(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return true
		}
	}
	return false
}

// pearson assumes both series vary; Correlate checks that first.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	return cov / math.Sqrt(varX*varY)
}
