package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestSpeed(t *testing.T) {
	tests := []struct {
		name     string
		input    *float64
		expected Category
	}{
		{name: "very low: creep", input: f64(0.05), expected: SpeedVeryLow},
		{name: "low: at very-low boundary", input: f64(0.1), expected: SpeedLow},
		{name: "low: mid range", input: f64(0.5), expected: SpeedLow},
		{name: "moderate: at low boundary", input: f64(1.0), expected: SpeedModerate},
		{name: "moderate: mid range", input: f64(3.2), expected: SpeedModerate},
		{name: "high: at moderate boundary", input: f64(5.0), expected: SpeedHigh},
		{name: "very high: at high boundary", input: f64(20.0), expected: SpeedVeryHigh},
		{name: "very high: extreme", input: f64(180.0), expected: SpeedVeryHigh},
		{name: "zero is a valid lowest reading", input: f64(0), expected: SpeedVeryLow},
		{name: "missing reading", input: nil, expected: Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Speed(tt.input))
		})
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		name     string
		input    *float64
		expected Category
	}{
		{name: "small: rockfall", input: f64(12), expected: VolumeSmall},
		{name: "medium: at small boundary", input: f64(100), expected: VolumeMedium},
		{name: "large: at medium boundary", input: f64(1000), expected: VolumeLarge},
		{name: "very large: at large boundary", input: f64(10000), expected: VolumeVeryLarge},
		{name: "very large: slope failure", input: f64(250000), expected: VolumeVeryLarge},
		{name: "zero volume stays small", input: f64(0), expected: VolumeSmall},
		{name: "missing reading", input: nil, expected: Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Volume(tt.input))
		})
	}
}

func TestFaultHeight(t *testing.T) {
	tests := []struct {
		name     string
		input    *float64
		expected Category
	}{
		{name: "low: single bench", input: f64(8), expected: HeightLow},
		{name: "low: exactly at boundary", input: f64(15.0), expected: HeightLow},
		{name: "medium: just past low boundary", input: f64(15.01), expected: HeightMedium},
		{name: "medium: exactly at boundary", input: f64(30.0), expected: HeightMedium},
		{name: "high: just past medium boundary", input: f64(30.01), expected: HeightHigh},
		{name: "high: inter-ramp", input: f64(75), expected: HeightHigh},
		{name: "missing reading", input: nil, expected: Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FaultHeight(tt.input))
		})
	}
}

func TestClassifyDispatch(t *testing.T) {
	v := f64(2.0)

	assert.Equal(t, SpeedModerate, Classify(v, SchemeSpeed))
	assert.Equal(t, VolumeSmall, Classify(v, SchemeVolume))
	assert.Equal(t, HeightLow, Classify(v, SchemeFaultHeight))
	assert.Equal(t, Unclassified, Classify(v, Scheme("bogus")))
	assert.Equal(t, Unclassified, Classify(nil, SchemeSpeed))
}

func TestBucketsOrderAndExhaustiveness(t *testing.T) {
	for _, scheme := range []Scheme{SchemeSpeed, SchemeVolume, SchemeFaultHeight} {
		buckets := Buckets(scheme)

		assert.Equal(t, Unclassified, buckets[len(buckets)-1], "scheme %s", scheme)

		seen := make(map[Category]bool, len(buckets))
		for _, b := range buckets {
			assert.False(t, seen[b], "scheme %s repeats bucket %s", scheme, b)
			seen[b] = true
		}

		// Every classified value must land in a listed bucket.
		for _, v := range []float64{0, 0.1, 0.5, 5, 15, 16, 30, 31, 99, 650, 4000, 50000} {
			v := v
			assert.True(t, seen[Classify(&v, scheme)], "scheme %s value %v", scheme, v)
		}
	}
}
