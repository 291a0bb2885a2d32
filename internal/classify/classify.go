// Package classify buckets normalized slope-monitoring readings into
// the ordinal categories the dashboard charts by.
package classify

// Category is one ordinal classification bucket.
type Category string

// Unclassified marks a missing reading. It is distinct from every
// numeric bucket so aggregations never fold "no data" into the lowest
// range.
const Unclassified Category = "Unclassified"

// Speed categories.
const (
	SpeedVeryLow  Category = "Very Low"
	SpeedLow      Category = "Low"
	SpeedModerate Category = "Moderate"
	SpeedHigh     Category = "High"
	SpeedVeryHigh Category = "Very High"
)

// Volume categories.
const (
	VolumeSmall     Category = "Small"
	VolumeMedium    Category = "Medium"
	VolumeLarge     Category = "Large"
	VolumeVeryLarge Category = "Very Large"
)

// Fault-height categories.
const (
	HeightLow    Category = "Low"
	HeightMedium Category = "Medium"
	HeightHigh   Category = "High"
)

// Speed thresholds (mm/h). Half-open: each bound belongs to the bucket above it.
const (
	speedVeryLowMax  = 0.1
	speedLowMax      = 1.0
	speedModerateMax = 5.0
	speedHighMax     = 20.0
)

// Volume thresholds (tonnes).
const (
	volumeSmallMax  = 100.0
	volumeMediumMax = 1000.0
	volumeLargeMax  = 10000.0
)

// Fault-height thresholds (meters). The lower bucket owns its boundary:
// exactly 15 is Low, exactly 30 is Medium.
const (
	heightLowMax    = 15.0
	heightMediumMax = 30.0
)

// Speed returns the velocity category for a reading in mm/h.
// Rules:
//   - Very Low: v < 0.1
//   - Low: 0.1 <= v < 1
//   - Moderate: 1 <= v < 5
//   - High: 5 <= v < 20
//   - Very High: v >= 20
func Speed(v *float64) Category {
	if v == nil {
		return Unclassified
	}
	switch {
	case *v < speedVeryLowMax:
		return SpeedVeryLow
	case *v < speedLowMax:
		return SpeedLow
	case *v < speedModerateMax:
		return SpeedModerate
	case *v < speedHighMax:
		return SpeedHigh
	default:
		return SpeedVeryHigh
	}
}

// Volume returns the magnitude category for a volume in tonnes.
// Rules:
//   - Small: v < 100
//   - Medium: 100 <= v < 1000
//   - Large: 1000 <= v < 10000
//   - Very Large: v >= 10000
func Volume(v *float64) Category {
	if v == nil {
		return Unclassified
	}
	switch {
	case *v < volumeSmallMax:
		return VolumeSmall
	case *v < volumeMediumMax:
		return VolumeMedium
	case *v < volumeLargeMax:
		return VolumeLarge
	default:
		return VolumeVeryLarge
	}
}

// FaultHeight returns the height category for a fault scarp in meters.
// Rules:
//   - Low: v <= 15
//   - Medium: 15 < v <= 30
//   - High: v > 30
func FaultHeight(v *float64) Category {
	if v == nil {
		return Unclassified
	}
	switch {
	case *v <= heightLowMax:
		return HeightLow
	case *v <= heightMediumMax:
		return HeightMedium
	default:
		return HeightHigh
	}
}

// Scheme selects which classifier applies to a reading.
type Scheme string

const (
	SchemeSpeed       Scheme = "speed"
	SchemeVolume      Scheme = "volume"
	SchemeFaultHeight Scheme = "fault_height"
)

// Classify dispatches to the scheme's classifier. Unknown schemes
// yield Unclassified for every input.
func Classify(v *float64, scheme Scheme) Category {
	switch scheme {
	case SchemeSpeed:
		return Speed(v)
	case SchemeVolume:
		return Volume(v)
	case SchemeFaultHeight:
		return FaultHeight(v)
	default:
		return Unclassified
	}
}

// Buckets returns the scheme's categories in ascending order with
// Unclassified last. Distributions iterate this so charts render
// buckets in a stable order even when counts are zero.
func Buckets(scheme Scheme) []Category {
	switch scheme {
	case SchemeSpeed:
		return []Category{SpeedVeryLow, SpeedLow, SpeedModerate, SpeedHigh, SpeedVeryHigh, Unclassified}
	case SchemeVolume:
		return []Category{VolumeSmall, VolumeMedium, VolumeLarge, VolumeVeryLarge, Unclassified}
	case SchemeFaultHeight:
		return []Category{HeightLow, HeightMedium, HeightHigh, Unclassified}
	default:
		return []Category{Unclassified}
	}
}
