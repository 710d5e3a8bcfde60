package engine

import "time"

const (
	// EffectivelyInfiniteLife marks a remaining life that a non-positive
	// governing rate would otherwise make unbounded, in years.
	EffectivelyInfiniteLife = 999.0

	// MaxInspectionInterval is the regulatory ceiling on the next
	// inspection interval, in years.
	MaxInspectionInterval = 10.0
)

// RemainingLife returns the projected years until actual thickness corrodes
// down to the minimum at the governing rate. A component already at or below
// minimum has zero life regardless of rate; a non-positive rate yields the
// effectively-infinite sentinel.
func RemainingLife(actual, minimum, governingRate float64) float64 {
	margin := actual - minimum
	if margin <= 0 {
		return 0
	}
	if governingRate <= 0 {
		return EffectivelyInfiniteLife
	}
	return margin / governingRate
}

// NextInspectionInterval returns the lesser of half the remaining life and
// the regulatory ceiling. Non-positive remaining life yields zero.
func NextInspectionInterval(remainingLife float64) float64 {
	if remainingLife <= 0 {
		return 0
	}
	interval := remainingLife / 2
	if interval > MaxInspectionInterval {
		return MaxInspectionInterval
	}
	return interval
}

// NextInspectionDate advances from the whole years of the interval. The
// fractional part feeds the numeric interval only, never the calendar date.
func NextInspectionDate(from time.Time, intervalYears float64) time.Time {
	years := int(intervalYears)
	if years < 0 {
		years = 0
	}
	return from.AddDate(years, 0, 0)
}
