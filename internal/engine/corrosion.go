package engine

import "github.com/OilBro/api-510-inspection-manager/internal/models"

// MinNominalRate is the floor applied to every corrosion rate, in inches per
// year. A zero or negative rate would imply infinite remaining life, so the
// analyzer never reports one.
const MinNominalRate = 0.001

// Rationale strings are retained verbatim on results for audit and reporting.
const (
	rationaleLongTerm  = "long-term rate is higher — sustained corrosion"
	rationaleShortTerm = "short-term rate is higher — accelerated recent corrosion"
)

// CorrosionRates holds both computed rates and the governing selection.
type CorrosionRates struct {
	LongTerm  float64
	ShortTerm float64
	Governing float64
	Tag       models.GoverningRateTag
	Rationale string
}

// CorrosionRate computes a rate from a thickness loss over a span of years.
// Non-positive spans and non-positive raw rates (including apparent
// thickness growth) floor to MinNominalRate.
func CorrosionRate(fromThickness, toThickness, spanYears float64) float64 {
	if spanYears <= 0 {
		return MinNominalRate
	}
	rate := (fromThickness - toThickness) / spanYears
	if rate <= 0 {
		return MinNominalRate
	}
	return rate
}

// AnalyzeCorrosion computes the short-term rate from the previous reading and
// the long-term rate from the initial thickness, then selects the governing
// rate as max(LT, ST). Ties go to the long-term rate.
func AnalyzeCorrosion(in models.CalculationInput) CorrosionRates {
	initial := in.InitialThickness
	if initial <= 0 {
		initial = in.NominalThickness
	}
	totalSpan := in.TotalSpanYears
	if totalSpan <= 0 {
		// With a single prior inspection the total span is unknown; the
		// recent span stands in for it, which can make LT and ST equal.
		totalSpan = in.RecentSpanYears
	}

	rates := CorrosionRates{
		ShortTerm: CorrosionRate(in.PreviousThickness, in.ActualThickness, in.RecentSpanYears),
		LongTerm:  CorrosionRate(initial, in.ActualThickness, totalSpan),
	}

	if rates.LongTerm >= rates.ShortTerm {
		rates.Governing = rates.LongTerm
		rates.Tag = models.RateLongTerm
		rates.Rationale = rationaleLongTerm
	} else {
		rates.Governing = rates.ShortTerm
		rates.Tag = models.RateShortTerm
		rates.Rationale = rationaleShortTerm
	}
	return rates
}
