package models

import "time"

// ComponentStatus classifies a component's fitness after an aggregation run.
type ComponentStatus string

const (
	StatusBelowMinimum ComponentStatus = "BELOW_MINIMUM"
	StatusCritical     ComponentStatus = "CRITICAL"
	StatusWarning      ComponentStatus = "WARNING"
	StatusAcceptable   ComponentStatus = "ACCEPTABLE"
)

// GoverningRateTag names which corrosion rate drives the life prediction.
type GoverningRateTag string

const (
	RateLongTerm  GoverningRateTag = "long_term"
	RateShortTerm GoverningRateTag = "short_term"
)

// CalculationInput carries the design and measured values needed to evaluate
// one component. Thicknesses and stresses are non-negative; joint efficiency
// lies in (0, 1].
type CalculationInput struct {
	DesignPressurePSI float64
	DesignTempF       float64
	InsideDiameterIn  float64
	AllowableStress   float64
	JointEfficiency   float64

	ActualThickness   float64
	PreviousThickness float64
	NominalThickness  float64
	InitialThickness  float64

	RecentSpanYears float64
	TotalSpanYears  float64

	Kind     ComponentKind
	HeadType HeadType
}

// CalculationResult is the ratified outcome for one component. A fresh result
// replaces the prior one on every aggregation run; results are never mutated
// in place.
type CalculationResult struct {
	Component Component

	MinimumThickness float64
	MAWP             float64

	LongTermRate  float64
	ShortTermRate float64
	GoverningRate float64
	RateTag       GoverningRateTag
	RateRationale string

	RemainingLifeYears float64
	IntervalYears      float64
	NextInspectionDate time.Time

	BelowMinimum bool
	Status       ComponentStatus
	StatusDetail string

	CalculatedAt time.Time
}

// CriticalityAlert is the single batched alert payload raised at the end of
// an aggregation run when any component is below minimum or has less than
// two years of remaining life.
type CriticalityAlert struct {
	VesselID   string    `json:"vessel_id"`
	Components []string  `json:"components"`
	RaisedAt   time.Time `json:"raised_at"`
}
