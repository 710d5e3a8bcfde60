package models

// ThicknessReading records one condition-monitoring location. Up to four
// angular sub-readings may be present; zero values mean "not taken".
type ThicknessReading struct {
	Location  string
	Component Component

	AngleReadings     [4]float64
	ActualThickness   float64
	PreviousThickness float64
	NominalThickness  float64
	MinimumThickness  float64
}

// WorstActual returns the smallest positive thickness among the primary
// reading and the angular sub-readings. Zero when nothing was measured.
func (r ThicknessReading) WorstActual() float64 {
	worst := 0.0
	consider := func(v float64) {
		if v > 0 && (worst == 0 || v < worst) {
			worst = v
		}
	}
	consider(r.ActualThickness)
	for _, v := range r.AngleReadings {
		consider(v)
	}
	return worst
}
