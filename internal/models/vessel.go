package models

import "time"

// VesselDesign is the design record the host supplies per vessel.
type VesselDesign struct {
	VesselID          string
	DesignPressurePSI float64
	DesignTempF       float64
	InsideDiameterIn  float64
	Material          string
	AllowableStress   float64
	JointEfficiency   float64
	NominalThickness  float64
	HeadType          HeadType

	InspectionDate     time.Time
	PrevInspectionDate time.Time
	// TotalServiceYears is the explicit long-term span, when known. Zero
	// means "derive from the inspection dates".
	TotalServiceYears float64
}

// NozzleRecord describes one tracked nozzle on a vessel.
type NozzleRecord struct {
	NozzleID          string
	NominalPipeSize   string
	JointEfficiency   float64
	ActualThickness   float64
	PreviousThickness float64
	NominalThickness  float64
}

// MaterialStressPoint is one tabulated (material, temperature, stress) tuple.
// Temperatures for a given material are strictly ordered and define a
// piecewise-linear allowable-stress curve.
type MaterialStressPoint struct {
	Material    string  `yaml:"material"`
	TempF       float64 `yaml:"temperature_f"`
	AllowStress float64 `yaml:"allowable_stress_psi"`
}
