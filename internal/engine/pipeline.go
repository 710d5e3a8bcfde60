package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/OilBro/api-510-inspection-manager/internal/models"
)

const (
	// DefaultSpanYears is the conservative elapsed-time fallback applied
	// when inspection dates are missing.
	DefaultSpanYears = 10.0

	// CriticalLifeYears and WarningLifeYears are the remaining-life
	// classification thresholds.
	CriticalLifeYears = 2.0
	WarningLifeYears  = 5.0

	hoursPerYear = 24 * 365.25
)

// InspectionSource supplies the vessel design, reading set, and tracked
// nozzles for an inspection.
type InspectionSource interface {
	VesselDesign(ctx context.Context, inspectionID string) (models.VesselDesign, error)
	Readings(ctx context.Context, inspectionID string) ([]models.ThicknessReading, error)
	Nozzles(ctx context.Context, inspectionID string) ([]models.NozzleRecord, error)
}

// ResultStore persists the ratified result set for an inspection run,
// replacing any prior results in a single atomic operation.
type ResultStore interface {
	ReplaceResults(ctx context.Context, inspectionID string, results []models.CalculationResult) error
}

// AlertNotifier receives the single batched criticality alert for a run.
type AlertNotifier interface {
	NotifyCriticality(ctx context.Context, alert models.CriticalityAlert) error
}

// Pipeline turns an inspection's raw readings into one ratified calculation
// result per component.
type Pipeline struct {
	logger   *slog.Logger
	source   InspectionSource
	store    ResultStore
	notifier AlertNotifier
	now      func() time.Time
}

// NewPipeline constructs an aggregation pipeline. Store and notifier may be
// nil when persistence or alerting is handled elsewhere.
func NewPipeline(logger *slog.Logger, source InspectionSource, store ResultStore, notifier AlertNotifier) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:   logger,
		source:   source,
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run evaluates every vessel-body component and every tracked nozzle for the
// inspection, persists the replacement result set, and raises at most one
// criticality alert after all components have been evaluated.
func (p *Pipeline) Run(ctx context.Context, inspectionID string) ([]models.CalculationResult, error) {
	if p.source == nil {
		return nil, fmt.Errorf("inspection source not configured")
	}

	design, err := p.source.VesselDesign(ctx, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("load vessel design: %w", err)
	}
	readings, err := p.source.Readings(ctx, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("load readings: %w", err)
	}
	nozzles, err := p.source.Nozzles(ctx, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("load nozzles: %w", err)
	}

	recentSpan := spanYears(design.PrevInspectionDate, design.InspectionDate)
	results := make([]models.CalculationResult, 0, len(models.BodyComponents())+len(nozzles))

	for _, component := range models.BodyComponents() {
		actual, previous := reduceReadings(readings, component, design.NominalThickness)
		input := models.CalculationInput{
			DesignPressurePSI: design.DesignPressurePSI,
			DesignTempF:       design.DesignTempF,
			InsideDiameterIn:  design.InsideDiameterIn,
			AllowableStress:   design.AllowableStress,
			JointEfficiency:   design.JointEfficiency,
			ActualThickness:   actual,
			PreviousThickness: previous,
			NominalThickness:  design.NominalThickness,
			RecentSpanYears:   recentSpan,
			TotalSpanYears:    design.TotalServiceYears,
			Kind:              component.Kind,
			HeadType:          design.HeadType,
		}
		results = append(results, p.evaluate(component, input))
	}

	for _, nozzle := range nozzles {
		results = append(results, p.evaluateNozzle(design, nozzle, recentSpan))
	}

	if p.store != nil {
		if err := p.store.ReplaceResults(ctx, inspectionID, results); err != nil {
			return nil, fmt.Errorf("persist results: %w", err)
		}
	}

	// The alert fires once, after the whole run, naming every flagged
	// component.
	flagged := flaggedComponents(results)
	if len(flagged) > 0 && p.notifier != nil {
		alert := models.CriticalityAlert{
			VesselID:   design.VesselID,
			Components: flagged,
			RaisedAt:   p.now().UTC(),
		}
		if err := p.notifier.NotifyCriticality(ctx, alert); err != nil {
			p.logger.Warn("criticality alert delivery failed", slog.Any("error", err))
		}
	}

	return results, nil
}

// Evaluate computes the ratified result for a single component input. It is
// the stateless entry point shared by the pipeline and the calculator API.
func Evaluate(component models.Component, in models.CalculationInput, now time.Time) models.CalculationResult {
	minThickness, mawp := sectionThicknessAndMAWP(in)
	rates := AnalyzeCorrosion(in)
	life := RemainingLife(in.ActualThickness, minThickness, rates.Governing)
	interval := NextInspectionInterval(life)

	result := models.CalculationResult{
		Component:          component,
		MinimumThickness:   minThickness,
		MAWP:               mawp,
		LongTermRate:       rates.LongTerm,
		ShortTermRate:      rates.ShortTerm,
		GoverningRate:      rates.Governing,
		RateTag:            rates.Tag,
		RateRationale:      rates.Rationale,
		RemainingLifeYears: life,
		IntervalYears:      interval,
		NextInspectionDate: NextInspectionDate(now, interval),
		BelowMinimum:       in.ActualThickness < minThickness,
		CalculatedAt:       now,
	}
	result.Status, result.StatusDetail = classify(in.ActualThickness, minThickness, life)
	return result
}

func (p *Pipeline) evaluate(component models.Component, in models.CalculationInput) models.CalculationResult {
	result := Evaluate(component, in, p.now().UTC())
	p.logger.Debug("component evaluated",
		slog.String("component", component.Name),
		slog.String("status", string(result.Status)),
		slog.Float64("remaining_life", result.RemainingLifeYears),
	)
	return result
}

func (p *Pipeline) evaluateNozzle(design models.VesselDesign, nozzle models.NozzleRecord, recentSpan float64) models.CalculationResult {
	component := models.NozzleComponent(nozzle.NozzleID)
	now := p.now().UTC()

	minThickness, resolved := NozzleMinimumThickness(
		nozzle.NominalPipeSize,
		design.DesignPressurePSI,
		design.AllowableStress,
		nozzle.JointEfficiency,
	)
	if !resolved {
		p.logger.Warn("unresolvable nominal pipe size",
			slog.String("nozzle", nozzle.NozzleID),
			slog.String("size", nozzle.NominalPipeSize),
		)
	}

	in := models.CalculationInput{
		DesignPressurePSI: design.DesignPressurePSI,
		AllowableStress:   design.AllowableStress,
		ActualThickness:   nozzle.ActualThickness,
		PreviousThickness: nozzle.PreviousThickness,
		NominalThickness:  nozzle.NominalThickness,
		RecentSpanYears:   recentSpan,
		TotalSpanYears:    design.TotalServiceYears,
		Kind:              models.KindNozzle,
	}
	rates := AnalyzeCorrosion(in)
	life := RemainingLife(nozzle.ActualThickness, minThickness, rates.Governing)
	interval := NextInspectionInterval(life)

	result := models.CalculationResult{
		Component:          component,
		MinimumThickness:   minThickness,
		LongTermRate:       rates.LongTerm,
		ShortTermRate:      rates.ShortTerm,
		GoverningRate:      rates.Governing,
		RateTag:            rates.Tag,
		RateRationale:      rates.Rationale,
		RemainingLifeYears: life,
		IntervalYears:      interval,
		NextInspectionDate: NextInspectionDate(now, interval),
		BelowMinimum:       nozzle.ActualThickness < minThickness,
		CalculatedAt:       now,
	}
	result.Status, result.StatusDetail = classify(nozzle.ActualThickness, minThickness, life)
	return result
}

// sectionThicknessAndMAWP applies the head-type-aware formula branch.
func sectionThicknessAndMAWP(in models.CalculationInput) (float64, float64) {
	p := in.DesignPressurePSI
	d := in.InsideDiameterIn
	r := d / 2
	s := in.AllowableStress
	e := in.JointEfficiency
	t := in.ActualThickness

	if in.Kind != models.KindHead {
		return ShellMinimumThickness(p, r, s, e), ShellMAWP(t, r, s, e)
	}

	switch in.HeadType {
	case models.HeadHemispherical:
		return HemisphericalHeadMinimumThickness(p, r, s, e), HemisphericalHeadMAWP(t, r, s, e)
	case models.HeadTorispherical:
		// Crown radius taken as the inside diameter, knuckle defaulted.
		return TorisphericalHeadMinimumThickness(p, d, 0, s, e), EllipsoidalHeadMAWP(t, d, s, e)
	default:
		return EllipsoidalHeadMinimumThickness(p, d, s, e), EllipsoidalHeadMAWP(t, d, s, e)
	}
}

// reduceReadings collapses a component's readings to worst-case actual and
// previous thicknesses. With no readings the nominal thickness stands in for
// both, treating the component as unworn until data exists.
func reduceReadings(readings []models.ThicknessReading, component models.Component, nominal float64) (actual, previous float64) {
	for _, reading := range readings {
		if reading.Component != component {
			continue
		}
		if worst := reading.WorstActual(); worst > 0 && (actual == 0 || worst < actual) {
			actual = worst
		}
		if reading.PreviousThickness > 0 && (previous == 0 || reading.PreviousThickness < previous) {
			previous = reading.PreviousThickness
		}
	}
	if actual == 0 {
		actual = nominal
	}
	if previous == 0 {
		previous = nominal
	}
	return actual, previous
}

func classify(actual, minimum, remainingLife float64) (models.ComponentStatus, string) {
	switch {
	case actual < minimum:
		if math.IsInf(minimum, 1) {
			return models.StatusBelowMinimum, "design pressure exceeds what the material and geometry can sustain"
		}
		return models.StatusBelowMinimum, fmt.Sprintf("actual thickness %.3f in is below the required minimum %.3f in", actual, minimum)
	case remainingLife < CriticalLifeYears:
		return models.StatusCritical, fmt.Sprintf("remaining life %.1f years is below the %.0f-year critical threshold", remainingLife, CriticalLifeYears)
	case remainingLife < WarningLifeYears:
		return models.StatusWarning, fmt.Sprintf("remaining life %.1f years is below the %.0f-year warning threshold", remainingLife, WarningLifeYears)
	default:
		return models.StatusAcceptable, fmt.Sprintf("remaining life %.1f years", remainingLife)
	}
}

func flaggedComponents(results []models.CalculationResult) []string {
	flagged := make([]string, 0)
	for _, res := range results {
		if res.BelowMinimum || res.RemainingLifeYears < CriticalLifeYears {
			flagged = append(flagged, res.Component.Name)
		}
	}
	return flagged
}

// spanYears derives the elapsed years between two inspection dates, falling
// back to a conservative long default when either date is missing.
func spanYears(previous, current time.Time) float64 {
	if previous.IsZero() || current.IsZero() {
		return DefaultSpanYears
	}
	span := current.Sub(previous).Hours() / hoursPerYear
	if span <= 0 {
		return DefaultSpanYears
	}
	return span
}
