package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/OilBro/api-510-inspection-manager/internal/engine"
	"github.com/OilBro/api-510-inspection-manager/internal/metrics"
	"github.com/OilBro/api-510-inspection-manager/internal/models"
	"github.com/OilBro/api-510-inspection-manager/internal/utils"
)

// InspectionService is the host-facing facade over the calculation engine.
// It serializes aggregation runs per inspection, so the pipeline's
// replace-then-recreate write never interleaves with a concurrent run
// against the same inspection.
type InspectionService struct {
	logger    *slog.Logger
	pipeline  *engine.Pipeline
	stress    engine.StressSource
	latencies *utils.LatencyTracker

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewInspectionService constructs the service facade.
func NewInspectionService(logger *slog.Logger, pipeline *engine.Pipeline, stress engine.StressSource) *InspectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InspectionService{
		logger:    logger,
		pipeline:  pipeline,
		stress:    stress,
		latencies: utils.NewLatencyTracker(1024),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Aggregate runs the full aggregation pipeline for one inspection. At most
// one run per inspection executes at a time; a second caller blocks until
// the first completes.
func (s *InspectionService) Aggregate(ctx context.Context, inspectionID string) ([]models.CalculationResult, error) {
	if s.pipeline == nil {
		return nil, fmt.Errorf("pipeline not configured")
	}
	if inspectionID == "" {
		return nil, fmt.Errorf("inspection id is required")
	}

	lock := s.inspectionLock(inspectionID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	results, err := s.pipeline.Run(ctx, inspectionID)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveAggregation(duration, metrics.OutcomeError)
		s.logger.Error("aggregation failed",
			slog.String("inspection_id", inspectionID),
			slog.Any("error", err),
		)
		return nil, err
	}

	metrics.ObserveAggregation(duration, metrics.OutcomeSuccess)
	for _, res := range results {
		metrics.ObserveComponentStatus(string(res.Status))
	}
	s.latencies.Observe(duration)
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		s.logger.Info("aggregation latency",
			slog.Duration("p95", s.latencies.Percentile(95)),
			slog.Int("samples", count),
		)
	}

	return results, nil
}

// ResolveStress answers an allowable-stress query against the configured
// stress table. The boolean is false when the material has no tabulated
// points covering the query.
func (s *InspectionService) ResolveStress(ctx context.Context, material string, tempF float64) (float64, bool, error) {
	return engine.ResolveAllowableStress(ctx, s.stress, material, tempF)
}

// Evaluate performs a stateless single-component calculation.
func (s *InspectionService) Evaluate(component models.Component, in models.CalculationInput) models.CalculationResult {
	return engine.Evaluate(component, in, time.Now().UTC())
}

// LatencyP95 reports the current p95 aggregation latency.
func (s *InspectionService) LatencyP95() time.Duration {
	return s.latencies.Percentile(95)
}

func (s *InspectionService) inspectionLock(inspectionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[inspectionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[inspectionID] = lock
	}
	return lock
}
