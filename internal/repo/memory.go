package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/OilBro/api-510-inspection-manager/internal/models"
)

// MemoryStore is an in-memory implementation of the inspection data
// contracts, used when no database is configured and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	designs  map[string]models.VesselDesign
	readings map[string][]models.ThicknessReading
	nozzles  map[string][]models.NozzleRecord
	results  map[string][]models.CalculationResult
	alerts   []models.CriticalityAlert
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		designs:  make(map[string]models.VesselDesign),
		readings: make(map[string][]models.ThicknessReading),
		nozzles:  make(map[string][]models.NozzleRecord),
		results:  make(map[string][]models.CalculationResult),
	}
}

// PutInspection registers an inspection's design, readings, and nozzles.
func (s *MemoryStore) PutInspection(inspectionID string, design models.VesselDesign, readings []models.ThicknessReading, nozzles []models.NozzleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.designs[inspectionID] = design
	s.readings[inspectionID] = append([]models.ThicknessReading(nil), readings...)
	s.nozzles[inspectionID] = append([]models.NozzleRecord(nil), nozzles...)
}

// VesselDesign implements engine.InspectionSource.
func (s *MemoryStore) VesselDesign(_ context.Context, inspectionID string) (models.VesselDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	design, ok := s.designs[inspectionID]
	if !ok {
		return models.VesselDesign{}, fmt.Errorf("inspection %s not found", inspectionID)
	}
	return design, nil
}

// Readings implements engine.InspectionSource.
func (s *MemoryStore) Readings(_ context.Context, inspectionID string) ([]models.ThicknessReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ThicknessReading(nil), s.readings[inspectionID]...), nil
}

// Nozzles implements engine.InspectionSource.
func (s *MemoryStore) Nozzles(_ context.Context, inspectionID string) ([]models.NozzleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.NozzleRecord(nil), s.nozzles[inspectionID]...), nil
}

// ReplaceResults implements engine.ResultStore with full-replace semantics.
func (s *MemoryStore) ReplaceResults(_ context.Context, inspectionID string, results []models.CalculationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[inspectionID] = append([]models.CalculationResult(nil), results...)
	return nil
}

// Results returns the current result set for an inspection.
func (s *MemoryStore) Results(inspectionID string) []models.CalculationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CalculationResult(nil), s.results[inspectionID]...)
}

// NotifyCriticality retains the alert for inspection by tests and local
// tooling.
func (s *MemoryStore) NotifyCriticality(_ context.Context, alert models.CriticalityAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
	return nil
}

// Alerts returns recorded alerts.
func (s *MemoryStore) Alerts() []models.CriticalityAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CriticalityAlert(nil), s.alerts...)
}
