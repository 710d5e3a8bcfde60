package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/OilBro/api-510-inspection-manager/internal/engine"
	"github.com/OilBro/api-510-inspection-manager/internal/models"
	"github.com/OilBro/api-510-inspection-manager/internal/repo"
)

func seedStore(t *testing.T) *repo.MemoryStore {
	t.Helper()
	store := repo.NewMemoryStore()
	store.PutInspection("insp-1",
		models.VesselDesign{
			VesselID:           "V-101",
			DesignPressurePSI:  150,
			InsideDiameterIn:   48,
			AllowableStress:    20000,
			JointEfficiency:    0.85,
			NominalThickness:   0.500,
			HeadType:           models.HeadEllipsoidal,
			InspectionDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			PrevInspectionDate: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		[]models.ThicknessReading{
			{Component: models.ComponentShell, ActualThickness: 0.470, PreviousThickness: 0.480},
		},
		nil,
	)
	return store
}

func TestAggregateReplacesResultSet(t *testing.T) {
	store := seedStore(t)
	pipeline := engine.NewPipeline(nil, store, store, nil)
	service := NewInspectionService(nil, pipeline, nil)

	first, err := service.Aggregate(context.Background(), "insp-1")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 body results, got %d", len(first))
	}

	if _, err := service.Aggregate(context.Background(), "insp-1"); err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	// Full replace, never accumulate.
	if got := store.Results("insp-1"); len(got) != 3 {
		t.Fatalf("expected one live result per component, got %d", len(got))
	}
}

func TestAggregateRequiresInspectionID(t *testing.T) {
	store := seedStore(t)
	pipeline := engine.NewPipeline(nil, store, store, nil)
	service := NewInspectionService(nil, pipeline, nil)

	if _, err := service.Aggregate(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty inspection id")
	}
}

func TestAggregateWithoutPipeline(t *testing.T) {
	service := NewInspectionService(nil, nil, nil)
	if _, err := service.Aggregate(context.Background(), "insp-1"); err == nil {
		t.Fatalf("expected error when pipeline not configured")
	}
}

func TestAggregateSerializedPerInspection(t *testing.T) {
	store := seedStore(t)
	pipeline := engine.NewPipeline(nil, store, store, nil)
	service := NewInspectionService(nil, pipeline, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.Aggregate(context.Background(), "insp-1"); err != nil {
				t.Errorf("concurrent aggregate: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.Results("insp-1"); len(got) != 3 {
		t.Fatalf("concurrent runs left %d results, expected 3", len(got))
	}
}

func TestResolveStress(t *testing.T) {
	table := engine.NewStressTable([]models.MaterialStressPoint{
		{Material: "SA-516-70", TempF: 100, AllowStress: 20000},
		{Material: "SA-516-70", TempF: 500, AllowStress: 19600},
	})
	service := NewInspectionService(nil, nil, table)

	stress, found, err := service.ResolveStress(context.Background(), "SA-516-70", 300)
	if err != nil || !found {
		t.Fatalf("expected resolution, got found=%v err=%v", found, err)
	}
	if stress != 19800 {
		t.Fatalf("expected 19800, got %f", stress)
	}

	if _, found, _ := service.ResolveStress(context.Background(), "SA-999", 300); found {
		t.Fatalf("unknown material should not resolve")
	}
}
