package engine

import (
	"context"
	"testing"

	"github.com/OilBro/api-510-inspection-manager/internal/models"
)

func sampleTable() *StressTable {
	return NewStressTable([]models.MaterialStressPoint{
		{Material: "SA-516-70", TempF: 100, AllowStress: 20000},
		{Material: "SA-516-70", TempF: 500, AllowStress: 19600},
		{Material: "SA-516-70", TempF: 650, AllowStress: 18800},
		{Material: "SA-285-C", TempF: 100, AllowStress: 15700},
	})
}

func TestResolveAllowableStressInterpolates(t *testing.T) {
	// Midway between 100F and 500F.
	got, found, err := ResolveAllowableStress(context.Background(), sampleTable(), "SA-516-70", 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected a resolved stress")
	}
	if got != 19800 {
		t.Fatalf("expected 19800 psi, got %f", got)
	}
}

func TestResolveAllowableStressRoundsToWholePSI(t *testing.T) {
	// 19600 + (550-500)/(650-500) * (18800-19600) = 19333.33
	got, found, _ := ResolveAllowableStress(context.Background(), sampleTable(), "SA-516-70", 550)
	if !found || got != 19333 {
		t.Fatalf("expected 19333 psi, got %f (found=%v)", got, found)
	}
}

func TestResolveAllowableStressExactMatch(t *testing.T) {
	got, found, _ := ResolveAllowableStress(context.Background(), sampleTable(), "SA-516-70", 500)
	if !found || got != 19600 {
		t.Fatalf("expected tabulated 19600 psi, got %f", got)
	}
}

func TestResolveAllowableStressBoundsOnly(t *testing.T) {
	// Below the tabulated range: the lower end of the table is the only
	// upper bound; return it unmodified, never extrapolate.
	got, found, _ := ResolveAllowableStress(context.Background(), sampleTable(), "SA-516-70", 50)
	if !found || got != 20000 {
		t.Fatalf("below range: expected bound 20000 psi, got %f", got)
	}
	got, found, _ = ResolveAllowableStress(context.Background(), sampleTable(), "SA-516-70", 900)
	if !found || got != 18800 {
		t.Fatalf("above range: expected bound 18800 psi, got %f", got)
	}
}

func TestResolveAllowableStressUnknownMaterial(t *testing.T) {
	_, found, err := ResolveAllowableStress(context.Background(), sampleTable(), "SA-999", 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("unknown material must resolve to no result")
	}
}

func TestResolveAllowableStressNilSources(t *testing.T) {
	if _, found, _ := ResolveAllowableStress(context.Background(), nil, "SA-516-70", 300); found {
		t.Fatalf("nil source must resolve nothing")
	}
	var table *StressTable
	if _, found, _ := ResolveAllowableStress(context.Background(), table, "SA-516-70", 300); found {
		t.Fatalf("nil table must resolve nothing")
	}
}

func TestStressTableMaterialKeyNormalisation(t *testing.T) {
	got, found, _ := ResolveAllowableStress(context.Background(), sampleTable(), "  sa-285-c ", 100)
	if !found || got != 15700 {
		t.Fatalf("expected case-insensitive material match, got %f (found=%v)", got, found)
	}
}
