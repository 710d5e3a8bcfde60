package engine

import (
	"testing"
	"time"
)

func TestRemainingLifeScenario(t *testing.T) {
	got := RemainingLife(0.375, 0.200, 0.005)
	if got != 35.0 {
		t.Fatalf("expected 35.0 years, got %f", got)
	}
}

func TestRemainingLifeSentinels(t *testing.T) {
	if got := RemainingLife(0.375, 0.200, 0); got != EffectivelyInfiniteLife {
		t.Fatalf("zero rate should yield %v, got %f", EffectivelyInfiniteLife, got)
	}
	if got := RemainingLife(0.375, 0.200, -0.001); got != EffectivelyInfiniteLife {
		t.Fatalf("negative rate should yield %v, got %f", EffectivelyInfiniteLife, got)
	}
	// Already at minimum: zero life wins regardless of rate, including a
	// rate that would otherwise report infinite life.
	if got := RemainingLife(0.200, 0.200, 0.005); got != 0 {
		t.Fatalf("at-minimum component should have zero life, got %f", got)
	}
	if got := RemainingLife(0.180, 0.200, 0); got != 0 {
		t.Fatalf("below-minimum takes precedence over rate, got %f", got)
	}
}

func TestNextInspectionInterval(t *testing.T) {
	cases := []struct {
		life, want float64
	}{
		{35, 10},  // 17.5 capped at the regulatory ceiling
		{12, 6},
		{4, 2},
		{0.5, 0.25},
		{0, 0},
		{-3, 0},
	}
	for _, tc := range cases {
		if got := NextInspectionInterval(tc.life); got != tc.want {
			t.Fatalf("interval for life %.1f: expected %.2f, got %.2f", tc.life, tc.want, got)
		}
	}
}

func TestNextInspectionDateUsesWholeYears(t *testing.T) {
	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	got := NextInspectionDate(from, 7.9)
	if want := from.AddDate(7, 0, 0); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := NextInspectionDate(from, 0.4); !got.Equal(from) {
		t.Fatalf("sub-year interval should not advance the date, got %v", got)
	}
}
