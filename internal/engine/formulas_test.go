package engine

import (
	"math"
	"testing"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestShellMinimumThicknessScenario(t *testing.T) {
	// 150 psi, 24 in radius, SA-516-70 at 20 ksi, spot-examined joints.
	got := ShellMinimumThickness(150, 24, 20000, 0.85)
	if !almostEqual(got, 0.2129, 0.0001) {
		t.Fatalf("expected 0.2129 in, got %.4f", got)
	}
}

func TestShellMinimumThicknessZeroPressure(t *testing.T) {
	if got := ShellMinimumThickness(0, 24, 20000, 0.85); got != 0 {
		t.Fatalf("expected zero thickness at zero pressure, got %f", got)
	}
}

func TestShellMinimumThicknessSaturates(t *testing.T) {
	// S*E <= 0.6*P means no thickness satisfies the code.
	got := ShellMinimumThickness(40000, 24, 20000, 1.0)
	if !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf for impossible pressure, got %f", got)
	}
	exactlyDegenerate := ShellMinimumThickness(20000/0.6, 24, 20000, 1.0)
	if !math.IsInf(exactlyDegenerate, 1) {
		t.Fatalf("expected +Inf at the degeneracy boundary, got %f", exactlyDegenerate)
	}
}

func TestShellMinimumThicknessMonotonicity(t *testing.T) {
	base := ShellMinimumThickness(150, 24, 20000, 0.85)

	if ShellMinimumThickness(200, 24, 20000, 0.85) <= base {
		t.Fatalf("thickness should increase with pressure")
	}
	if ShellMinimumThickness(150, 30, 20000, 0.85) <= base {
		t.Fatalf("thickness should increase with radius")
	}
	if ShellMinimumThickness(150, 24, 25000, 0.85) >= base {
		t.Fatalf("thickness should decrease with allowable stress")
	}
	if ShellMinimumThickness(150, 24, 20000, 1.0) >= base {
		t.Fatalf("thickness should decrease with joint efficiency")
	}
}

func TestShellMAWPRoundTrip(t *testing.T) {
	cases := []struct {
		p, r, s, e float64
	}{
		{150, 24, 20000, 0.85},
		{300, 36, 17500, 1.0},
		{75, 18, 13800, 0.70},
	}
	for _, tc := range cases {
		thickness := ShellMinimumThickness(tc.p, tc.r, tc.s, tc.e)
		back := ShellMAWP(thickness, tc.r, tc.s, tc.e)
		if !almostEqual(back, tc.p, 1e-6) {
			t.Fatalf("round trip for P=%.0f gave %.6f", tc.p, back)
		}
	}
}

func TestMAWPDegenerateInputs(t *testing.T) {
	if got := ShellMAWP(0, 24, 20000, 0.85); got != 0 {
		t.Fatalf("expected zero MAWP for zero thickness, got %f", got)
	}
	if got := EllipsoidalHeadMAWP(0, 48, 20000, 0.85); got != 0 {
		t.Fatalf("expected zero ellipsoidal MAWP for zero thickness, got %f", got)
	}
	if got := HemisphericalHeadMAWP(-0.1, 24, 20000, 0.85); got != 0 {
		t.Fatalf("expected zero hemispherical MAWP for negative thickness, got %f", got)
	}
}

func TestHemisphericalHeadMoreEfficientThanShell(t *testing.T) {
	shell := ShellMinimumThickness(150, 24, 20000, 0.85)
	hemi := HemisphericalHeadMinimumThickness(150, 24, 20000, 0.85)
	if hemi >= shell {
		t.Fatalf("hemispherical head %.4f should need less than shell %.4f", hemi, shell)
	}
}

func TestTorisphericalHeadKnuckleDefault(t *testing.T) {
	crown := 48.0
	explicit := TorisphericalHeadMinimumThickness(150, crown, DefaultKnuckleRatio*crown, 20000, 0.85)
	defaulted := TorisphericalHeadMinimumThickness(150, crown, 0, 20000, 0.85)
	if explicit != defaulted {
		t.Fatalf("defaulted knuckle %.6f differs from explicit %.6f", defaulted, explicit)
	}

	// M = 0.25*(3 + sqrt(1/0.06)) with L/r = 1/0.06.
	m := 0.25 * (3 + math.Sqrt(1/DefaultKnuckleRatio))
	want := 150 * crown * m / (2*20000*0.85 - 0.2*150)
	if !almostEqual(defaulted, want, 1e-9) {
		t.Fatalf("expected %.6f, got %.6f", want, defaulted)
	}
}

func TestHeadMinimumThicknessSaturates(t *testing.T) {
	for name, got := range map[string]float64{
		"ellipsoidal":   EllipsoidalHeadMinimumThickness(250000, 48, 20000, 1.0),
		"torispherical": TorisphericalHeadMinimumThickness(250000, 48, 0, 20000, 1.0),
		"hemispherical": HemisphericalHeadMinimumThickness(250000, 24, 20000, 1.0),
	} {
		if !math.IsInf(got, 1) {
			t.Fatalf("%s head should saturate to +Inf, got %f", name, got)
		}
	}
}
