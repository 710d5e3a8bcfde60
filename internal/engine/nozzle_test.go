package engine

import "testing"

func TestParseNominalPipeSize(t *testing.T) {
	cases := []struct {
		token string
		want  float64
		ok    bool
	}{
		{`2"`, 2, true},
		{"2 in", 2, true},
		{"NPS 6", 6, true},
		{"0.75", 0.75, true},
		{" 12 ", 12, true},
		{"", 0, false},
		{"NPS", 0, false},
		{"-4", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNominalPipeSize(tc.token)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parse %q: expected (%v, %v), got (%v, %v)", tc.token, tc.want, tc.ok, got, ok)
		}
	}
}

func TestOutsideDiameterTableAndFallback(t *testing.T) {
	if got := OutsideDiameter(2); got != 2.375 {
		t.Fatalf("NPS 2 should resolve to 2.375, got %f", got)
	}
	if got := OutsideDiameter(6); got != 6.625 {
		t.Fatalf("NPS 6 should resolve to 6.625, got %f", got)
	}
	// 7" is not a standard size; approximate OD applies.
	if got := OutsideDiameter(7); got != 7.375 {
		t.Fatalf("expected fallback 7.375, got %f", got)
	}
}

func TestNozzleMinimumThickness(t *testing.T) {
	got, ok := NozzleMinimumThickness(`2"`, 150, 20000, 0)
	if !ok {
		t.Fatalf("expected size to resolve")
	}
	// Joint efficiency defaults to 1.0; radius is half the 2.375 OD.
	want := ShellMinimumThickness(150, 2.375/2, 20000, 1.0)
	if got != want {
		t.Fatalf("expected %.6f, got %.6f", want, got)
	}
}

func TestNozzleMinimumThicknessUnparsableSize(t *testing.T) {
	if _, ok := NozzleMinimumThickness("unknown", 150, 20000, 1.0); ok {
		t.Fatalf("expected resolution failure for junk token")
	}
}
