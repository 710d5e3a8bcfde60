package engine

import "math"

// ASME Section VIII Division 1 internal-pressure formulas (UG-27, UG-32).
// All thicknesses and radii are in inches, pressures and stresses in psi.
//
// Degenerate inputs saturate instead of erroring: a minimum-thickness
// denominator that is not positive means no achievable thickness satisfies
// the code at this pressure, reported as +Inf; MAWP of a zero or impossible
// section is 0. Callers feed these values into further arithmetic and the
// status classifier, so they must stay ordinary floats.

// DefaultKnuckleRatio is the knuckle radius assumed for torispherical heads
// when the knuckle is not supplied, as a fraction of the crown radius.
const DefaultKnuckleRatio = 0.06

// ShellMinimumThickness returns the required thickness of a cylindrical
// shell under internal pressure (UG-27(c)(1)): t = P*R / (S*E - 0.6*P).
func ShellMinimumThickness(p, r, s, e float64) float64 {
	if p == 0 {
		return 0
	}
	denom := s*e - 0.6*p
	if denom <= 0 {
		return math.Inf(1)
	}
	return p * r / denom
}

// EllipsoidalHeadMinimumThickness returns the required thickness of a 2:1
// ellipsoidal head (UG-32(d)): t = P*D / (2*S*E - 0.2*P).
func EllipsoidalHeadMinimumThickness(p, d, s, e float64) float64 {
	if p == 0 {
		return 0
	}
	denom := 2*s*e - 0.2*p
	if denom <= 0 {
		return math.Inf(1)
	}
	return p * d / denom
}

// TorisphericalHeadMinimumThickness returns the required thickness of a
// torispherical head (UG-32(e)): t = P*L*M / (2*S*E - 0.2*P) with
// M = 0.25*(3 + sqrt(L/r_knuckle)). A non-positive knuckle radius defaults
// to 0.06*L.
func TorisphericalHeadMinimumThickness(p, crown, knuckle, s, e float64) float64 {
	if p == 0 {
		return 0
	}
	if knuckle <= 0 {
		knuckle = DefaultKnuckleRatio * crown
	}
	denom := 2*s*e - 0.2*p
	if denom <= 0 || knuckle <= 0 {
		return math.Inf(1)
	}
	m := 0.25 * (3 + math.Sqrt(crown/knuckle))
	return p * crown * m / denom
}

// HemisphericalHeadMinimumThickness returns the required thickness of a
// hemispherical head (UG-32(f)): t = P*R / (2*S*E - 0.2*P).
func HemisphericalHeadMinimumThickness(p, r, s, e float64) float64 {
	if p == 0 {
		return 0
	}
	denom := 2*s*e - 0.2*p
	if denom <= 0 {
		return math.Inf(1)
	}
	return p * r / denom
}

// ShellMAWP returns the maximum allowable working pressure of a cylindrical
// shell of thickness t: P = S*E*t / (R + 0.6*t).
func ShellMAWP(t, r, s, e float64) float64 {
	if t <= 0 {
		return 0
	}
	denom := r + 0.6*t
	if denom <= 0 {
		return 0
	}
	return s * e * t / denom
}

// EllipsoidalHeadMAWP returns the MAWP of a 2:1 ellipsoidal head:
// P = 2*S*E*t / (D + 0.2*t).
func EllipsoidalHeadMAWP(t, d, s, e float64) float64 {
	if t <= 0 {
		return 0
	}
	denom := d + 0.2*t
	if denom <= 0 {
		return 0
	}
	return 2 * s * e * t / denom
}

// HemisphericalHeadMAWP returns the MAWP of a hemispherical head:
// P = 2*S*E*t / (R + 0.2*t).
func HemisphericalHeadMAWP(t, r, s, e float64) float64 {
	if t <= 0 {
		return 0
	}
	denom := r + 0.2*t
	if denom <= 0 {
		return 0
	}
	return 2 * s * e * t / denom
}
