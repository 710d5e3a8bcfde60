package engine

import (
	"strconv"
	"strings"
)

// nominalPipeOD maps nominal pipe size (inches) to outside diameter per
// ASME B36.10M for the sizes commonly found on pressure vessels.
var nominalPipeOD = map[float64]float64{
	0.5:  0.840,
	0.75: 1.050,
	1:    1.315,
	1.25: 1.660,
	1.5:  1.900,
	2:    2.375,
	2.5:  2.875,
	3:    3.500,
	3.5:  4.000,
	4:    4.500,
	5:    5.563,
	6:    6.625,
	8:    8.625,
	10:   10.750,
	12:   12.750,
	14:   14.000,
	16:   16.000,
	18:   18.000,
	20:   20.000,
	24:   24.000,
	30:   30.000,
	36:   36.000,
}

// ParseNominalPipeSize extracts the numeric nominal size from a token such
// as `2"`, `2 in`, `NPS 2` or `2`.
func ParseNominalPipeSize(token string) (float64, bool) {
	cleaned := strings.TrimSpace(token)
	cleaned = strings.TrimPrefix(strings.ToUpper(cleaned), "NPS")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, `"`)
	cleaned = strings.TrimSuffix(strings.ToLower(cleaned), "in")
	cleaned = strings.TrimSpace(cleaned)
	size, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

// OutsideDiameter resolves a nominal pipe size to its outside diameter.
// Sizes absent from the table fall back to size + 0.375 as an approximation.
func OutsideDiameter(nominalSize float64) float64 {
	if od, ok := nominalPipeOD[nominalSize]; ok {
		return od
	}
	return nominalSize + 0.375
}

// NozzleMinimumThickness resolves the pipe OD for the given nominal size
// token and applies the shell formula at the pipe's outside radius. Joint
// efficiency defaults to 1.0 for seamless nozzle necks.
func NozzleMinimumThickness(sizeToken string, p, s, e float64) (float64, bool) {
	size, ok := ParseNominalPipeSize(sizeToken)
	if !ok {
		return 0, false
	}
	if e <= 0 {
		e = 1.0
	}
	radius := OutsideDiameter(size) / 2
	return ShellMinimumThickness(p, radius, s, e), true
}
