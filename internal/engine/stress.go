package engine

import (
	"context"
	"errors"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OilBro/api-510-inspection-manager/internal/models"
)

// StressSource supplies the tabulated stress points bracketing a target
// temperature: the greatest tabulated temperature at or below the target and
// the least at or above it. A nil pointer means no bound exists on that side.
type StressSource interface {
	StressBounds(ctx context.Context, material string, tempF float64) (lower, upper *models.MaterialStressPoint, err error)
}

// ResolveAllowableStress interpolates the allowable stress for a material at
// the target temperature. Outside the tabulated range the nearest bound is
// returned unmodified; no extrapolation is performed. The second return is
// false when the material has no tabulated points at all.
func ResolveAllowableStress(ctx context.Context, source StressSource, material string, tempF float64) (float64, bool, error) {
	if source == nil {
		return 0, false, nil
	}
	lower, upper, err := source.StressBounds(ctx, material, tempF)
	if err != nil {
		return 0, false, err
	}

	switch {
	case lower == nil && upper == nil:
		return 0, false, nil
	case lower == nil:
		return upper.AllowStress, true, nil
	case upper == nil:
		return lower.AllowStress, true, nil
	case lower.TempF == upper.TempF:
		return lower.AllowStress, true, nil
	}

	fraction := (tempF - lower.TempF) / (upper.TempF - lower.TempF)
	stress := lower.AllowStress + fraction*(upper.AllowStress-lower.AllowStress)
	return math.Round(stress), true, nil
}

// StressTable is an in-memory StressSource keyed by material designation.
// Points for each material are kept sorted by temperature.
type StressTable struct {
	points map[string][]models.MaterialStressPoint
}

type stressTableFile struct {
	Materials []models.MaterialStressPoint `yaml:"materials"`
}

// NewStressTable builds a table from tuples in any order.
func NewStressTable(points []models.MaterialStressPoint) *StressTable {
	table := &StressTable{points: make(map[string][]models.MaterialStressPoint)}
	for _, pt := range points {
		key := materialKey(pt.Material)
		table.points[key] = append(table.points[key], pt)
	}
	for key := range table.points {
		pts := table.points[key]
		sort.Slice(pts, func(i, j int) bool { return pts[i].TempF < pts[j].TempF })
		table.points[key] = pts
	}
	return table
}

// NewStressTableFromFile loads a YAML stress table. An empty path or a
// missing file yields a nil table, which resolves nothing.
func NewStressTableFromFile(path string) (*StressTable, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var file stressTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return NewStressTable(file.Materials), nil
}

// StressBounds implements StressSource.
func (t *StressTable) StressBounds(_ context.Context, material string, tempF float64) (*models.MaterialStressPoint, *models.MaterialStressPoint, error) {
	if t == nil {
		return nil, nil, nil
	}
	pts := t.points[materialKey(material)]
	if len(pts) == 0 {
		return nil, nil, nil
	}

	var lower, upper *models.MaterialStressPoint
	for i := range pts {
		pt := pts[i]
		if pt.TempF <= tempF {
			lower = &pt
		}
		if pt.TempF >= tempF && upper == nil {
			upper = &pt
		}
	}
	return lower, upper, nil
}

func materialKey(material string) string {
	return strings.ToUpper(strings.TrimSpace(material))
}
