package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/OilBro/api-510-inspection-manager/internal/models"
	"github.com/OilBro/api-510-inspection-manager/internal/utils"
)

// PostgresStore provides inspection data access and result persistence on a
// Postgres database. It implements the pipeline's InspectionSource,
// ResultStore, and StressSource contracts.
type PostgresStore struct {
	db *sql.DB
}

// Open connects to Postgres using the provided DSN and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, utils.NewAppError("repo.Open", "open database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, utils.NewAppError("repo.Open", "ping database", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// VesselDesign loads the design record for the vessel under inspection.
func (s *PostgresStore) VesselDesign(ctx context.Context, inspectionID string) (models.VesselDesign, error) {
	const query = `
		SELECT v.vessel_id, v.design_pressure_psi, v.design_temp_f,
		       v.inside_diameter_in, v.material, v.allowable_stress_psi,
		       v.joint_efficiency, v.nominal_thickness_in, v.head_type,
		       i.inspection_date, i.prev_inspection_date,
		       COALESCE(v.total_service_years, 0)
		FROM inspections i
		JOIN vessels v ON v.vessel_id = i.vessel_id
		WHERE i.inspection_id = $1`

	var design models.VesselDesign
	var headType string
	var inspectionDate, prevDate sql.NullTime
	err := s.db.QueryRowContext(ctx, query, inspectionID).Scan(
		&design.VesselID,
		&design.DesignPressurePSI,
		&design.DesignTempF,
		&design.InsideDiameterIn,
		&design.Material,
		&design.AllowableStress,
		&design.JointEfficiency,
		&design.NominalThickness,
		&headType,
		&inspectionDate,
		&prevDate,
		&design.TotalServiceYears,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.VesselDesign{}, fmt.Errorf("inspection %s not found", inspectionID)
		}
		return models.VesselDesign{}, utils.NewAppError("repo.VesselDesign", "query vessel design", err)
	}
	design.HeadType = models.HeadType(headType)
	if inspectionDate.Valid {
		design.InspectionDate = inspectionDate.Time
	}
	if prevDate.Valid {
		design.PrevInspectionDate = prevDate.Time
	}
	return design, nil
}

// Readings loads the thickness reading set taken during the inspection.
func (s *PostgresStore) Readings(ctx context.Context, inspectionID string) ([]models.ThicknessReading, error) {
	const query = `
		SELECT location, component_kind, component_name, COALESCE(nozzle_id, ''),
		       COALESCE(angle_1, 0), COALESCE(angle_2, 0),
		       COALESCE(angle_3, 0), COALESCE(angle_4, 0),
		       COALESCE(actual_in, 0), COALESCE(previous_in, 0),
		       COALESCE(nominal_in, 0), COALESCE(minimum_in, 0)
		FROM thickness_readings
		WHERE inspection_id = $1
		ORDER BY location`

	rows, err := s.db.QueryContext(ctx, query, inspectionID)
	if err != nil {
		return nil, utils.NewAppError("repo.Readings", "query readings", err)
	}
	defer rows.Close()

	var readings []models.ThicknessReading
	for rows.Next() {
		var r models.ThicknessReading
		var kind, name, nozzleID string
		if err := rows.Scan(
			&r.Location, &kind, &name, &nozzleID,
			&r.AngleReadings[0], &r.AngleReadings[1],
			&r.AngleReadings[2], &r.AngleReadings[3],
			&r.ActualThickness, &r.PreviousThickness,
			&r.NominalThickness, &r.MinimumThickness,
		); err != nil {
			return nil, utils.NewAppError("repo.Readings", "scan reading", err)
		}
		r.Component = models.Component{
			Kind:     models.ComponentKind(kind),
			Name:     name,
			NozzleID: nozzleID,
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// Nozzles loads the tracked nozzle records for the inspected vessel.
func (s *PostgresStore) Nozzles(ctx context.Context, inspectionID string) ([]models.NozzleRecord, error) {
	const query = `
		SELECT n.nozzle_id, n.nominal_pipe_size,
		       COALESCE(n.joint_efficiency, 0),
		       COALESCE(n.actual_in, 0), COALESCE(n.previous_in, 0),
		       COALESCE(n.nominal_in, 0)
		FROM nozzles n
		JOIN inspections i ON i.vessel_id = n.vessel_id
		WHERE i.inspection_id = $1
		ORDER BY n.nozzle_id`

	rows, err := s.db.QueryContext(ctx, query, inspectionID)
	if err != nil {
		return nil, utils.NewAppError("repo.Nozzles", "query nozzles", err)
	}
	defer rows.Close()

	var nozzles []models.NozzleRecord
	for rows.Next() {
		var n models.NozzleRecord
		if err := rows.Scan(
			&n.NozzleID, &n.NominalPipeSize, &n.JointEfficiency,
			&n.ActualThickness, &n.PreviousThickness, &n.NominalThickness,
		); err != nil {
			return nil, utils.NewAppError("repo.Nozzles", "scan nozzle", err)
		}
		nozzles = append(nozzles, n)
	}
	return nozzles, rows.Err()
}

// ReplaceResults swaps the inspection's result set in a single transaction,
// keeping exactly one live result per component even if a run fails partway.
func (s *PostgresStore) ReplaceResults(ctx context.Context, inspectionID string, results []models.CalculationResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return utils.NewAppError("repo.ReplaceResults", "begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM component_results WHERE inspection_id = $1`, inspectionID); err != nil {
		return utils.NewAppError("repo.ReplaceResults", "clear prior results", err)
	}

	const insert = `
		INSERT INTO component_results (
			inspection_id, component_kind, component_name, nozzle_id,
			minimum_thickness_in, mawp_psi,
			long_term_rate, short_term_rate, governing_rate,
			rate_tag, rate_rationale,
			remaining_life_years, interval_years, next_inspection_date,
			below_minimum, status, status_detail, calculated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`

	for _, res := range results {
		if _, err := tx.ExecContext(ctx, insert,
			inspectionID,
			string(res.Component.Kind), res.Component.Name, res.Component.NozzleID,
			res.MinimumThickness, res.MAWP,
			res.LongTermRate, res.ShortTermRate, res.GoverningRate,
			string(res.RateTag), res.RateRationale,
			res.RemainingLifeYears, res.IntervalYears, res.NextInspectionDate,
			res.BelowMinimum, string(res.Status), res.StatusDetail, res.CalculatedAt,
		); err != nil {
			return utils.NewAppError("repo.ReplaceResults", fmt.Sprintf("insert result for %s", res.Component.Name), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError("repo.ReplaceResults", "commit", err)
	}
	return nil
}

// StressBounds returns the tabulated points bracketing the target
// temperature for the material, either of which may be absent.
func (s *PostgresStore) StressBounds(ctx context.Context, material string, tempF float64) (*models.MaterialStressPoint, *models.MaterialStressPoint, error) {
	lower, err := s.stressBound(ctx,
		`SELECT material, temperature_f, allowable_stress_psi
		 FROM material_stress_points
		 WHERE UPPER(material) = UPPER($1) AND temperature_f <= $2
		 ORDER BY temperature_f DESC LIMIT 1`, material, tempF)
	if err != nil {
		return nil, nil, err
	}
	upper, err := s.stressBound(ctx,
		`SELECT material, temperature_f, allowable_stress_psi
		 FROM material_stress_points
		 WHERE UPPER(material) = UPPER($1) AND temperature_f >= $2
		 ORDER BY temperature_f ASC LIMIT 1`, material, tempF)
	if err != nil {
		return nil, nil, err
	}
	return lower, upper, nil
}

func (s *PostgresStore) stressBound(ctx context.Context, query, material string, tempF float64) (*models.MaterialStressPoint, error) {
	var pt models.MaterialStressPoint
	err := s.db.QueryRowContext(ctx, query, material, tempF).Scan(&pt.Material, &pt.TempF, &pt.AllowStress)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, utils.NewAppError("repo.StressBounds", "query stress point", err)
	}
	return &pt, nil
}

// NotifyCriticality appends the batched criticality alert for audit,
// letting the store participate in the pipeline's notifier fan-out.
func (s *PostgresStore) NotifyCriticality(ctx context.Context, alert models.CriticalityAlert) error {
	const insert = `
		INSERT INTO criticality_alerts (vessel_id, components, raised_at)
		VALUES ($1, $2, $3)`
	raisedAt := alert.RaisedAt
	if raisedAt.IsZero() {
		raisedAt = time.Now().UTC()
	}
	if _, err := s.db.ExecContext(ctx, insert, alert.VesselID, strings.Join(alert.Components, ","), raisedAt); err != nil {
		return utils.NewAppError("repo.NotifyCriticality", "insert alert", err)
	}
	return nil
}
