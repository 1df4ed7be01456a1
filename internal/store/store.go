// Package store persists pipeline run results for later reporting.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agrisight/agristat-cli/internal/model"
)

// RunRef identifies a stored run.
type RunRef struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for pipeline runs. Persistence
// is optional and strictly downstream: the pipeline itself is stateless.
type Store interface {
	// SaveRun stores the output table and summary, returning the new run id.
	SaveRun(ctx context.Context, rows []model.MetricRow, summary model.RunSummary) (string, error)
	// GetSummary loads a stored run summary by id.
	GetSummary(ctx context.Context, runID string) (*model.RunSummary, error)
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunRef, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Pool is the subset of pgxpool.Pool used by the Postgres store. pgxmock
// satisfies it for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Ping(ctx context.Context) error
	Close()
}

// countyColumns lists the run_counties columns in insert order.
var countyColumns = []string{
	"run_id",
	"position",
	"county",
	"total_households",
	"area_sq_km",
	"farming_households",
	"crop_households",
	"livestock_households",
	"aquaculture_households",
	"fishing_households",
	"population",
	"population_density",
	"primary_sector",
	"crop_intensity",
	"engagement_rate",
}

// countyValues flattens a metric row for insertion.
func countyValues(runID string, position int, r model.MetricRow) []any {
	return []any{
		runID,
		position,
		r.Name,
		r.TotalHouseholds,
		r.AreaSqKm,
		r.FarmingHouseholds,
		r.CropHouseholds,
		r.LivestockHouseholds,
		r.AquacultureHouseholds,
		r.FishingHouseholds,
		r.Population,
		r.PopulationDensity,
		string(r.PrimarySector),
		r.CropIntensity,
		r.EngagementRate,
	}
}
