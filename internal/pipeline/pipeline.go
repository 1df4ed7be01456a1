package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agrisight/agristat-cli/internal/model"
	"github.com/agrisight/agristat-cli/internal/stats"
)

// Options configures a pipeline run.
type Options struct {
	// HouseholdSizeFactor converts household counts to a population proxy
	// for density recomputation when no population column exists.
	HouseholdSizeFactor float64
	// Exclusions enumerates the non-county administrative unit names.
	Exclusions []string
	// Concurrency bounds the per-county classification/metric fan-out.
	// Values below 1 mean sequential.
	Concurrency int
}

// Result is a complete pipeline output: the cleaned, classified table in
// insertion order plus the run summary. There is no partial state: a run
// either produces both or aborts on a schema error.
type Result struct {
	Rows    []model.MetricRow
	Summary model.RunSummary
}

// Run executes the batch pipeline over a raw table: normalize headers,
// filter non-county rows, clean, classify and derive metrics per county,
// then aggregate. All run-level state lives in the returned summary; the
// same input always yields an identical table and summary.
func Run(ctx context.Context, table model.RawTable, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: run")
	}
	log := zap.L()

	mapping, err := MapHeader(table.Header)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: map header")
	}
	if len(mapping.Unmapped) > 0 {
		log.Warn("pipeline: unmapped columns ignored", zap.Strings("labels", mapping.Unmapped))
	}

	filter := NewFilter(opts.Exclusions)
	kept, removed := filter.Apply(table.Rows, mapping)
	mismatch := removed != filter.Size()
	if mismatch {
		log.Warn("pipeline: exclusion list mismatch",
			zap.Int("configured", filter.Size()),
			zap.Int("removed", removed),
		)
	}

	cleaned := NewCleaner(opts.HouseholdSizeFactor).Clean(kept, mapping)
	log.Info("pipeline: cleaned records",
		zap.Int("input_rows", len(table.Rows)),
		zap.Int("retained", len(cleaned.Records)),
		zap.Int("non_county", removed),
		zap.Int("missing_critical", cleaned.MissingCritical),
		zap.Int("negative_value", cleaned.NegativeValue),
		zap.Int("inconsistent", cleaned.Inconsistent),
	)

	// Classification and metric derivation are independent per county.
	// Results are index-addressed so the fan-out preserves insertion
	// order; aggregation waits on the full barrier.
	rows := make([]model.MetricRow, len(cleaned.Records))
	var g errgroup.Group
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, rec := range cleaned.Records {
		g.Go(func() error {
			sector := Classify(rec.CropHouseholds, rec.LivestockHouseholds,
				rec.AquacultureHouseholds, rec.FishingHouseholds)
			rows[i] = deriveMetrics(rec, sector)
			return nil
		})
	}
	_ = g.Wait()

	engagement := make([]float64, len(rows))
	density := make([]float64, len(rows))
	for i, row := range rows {
		engagement[i] = row.EngagementRate
		density[i] = row.PopulationDensity
	}
	corr := stats.Pearson(engagement, density)
	if !corr.Defined {
		log.Warn("pipeline: correlation undefined", zap.Int("counties", len(rows)))
	}

	summary := Aggregate(rows)
	summary.InputRows = len(table.Rows)
	summary.Dropped = model.DropCounts{
		NonCounty:       removed,
		MissingCritical: cleaned.MissingCritical,
		NegativeValue:   cleaned.NegativeValue,
		Inconsistent:    cleaned.Inconsistent,
	}
	summary.UnmappedColumns = mapping.Unmapped
	summary.ExclusionsConfigured = filter.Size()
	summary.ExclusionMismatch = mismatch
	summary.Correlation = corr

	return &Result{Rows: rows, Summary: summary}, nil
}
