package pipeline

import (
	"sort"

	"github.com/agrisight/agristat-cli/internal/model"
)

// Metric identifies a rankable per-county indicator.
type Metric string

const (
	MetricCropIntensity     Metric = "crop_intensity"
	MetricEngagementRate    Metric = "engagement_rate"
	MetricPopulationDensity Metric = "population_density"
)

// Metrics lists the rankable indicators.
var Metrics = []Metric{MetricCropIntensity, MetricEngagementRate, MetricPopulationDensity}

// Valid reports whether m names a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricCropIntensity, MetricEngagementRate, MetricPopulationDensity:
		return true
	}
	return false
}

// deriveMetrics builds a MetricRow from a validated record and its sector.
// Both indicators are pure functions of cleaned fields: the cleaner
// guarantees area > 0, total > 0, and farming <= total, so crop intensity
// is finite and the engagement rate lands in [0, 100].
func deriveMetrics(rec model.CountyRecord, sector model.Sector) model.MetricRow {
	return model.MetricRow{
		CountyRecord:   rec,
		PrimarySector:  sector,
		CropIntensity:  float64(rec.CropHouseholds) / rec.AreaSqKm,
		EngagementRate: float64(rec.FarmingHouseholds) / float64(rec.TotalHouseholds) * 100,
	}
}

// metricValue extracts the named metric from a row.
func metricValue(row model.MetricRow, m Metric) float64 {
	switch m {
	case MetricCropIntensity:
		return row.CropIntensity
	case MetricEngagementRate:
		return row.EngagementRate
	default:
		return row.PopulationDensity
	}
}

// TopBy returns the k rows with the largest values of the given metric,
// descending, ties broken by county name ascending. The input is not
// mutated; the ordering is reproducible across runs.
func TopBy(rows []model.MetricRow, m Metric, k int) []model.MetricRow {
	ranked := make([]model.MetricRow, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := metricValue(ranked[i], m), metricValue(ranked[j], m)
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Name < ranked[j].Name
	})

	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
