package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisight/agristat-cli/internal/model"
)

func TestDeriveMetrics_CropIntensity(t *testing.T) {
	rec := model.CountyRecord{
		Name:              "Dense",
		TotalHouseholds:   150000,
		AreaSqKm:          563.8,
		FarmingHouseholds: 90000,
		CropHouseholds:    108522,
	}

	row := deriveMetrics(rec, model.SectorCropDominant)
	assert.InDelta(t, 192.48, row.CropIntensity, 0.01)
	assert.InDelta(t, 60.0, row.EngagementRate, 1e-9)
}

func TestDeriveMetrics_EngagementBounds(t *testing.T) {
	tests := []struct {
		name           string
		farming, total int64
		want           float64
	}{
		{"nobody farms", 0, 1000, 0},
		{"everybody farms", 1000, 1000, 100},
		{"half farm", 500, 1000, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.CountyRecord{
				Name:              "X",
				TotalHouseholds:   tt.total,
				AreaSqKm:          1,
				FarmingHouseholds: tt.farming,
			}
			row := deriveMetrics(rec, model.SectorMixedAgriculture)
			assert.InDelta(t, tt.want, row.EngagementRate, 1e-9)
			assert.GreaterOrEqual(t, row.EngagementRate, 0.0)
			assert.LessOrEqual(t, row.EngagementRate, 100.0)
		})
	}
}

func metricRow(name string, intensity float64) model.MetricRow {
	return model.MetricRow{
		CountyRecord:  model.CountyRecord{Name: name},
		CropIntensity: intensity,
	}
}

func TestTopBy_OrderAndTruncation(t *testing.T) {
	rows := []model.MetricRow{
		metricRow("Low", 1),
		metricRow("High", 100),
		metricRow("Mid", 50),
	}

	top := TopBy(rows, MetricCropIntensity, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "High", top[0].Name)
	assert.Equal(t, "Mid", top[1].Name)
}

func TestTopBy_TiesBreakByName(t *testing.T) {
	rows := []model.MetricRow{
		metricRow("Zebra", 50),
		metricRow("Alpha", 50),
		metricRow("Mango", 50),
	}

	top := TopBy(rows, MetricCropIntensity, 0)
	require.Len(t, top, 3)
	assert.Equal(t, "Alpha", top[0].Name)
	assert.Equal(t, "Mango", top[1].Name)
	assert.Equal(t, "Zebra", top[2].Name)
}

func TestTopBy_DoesNotMutateInput(t *testing.T) {
	rows := []model.MetricRow{
		metricRow("B", 1),
		metricRow("A", 2),
	}

	_ = TopBy(rows, MetricCropIntensity, 1)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "A", rows[1].Name)
}

func TestMetric_Valid(t *testing.T) {
	for _, m := range Metrics {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, Metric("bogus").Valid())
}
