package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanMapping(t *testing.T) *FieldMapping {
	t.Helper()
	m, err := MapHeader([]string{
		"County", "Total Households", "Area (Sq Km)", "Farming",
		"Crop Production", "Livestock Production", "Aquaculture", "Fishing",
		"Population (2019)",
	})
	require.NoError(t, err)
	return m
}

func TestCleaner_ValidRow(t *testing.T) {
	m := cleanMapping(t)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"NAKURU", "1,000", "500.5", "600", "400", "300", "10", "5", "3,900"},
	}, m)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "Nakuru", rec.Name)
	assert.Equal(t, int64(1000), rec.TotalHouseholds)
	assert.Equal(t, 500.5, rec.AreaSqKm)
	assert.Equal(t, int64(600), rec.FarmingHouseholds)
	assert.Equal(t, int64(400), rec.CropHouseholds)
	assert.Equal(t, int64(3900), rec.Population)
	assert.InDelta(t, 3900.0/500.5, rec.PopulationDensity, 1e-9)
	assert.Equal(t, 0, res.MissingCritical+res.NegativeValue+res.Inconsistent)
}

func TestCleaner_MissingCriticalFields(t *testing.T) {
	m := cleanMapping(t)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"", "1000", "500", "1", "1", "1", "0", "0", ""},        // empty name
		{"Nowhere", "", "500", "1", "1", "1", "0", "0", ""},     // missing total
		{"Nowhere", "abc", "500", "1", "1", "1", "0", "0", ""},  // unparseable total
		{"Nowhere", "1000", "", "1", "1", "1", "0", "0", ""},    // missing area
		{"Nowhere", "1000", "0", "1", "1", "1", "0", "0", ""},   // zero area
		{"Nowhere", "0", "500", "0", "0", "0", "0", "0", ""},    // zero total
	}, m)

	assert.Empty(t, res.Records)
	assert.Equal(t, 6, res.MissingCritical)
	assert.Equal(t, 0, res.NegativeValue)
}

func TestCleaner_NegativeValuesDropNotClamp(t *testing.T) {
	m := cleanMapping(t)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"Negtotal", "-5", "500", "1", "1", "1", "0", "0", ""},
		{"Negarea", "1000", "-500", "1", "1", "1", "0", "0", ""},
		{"Negcrop", "1000", "500", "10", "-3", "1", "0", "0", ""},
	}, m)

	assert.Empty(t, res.Records)
	assert.Equal(t, 3, res.NegativeValue)
	assert.Equal(t, 0, res.MissingCritical)
}

func TestCleaner_AgriFieldsDefaultToZero(t *testing.T) {
	m := cleanMapping(t)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"Sparse", "1000", "500", "", "n/a", "", "", "", ""},
	}, m)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, int64(0), rec.FarmingHouseholds)
	assert.Equal(t, int64(0), rec.CropHouseholds)
	assert.Equal(t, int64(0), rec.LivestockHouseholds)
	assert.Equal(t, int64(0), rec.AquacultureHouseholds)
	assert.Equal(t, int64(0), rec.FishingHouseholds)
}

func TestCleaner_FarmingExceedsTotalDropped(t *testing.T) {
	m := cleanMapping(t)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"Impossible", "100", "500", "101", "50", "50", "0", "0", ""},
		{"Boundary", "100", "500", "100", "50", "50", "0", "0", ""},
	}, m)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "Boundary", res.Records[0].Name)
	assert.Equal(t, 1, res.Inconsistent)
}

func TestCleaner_DensityProxyWithoutPopulation(t *testing.T) {
	m := cleanMapping(t)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"Proxy", "1000", "100", "500", "400", "100", "0", "0", ""},
	}, m)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	// round(1000 * 3.9) = 3900 people over 100 sq km
	assert.Equal(t, int64(3900), rec.Population)
	assert.InDelta(t, 39.0, rec.PopulationDensity, 1e-9)
}

func TestCleaner_SourceDensityNeverTrusted(t *testing.T) {
	m, err := MapHeader([]string{
		"County", "Total Households", "Area (Sq Km)", "Farming",
		"Crop Production", "Livestock Production", "Aquaculture", "Fishing",
		"Population (2019)", "Density per Sq Km",
	})
	require.NoError(t, err)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"Checked", "1000", "200", "500", "400", "100", "0", "0", "4000", "999999"},
	}, m)

	require.Len(t, res.Records, 1)
	assert.InDelta(t, 20.0, res.Records[0].PopulationDensity, 1e-9)
}

func TestCleaner_NameNormalization(t *testing.T) {
	m := cleanMapping(t)
	c := NewCleaner(3.9)

	res := c.Clean([][]string{
		{"  UASIN   GISHU ", "1000", "500", "1", "1", "1", "0", "0", ""},
	}, m)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "Uasin Gishu", res.Records[0].Name)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1,234,567", 1234567, true},
		{"1 234", 1234, true},
		{"563.8", 563.8, true},
		{"-42", -42, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
