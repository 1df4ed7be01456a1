// Package model defines the data types shared across the pipeline.
package model

// RawTable is a tabular record set as read from disk, before any
// normalization. Header labels may be inconsistently cased, spaced,
// or misspelled.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// CountyRecord is the canonical per-county unit produced by the cleaner.
// Immutable once validated: total and area are always present, counts are
// non-negative, farming never exceeds total, and density is recomputed
// rather than trusted from source.
type CountyRecord struct {
	Name                  string  `json:"county"`
	TotalHouseholds       int64   `json:"total_households"`
	AreaSqKm              float64 `json:"area_sq_km"`
	FarmingHouseholds     int64   `json:"farming_households"`
	CropHouseholds        int64   `json:"crop_households"`
	LivestockHouseholds   int64   `json:"livestock_households"`
	AquacultureHouseholds int64   `json:"aquaculture_households"`
	FishingHouseholds     int64   `json:"fishing_households"`

	// Population is the census population when the source carried one,
	// otherwise a proxy derived from total households and the configured
	// household size factor.
	Population        int64   `json:"population"`
	PopulationDensity float64 `json:"population_density"`
}

// MetricRow is a classified county plus its derived policy indicators.
// Both metrics are pure functions of already-validated fields.
type MetricRow struct {
	CountyRecord

	PrimarySector  Sector  `json:"primary_sector"`
	CropIntensity  float64 `json:"crop_intensity"`
	EngagementRate float64 `json:"engagement_rate"`
}
