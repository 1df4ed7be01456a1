package model

// DropCounts tallies records excluded during cleaning and filtering,
// keyed by reason. Drops are recovered locally and never raised as
// run failures.
type DropCounts struct {
	NonCounty       int `json:"non_county" yaml:"non_county"`
	MissingCritical int `json:"missing_critical" yaml:"missing_critical"`
	NegativeValue   int `json:"negative_value" yaml:"negative_value"`
	Inconsistent    int `json:"inconsistent" yaml:"inconsistent"`
}

// Total returns the number of records dropped for any reason.
func (d DropCounts) Total() int {
	return d.NonCounty + d.MissingCritical + d.NegativeValue + d.Inconsistent
}

// Correlation is the population-level Pearson statistic between engagement
// rate and population density. Defined is false when fewer than two valid
// counties remain (degenerate input) or a vector has zero variance; R and
// PValue are meaningless in that case.
type Correlation struct {
	R       float64 `json:"r" yaml:"r"`
	PValue  float64 `json:"p_value" yaml:"p_value"`
	N       int     `json:"n" yaml:"n"`
	Defined bool    `json:"defined" yaml:"defined"`
}

// RunSummary is the aggregate result of one pipeline run. It is rebuilt
// fresh on every invocation and returned alongside the output table.
// Identifiers are deliberately absent: the same input must serialize to a
// byte-identical summary, so run ids are assigned by the store alone.
type RunSummary struct {
	InputRows        int `json:"input_rows" yaml:"input_rows"`
	CountiesRetained int `json:"counties_retained" yaml:"counties_retained"`

	Dropped         DropCounts `json:"dropped" yaml:"dropped"`
	UnmappedColumns []string   `json:"unmapped_columns,omitempty" yaml:"unmapped_columns,omitempty"`

	// ExclusionMismatch is set when the configured non-county exclusion
	// list size differs from the number of rows actually removed.
	ExclusionsConfigured int  `json:"exclusions_configured" yaml:"exclusions_configured"`
	ExclusionMismatch    bool `json:"exclusion_mismatch" yaml:"exclusion_mismatch"`

	TotalFarmingHouseholds int64          `json:"total_farming_households" yaml:"total_farming_households"`
	AvgHouseholdSize       float64        `json:"avg_household_size" yaml:"avg_household_size"`
	AvgEngagementRate      float64        `json:"avg_engagement_rate" yaml:"avg_engagement_rate"`
	SectorCounts           map[Sector]int `json:"sector_counts" yaml:"sector_counts"`

	Correlation Correlation `json:"engagement_density_correlation" yaml:"engagement_density_correlation"`
}
