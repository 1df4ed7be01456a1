package pipeline

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agrisight/agristat-cli/internal/model"
)

// Cleaner repairs data-quality defects in the filtered record set. Steps
// run in a fixed order: critical-field drops, agricultural-field zero
// defaults, type coercion, non-negativity validation, and density
// recomputation. Every exclusion is counted by reason.
type Cleaner struct {
	factor float64
	titler cases.Caser
}

// NewCleaner returns a Cleaner using the given household-to-population
// factor for the density proxy when no population column is present.
func NewCleaner(householdSizeFactor float64) *Cleaner {
	return &Cleaner{
		factor: householdSizeFactor,
		titler: cases.Title(language.English),
	}
}

// CleanResult holds the validated records plus per-reason drop counts.
type CleanResult struct {
	Records         []model.CountyRecord
	MissingCritical int
	NegativeValue   int
	Inconsistent    int
}

// agriFields are the per-record agricultural counts that default to zero
// when absent or unparseable.
var agriFields = []string{
	FieldFarming,
	FieldCrop,
	FieldLivestock,
	FieldAquaculture,
	FieldFishing,
}

// Clean validates rows into immutable CountyRecords, preserving input
// order. Records are dropped for missing critical fields, negative values,
// or a farming count exceeding the household total; negative values are
// never clamped to zero.
func (c *Cleaner) Clean(rows [][]string, m *FieldMapping) CleanResult {
	res := CleanResult{Records: make([]model.CountyRecord, 0, len(rows))}

	for _, row := range rows {
		rec, reason := c.cleanRow(row, m)
		switch reason {
		case dropNone:
			res.Records = append(res.Records, rec)
		case dropMissingCritical:
			res.MissingCritical++
		case dropNegativeValue:
			res.NegativeValue++
		case dropInconsistent:
			res.Inconsistent++
		}
	}

	return res
}

type dropReason int

const (
	dropNone dropReason = iota
	dropMissingCritical
	dropNegativeValue
	dropInconsistent
)

func (c *Cleaner) cleanRow(row []string, m *FieldMapping) (model.CountyRecord, dropReason) {
	var rec model.CountyRecord

	rec.Name = c.countyName(getCol(row, m, FieldCounty))
	if rec.Name == "" {
		return rec, dropMissingCritical
	}

	total, ok := parseNumber(getCol(row, m, FieldTotalHouseholds))
	if !ok {
		return rec, dropMissingCritical
	}
	if total < 0 {
		return rec, dropNegativeValue
	}
	rec.TotalHouseholds = int64(math.Round(total))

	area, ok := parseNumber(getCol(row, m, FieldAreaSqKm))
	if !ok || area == 0 {
		return rec, dropMissingCritical
	}
	if area < 0 {
		return rec, dropNegativeValue
	}
	rec.AreaSqKm = area

	// total_households = 0 makes the engagement rate undefined; the record
	// cannot reach the metric stage.
	if rec.TotalHouseholds == 0 {
		return rec, dropMissingCritical
	}

	counts := make(map[string]int64, len(agriFields))
	for _, field := range agriFields {
		v, ok := parseNumber(getCol(row, m, field))
		if !ok {
			counts[field] = 0 // absent or unparseable: no reported activity
			continue
		}
		if v < 0 {
			return rec, dropNegativeValue
		}
		counts[field] = int64(math.Round(v))
	}
	rec.FarmingHouseholds = counts[FieldFarming]
	rec.CropHouseholds = counts[FieldCrop]
	rec.LivestockHouseholds = counts[FieldLivestock]
	rec.AquacultureHouseholds = counts[FieldAquaculture]
	rec.FishingHouseholds = counts[FieldFishing]

	if rec.FarmingHouseholds > rec.TotalHouseholds {
		return rec, dropInconsistent
	}

	// Density is always recomputed; the source density column is never
	// trusted. Prefer a real population figure, fall back to the
	// household-count proxy.
	pop := int64(0)
	if v, ok := parseNumber(getCol(row, m, FieldPopulation)); ok && v > 0 {
		pop = int64(math.Round(v))
	} else {
		pop = int64(math.Round(float64(rec.TotalHouseholds) * c.factor))
	}
	rec.Population = pop
	rec.PopulationDensity = float64(pop) / rec.AreaSqKm

	return rec, dropNone
}

// countyName trims, collapses whitespace, and title-cases a raw name.
func (c *Cleaner) countyName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return c.titler.String(strings.ToLower(s))
}

// parseNumber parses a numeric field from its raw textual form, tolerating
// thousands separators. Returns ok=false when the value is absent or does
// not parse as a number, in which case the missing-value policy applies.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
