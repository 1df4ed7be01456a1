// Package pipeline implements the county statistics batch pipeline:
// header normalization, non-county filtering, cleaning, sector
// classification, metric derivation, and summary aggregation.
package pipeline

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Canonical field names produced by header normalization.
const (
	FieldCounty            = "county"
	FieldTotalHouseholds   = "total_households"
	FieldAreaSqKm          = "area_sq_km"
	FieldFarming           = "farming_households"
	FieldCrop              = "crop_households"
	FieldLivestock         = "livestock_households"
	FieldAquaculture       = "aquaculture_households"
	FieldFishing           = "fishing_households"
	FieldPopulation        = "population"
	FieldPopulationDensity = "population_density"
)

// Fields lists the canonical fields in output order.
var Fields = []string{
	FieldCounty,
	FieldTotalHouseholds,
	FieldAreaSqKm,
	FieldFarming,
	FieldCrop,
	FieldLivestock,
	FieldAquaculture,
	FieldFishing,
	FieldPopulation,
	FieldPopulationDensity,
}

// requiredFields must each match at least one input column; classification
// and metrics cannot run without them.
var requiredFields = []string{
	FieldCounty,
	FieldTotalHouseholds,
	FieldAreaSqKm,
	FieldFarming,
	FieldCrop,
	FieldLivestock,
	FieldAquaculture,
	FieldFishing,
}

// labelVariants maps normalized input labels to canonical field names.
// Keys are lowercased with collapsed whitespace and the known
// "houshold" misspelling already repaired.
var labelVariants = map[string]string{
	"county":                 FieldCounty,
	"counties":               FieldCounty,
	"county name":            FieldCounty,
	"total households":       FieldTotalHouseholds,
	"households":             FieldTotalHouseholds,
	"area sq km":             FieldAreaSqKm,
	"area (sq km)":           FieldAreaSqKm,
	"area":                   FieldAreaSqKm,
	"farming":                FieldFarming,
	"farming households":     FieldFarming,
	"crop production":        FieldCrop,
	"crop":                   FieldCrop,
	"crop households":        FieldCrop,
	"livestock production":   FieldLivestock,
	"livestock":              FieldLivestock,
	"livestock households":   FieldLivestock,
	"aquaculture":            FieldAquaculture,
	"aquaculture households": FieldAquaculture,
	"fishing":                FieldFishing,
	"fishing households":     FieldFishing,
	"population":             FieldPopulation,
	"population (2019)":      FieldPopulation,
	"population 2019":        FieldPopulation,
	"density per sq km":      FieldPopulationDensity,
	"density":                FieldPopulationDensity,
	"population density":     FieldPopulationDensity,
}

// FieldMapping is the result of header normalization: canonical field name
// to column index, plus the labels that matched nothing.
type FieldMapping struct {
	Columns  map[string]int
	Unmapped []string
}

// normalizeLabel lowercases, collapses internal/leading/trailing whitespace,
// and repairs the documented "HOUSHOLDS" misspelling.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	s = strings.ReplaceAll(s, "houshold", "household")
	return s
}

// MapHeader maps raw column labels to canonical field names. The first
// label matching a canonical field wins; unrecognized labels are carried
// in Unmapped. A required field with no match is a schema error: the run
// must abort before processing any record.
func MapHeader(header []string) (*FieldMapping, error) {
	m := &FieldMapping{Columns: make(map[string]int, len(header))}

	for i, label := range header {
		canonical, ok := labelVariants[normalizeLabel(label)]
		if !ok {
			m.Unmapped = append(m.Unmapped, label)
			continue
		}
		if _, dup := m.Columns[canonical]; dup {
			continue
		}
		m.Columns[canonical] = i
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := m.Columns[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("normalize: required fields not matched by any column: %s", strings.Join(missing, ", "))
	}

	return m, nil
}

// getCol gets a column value by canonical field name from a row, returning
// empty string if the field is unmapped or the row is short.
func getCol(row []string, m *FieldMapping, field string) string {
	idx, ok := m.Columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
