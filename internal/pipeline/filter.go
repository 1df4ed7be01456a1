package pipeline

import "strings"

// Filter removes rows for administrative units that are not counties
// (forests, parks, game reserves). The exclusion set is enumerated in
// configuration, never inferred from name patterns.
type Filter struct {
	exclusions map[string]struct{}
}

// NewFilter builds a Filter from the configured exclusion names.
func NewFilter(exclusions []string) *Filter {
	set := make(map[string]struct{}, len(exclusions))
	for _, name := range exclusions {
		set[normalizeName(name)] = struct{}{}
	}
	return &Filter{exclusions: set}
}

// Size returns the number of distinct configured exclusions.
func (f *Filter) Size() int { return len(f.exclusions) }

// Apply returns the rows whose county name is not excluded, plus the
// number removed. Matching is case- and whitespace-insensitive.
func (f *Filter) Apply(rows [][]string, m *FieldMapping) (kept [][]string, removed int) {
	kept = make([][]string, 0, len(rows))
	for _, row := range rows {
		name := normalizeName(getCol(row, m, FieldCounty))
		if _, excluded := f.exclusions[name]; excluded {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	return kept, removed
}

// normalizeName uppercases and collapses whitespace for exclusion matching.
func normalizeName(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
