package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterMapping(t *testing.T) *FieldMapping {
	t.Helper()
	m, err := MapHeader([]string{
		"County", "Total Households", "Area (Sq Km)", "Farming",
		"Crop Production", "Livestock Production", "Aquaculture", "Fishing",
	})
	require.NoError(t, err)
	return m
}

func TestFilter_RemovesExcludedNames(t *testing.T) {
	m := filterMapping(t)
	f := NewFilter([]string{"MAU FOREST", "NAIROBI NATIONAL PARK"})

	rows := [][]string{
		{"Nakuru", "100", "10", "50", "40", "30", "0", "0"},
		{"Mau Forest", "0", "1", "0", "0", "0", "0", "0"},
		{"  nairobi  national  park ", "0", "1", "0", "0", "0", "0", "0"},
		{"Kisumu", "200", "20", "90", "70", "40", "5", "20"},
	}

	kept, removed := f.Apply(rows, m)
	assert.Equal(t, 2, removed)
	require.Len(t, kept, 2)
	assert.Equal(t, "Nakuru", kept[0][0])
	assert.Equal(t, "Kisumu", kept[1][0])
}

func TestFilter_NoPatternMatching(t *testing.T) {
	// Only enumerated names are removed. A name that merely looks like a
	// forest stays.
	m := filterMapping(t)
	f := NewFilter([]string{"MAU FOREST"})

	rows := [][]string{
		{"Kakamega Forest", "10", "5", "2", "1", "1", "0", "0"},
	}

	kept, removed := f.Apply(rows, m)
	assert.Equal(t, 0, removed)
	assert.Len(t, kept, 1)
}

func TestFilter_SizeDeduplicates(t *testing.T) {
	f := NewFilter([]string{"MAU FOREST", "mau forest", " Mau  Forest "})
	assert.Equal(t, 1, f.Size())
}

func TestFilter_EmptyExclusions(t *testing.T) {
	m := filterMapping(t)
	f := NewFilter(nil)

	rows := [][]string{{"Nakuru", "100", "10", "50", "40", "30", "0", "0"}}
	kept, removed := f.Apply(rows, m)
	assert.Equal(t, 0, removed)
	assert.Len(t, kept, 1)
	assert.Equal(t, 0, f.Size())
}
