package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTable_CSV(t *testing.T) {
	path := writeTempCSV(t, "County,Total Households\nNakuru,1000\nKisumu,2000\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"County", "Total Households"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Nakuru", "1000"}, table.Rows[0])
}

func TestReadTable_RaggedRowsAllowed(t *testing.T) {
	path := writeTempCSV(t, "County,Total Households,Notes\nNakuru,1000\n")

	table, err := ReadTable(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0], 2)
}

func TestReadTable_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	table, err := ReadTable(path)
	assert.Nil(t, table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestReadTable_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "County,Total Households\n")

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}
