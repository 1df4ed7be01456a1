package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "agristat.db", cfg.Store.DatabaseURL)
	assert.InDelta(t, 3.9, cfg.Clean.HouseholdSizeFactor, 1e-9)
	assert.Len(t, cfg.Filter.Exclusions, 12)
	assert.Contains(t, cfg.Filter.Exclusions, "MAU FOREST")
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
clean:
  household_size_factor: 4.2
filter:
  exclusions:
    - MAU FOREST
pipeline:
  concurrency: 8
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 4.2, cfg.Clean.HouseholdSizeFactor, 1e-9)
	assert.Equal(t, []string{"MAU FOREST"}, cfg.Filter.Exclusions)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AGRISTAT_STORE_DRIVER", "postgres")
	t.Setenv("AGRISTAT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsNonPositiveFactor(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AGRISTAT_CLEAN_HOUSEHOLD_SIZE_FACTOR", "-1")

	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "household_size_factor")
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
