package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Clean    CleanConfig    `yaml:"clean" mapstructure:"clean"`
	Filter   FilterConfig   `yaml:"filter" mapstructure:"filter"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the optional run-result store.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// CleanConfig configures the cleaning stage.
type CleanConfig struct {
	// HouseholdSizeFactor converts household counts to a population proxy
	// when the source table carries no population column. The default is
	// the 2019 census national mean household size.
	HouseholdSizeFactor float64 `yaml:"household_size_factor" mapstructure:"household_size_factor"`
}

// FilterConfig configures the non-county record filter.
type FilterConfig struct {
	// Exclusions enumerates administrative-unit names that are not
	// counties. Matching is case- and whitespace-insensitive.
	Exclusions []string `yaml:"exclusions" mapstructure:"exclusions"`
}

// PipelineConfig configures pipeline execution.
type PipelineConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// defaultExclusions lists the gazetted forest, park, and reserve entries
// that appear alongside county rows in the census household table.
var defaultExclusions = []string{
	"ABERDARE FOREST",
	"ARABUKO SOKOKE FOREST",
	"KAKAMEGA FOREST",
	"MARSABIT NATIONAL PARK",
	"MAU FOREST",
	"MERU NATIONAL PARK",
	"MT. KENYA FOREST",
	"NAIROBI NATIONAL PARK",
	"SHIMBA HILLS NATIONAL RESERVE",
	"SIBILOI NATIONAL PARK",
	"TSAVO EAST NATIONAL PARK",
	"TSAVO WEST NATIONAL PARK",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AGRISTAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "agristat.db")
	v.SetDefault("clean.household_size_factor", 3.9)
	v.SetDefault("filter.exclusions", defaultExclusions)
	v.SetDefault("pipeline.concurrency", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if cfg.Clean.HouseholdSizeFactor <= 0 {
		return nil, eris.Errorf("config: household_size_factor must be positive, got %v", cfg.Clean.HouseholdSizeFactor)
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
