package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"satimge/satimge-charts/internal/dataio"
	"satimge/satimge-charts/internal/emissions"
	"satimge/satimge-charts/internal/scenario"
)

// EnvPrefix prefixes every environment override, e.g. SATIMGE_LOG_LEVEL.
const EnvPrefix = "SATIMGE"

// Config represents the complete application configuration
type Config struct {
	DevMode bool `mapstructure:"dev_mode" yaml:"dev_mode"`

	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Dataset struct {
		RawPath         string   `mapstructure:"raw_path" yaml:"raw_path"`
		SetsAndMapsPath string   `mapstructure:"setsandmaps_path" yaml:"setsandmaps_path"`
		OutputDir       string   `mapstructure:"output_dir" yaml:"output_dir"`
		OutputName      string   `mapstructure:"output_name" yaml:"output_name"`
		Formats         []string `mapstructure:"formats" yaml:"formats"`
		EnergyUnit      string   `mapstructure:"energy_unit" yaml:"energy_unit"`
	} `mapstructure:"dataset" yaml:"dataset"`

	Scenario struct {
		FamilyRules string `mapstructure:"family_rules" yaml:"family_rules"`
	} `mapstructure:"scenario" yaml:"scenario"`

	Taxonomy struct {
		File          string  `mapstructure:"file" yaml:"file"`
		FuzzyCutoff   float64 `mapstructure:"fuzzy_cutoff" yaml:"fuzzy_cutoff"`
		FallbackLabel string  `mapstructure:"fallback_label" yaml:"fallback_label"`
	} `mapstructure:"taxonomy" yaml:"taxonomy"`

	Charts struct {
		Include         []string `mapstructure:"include" yaml:"include"`
		DefinitionsFile string   `mapstructure:"definitions_file" yaml:"definitions_file"`
		OutputDir       string   `mapstructure:"output_dir" yaml:"output_dir"`
		GalleryDir      string   `mapstructure:"gallery_dir" yaml:"gallery_dir"`
		Formats         []string `mapstructure:"formats" yaml:"formats"`
		WidthIn         float64  `mapstructure:"width_in" yaml:"width_in"`
		HeightIn        float64  `mapstructure:"height_in" yaml:"height_in"`
	} `mapstructure:"charts" yaml:"charts"`

	Lookups struct {
		OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
		Format    string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"lookups" yaml:"lookups"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// EnergyUnit returns the validated energy unit.
func (c *Config) EnergyUnit() emissions.EnergyUnit {
	u, err := emissions.ParseEnergyUnit(c.Dataset.EnergyUnit)
	if err != nil {
		return emissions.DefaultEnergyUnit
	}
	return u
}

// FamilyMode returns the validated scenario decoding mode.
func (c *Config) FamilyMode() scenario.Mode {
	m, err := scenario.ParseMode(c.Scenario.FamilyRules)
	if err != nil {
		return scenario.ModeToken
	}
	return m
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading. configFile, when set, replaces the search for config.yaml.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.satimge")
		v.AddConfigPath(".satimge")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The plain LOG_LEVEL/LOG_FORMAT variables are honoured too
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("dev_mode", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("dataset.raw_path", "data/raw/REPORT_00.csv")
	v.SetDefault("dataset.setsandmaps_path", "")
	v.SetDefault("dataset.output_dir", "data/processed")
	v.SetDefault("dataset.output_name", "processed_dataset")
	v.SetDefault("dataset.formats", []string{"csv", "parquet"})
	v.SetDefault("dataset.energy_unit", string(emissions.DefaultEnergyUnit))

	v.SetDefault("scenario.family_rules", string(scenario.ModeToken))

	v.SetDefault("taxonomy.file", "taxonomy.yaml")
	v.SetDefault("taxonomy.fuzzy_cutoff", 0.3)
	v.SetDefault("taxonomy.fallback_label", "Other")

	v.SetDefault("charts.include", []string{})
	v.SetDefault("charts.definitions_file", "charts.yaml")
	v.SetDefault("charts.output_dir", "outputs/charts_and_data")
	v.SetDefault("charts.gallery_dir", "outputs/gallery/high_res")
	v.SetDefault("charts.formats", []string{"png"})
	v.SetDefault("charts.width_in", 12.0)
	v.SetDefault("charts.height_in", 7.0)

	v.SetDefault("lookups.output_dir", "outputs/lookups")
	v.SetDefault("lookups.format", "json")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if len(config.Dataset.Formats) == 0 {
		return fmt.Errorf("dataset.formats must name at least one format")
	}
	for _, f := range config.Dataset.Formats {
		if _, err := dataio.ParseFormat(f); err != nil {
			return fmt.Errorf("dataset.formats: %w", err)
		}
	}

	if _, err := emissions.ParseEnergyUnit(config.Dataset.EnergyUnit); err != nil {
		return fmt.Errorf("dataset.energy_unit: %w", err)
	}

	if _, err := scenario.ParseMode(config.Scenario.FamilyRules); err != nil {
		return fmt.Errorf("scenario.family_rules: %w", err)
	}

	if config.Taxonomy.FuzzyCutoff <= 0.0 || config.Taxonomy.FuzzyCutoff > 1.0 {
		return fmt.Errorf("taxonomy.fuzzy_cutoff must be in (0, 1], got: %f", config.Taxonomy.FuzzyCutoff)
	}

	for _, f := range config.Charts.Formats {
		if f != "png" && f != "svg" {
			return fmt.Errorf("charts.formats: unsupported format %s (must be 'png' or 'svg')", f)
		}
	}
	if config.Charts.WidthIn <= 0 || config.Charts.HeightIn <= 0 {
		return fmt.Errorf("charts.width_in and charts.height_in must be positive")
	}

	if config.Lookups.Format != "json" && config.Lookups.Format != "yaml" {
		return fmt.Errorf("invalid lookups format: %s (must be 'json' or 'yaml')", config.Lookups.Format)
	}

	return nil
}
