// Package store loads and saves the YAML files that customise the
// taxonomy and the chart set.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"satimge/satimge-charts/internal/chart"
	"satimge/satimge-charts/internal/fileutils"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/taxonomy"
)

// Default file names.
const (
	DefaultTaxonomyFile = "taxonomy.yaml"
	DefaultChartsFile   = "charts.yaml"
)

// ConfigStore is what the rest of the application needs from the store.
type ConfigStore interface {
	FindConfigFile(filename string) (string, error)
	LoadTaxonomy() (*taxonomy.Overrides, error)
	LoadChartDefinitions() ([]chart.Definition, error)
}

// chartsFile is the layout of charts.yaml.
type chartsFile struct {
	Charts []chart.Definition `yaml:"charts"`
}

// Store manages taxonomy.yaml and charts.yaml.
type Store struct {
	TaxonomyFile string
	ChartsFile   string
	logger       logging.Logger
}

// NewStore creates a store. Empty file names take the defaults.
func NewStore(taxonomyFile, chartsFile string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if taxonomyFile == "" {
		taxonomyFile = DefaultTaxonomyFile
	}
	if chartsFile == "" {
		chartsFile = DefaultChartsFile
	}
	return &Store{TaxonomyFile: taxonomyFile, ChartsFile: chartsFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *Store) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".satimge", filename),
	}
	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}

	// Then the user's ~/.config/satimge/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "satimge", filename)
		if fileutils.FileExists(configPath) {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// readOptional returns the file content, or nil when the file is absent.
func (s *Store) readOptional(filename string) ([]byte, string, error) {
	path, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Optional configuration file not found, using built-ins",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("error resolving %s: %w", filename, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, path, nil
}

// LoadTaxonomy loads taxonomy overrides. A missing file yields empty
// overrides; palette colours are checked while loading.
func (s *Store) LoadTaxonomy() (*taxonomy.Overrides, error) {
	data, path, err := s.readOptional(s.TaxonomyFile)
	if err != nil || data == nil {
		return &taxonomy.Overrides{}, err
	}

	var overrides taxonomy.Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("error parsing taxonomy file %s: %w", path, err)
	}
	for name, swatches := range overrides.Palettes {
		for _, sw := range swatches {
			if _, err := taxonomy.ParseHex(sw.Color); err != nil {
				return nil, fmt.Errorf("palette %s entry %s in %s: %w", name, sw.Name, path, err)
			}
		}
	}

	s.logger.Debug("Loaded taxonomy overrides",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "sector_groups", Value: len(overrides.SectorGroups)},
		logging.Field{Key: "aliases", Value: len(overrides.Aliases)},
		logging.Field{Key: "palettes", Value: len(overrides.Palettes)})
	return &overrides, nil
}

// LoadChartDefinitions loads chart definitions from a "charts:" list, or
// from a bare list. A missing file yields none.
func (s *Store) LoadChartDefinitions() ([]chart.Definition, error) {
	data, path, err := s.readOptional(s.ChartsFile)
	if err != nil || data == nil {
		return nil, err
	}

	var file chartsFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Charts) > 0 {
		s.logger.Debug("Loaded chart definitions",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(file.Charts)})
		return file.Charts, nil
	}

	var defs []chart.Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("error parsing charts file %s: %w", path, err)
	}
	s.logger.Debug("Loaded chart definitions from bare list",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(defs)})
	return defs, nil
}
