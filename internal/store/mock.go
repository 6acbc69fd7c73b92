package store

import (
	"satimge/satimge-charts/internal/chart"
	"satimge/satimge-charts/internal/taxonomy"
)

// MockStore is a ConfigStore for tests.
type MockStore struct {
	Overrides *taxonomy.Overrides
	Charts    []chart.Definition

	// Error flags for testing error conditions
	LoadTaxonomyError error
	LoadChartsError   error
}

var _ ConfigStore = (*MockStore)(nil)

// FindConfigFile returns a dummy path.
func (m *MockStore) FindConfigFile(filename string) (string, error) {
	return "/mock/path/" + filename, nil
}

// LoadTaxonomy returns the mock overrides.
func (m *MockStore) LoadTaxonomy() (*taxonomy.Overrides, error) {
	if m.LoadTaxonomyError != nil {
		return nil, m.LoadTaxonomyError
	}
	if m.Overrides == nil {
		return &taxonomy.Overrides{}, nil
	}
	return m.Overrides, nil
}

// LoadChartDefinitions returns the mock definitions.
func (m *MockStore) LoadChartDefinitions() ([]chart.Definition, error) {
	if m.LoadChartsError != nil {
		return nil, m.LoadChartsError
	}
	return m.Charts, nil
}
