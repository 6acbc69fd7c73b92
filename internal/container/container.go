// Package container provides dependency injection for the satimge-charts
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"satimge/satimge-charts/internal/assembler"
	"satimge/satimge-charts/internal/chart"
	"satimge/satimge-charts/internal/config"
	"satimge/satimge-charts/internal/dataio"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/report"
	"satimge/satimge-charts/internal/scenario"
	"satimge/satimge-charts/internal/store"
	"satimge/satimge-charts/internal/taxonomy"
	"satimge/satimge-charts/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation; dependencies are only reachable through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.ConfigStore
	codec     *scenario.Codec
	mapper    *taxonomy.Mapper
	io        *dataio.IO
	assembler *assembler.Assembler
	reports   *report.ReportGenerator
	charts    *chart.Generator
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := config.NewLogger(cfg)
	st := store.NewStore(cfg.Taxonomy.File, cfg.Charts.DefinitionsFile, logger)
	return NewContainerWithStore(cfg, st, logger)
}

// NewContainerWithStore wires the container around an existing store and
// logger. Tests use it with store.MockStore and logging.MockLogger.
func NewContainerWithStore(cfg *config.Config, st store.ConfigStore, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	overrides, err := st.LoadTaxonomy()
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	mapper := taxonomy.NewMapper(taxonomy.Options{
		Overrides:     overrides,
		FuzzyCutoff:   cfg.Taxonomy.FuzzyCutoff,
		FallbackLabel: cfg.Taxonomy.FallbackLabel,
	}, logger)

	codec := scenario.NewCodec(cfg.FamilyMode())
	dio := dataio.New(cfg.Delimiter(), logger)

	charts := chart.NewGenerator(mapper, chart.Options{
		OutputDir:  cfg.Charts.OutputDir,
		GalleryDir: cfg.Charts.GalleryDir,
		Formats:    cfg.Charts.Formats,
		WidthIn:    cfg.Charts.WidthIn,
		HeightIn:   cfg.Charts.HeightIn,
		DevMode:    cfg.DevMode,
		EnergyUnit: cfg.EnergyUnit(),
		Delimiter:  cfg.Delimiter(),
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "family_rules", Value: string(codec.Mode())},
		logging.Field{Key: "energy_unit", Value: string(cfg.EnergyUnit())},
		logging.Field{Key: "dev_mode", Value: cfg.DevMode})

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     st,
		codec:     codec,
		mapper:    mapper,
		io:        dio,
		assembler: assembler.New(codec, mapper, logger),
		reports:   report.NewReportGenerator(mapper, logger),
		charts:    charts,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's configuration store.
func (c *Container) GetStore() store.ConfigStore {
	return c.store
}

// GetCodec returns the scenario codec.
func (c *Container) GetCodec() *scenario.Codec {
	return c.codec
}

// GetMapper returns the taxonomy mapper.
func (c *Container) GetMapper() *taxonomy.Mapper {
	return c.mapper
}

// GetIO returns the dataset reader/writer.
func (c *Container) GetIO() *dataio.IO {
	return c.io
}

// GetAssembler returns the dataset assembler.
func (c *Container) GetAssembler() *assembler.Assembler {
	return c.assembler
}

// GetReportGenerator returns the lookups report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetChartGenerator returns the chart generator.
func (c *Container) GetChartGenerator() *chart.Generator {
	return c.charts
}

// GetChartRegistry returns the built-in charts merged with the configured
// definitions file. It is built on demand so that commands not drawing
// charts do not depend on that file.
func (c *Container) GetChartRegistry() (*chart.Registry, error) {
	defs, err := c.store.LoadChartDefinitions()
	if err != nil {
		return nil, fmt.Errorf("failed to load chart definitions: %w", err)
	}
	reg, err := chart.NewRegistry(chart.BuiltinDefinitions(), defs...)
	if err != nil {
		return nil, fmt.Errorf("invalid chart definitions: %w", err)
	}
	return reg, nil
}

// ResolveEnriched returns path when it names a dataset file, or the
// enriched dataset written by the dataset command when path is empty.
func (c *Container) ResolveEnriched(path string) (string, error) {
	if path != "" {
		return path, validation.IsValidDatasetFile(path)
	}
	return dataio.ResolveEnriched(c.config.Dataset.OutputDir, c.config.Dataset.OutputName)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
