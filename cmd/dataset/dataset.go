// Package dataset builds the enriched dataset from a raw results extract.
package dataset

import (
	"fmt"
	"path/filepath"

	"satimge/satimge-charts/cmd/root"
	"satimge/satimge-charts/internal/config"
	"satimge/satimge-charts/internal/container"
	"satimge/satimge-charts/internal/dataio"
	"satimge/satimge-charts/internal/fileutils"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/setsandmaps"
	"satimge/satimge-charts/internal/validation"

	"github.com/spf13/cobra"
)

// Options controls one dataset build.
type Options struct {
	Input       string
	SetsAndMaps string
	OutputDir   string
	OutputName  string
	Formats     []string
}

// OptionsFromConfig returns the options configured in the dataset section.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Input:       cfg.Dataset.RawPath,
		SetsAndMaps: cfg.Dataset.SetsAndMapsPath,
		OutputDir:   cfg.Dataset.OutputDir,
		OutputName:  cfg.Dataset.OutputName,
		Formats:     cfg.Dataset.Formats,
	}
}

var flags Options

// Cmd represents the dataset command
var Cmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build the enriched dataset from a raw SATIMGE extract",
	Long: `Build the enriched dataset from a raw SATIMGE extract (CSV or Parquet).
Process and commodity names are optionally joined from the sets-and-maps workbook,
then every row gets its scenario family, group, economic growth, carbon budget,
sector group, canonical technology and CO2eq value. The result is written as
<output-dir>/<name>.csv and/or .parquet.`,
	Run: run,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Raw extract (default: dataset.raw_path)")
	Cmd.Flags().StringVarP(&flags.SetsAndMaps, "setsandmaps", "m", "", "Sets-and-maps workbook (default: dataset.setsandmaps_path)")
	Cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "", "Output directory (default: dataset.output_dir)")
	Cmd.Flags().StringVar(&flags.OutputName, "name", "", "Output file name without extension (default: dataset.output_name)")
	Cmd.Flags().StringSliceVar(&flags.Formats, "format", nil, "Output formats: csv, parquet (default: dataset.formats)")
}

func run(cmd *cobra.Command, args []string) {
	c := root.MustContainer()
	opts := merge(OptionsFromConfig(c.GetConfig()), flags)
	if _, err := Build(c, opts); err != nil {
		c.GetLogger().Fatalf("Error building dataset: %v", err)
	}
}

// merge overlays the non-empty fields of override on base.
func merge(base, override Options) Options {
	if override.Input != "" {
		base.Input = override.Input
	}
	if override.SetsAndMaps != "" {
		base.SetsAndMaps = override.SetsAndMaps
	}
	if override.OutputDir != "" {
		base.OutputDir = override.OutputDir
	}
	if override.OutputName != "" {
		base.OutputName = override.OutputName
	}
	if len(override.Formats) > 0 {
		base.Formats = override.Formats
	}
	return base
}

// Build reads, maps, assembles and writes the dataset. It returns the paths
// written.
func Build(c *container.Container, opts Options) ([]string, error) {
	log := c.GetLogger().WithField(logging.FieldOperation, "dataset")

	if err := validation.IsValidDatasetFile(opts.Input); err != nil {
		return nil, err
	}
	formats := make([]dataio.Format, 0, len(opts.Formats))
	for _, f := range opts.Formats {
		format, err := dataio.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	if opts.OutputName == "" {
		return nil, fmt.Errorf("output name must not be empty")
	}

	raw, err := c.GetIO().ReadDataset(opts.Input)
	if err != nil {
		return nil, err
	}

	if opts.SetsAndMaps != "" {
		if err := validation.IsValidWorkbook(opts.SetsAndMaps); err != nil {
			return nil, err
		}
		maps, err := setsandmaps.Load(opts.SetsAndMaps, c.GetLogger())
		if err != nil {
			return nil, err
		}
		stats, err := maps.Apply(raw)
		if err != nil {
			log.WithError(err).Error("Dataset cannot be joined with setsandmaps",
				logging.Field{Key: logging.FieldFile, Value: opts.Input})
			return nil, err
		}
		log.Info("Sets and maps applied",
			logging.Field{Key: logging.FieldInputFile, Value: opts.SetsAndMaps},
			logging.Field{Key: "process_matched", Value: stats.ProcessMatched},
			logging.Field{Key: "commodity_matched", Value: stats.CommodityMatched},
			logging.Field{Key: logging.FieldCount, Value: stats.Records})
	}

	enriched, err := c.GetAssembler().Assemble(raw)
	if err != nil {
		return nil, err
	}

	if err := fileutils.EnsureDirectoryExists(opts.OutputDir); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(opts.OutputDir, opts.OutputName+f.Extension())
		if err := c.GetIO().WriteEnriched(enriched, path); err != nil {
			return nil, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	log.Info("Dataset build completed successfully!",
		logging.Field{Key: logging.FieldCount, Value: enriched.Len()})
	return paths, nil
}
