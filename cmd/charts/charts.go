// Package charts renders the report charts from the enriched dataset.
package charts

import (
	"fmt"
	"io"

	"satimge/satimge-charts/cmd/root"
	"satimge/satimge-charts/internal/chart"
	"satimge/satimge-charts/internal/container"
	"satimge/satimge-charts/internal/logging"

	"github.com/spf13/cobra"
)

var (
	input   string
	include []string
	list    bool
)

// Cmd represents the charts command
var Cmd = &cobra.Command{
	Use:   "charts",
	Short: "Render report charts from the enriched dataset",
	Long: `Render the configured report charts from the enriched dataset.
Each chart is written to <charts.output_dir>/<name>/ as <name>_report.png (and .svg
when configured) with its pivot table in <name>_data.csv. With --dev-mode the tables
are only logged. Built-in charts can be replaced or extended in charts.yaml.`,
	Run: run,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Enriched dataset (default: <dataset.output_dir>/<dataset.output_name>.parquet or .csv)")
	Cmd.Flags().StringSliceVar(&include, "include", nil, "Charts to render (default: charts.include, empty for all)")
	Cmd.Flags().BoolVarP(&list, "list", "l", false, "List the available charts and exit")
}

func run(cmd *cobra.Command, args []string) {
	c := root.MustContainer()
	if list {
		if err := List(c, cmd.OutOrStdout()); err != nil {
			c.GetLogger().Fatalf("Error listing charts: %v", err)
		}
		return
	}

	names := include
	if len(names) == 0 {
		names = c.GetConfig().Charts.Include
	}
	if _, err := Generate(c, input, names); err != nil {
		c.GetLogger().Fatalf("Error generating charts: %v", err)
	}
}

// List prints the registered chart names with their titles.
func List(c *container.Container, w io.Writer) error {
	reg, err := c.GetChartRegistry()
	if err != nil {
		return err
	}
	for _, name := range reg.Names() {
		def, _ := reg.Get(name)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", name, def.Title); err != nil {
			return err
		}
	}
	return nil
}

// Generate renders the charts named in names, or every chart when names is
// empty.
func Generate(c *container.Container, path string, names []string) ([]chart.Result, error) {
	reg, err := c.GetChartRegistry()
	if err != nil {
		return nil, err
	}
	defs, err := reg.Resolve(names)
	if err != nil {
		return nil, err
	}

	path, err = c.ResolveEnriched(path)
	if err != nil {
		return nil, err
	}
	ds, err := c.GetIO().ReadEnriched(path)
	if err != nil {
		return nil, err
	}

	results, err := c.GetChartGenerator().GenerateAll(defs, ds)
	written := 0
	for _, r := range results {
		if !r.Skipped {
			written++
		}
	}
	c.GetLogger().Info("Chart run finished",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: written},
		logging.Field{Key: "requested", Value: len(defs)})
	return results, err
}
