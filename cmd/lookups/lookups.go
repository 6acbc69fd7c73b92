// Package lookups lists the distinct taxonomy values of the enriched dataset.
package lookups

import (
	"fmt"
	"io"
	"path/filepath"

	"satimge/satimge-charts/cmd/root"
	"satimge/satimge-charts/internal/container"
	"satimge/satimge-charts/internal/fileutils"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/validation"

	"github.com/spf13/cobra"
)

// ReportName is the file name of the report, without extension.
const ReportName = "lookups"

// Options controls one lookups run.
type Options struct {
	Input     string
	OutputDir string
	Format    string
	Tables    bool
	Print     bool
}

var flags Options

// Cmd represents the lookups command
var Cmd = &cobra.Command{
	Use:   "lookups",
	Short: "List scenarios, sectors and technologies found in the dataset",
	Long: `List the distinct scenarios, scenario families and groups, economic growth tags,
sectors, sector groups and technologies of the enriched dataset with their palette
colours, plus how many rows fell back to OTHER, UNKNOWN, NoBudget or "All others".
The report is written as lookups.json or lookups.yaml; --tables adds one CSV per kind.`,
	Run: run,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Enriched dataset (default: the dataset section output)")
	Cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "", "Output directory (default: lookups.output_dir)")
	Cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "Report format: json or yaml (default: lookups.format)")
	Cmd.Flags().BoolVar(&flags.Tables, "tables", false, "Also write one CSV table per lookup kind")
	Cmd.Flags().BoolVarP(&flags.Print, "print", "p", false, "Print the report instead of writing it")
}

func run(cmd *cobra.Command, args []string) {
	c := root.MustContainer()
	opts := flags
	if opts.OutputDir == "" {
		opts.OutputDir = c.GetConfig().Lookups.OutputDir
	}
	if opts.Format == "" {
		opts.Format = c.GetConfig().Lookups.Format
	}
	if _, err := Run(c, opts, cmd.OutOrStdout()); err != nil {
		c.GetLogger().Fatalf("Error listing lookups: %v", err)
	}
}

// Run builds the report and writes it to opts.OutputDir, or to w when
// opts.Print is set. It returns the paths written.
func Run(c *container.Container, opts Options, w io.Writer) ([]string, error) {
	if err := validation.IsValidOutputFormat(opts.Format); err != nil {
		return nil, err
	}
	path, err := c.ResolveEnriched(opts.Input)
	if err != nil {
		return nil, err
	}
	ds, err := c.GetIO().ReadEnriched(path)
	if err != nil {
		return nil, err
	}

	gen := c.GetReportGenerator()
	rep := gen.Build(ds)
	out, err := gen.GenerateReport(rep, opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.Print {
		_, err := w.Write(out)
		return nil, err
	}

	reportPath := filepath.Join(opts.OutputDir, ReportName+"."+opts.Format)
	if err := fileutils.WriteFile(reportPath, out, models.PermissionReportFile); err != nil {
		return nil, fmt.Errorf("error writing %s: %w", reportPath, err)
	}
	paths := []string{reportPath}

	if opts.Tables {
		tables, err := gen.WriteTables(rep, opts.OutputDir, c.GetIO().Delimiter())
		if err != nil {
			return nil, err
		}
		paths = append(paths, tables...)
	}

	c.GetLogger().Info("Lookups report written",
		logging.Field{Key: logging.FieldOutputFile, Value: reportPath},
		logging.Field{Key: "family_coverage_pct", Value: rep.FamilyCoverage})
	return paths, nil
}
