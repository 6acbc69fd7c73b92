// Package decode prints the fields decoded from scenario codes.
package decode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"satimge/satimge-charts/cmd/root"
	"satimge/satimge-charts/internal/scenario"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Decoded is one decoded scenario code.
type Decoded struct {
	Scenario     string   `json:"scenario" yaml:"scenario"`
	Family       string   `json:"family" yaml:"family"`
	FamilyName   string   `json:"family_name" yaml:"family_name"`
	Group        string   `json:"group" yaml:"group"`
	Growth       string   `json:"economic_growth" yaml:"economic_growth"`
	CarbonBudget *float64 `json:"carbon_budget" yaml:"carbon_budget"`
	Key          string   `json:"key" yaml:"key"`
}

var (
	format string
	mode   string
)

// Cmd represents the decode command
var Cmd = &cobra.Command{
	Use:   "decode CODE [CODE...]",
	Short: "Decode scenario codes",
	Long: `Decode one or more raw scenario codes such as NDC_CPP4-0925-RG and print the
scenario family, group, economic growth, carbon budget and legend key.`,
	Args: cobra.MinimumNArgs(1),
	Run:  run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", FormatText, "Output format: text, json, yaml")
	Cmd.Flags().StringVar(&mode, "rules", "", "Family rules: token or legacy (default: scenario.family_rules)")
}

func run(cmd *cobra.Command, args []string) {
	c := root.MustContainer()
	codec := c.GetCodec()
	if mode != "" {
		m, err := scenario.ParseMode(mode)
		if err != nil {
			c.GetLogger().Fatalf("Error: %v", err)
			return
		}
		codec = scenario.NewCodec(m)
	}
	if err := Write(cmd.OutOrStdout(), Decode(codec, args), format); err != nil {
		c.GetLogger().Fatalf("Error writing output: %v", err)
	}
}

// Decode decodes every code with codec.
func Decode(codec *scenario.Codec, codes []string) []Decoded {
	out := make([]Decoded, 0, len(codes))
	for _, code := range codes {
		r := codec.Decode(code)
		out = append(out, Decoded{
			Scenario:     r.Raw,
			Family:       string(r.Family),
			FamilyName:   r.Family.DisplayName(),
			Group:        string(r.Group),
			Growth:       string(r.Growth),
			CarbonBudget: r.Budget.Ptr(),
			Key:          scenario.Key(code),
		})
	}
	return out
}

// Write prints rows in the requested format.
func Write(w io.Writer, rows []Decoded, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	case FormatText, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SCENARIO\tFAMILY\tGROUP\tGROWTH\tBUDGET\tKEY")
		for _, r := range rows {
			budget := "NoBudget"
			if r.CarbonBudget != nil {
				budget = fmt.Sprintf("%g", *r.CarbonBudget)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Scenario, r.Family, r.Group, r.Growth, budget, r.Key)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
