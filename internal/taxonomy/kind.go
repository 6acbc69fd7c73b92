// Package taxonomy maps raw sector, fuel and technology labels onto the
// canonical categories used for colouring and stacking charts.
//
// Mapping is total and deterministic: every label resolves to some canonical
// value, falling back to "All others", "Other" or the label itself.
package taxonomy

import (
	"fmt"
	"strings"
)

// Kind is the category a raw label belongs to.
type Kind string

const (
	KindSector     Kind = "sector"
	KindFuel       Kind = "fuel"
	KindTechnology Kind = "technology"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindSector, KindFuel, KindTechnology:
		return k, nil
	default:
		return "", fmt.Errorf("unknown taxonomy kind '%s'", s)
	}
}

// Stage names the pipeline step that produced a canonical label.
type Stage string

const (
	StageSector      Stage = "Sector"
	StageExact       Stage = "Exact"
	StageAlias       Stage = "Alias"
	StagePrefix      Stage = "Prefix"
	StageFuzzy       Stage = "Fuzzy"
	StageDefault     Stage = "Default"
	StagePassthrough Stage = "Passthrough"
)

// Entry is the resolved form of a raw label.
type Entry struct {
	Raw        string
	Canonical  string
	PaletteKey string
	Stage      Stage
}
