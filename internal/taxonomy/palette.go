package taxonomy

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"
)

// DefaultColor is used for labels a palette does not know.
const DefaultColor = "#aaaaaa"

// Palette names
const (
	PaletteFuel           = "fuel"
	PaletteSectorGroup    = "sector_group"
	PaletteScenarioFamily = "scenario_family"
	PaletteScenarioGroup  = "scenario_group"
	PaletteGrowth         = "economic_growth"
)

// Swatch is one palette entry.
type Swatch struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Palette is an ordered set of colour keys. Order is stacking order.
type Palette struct {
	Name     string
	swatches []Swatch
	index    map[string]int
}

// NewPalette builds a palette. Later duplicates replace the colour of the
// earlier entry without moving it.
func NewPalette(name string, swatches ...Swatch) *Palette {
	p := &Palette{Name: name, index: make(map[string]int, len(swatches))}
	for _, s := range swatches {
		p.set(s)
	}
	return p
}

func (p *Palette) set(s Swatch) {
	if i, ok := p.index[s.Name]; ok {
		p.swatches[i].Color = s.Color
		return
	}
	p.index[s.Name] = len(p.swatches)
	p.swatches = append(p.swatches, s)
}

// Has reports whether key is a palette key.
func (p *Palette) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.index[key]
	return ok
}

// Color returns the hex colour for key, or DefaultColor.
func (p *Palette) Color(key string) string {
	if p == nil {
		return DefaultColor
	}
	if i, ok := p.index[key]; ok {
		return p.swatches[i].Color
	}
	return DefaultColor
}

// RGBA returns the colour for key as an image colour.
func (p *Palette) RGBA(key string) color.Color {
	c, err := ParseHex(p.Color(key))
	if err != nil {
		c, _ = ParseHex(DefaultColor)
	}
	return c
}

// Position returns the stacking position of key.
func (p *Palette) Position(key string) (int, bool) {
	if p == nil {
		return 0, false
	}
	i, ok := p.index[key]
	return i, ok
}

// Keys returns the palette keys in order.
func (p *Palette) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.swatches))
	for i, s := range p.swatches {
		keys[i] = s.Name
	}
	return keys
}

// Swatches returns a copy of the palette entries.
func (p *Palette) Swatches() []Swatch {
	if p == nil {
		return nil
	}
	return slices.Clone(p.swatches)
}

// With returns a new palette with overrides applied: known keys get the new
// colour, unknown keys are appended.
func (p *Palette) With(overrides []Swatch) *Palette {
	out := NewPalette(p.Name, p.Swatches()...)
	for _, s := range overrides {
		out.set(s)
	}
	return out
}

// Order sorts labels into palette order, with unknown labels appended
// alphabetically.
func (p *Palette) Order(labels []string) []string {
	known := make([]string, 0, len(labels))
	var rest []string
	for _, l := range labels {
		if p.Has(l) {
			known = append(known, l)
		} else {
			rest = append(rest, l)
		}
	}
	slices.SortStableFunc(known, func(a, b string) int {
		return p.index[a] - p.index[b]
	})
	slices.Sort(rest)
	return append(known, rest...)
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour '%s'", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour '%s': %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Palettes holds the named palettes.
type Palettes map[string]*Palette

// Get returns a palette by name.
func (ps Palettes) Get(name string) (*Palette, bool) {
	p, ok := ps[name]
	return p, ok
}

// Names returns the palette names, sorted.
func (ps Palettes) Names() []string {
	names := make([]string, 0, len(ps))
	for n := range ps {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Merge returns a copy with overrides applied per palette. Unknown palette
// names create new palettes.
func (ps Palettes) Merge(overrides map[string][]Swatch) Palettes {
	out := make(Palettes, len(ps)+len(overrides))
	for n, p := range ps {
		out[n] = p
	}
	for n, swatches := range overrides {
		if p, ok := out[n]; ok {
			out[n] = p.With(swatches)
		} else {
			out[n] = NewPalette(n, swatches...)
		}
	}
	return out
}

// DefaultPalettes returns the built-in report palettes.
func DefaultPalettes() Palettes {
	return Palettes{
		PaletteFuel: NewPalette(PaletteFuel,
			Swatch{"Coal", "#505457"},
			Swatch{"Oil", "#e66177"},
			Swatch{"Natural Gas", "#ee2c4c"},
			Swatch{"Nuclear", "#ca1d90"},
			Swatch{"Hydro", "#8c564b"},
			Swatch{"Biomass", "#03ff2d"},
			Swatch{"Wind", "#3f1ae6"},
			Swatch{"Solar PV", "#e6e21a"},
			Swatch{"Solar CSP", "#fc5c34"},
			Swatch{"Hybrid", "#b39ddb"},
			Swatch{"Pumped Storage", "#17becf"},
			Swatch{"Battery", "#bcbd22"},
			Swatch{"Imports", "#9467bd"},
			Swatch{"Other", "#e377c2"},
		),
		PaletteSectorGroup: NewPalette(PaletteSectorGroup,
			Swatch{"Power", "#505457"},
			Swatch{"Industry", "#f28e2b"},
			Swatch{"Transport", "#e15759"},
			Swatch{"Refineries", "#76b7b2"},
			Swatch{"All others", "#bab0ac"},
		),
		PaletteScenarioFamily: NewPalette(PaletteScenarioFamily,
			Swatch{"WEM", "#F9C74F"},
			Swatch{"CPP1", "#F3722C"},
			Swatch{"CPP2", "#F8961E"},
			Swatch{"CPP3", "#25A18E"},
			Swatch{"CPP4", "#004E64"},
			Swatch{"CPP4 Variant", "#7AE582"},
			Swatch{"Low Carbon", "#43AA8B"},
			Swatch{"High Carbon", "#5fa8d3"},
			Swatch{"Other", DefaultColor},
		),
		PaletteScenarioGroup: NewPalette(PaletteScenarioGroup,
			Swatch{"WEM", "#F9C74F"},
			Swatch{"CPP", "#004E64"},
			Swatch{"Low Carbon", "#43AA8B"},
			Swatch{"High Carbon", "#5fa8d3"},
			Swatch{"Other", DefaultColor},
		),
		PaletteGrowth: NewPalette(PaletteGrowth,
			Swatch{"Low", "#1F77B4"},
			Swatch{"Reference", "#FF7F0E"},
			Swatch{"High", "#2CA02C"},
			Swatch{"Unknown", DefaultColor},
		),
	}
}
