package taxonomy

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteLookup(t *testing.T) {
	p := NewPalette("test",
		Swatch{Name: "Coal", Color: "#505457"},
		Swatch{Name: "Wind", Color: "#3f1ae6"},
		Swatch{Name: "Coal", Color: "#000000"},
	)

	assert.Equal(t, []string{"Coal", "Wind"}, p.Keys())
	assert.Equal(t, "#000000", p.Color("Coal"))
	assert.Equal(t, DefaultColor, p.Color("Hydro"))
	assert.True(t, p.Has("Wind"))
	assert.False(t, p.Has("wind"))

	pos, ok := p.Position("Wind")
	assert.True(t, ok)
	assert.Equal(t, 1, pos)

	var nilPalette *Palette
	assert.Equal(t, DefaultColor, nilPalette.Color("x"))
	assert.False(t, nilPalette.Has("x"))
	assert.Nil(t, nilPalette.Keys())
}

func TestPaletteOrder(t *testing.T) {
	p := DefaultPalettes()[PaletteFuel]
	got := p.Order([]string{"Zinc", "Wind", "Alpha", "Coal", "Imports"})
	assert.Equal(t, []string{"Coal", "Wind", "Imports", "Alpha", "Zinc"}, got)
}

func TestPaletteWith(t *testing.T) {
	base := NewPalette("fuel", Swatch{Name: "Coal", Color: "#111111"})
	next := base.With([]Swatch{{Name: "Coal", Color: "#222222"}, {Name: "Wind", Color: "#333333"}})

	assert.Equal(t, "#111111", base.Color("Coal"))
	assert.Equal(t, "#222222", next.Color("Coal"))
	assert.Equal(t, []string{"Coal", "Wind"}, next.Keys())
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = ParseHex("abc")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, c)

	_, err = ParseHex("#12")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)

	p := NewPalette("x", Swatch{Name: "bad", Color: "nope"})
	assert.Equal(t, color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}, p.RGBA("bad"))
}

func TestDefaultPalettes(t *testing.T) {
	ps := DefaultPalettes()
	assert.Equal(t, []string{
		PaletteGrowth, PaletteFuel, PaletteScenarioFamily, PaletteScenarioGroup, PaletteSectorGroup,
	}, ps.Names())
	for _, name := range ps.Names() {
		p, ok := ps.Get(name)
		require.True(t, ok)
		for _, s := range p.Swatches() {
			_, err := ParseHex(s.Color)
			assert.NoError(t, err, "%s/%s", name, s.Name)
		}
	}
}
