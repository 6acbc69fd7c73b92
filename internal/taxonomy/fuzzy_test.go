package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosestMatch(t *testing.T) {
	keys := []string{"Coal", "Nuclear", "Natural Gas", "Biomass", "Solar PV"}

	got, ok := ClosestMatch("Gas", keys, DefaultFuzzyCutoff)
	assert.True(t, ok)
	assert.Equal(t, "Natural Gas", got)

	got, ok = ClosestMatch("Coal ", keys, DefaultFuzzyCutoff)
	assert.True(t, ok)
	assert.Equal(t, "Coal", got)

	_, ok = ClosestMatch("zzzz", keys, DefaultFuzzyCutoff)
	assert.False(t, ok)

	_, ok = ClosestMatch("", keys, DefaultFuzzyCutoff)
	assert.False(t, ok)

	_, ok = ClosestMatch("Gas", nil, DefaultFuzzyCutoff)
	assert.False(t, ok)
}

func TestClosestMatchTieBreak(t *testing.T) {
	// both candidates score 0.5 against "ab"
	got, ok := ClosestMatch("ab", []string{"ax", "bx"}, 0.3)
	assert.True(t, ok)
	assert.Equal(t, "bx", got)

	got, _ = ClosestMatch("ab", []string{"bx", "ax"}, 0.3)
	assert.Equal(t, "bx", got)
}
