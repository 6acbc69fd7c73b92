package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		isNaN bool
	}{
		{name: "integer", input: "100", want: 100},
		{name: "decimal", input: "12.345", want: 12.345},
		{name: "negative", input: "-0.5", want: -0.5},
		{name: "scientific", input: "1.5e3", want: 1500},
		{name: "padded", input: "  42 ", want: 42},
		{name: "eps marker", input: "Eps", want: 0},
		{name: "eps lower case", input: "eps", want: 0},
		{name: "blank", input: "", isNaN: true},
		{name: "text", input: "n/a", isNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseValue(tt.input)
			if tt.isNaN {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, 2030, ParseYear("2030"))
	assert.Equal(t, 2030, ParseYear(" 2030 "))
	assert.Equal(t, 2050, ParseYear("2050.0"))
	assert.Equal(t, 0, ParseYear("2050.5"))
	assert.Equal(t, 0, ParseYear("year"))
	assert.Equal(t, 0, ParseYear(""))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "100", FormatFloat(100))
	assert.Equal(t, "9.25", FormatFloat(9.25))
	assert.Equal(t, "-0.001", FormatFloat(-0.001))
	assert.Equal(t, "", FormatFloat(math.NaN()))
	assert.Equal(t, "+Inf", FormatFloat(math.Inf(1)))
}
