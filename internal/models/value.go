package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseValue converts a SATIMGE cell to a float. The GAMS "Eps" marker
// becomes zero; blank or non-numeric cells become NaN.
func ParseValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	if strings.EqualFold(s, EpsLabel) {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// decimal rejects inf/nan spellings, strconv accepts them
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return math.NaN()
		}
		return f
	}
	f, _ := d.Float64()
	return f
}

// ParseYear converts a Year cell. Non-numeric years become 0.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0
	}
	return int(d.IntPart())
}

// FormatFloat renders a value with the shortest exact decimal. NaN renders as
// an empty string.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}
