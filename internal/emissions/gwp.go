// Package emissions converts gas indicators to CO2-equivalent and converts
// between the physical units used in SATIMGE extracts.
package emissions

import (
	"math"
	"slices"

	"satimge/satimge-charts/internal/models"
)

// gwp holds 100-year global warming potentials for the gases the model reports.
var gwp = map[string]float64{
	"CO2":   1,
	"CO2eq": 1,
	"CH4":   28,
	"N2O":   265,
	"CF4":   6630,
	"C2F6":  11100,
}

// GWP returns the multiplier for a gas indicator.
func GWP(indicator string) (float64, bool) {
	f, ok := gwp[indicator]
	return f, ok
}

// IsGas reports whether indicator is a recognised greenhouse gas.
func IsGas(indicator string) bool {
	_, ok := gwp[indicator]
	return ok
}

// Gases lists the recognised gas indicators, sorted.
func Gases() []string {
	keys := make([]string, 0, len(gwp))
	for k := range gwp {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ToCO2eq converts value to CO2-equivalent. The second result is false for
// indicators that are not gases; such values have no CO2-equivalent, which
// is different from a zero emission.
func ToCO2eq(indicator string, value float64) (float64, bool) {
	f, ok := gwp[indicator]
	if !ok {
		return 0, false
	}
	return value * f, true
}

// CO2eq is ToCO2eq as a nullable value. A gas row without a numeric value
// has no CO2-equivalent either.
func CO2eq(indicator string, value float64) models.NullFloat {
	v, ok := ToCO2eq(indicator, value)
	if !ok || math.IsNaN(v) {
		return models.Null
	}
	return models.Float(v)
}
