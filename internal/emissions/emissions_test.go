package emissions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"satimge/satimge-charts/internal/models"
)

func TestToCO2eq(t *testing.T) {
	tests := []struct {
		indicator string
		value     float64
		want      float64
		ok        bool
	}{
		{"CO2", 100, 100, true},
		{"CO2eq", 3, 3, true},
		{"CH4", 10, 280, true},
		{"N2O", 2, 530, true},
		{"CF4", 1, 6630, true},
		{"C2F6", 0.5, 5550, true},
		{"CH4", 0, 0, true},
		{"Capacity", 10, 0, false},
		{"FlowOut", 10, 0, false},
		{"ch4", 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.indicator, func(t *testing.T) {
			got, ok := ToCO2eq(tt.indicator, tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.ok, IsGas(tt.indicator))
		})
	}
}

func TestCO2eqNullable(t *testing.T) {
	assert.Equal(t, models.Float(280), CO2eq("CH4", 10))
	assert.Equal(t, models.Null, CO2eq("Capacity", 10))
	// zero emissions stay distinguishable from absent values
	assert.Equal(t, models.Float(0), CO2eq("CO2", 0))
	// a gas row without a numeric value has no CO2-equivalent
	assert.Equal(t, models.Null, CO2eq("CH4", math.NaN()))
}

func TestGases(t *testing.T) {
	assert.Equal(t, []string{"C2F6", "CF4", "CH4", "CO2", "CO2eq", "N2O"}, Gases())
	f, ok := GWP("N2O")
	assert.True(t, ok)
	assert.Equal(t, 265.0, f)
}

func TestUnits(t *testing.T) {
	assert.InDelta(t, 0.1, KilotonnesToMegatonnes(100), 1e-12)
	assert.InDelta(t, 10.0, PJ.ToTWh(36), 1e-12)
	assert.InDelta(t, 10.0, TJ.ToTWh(36000), 1e-9)
	assert.InDelta(t, 10.0, GJ.ToTWh(36e6), 1e-9)
	assert.InDelta(t, 36.0, TJ.ToPJ(36000), 1e-9)
	assert.InDelta(t, 5.0, EnergyUnit("").ToPJ(5), 1e-12)
	assert.InDelta(t, 10.0, EnergyUnit("").ToTWh(36), 1e-12)
	assert.True(t, math.IsNaN(EnergyUnit("bogus").ToPJ(5)))
	assert.True(t, math.IsNaN(EnergyUnit("bogus").ToTWh(5)))
}

func TestPetajoules(t *testing.T) {
	f, err := EnergyUnit("").Petajoules()
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)

	f, err = GJ.Petajoules()
	require.NoError(t, err)
	assert.Equal(t, 1e-6, f)

	_, err = EnergyUnit("kWh").Petajoules()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown energy unit 'kWh'")
}

func TestParseEnergyUnit(t *testing.T) {
	u, err := ParseEnergyUnit("")
	require.NoError(t, err)
	assert.Equal(t, PJ, u)

	u, err = ParseEnergyUnit("gj")
	require.NoError(t, err)
	assert.Equal(t, GJ, u)

	_, err = ParseEnergyUnit("kWh")
	assert.Error(t, err)
}
