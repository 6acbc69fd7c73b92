package emissions

import (
	"fmt"
	"math"
	"strings"
)

// KilotonnesToMegatonnes converts kt to Mt.
func KilotonnesToMegatonnes(kt float64) float64 {
	return kt * 0.001
}

// EnergyUnit is the unit a feed reports energy flows in.
type EnergyUnit string

const (
	PJ EnergyUnit = "PJ"
	TJ EnergyUnit = "TJ"
	GJ EnergyUnit = "GJ"
)

// DefaultEnergyUnit is the unit of REPORT00 extracts.
const DefaultEnergyUnit = PJ

// 1 TWh = 3.6 PJ
var petajoulesPerUnit = map[EnergyUnit]float64{
	PJ: 1,
	TJ: 1e-3,
	GJ: 1e-6,
}

// ParseEnergyUnit validates a configured unit. Empty selects the default.
func ParseEnergyUnit(s string) (EnergyUnit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultEnergyUnit, nil
	}
	for u := range petajoulesPerUnit {
		if strings.EqualFold(s, string(u)) {
			return u, nil
		}
	}
	return "", unknownUnit(s)
}

func unknownUnit(s string) error {
	return fmt.Errorf("unknown energy unit '%s' (want PJ, TJ or GJ)", s)
}

// Petajoules returns how many PJ one unit u is. The zero unit is
// DefaultEnergyUnit; any other unknown unit is an error.
func (u EnergyUnit) Petajoules() (float64, error) {
	if u == "" {
		u = DefaultEnergyUnit
	}
	f, ok := petajoulesPerUnit[u]
	if !ok {
		return 0, unknownUnit(string(u))
	}
	return f, nil
}

// ToPJ converts a value in unit u to petajoules. An unknown unit yields NaN.
func (u EnergyUnit) ToPJ(v float64) float64 {
	f, err := u.Petajoules()
	if err != nil {
		return math.NaN()
	}
	return v * f
}

// ToTWh converts a value in unit u to terawatt-hours.
func (u EnergyUnit) ToTWh(v float64) float64 {
	return u.ToPJ(v) / 3.6
}
