package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"satimge/satimge-charts/internal/models"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: ModeToken},
		{input: "token", want: ModeToken},
		{input: " Legacy ", want: ModeLegacy},
		{input: "fuzzy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	codec := NewCodec(ModeToken)

	tests := []struct {
		raw    string
		family models.Family
		group  models.Group
		growth models.Growth
		budget models.Budget
	}{
		{"NDC_BASE-LG", models.FamilyBase, models.GroupWEM, models.GrowthLow, models.NoBudget},
		{"NDC_BASE-RG", models.FamilyBase, models.GroupWEM, models.GrowthReference, models.NoBudget},
		{"NDC_CPP4-0925-RG", models.FamilyCPP4, models.GroupCPP, models.GrowthReference, models.BudgetOf(9.25)},
		{"NDC_CPP4-08-RG", models.FamilyCPP4, models.GroupCPP, models.GrowthReference, models.BudgetOf(8)},
		{"NDC_CPP4EK-1025-HG", models.FamilyCPP4Variant, models.GroupCPP, models.GrowthHigh, models.BudgetOf(10.25)},
		{"NDC_HCARB-RG", models.FamilyHighCarbon, models.GroupHighCarbon, models.GrowthReference, models.NoBudget},
		{"NDC_LCARB-075-LG", models.FamilyLowCarbon, models.GroupLowCarbon, models.GrowthLow, models.BudgetOf(7.5)},
		{"NDC_CPP2-HG", models.FamilyCPP2, models.GroupCPP, models.GrowthHigh, models.NoBudget},
		{"CPP1-0875-RG", models.FamilyCPP1, models.GroupCPP, models.GrowthReference, models.BudgetOf(8.75)},
		{"CPP3", models.FamilyCPP3, models.GroupCPP, models.GrowthUnknown, models.NoBudget},
		{"CPP4", models.FamilyCPP4, models.GroupCPP, models.GrowthUnknown, models.NoBudget},
		{"  CPP4 ", models.FamilyCPP4, models.GroupCPP, models.GrowthUnknown, models.NoBudget},
		{"something-else", models.FamilyOther, models.GroupOther, models.GrowthUnknown, models.NoBudget},
		{"", models.FamilyOther, models.GroupOther, models.GrowthUnknown, models.NoBudget},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := codec.Decode(tt.raw)
			assert.Equal(t, tt.raw, got.Raw)
			assert.Equal(t, tt.family, got.Family)
			assert.Equal(t, tt.group, got.Group)
			assert.Equal(t, tt.growth, got.Growth)
			assert.Equal(t, tt.budget, got.Budget)
		})
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	codes := []string{"NDC_BASE-LG", "NDC_CPP4-0925-RG", "CPP4", "x", "NDC_CPP4EK-HG"}
	for _, mode := range []Mode{ModeToken, ModeLegacy} {
		codec := NewCodec(mode)
		for _, code := range codes {
			assert.Equal(t, codec.Decode(code), codec.Decode(code), "%s/%s", mode, code)
		}
	}
}

func TestLegacyModeKeepsFirstMatch(t *testing.T) {
	legacy := NewCodec(ModeLegacy)
	token := NewCodec(ModeToken)

	assert.Equal(t, models.FamilyCPP4Variant, legacy.Family("NDC_CPP4-0925-RG"))
	assert.Equal(t, models.FamilyCPP4, token.Family("NDC_CPP4-0925-RG"))

	// the exact-match short circuit wins in both modes
	assert.Equal(t, models.FamilyCPP4, legacy.Family("CPP4"))
	assert.Equal(t, models.FamilyCPP4, legacy.Family(" CPP4\t"))

	// a code that only contains a key inside a larger token
	assert.Equal(t, models.FamilyBase, legacy.Family("NDCBASELINE"))
	assert.Equal(t, models.FamilyBase, token.Family("NDCBASELINE"))

	// substring scan order is CPP4 before BASE
	assert.Equal(t, models.FamilyCPP4Variant, legacy.Family("BASE_CPP4"))
	assert.Equal(t, models.FamilyCPP4, token.Family("BASE_CPP4"))
}

func TestZeroCodecUsesTokenMode(t *testing.T) {
	var c Codec
	assert.Equal(t, ModeToken, c.Mode())
	assert.Equal(t, models.FamilyCPP4, c.Family("NDC_CPP4-08-RG"))
	assert.Equal(t, ModeToken, NewCodec("").Mode())
}

func TestGrowthOrder(t *testing.T) {
	assert.Equal(t, models.GrowthReference, Growth("X-HG-RG"))
	assert.Equal(t, models.GrowthLow, Growth("X-HG-LG"))
	assert.Equal(t, models.GrowthUnknown, Growth("X_RG"))
}

func TestCarbonBudget(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Budget
	}{
		{"NDC_CPP4-0775-RG", models.BudgetOf(7.75)},
		{"NDC_CPP4-0825-RG", models.BudgetOf(8.25)},
		{"NDC_CPP4-085-RG", models.BudgetOf(8.5)},
		{"NDC_CPP4-09-RG", models.BudgetOf(9)},
		{"NDC_CPP4-095-RG", models.BudgetOf(9.5)},
		{"NDC_CPP4-0975-RG", models.BudgetOf(9.75)},
		{"NDC_CPP4-10-RG", models.BudgetOf(10)},
		{"NDC_CPP4-105-RG", models.BudgetOf(10.5)},
		{"NDC_CPP4-12-RG", models.NoBudget},
		{"NDC_CPP4-99999-RG", models.NoBudget},
		{"NDC_CPP4-RG", models.NoBudget},
		// only the first digit run is considered
		{"RUN2024-0925", models.NoBudget},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CarbonBudget(tt.raw))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"NDC", "CPP4", "0925", "RG"}, Tokens("NDC_CPP4-0925-RG"))
	assert.Equal(t, []string{"A", "B"}, Tokens(" A--_B "))
	assert.Empty(t, Tokens(""))
}
