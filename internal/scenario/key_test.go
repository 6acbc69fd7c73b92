package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := map[string]string{
		"CPP4":             "CPP",
		"NDC_CPP4-0925-RG": "CPP",
		"NDC_CPP4EK-RG":    "CPP4 Variant",
		"NDC_CPP1-RG":      "CPP-IRP",
		"NDC_CPP2-RG":      "CPP-IRPLight",
		"NDC_CPP3-RG":      "CPP-SAREM",
		"NDC_HCARB-RG":     "High Carbon",
		"NDC_LCARB-RG":     "Low Carbon",
		"NDC_BASE-RG":      "WEM",
		"unknown":          "Other",
	}
	for raw, want := range tests {
		assert.Equal(t, want, Key(raw), raw)
	}
}
