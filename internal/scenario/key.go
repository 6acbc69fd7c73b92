package scenario

import "strings"

var keyRules = []struct {
	key   string
	label string
}{
	{"CPP1", "CPP-IRP"},
	{"CPP2", "CPP-IRPLight"},
	{"CPP3", "CPP-SAREM"},
	{"HCARB", "High Carbon"},
	{"LCARB", "Low Carbon"},
	{"BASE", "WEM"},
}

// Key returns the short scenario label used in report legends.
func Key(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "CPP4", strings.Contains(s, "CPP4-"):
		return "CPP"
	case strings.Contains(s, "CPP4"):
		return "CPP4 Variant"
	}
	for _, r := range keyRules {
		if strings.Contains(s, r.key) {
			return r.label
		}
	}
	return "Other"
}
