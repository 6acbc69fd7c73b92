package taxonomy

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ClosestMatch returns the candidate most similar to word, using the
// SequenceMatcher ratio. Candidates scoring below cutoff are ignored. Equal
// scores resolve to the lexically greatest candidate so results do not depend
// on candidate order.
func ClosestMatch(word string, candidates []string, cutoff float64) (string, bool) {
	if word == "" || len(candidates) == 0 {
		return "", false
	}
	target := strings.Split(word, "")

	best, bestScore, found := "", 0.0, false
	for _, c := range candidates {
		m := difflib.NewMatcher(strings.Split(c, ""), target)
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		score := m.Ratio()
		if score < cutoff {
			continue
		}
		if !found || score > bestScore || (score == bestScore && c > best) {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}
