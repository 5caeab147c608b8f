package engine

import (
	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to input, if any is close enough to
// be a plausible typo.
func Suggest(input string, candidates []string) (string, bool) {
	input = Normalize(input)
	if input == "" {
		return "", false
	}
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		if cand == "" || cand == input {
			continue
		}
		dist := levenshtein.ComputeDistance(input, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
