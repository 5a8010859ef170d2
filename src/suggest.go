package aocscript

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds edit distance for typo suggestions
const maxSuggestDistance = 2

// findClosestMatch returns the candidate most likely meant by target, or ""
func findClosestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(target, c); d < bestDistance || (d == bestDistance && c < best) {
			best, bestDistance = c, d
		}
	}
	if bestDistance > maxSuggestDistance {
		return ""
	}
	return best
}

// didYouMean formats a hint suffix for an unknown name
func didYouMean(target string, candidates []string) string {
	if match := findClosestMatch(target, candidates); match != "" && match != target {
		return " (did you mean " + match + "?)"
	}
	return ""
}
