package match

import (
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// EditDistanceScore returns the Levenshtein similarity of a and b scaled to
// [0,100]: 100 * (1 - distance / max(len(a), len(b))), lengths in runes.
// Two empty strings are identical and score 100.
func EditDistanceScore(a, b string) float64 {
	dist, longest := editDistance(a, b)
	if longest == 0 {
		return 100
	}
	return 100 * float64(longest-dist) / float64(longest)
}

// DiffRatioScore returns the block-matching similarity ratio of a and b
// (2 * matched runes / total runes) scaled to [0,100].
func DiffRatioScore(a, b string) float64 {
	matched, total := diffRatio(a, b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*matched) / float64(total)
}

func editDistance(a, b string) (dist, longest int) {
	longest = utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	return levenshtein.Distance(a, b, nil), longest
}

func diffRatio(a, b string) (matched, total int) {
	ra, rb := runeStrings(a), runeStrings(b)
	total = len(ra) + len(rb)
	if total == 0 {
		return 0, 0
	}
	for _, m := range difflib.NewMatcher(ra, rb).GetMatchingBlocks() {
		matched += m.Size
	}
	return matched, total
}

// editDistanceAtLeast reports whether EditDistanceScore(a, b) >= threshold
// using integer arithmetic so the boundary is exact.
func editDistanceAtLeast(a, b string, threshold int) bool {
	dist, longest := editDistance(a, b)
	if longest == 0 {
		return true
	}
	return (longest-dist)*100 >= threshold*longest
}

// diffRatioAtLeast reports whether DiffRatioScore(a, b) >= threshold
// using integer arithmetic so the boundary is exact.
func diffRatioAtLeast(a, b string, threshold int) bool {
	matched, total := diffRatio(a, b)
	if total == 0 {
		return true
	}
	return 2*matched*100 >= threshold*total
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
