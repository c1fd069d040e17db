package engine

import "strings"

// nameSimilarity scores two normalized names with the Ratcliff/Obershelp
// gestalt ratio, the same measure the historical matching used: twice the
// number of matching characters over the combined length. Returns a value
// in [0,1].
func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	return 2 * float64(gestaltMatches(ra, rb)) / float64(len(ra)+len(rb))
}

// gestaltMatches counts matching characters: the longest common substring,
// plus recursively the matches in the unmatched regions to its left and
// right.
func gestaltMatches(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		gestaltMatches(a[:ai], b[:bi]) +
		gestaltMatches(a[ai+size:], b[bi+size:])
}

func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			cur[j+1] = prev[j] + 1
			if cur[j+1] > size {
				size = cur[j+1]
				ai = i + 1 - size
				bi = j + 1 - size
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, size
}

// tokenOverlap is the share of tokens the two raw texts have in common,
// relative to the smaller token set. Tokens are case-folded words split
// on whitespace and underscores.
func tokenOverlap(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	smaller := len(ta)
	if len(tb) < smaller {
		smaller = len(tb)
	}
	common := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			common++
		}
	}
	return float64(common) / float64(smaller)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '_'
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?'\"-")
		if f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}
