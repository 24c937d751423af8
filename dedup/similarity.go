package dedup

import "strings"

// Ratio computes a title similarity score in [0, 1]: twice the total length
// of the longest matching character runs divided by the combined length of
// both strings. Comparison is case-insensitive. Operands are put in a
// canonical order first so Ratio(a, b) == Ratio(b, a) always holds.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	if len(ra) > len(rb) || (len(ra) == len(rb) && string(ra) > string(rb)) {
		ra, rb = rb, ra
	}

	return 2 * float64(matchTotal(ra, rb)) / float64(total)
}

// matchTotal sums the lengths of matching blocks: find the longest common
// run, then recurse into the stretches before and after it on both sides.
func matchTotal(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	stack := []span{{0, len(a), 0, len(b)}}
	total := 0

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j, k := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		total += k
		stack = append(stack,
			span{s.alo, i, s.blo, j},
			span{i + k, s.ahi, j + k, s.bhi},
		)
	}
	return total
}

// longestMatch finds the longest run a[i:i+k] == b[j:j+k] within the given
// bounds, preferring the earliest position in a on ties.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	j2len := map[int]int{}

	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestk
}
