package matching

// Ratio computes a sequence similarity ratio in [0,1]: twice the total
// length of matching blocks over the combined length of both strings.
// Symmetric in its arguments and rune-based, so multi-byte input is scored
// by characters, not bytes.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	matches := matchTotal(ra, rb)
	return 2 * float64(matches) / float64(total)
}

// matchTotal sums the lengths of all matching blocks: it finds the longest
// common contiguous block, then recurses on the pieces to its left and
// right. This mirrors the classic Ratcliff/Obershelp sequence matching.
func matchTotal(a, b []rune) int {
	i, j, k := longestMatch(a, b)
	if k == 0 {
		return 0
	}
	return matchTotal(a[:i], b[:j]) + k + matchTotal(a[i+k:], b[j+k:])
}

// longestMatch finds the longest contiguous matching block between a and b,
// returning its start in a, start in b, and length. Among equal-length
// blocks the one starting earliest in a (then earliest in b) wins.
func longestMatch(a, b []rune) (bestI, bestJ, bestK int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	// j2len[j] = length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i, r := range a {
		next := make(map[int]int)
		for _, j := range b2j[r] {
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestK {
				bestI, bestJ, bestK = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return bestI, bestJ, bestK
}
