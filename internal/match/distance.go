// Package match provides answer comparison helpers.
package match

// closeLimit is the largest edit distance still treated as a typo.
const closeLimit = 2

// Distance returns the Levenshtein distance between a and b over code points.
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	rows := len(ar) + 1
	cols := len(br) + 1

	dp := make([][]int, rows)
	for i := range dp {
		dp[i] = make([]int, cols)
		dp[i][0] = i
	}
	for j := 0; j < cols; j++ {
		dp[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			if ar[i-1] == br[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = 1 + min(
				dp[i-1][j],   // deletion
				dp[i][j-1],   // insertion
				dp[i-1][j-1], // substitution
			)
		}
	}
	return dp[rows-1][cols-1]
}

// IsCloseEnough reports whether b is one or two edits away from a.
// An exact match is not close.
func IsCloseEnough(a, b string) bool {
	d := Distance(a, b)
	return d > 0 && d <= closeLimit
}
