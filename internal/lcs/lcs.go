// Package lcs computes longest common subsequences of token runs.
//
// The table walk prefers moving "above" (dropping an element of a) on ties, so
// for equal-length candidates the result is deterministic and attributes
// differences to the earlier sequence first.
package lcs

// Common returns the longest common subsequence of a and b.
func Common[T any](a, b []T, eq func(x, y T) bool) []T {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && eq(a[prefix], b[prefix]) {
		prefix++
	}
	out := make([]T, 0, min(len(a), len(b)))
	out = append(out, a[:prefix]...)

	ra, rb := a[prefix:], b[prefix:]
	if len(ra) == 0 || len(rb) == 0 {
		return out
	}

	// table[i][j] = длина LCS для ra[:i] и rb[:j]
	n, m := len(ra), len(rb)
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case eq(ra[i-1], rb[j-1]):
				table[i][j] = table[i-1][j-1] + 1
			case table[i-1][j] >= table[i][j-1]:
				table[i][j] = table[i-1][j]
			default:
				table[i][j] = table[i][j-1]
			}
		}
	}

	tail := make([]T, 0, table[n][m])
	for i, j := n, m; i > 0 && j > 0; {
		switch {
		case eq(ra[i-1], rb[j-1]):
			tail = append(tail, ra[i-1])
			i--
			j--
		case table[i-1][j] >= table[i][j-1]:
			i--
		default:
			j--
		}
	}
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// CommonAll reduces Common left to right over seqs.
func CommonAll[T any](seqs [][]T, eq func(x, y T) bool) []T {
	if len(seqs) == 0 {
		return nil
	}
	acc := append([]T(nil), seqs[0]...)
	for _, s := range seqs[1:] {
		if len(acc) == 0 {
			break
		}
		acc = Common(acc, s, eq)
	}
	return acc
}

// Mark reports, for every element of seq, whether it is part of the greedy
// leftmost embedding of common into seq.
func Mark[T any](seq, common []T, eq func(x, y T) bool) []bool {
	marks := make([]bool, len(seq))
	k := 0
	for i, v := range seq {
		if k < len(common) && eq(v, common[k]) {
			marks[i] = true
			k++
		}
	}
	return marks
}
