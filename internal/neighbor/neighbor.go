// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package neighbor enumerates the DNA-alphabet Hamming neighborhood of a
// window: every string obtainable by choosing exactly d of the window's
// positions to mismatch and holding every other position fixed at its
// exact window byte, for d = 0, 1, ..., k.
//
// A chosen position whose window byte is one of {A,C,G,T} mismatches by
// substituting one of the other three DNA bases, the ordinary case. A
// chosen position whose window byte is NOT a DNA base (e.g. 'N' in real
// sequence data) can never be "substituted" in the usual sense — there is
// no DNA base it equals, so it always mismatches whenever the target has
// any of the four DNA bases there. To capture every such target via exact
// string search, that position is generated with all four DNA bases in
// turn rather than three. A non-chosen position must match the window's
// exact byte, DNA or not.
package neighbor

// bases is the DNA alphabet substitutions are drawn from, fixed by spec.
var bases = [4]byte{'A', 'C', 'G', 'T'}

// IsDNA reports whether b is one of the four DNA bases.
func IsDNA(b byte) bool {
	return b == 'A' || b == 'C' || b == 'G' || b == 'T'
}

// alternatives returns, for window position i, the bytes a chosen
// mismatch at that position may take.
func alternatives(windowByte byte) []byte {
	if !IsDNA(windowByte) {
		return bases[:]
	}
	out := make([]byte, 0, 3)
	for _, b := range bases {
		if b != windowByte {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the size of the distance-d neighborhood of window without
// generating it, used to size buffers.
func Count(window []byte, d int) int {
	L := len(window)
	if d < 0 || d > L {
		return 0
	}
	alts := make([]int, L)
	for i, b := range window {
		alts[i] = len(alternatives(b))
	}
	// dp[j] = number of ways to pick j mismatch positions among the
	// prefix processed so far, weighted by each position's alternative
	// count.
	dp := make([]int, d+1)
	dp[0] = 1
	for _, a := range alts {
		for j := d; j >= 1; j-- {
			dp[j] += dp[j-1] * a
		}
	}
	return dp[d]
}

// AtDistance returns every string at Hamming distance exactly d from
// window under the rule documented in the package comment.
// AtDistance(window, 0) returns a single copy of window. It returns nil if
// d exceeds len(window).
func AtDistance(window []byte, d int) [][]byte {
	if d == 0 {
		return [][]byte{append([]byte(nil), window...)}
	}
	L := len(window)
	if d < 0 || d > L {
		return nil
	}

	out := make([][]byte, 0, Count(window, d))
	combo := make([]int, d)
	var chooseCombo func(start, chosen int)
	chooseCombo = func(start, chosen int) {
		if chosen == d {
			substitute(window, combo, &out)
			return
		}
		remaining := d - chosen
		for i := start; i <= L-remaining; i++ {
			combo[chosen] = i
			chooseCombo(i+1, chosen+1)
		}
	}
	chooseCombo(0, 0)
	return out
}

// substitute appends every assignment of alternatives(window[pos]) to each
// position in positions, holding everything else in window fixed, to *out.
func substitute(window []byte, positions []int, out *[][]byte) {
	buf := append([]byte(nil), window...)
	var rec func(i int)
	rec = func(i int) {
		if i == len(positions) {
			*out = append(*out, append([]byte(nil), buf...))
			return
		}
		pos := positions[i]
		orig := window[pos]
		for _, b := range alternatives(orig) {
			buf[pos] = b
			rec(i + 1)
		}
		buf[pos] = orig
	}
	rec(0)
}

// Enumerate returns the neighborhoods at every distance 0..k, indexed by
// distance: result[d] == AtDistance(window, d).
func Enumerate(window []byte, k int) [][][]byte {
	out := make([][][]byte, k+1)
	for d := 0; d <= k; d++ {
		out[d] = AtDistance(window, d)
	}
	return out
}
