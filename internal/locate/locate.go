// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package locate finds every occurrence of a pattern in a text given that
// text's suffix array, by bounding the SA interval whose suffixes share
// the pattern as a prefix with two binary searches.
package locate

// Find returns the start positions in text at which pattern occurs, in
// SA order (not numeric order). It returns nil for an empty pattern, for a
// pattern longer than text, and for a pattern that does not occur.
//
// sa must be the suffix array of text, as returned by sais.Build(text).
func Find(text []byte, sa []int32, pattern []byte) []int32 {
	m := len(pattern)
	if m == 0 || m > len(text) {
		return nil
	}
	lo := lowerBound(text, sa, pattern)
	hi := upperBound(text, sa, pattern)
	if lo >= hi {
		return nil
	}
	return sa[lo:hi]
}

// Count is equivalent to len(Find(text, sa, pattern)) but only performs
// the two binary searches, never materializing a slice.
func Count(text []byte, sa []int32, pattern []byte) int {
	m := len(pattern)
	if m == 0 || m > len(text) {
		return 0
	}
	lo := lowerBound(text, sa, pattern)
	hi := upperBound(text, sa, pattern)
	if hi < lo {
		return 0
	}
	return hi - lo
}

// lowerBound returns the smallest i such that text[sa[i]:sa[i]+len(pattern)]
// is lexicographically >= pattern, treating a suffix shorter than pattern
// as padded with a sentinel smaller than every real byte.
func lowerBound(text []byte, sa []int32, pattern []byte) int {
	lo, hi := 0, len(sa)
	for lo < hi {
		mid := (lo + hi) / 2
		if comparePrefix(text, sa[mid], pattern) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the smallest i such that text[sa[i]:sa[i]+len(pattern)]
// is lexicographically > pattern.
func upperBound(text []byte, sa []int32, pattern []byte) int {
	lo, hi := 0, len(sa)
	for lo < hi {
		mid := (lo + hi) / 2
		if comparePrefix(text, sa[mid], pattern) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// comparePrefix compares text[pos:pos+len(pattern)] to pattern, raw bytes,
// returning <0, 0, >0. A suffix that runs out of bytes before len(pattern)
// compares as less than pattern (the implicit SA-IS sentinel).
func comparePrefix(text []byte, pos int32, pattern []byte) int {
	n := len(text)
	for i, pb := range pattern {
		ti := int(pos) + i
		if ti >= n {
			return -1
		}
		tb := text[ti]
		if tb != pb {
			if tb < pb {
				return -1
			}
			return 1
		}
	}
	return 0
}
