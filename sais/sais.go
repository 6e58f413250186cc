// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package sais builds the suffix array that every other package in this
// module searches against. It implements the induced-sorting algorithm
// (SA-IS, Nong/Zhang/Chen) directly over an 8-bit alphabet: no byte value
// is reserved, and construction runs in O(n) time and O(n) auxiliary
// memory with no recursion beyond what the algorithm itself requires on
// the (much smaller) reduced LMS string.
package sais

// Build returns the suffix array of text: a permutation of [0, len(text))
// such that text[SA[i]:] < text[SA[i+1]:] compared as raw bytes.
//
// Build("") returns an empty slice. Build of a single byte returns []int32{0}.
func Build(text []byte) []int32 {
	n := len(text)
	if n == 0 {
		return []int32{}
	}
	if n == 1 {
		return []int32{0}
	}

	// Shift every byte up by one so that 0 is free to serve as the
	// implicit sentinel, which SA-IS requires to be strictly smaller
	// than every real symbol and to sort first.
	s := make([]int32, n+1)
	for i, b := range text {
		s[i] = int32(b) + 1
	}
	s[n] = 0

	sa := build(s, 257)

	// sa[0] is always the sentinel (the empty suffix); it must never
	// be surfaced to callers.
	out := make([]int32, n)
	copy(out, sa[1:])
	return out
}

// build runs SA-IS on s, an alphabet of size K over symbols [0,K), where s
// ends with a unique minimum symbol (0) that does not occur elsewhere in s.
func build(s []int32, K int32) []int32 {
	n := len(s)
	sa := make([]int32, n)
	for i := range sa {
		sa[i] = -1
	}
	if n == 1 {
		sa[0] = 0
		return sa
	}

	// Classify positions as S-type (true) or L-type (false). The
	// sentinel is always S-type; position i inherits the type of i+1
	// on ties.
	isS := make([]bool, n)
	isS[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			isS[i] = true
		case s[i] > s[i+1]:
			isS[i] = false
		default:
			isS[i] = isS[i+1]
		}
	}
	isLMS := func(i int) bool {
		return i > 0 && isS[i] && !isS[i-1]
	}

	var lms []int32
	for i := 1; i < n; i++ {
		if isLMS(i) {
			lms = append(lms, int32(i))
		}
	}

	buckets := bucketSizes(s, K)
	induceFromLMS(s, sa, isS, buckets, lms)

	// Collect the LMS positions in the order induced sorting placed
	// them into sa, then name each distinct LMS substring.
	sortedLMS := sa[:0:0]
	for _, pos := range sa {
		if isLMS(int(pos)) {
			sortedLMS = append(sortedLMS, pos)
		}
	}

	names := make([]int32, n)
	for i := range names {
		names[i] = -1
	}
	var numNames int32
	prev := int32(-1)
	for i, pos := range sortedLMS {
		if i == 0 {
			names[pos] = 0
			numNames = 1
		} else if !lmsSubstringEqual(s, isS, isLMS, prev, pos) {
			names[pos] = numNames
			numNames++
		} else {
			names[pos] = numNames - 1
		}
		prev = pos
	}

	reduced := make([]int32, len(lms))
	for i, pos := range lms {
		reduced[i] = names[pos]
	}

	var orderedLMSIdx []int32
	if int(numNames) < len(reduced) {
		// Shift names up by one so that 0 is free for the recursive
		// call's own sentinel, the same trick Build uses at the top
		// level.
		shifted := make([]int32, len(reduced)+1)
		for i, v := range reduced {
			shifted[i] = v + 1
		}
		shifted[len(reduced)] = 0
		reducedSA := build(shifted, numNames+1)
		orderedLMSIdx = reducedSA[1:] // strip the sentinel entry
	} else {
		// Every LMS substring is already distinct, so the reduced
		// suffix array is just the inverse of `reduced`.
		orderedLMSIdx = make([]int32, len(reduced))
		for i, name := range reduced {
			orderedLMSIdx[name] = int32(i)
		}
	}

	orderedLMS := make([]int32, len(orderedLMSIdx))
	for i, idx := range orderedLMSIdx {
		orderedLMS[i] = lms[idx]
	}

	for i := range sa {
		sa[i] = -1
	}
	induceFromLMS(s, sa, isS, buckets, orderedLMS)
	return sa
}

// induceFromLMS places the given LMS positions (assumed already in their
// final relative order) at their bucket tails, then induces every L-type
// and S-type suffix from them by two linear scans.
func induceFromLMS(s []int32, sa []int32, isS []bool, buckets []int32, lms []int32) {
	tails := bucketTails(buckets)
	for i := len(lms) - 1; i >= 0; i-- {
		pos := lms[i]
		c := s[pos]
		sa[tails[c]] = pos
		tails[c]--
	}

	heads := bucketHeads(buckets)
	for i := range sa {
		pos := sa[i]
		if pos > 0 && !isS[pos-1] {
			c := s[pos-1]
			sa[heads[c]] = pos - 1
			heads[c]++
		}
	}

	tails = bucketTails(buckets)
	for i := len(sa) - 1; i >= 0; i-- {
		pos := sa[i]
		if pos > 0 && isS[pos-1] {
			c := s[pos-1]
			sa[tails[c]] = pos - 1
			tails[c]--
		}
	}
}

func bucketSizes(s []int32, K int32) []int32 {
	b := make([]int32, K)
	for _, c := range s {
		b[c]++
	}
	return b
}

func bucketHeads(sizes []int32) []int32 {
	heads := make([]int32, len(sizes))
	var sum int32
	for i, n := range sizes {
		heads[i] = sum
		sum += n
	}
	return heads
}

func bucketTails(sizes []int32) []int32 {
	tails := make([]int32, len(sizes))
	var sum int32
	for i, n := range sizes {
		sum += n
		tails[i] = sum - 1
	}
	return tails
}

// lmsSubstringEqual reports whether the LMS substrings starting at i and j
// are byte-for-byte (symbol-for-symbol) identical, including their length
// (the span up to and including the next LMS position).
//
// i and j are themselves LMS positions, so isLMS(i) and isLMS(j) are
// trivially true at step 0; the "next LMS position ends the substring"
// check must only fire after advancing at least one symbol, or every pair
// of LMS substrings would compare equal at the very first byte.
func lmsSubstringEqual(s []int32, isS []bool, isLMS func(int) bool, i, j int32) bool {
	n := int32(len(s))
	for k := int32(0); ; k++ {
		if s[i] != s[j] {
			return false
		}
		iLMS := isLMS(int(i))
		jLMS := isLMS(int(j))
		if k > 0 {
			if i != 0 && j != 0 && iLMS && jLMS {
				return true
			}
			if iLMS != jLMS {
				return false
			}
		}
		i++
		j++
		if i >= n || j >= n {
			return false
		}
	}
}
