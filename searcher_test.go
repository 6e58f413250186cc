package seqmatch

import (
	"math/rand"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func repeat(s string, n int) string { return strings.Repeat(s, n) }

// S1
func TestFindAnchorsSingleAnchor(t *testing.T) {
	s, err := New([]byte("abc"))
	require.NoError(t, err)
	a, err := s.FindAnchors([]byte("b"))
	require.NoError(t, err)
	require.Equal(t, []int32{1}, a)
}

// S2
func TestFindAnchorsMultiHit(t *testing.T) {
	s, err := New([]byte("abcabc"))
	require.NoError(t, err)
	a, err := s.FindAnchors([]byte("ab"))
	require.NoError(t, err)
	require.ElementsMatch(t, []int32{0, 3}, a)
}

// S3
func TestFindAnchorsEmptyQuery(t *testing.T) {
	s, err := New([]byte("ab"))
	require.NoError(t, err)
	a, err := s.FindAnchors([]byte(""))
	require.NoError(t, err)
	require.Empty(t, a)
}

// S4
func TestFindRepeatCountsSelfHit(t *testing.T) {
	text := []byte("TTTT" + repeat("A", 13) + "NGG" + "TTTT" + repeat("C", 13) + "NGG")
	s, err := New(text)
	require.NoError(t, err)

	result, err := s.FindRepeatCounts([]byte("GG"), Window{B0: -14, B1: -1}, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1}, result[18])
	require.Equal(t, []int{1}, result[38])
}

// S5
func TestFindRepeatCountsExactDuplicateWindow(t *testing.T) {
	block := "TTTT" + repeat("A", 13) + "NGG"
	text := []byte(block + block)
	s, err := New(text)
	require.NoError(t, err)

	result, err := s.FindRepeatCounts([]byte("GG"), Window{B0: -14, B1: -1}, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []int{2}, result[18])
	require.Equal(t, []int{2}, result[38])

	absent := []byte(repeat("X", len(text)))
	result, err = s.FindRepeatCounts([]byte("GG"), Window{B0: -14, B1: -1}, 0, absent)
	require.NoError(t, err)
	require.Equal(t, []int{0}, result[18])
	require.Equal(t, []int{0}, result[38])
}

// S6
func TestFindRepeatCountsDistanceOne(t *testing.T) {
	block := "TTTT" + repeat("A", 13) + "NGG"
	text := []byte(block + block)
	text[4] = 'C'
	s, err := New(text)
	require.NoError(t, err)

	result, err := s.FindRepeatCounts([]byte("GG"), Window{B0: -14, B1: -1}, 1, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, result[18])
	require.Equal(t, []int{1, 1}, result[38])
}

// S7
func TestFindRepeatCountsDistanceTwo(t *testing.T) {
	block := "TTTT" + repeat("A", 13) + "NGG"
	text := []byte(block + block)
	text[4] = 'C'
	text[5] = 'C'
	s, err := New(text)
	require.NoError(t, err)

	result, err := s.FindRepeatCounts([]byte("GG"), Window{B0: -14, B1: -1}, 2, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 1}, result[18])
	require.Equal(t, []int{1, 0, 1}, result[38])
}

// S8
func TestFindRepeatCountsAlternateWindow(t *testing.T) {
	s, err := New([]byte("xAB.xExx?BxxE"))
	require.NoError(t, err)

	result, err := s.FindRepeatCounts([]byte("E"), Window{B0: -4, B1: -2}, 1, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, result[5])
	require.Equal(t, []int{1, 1}, result[12])
}

// S9
func TestFindRepeatCountsDomainErrorDistanceExceedsWindow(t *testing.T) {
	s, err := New([]byte("ACGTACGTACGTACGT"))
	require.NoError(t, err)

	_, err = s.FindRepeatCounts([]byte("ACGT"), Window{B0: -10, B1: -7}, 4, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "max distance is larger than search window size")
	var de *DomainError
	require.ErrorAs(t, err, &de)
}

// S10
func TestFindAnchorsLongRepetitive(t *testing.T) {
	block := repeat("A", 17) + "NGG"
	text := []byte(block + block)
	s, err := New(text)
	require.NoError(t, err)

	a, err := s.FindAnchors([]byte(repeat("A", 18)))
	require.NoError(t, err)
	require.Empty(t, a)

	a, err = s.FindAnchors([]byte(repeat("A", 17)))
	require.NoError(t, err)
	require.ElementsMatch(t, []int32{0, 20}, a)

	a, err = s.FindAnchors([]byte(repeat("A", 13)))
	require.NoError(t, err)
	require.Len(t, a, 10)
}

func TestFindRepeatCountsRejectsInvertedWindow(t *testing.T) {
	s, err := New([]byte("ACGTACGT"))
	require.NoError(t, err)
	_, err = s.FindRepeatCounts([]byte("AC"), Window{B0: -1, B1: -5}, 0, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "start after end")
	var de *DomainError
	require.ErrorAs(t, err, &de)
}

func TestFindRepeatCountsRejectsOverlappingWindow(t *testing.T) {
	s, err := New([]byte("ACGTACGT"))
	require.NoError(t, err)
	_, err = s.FindRepeatCounts([]byte("AC"), Window{B0: -4, B1: 1}, 0, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "window before anchor overlapping anchor")
}

func TestFindAnchorsRejectsNilPattern(t *testing.T) {
	s, err := New([]byte("ACGT"))
	require.NoError(t, err)
	_, err = s.FindAnchors(nil)
	require.Error(t, err)
	var se *ShapeError
	require.ErrorAs(t, err, &se)
}

// Invariant 6: rejection performs no search and leaves the Searcher
// otherwise unusable state unaffected — a subsequent valid call on the
// same Searcher still succeeds.
func TestDomainErrorDoesNotLeaveSearcherBroken(t *testing.T) {
	s, err := New([]byte("ACGTACGTACGT"))
	require.NoError(t, err)

	_, err = s.FindRepeatCounts([]byte("ACGT"), Window{B0: -2, B1: -1}, 5, nil)
	require.Error(t, err)

	result, err := s.FindRepeatCounts([]byte("ACGT"), Window{B0: -2, B1: -1}, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
}

// Invariant 5: idempotence.
func TestFindRepeatCountsIdempotent(t *testing.T) {
	text := []byte("TTTT" + repeat("A", 13) + "NGG" + "TTTT" + repeat("C", 13) + "NGG")
	s, err := New(text)
	require.NoError(t, err)

	r1, err := s.FindRepeatCounts([]byte("GG"), Window{B0: -14, B1: -1}, 1, nil)
	require.NoError(t, err)
	r2, err := s.FindRepeatCounts([]byte("GG"), Window{B0: -14, B1: -1}, 1, nil)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
}

// Invariant 1, property-based: every returned anchor is a genuine exact
// occurrence, and no occurrence is missed.
func TestFindAnchorsPropertyExactlyTheOccurrences(t *testing.T) {
	f := func(seed int64, n uint8, pn uint8) bool {
		r := rand.New(rand.NewSource(seed))
		tn := int(n)%200 + 1
		text := make([]byte, tn)
		for i := range text {
			text[i] = "ACGT"[r.Intn(4)]
		}
		plen := int(pn)%6 + 1
		if plen > tn {
			plen = tn
		}
		start := r.Intn(tn - plen + 1)
		pattern := append([]byte(nil), text[start:start+plen]...)

		s, err := New(text)
		if err != nil {
			return false
		}
		anchors, err := s.FindAnchors(pattern)
		if err != nil {
			return false
		}

		var want []int32
		for i := 0; i+plen <= tn; i++ {
			if string(text[i:i+plen]) == string(pattern) {
				want = append(want, int32(i))
			}
		}

		if len(anchors) != len(want) {
			return false
		}
		seen := make(map[int32]bool, len(anchors))
		for _, a := range anchors {
			seen[a] = true
			if string(text[a:int(a)+plen]) != string(pattern) {
				return false
			}
		}
		for _, w := range want {
			if !seen[w] {
				return false
			}
		}
		return true
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 200}))
}

// Invariant 3: c_0 equals exact literal occurrence count of the window.
func TestFindRepeatCountsC0IsExactCount(t *testing.T) {
	text := []byte("GATTACA" + "NNN" + "GATTACA" + "XX" + "GATTACA")
	s, err := New(text)
	require.NoError(t, err)

	result, err := s.FindRepeatCounts([]byte("GATTACA"), Window{B0: -4, B1: 0}, 0, nil)
	require.NoError(t, err)
	for a, hist := range result {
		if int(a)-4 < 0 {
			require.Equal(t, 0, hist[0], "out-of-range anchor %d", a)
			continue
		}
		want := strings.Count(string(text), string(text[int(a)-4:a]))
		require.Equal(t, want, hist[0], "anchor %d", a)
	}
}

func TestNewAcceptsEmptyText(t *testing.T) {
	_, err := New(nil)
	require.NoError(t, err) // empty text is valid; SA is just empty.
}

func TestIDStableAcrossCalls(t *testing.T) {
	s, err := New([]byte("ACGT"))
	require.NoError(t, err)
	id1 := s.ID()
	_, _ = s.FindAnchors([]byte("AC"))
	require.Equal(t, id1, s.ID())
}
