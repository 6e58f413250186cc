// Copyright 2017, Kerby Shedden and the Muscato contributors.

package window

import (
	"bytes"
	"sync"

	"github.com/willf/bloom"
	"github.com/zeebo/xxh3"
)

// memo caches a window's already-computed distance histogram, so that
// anchors sharing byte-identical windows (common in repetitive DNA, see
// the exact-duplicate-window scenario this module's tests cover) pay for
// neighbor enumeration and confirmation only once.
//
// Like muscato_screen's own Bloom filter updates, this is deliberately not
// fine-grained: a single mutex guards both the Bloom pre-filter and the
// backing map, following the same judgment call muscato_screen.go makes
// ("could probably be made concurrent, but there may be too much
// contention for a big payoff"). The Bloom filter is a cheap negative
// check; xxh3 keys the backing map so long windows are hashed once rather
// than by Go's map implementation on every lookup, with the original
// window bytes retained alongside each entry to resolve the (practically
// impossible) case of an xxh3 collision without ever returning a wrong
// histogram for a different window.
type memo struct {
	mu      sync.Mutex
	bf      *bloom.BloomFilter
	entries map[uint64][]memoEntry
}

type memoEntry struct {
	window []byte
	counts []int
}

func newMemo(expectedDistinctWindows uint) *memo {
	return &memo{
		bf:      bloom.NewWithEstimates(expectedDistinctWindows, 0.01),
		entries: make(map[uint64][]memoEntry),
	}
}

func (m *memo) get(window []byte) ([]int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.bf.Test(window) {
		return nil, false
	}
	h := xxh3.Hash(window)
	for _, e := range m.entries[h] {
		if bytes.Equal(e.window, window) {
			return e.counts, true
		}
	}
	return nil, false
}

func (m *memo) put(window []byte, counts []int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bf.Add(window)
	h := xxh3.Hash(window)
	m.entries[h] = append(m.entries[h], memoEntry{
		window: append([]byte(nil), window...),
		counts: append([]int(nil), counts...),
	})
}
