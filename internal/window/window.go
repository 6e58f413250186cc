// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package window implements the per-anchor approximate-match counter: for
// each anchor, it enumerates the DNA-alphabet Hamming neighborhood of the
// anchor's window and tallies occurrences of each neighbor in a target
// text, bucketed by distance. Anchors are independent and are processed by
// a bounded pool of goroutines, the same semaphore-channel pattern
// muscato_confirm.go and muscato_screen.go use to bound concurrent work.
package window

import (
	"log"
	"runtime"
	"sync"

	"github.com/kshedden/seqmatch/internal/locate"
	"github.com/kshedden/seqmatch/internal/neighbor"
	"github.com/kshedden/seqmatch/internal/screen"
)

// Input bundles everything Count needs to process a batch of anchors.
type Input struct {
	// RefText is T, the text the anchors were located in. Windows are
	// always cut from RefText, even when TargetText is a different text.
	RefText []byte

	// Anchors are the anchor positions (in RefText) to process.
	Anchors []int32

	// B0, B1 define the window [a+B0, a+B1) relative to each anchor,
	// with B0 <= B1 <= 0.
	B0, B1 int

	// K is the maximum Hamming distance to bucket, inclusive.
	K int

	// TargetText is U, the text searched for neighbor occurrences.
	TargetText []byte

	// TargetSA is the suffix array of TargetText (the same array as
	// RefText's when TargetText == RefText).
	TargetSA []int32

	// Screen, if non-nil, is a Bloom pre-filter over every length-L
	// window of TargetText (L = B1-B0). It never introduces false
	// negatives: it can only be used to skip confirming a neighbor that
	// provably cannot occur.
	Screen *screen.Screen

	// Workers bounds the number of goroutines processing anchors
	// concurrently. Zero or negative means runtime.NumCPU().
	Workers int

	// Dedup enables the cross-anchor window memoization cache (memo.go).
	Dedup bool

	// Logger receives one diagnostic line after the whole batch
	// completes. Never nil in practice (Searcher always supplies one).
	Logger *log.Logger
}

// Count computes, for every anchor in in.Anchors, the length-(K+1)
// histogram of neighbor occurrence counts in TargetText, returning a
// mapping from anchor position to histogram.
func Count(in Input) map[int32][]int {
	workers := in.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	result := make(map[int32][]int, len(in.Anchors))
	var resultMu sync.Mutex

	var mc *memo
	if in.Dedup {
		mc = newMemo(uint(len(in.Anchors) + 1))
	}

	limit := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, a := range in.Anchors {
		a := a
		wg.Add(1)
		limit <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-limit }()

			hist := countOne(in, a, mc)

			resultMu.Lock()
			result[a] = hist
			resultMu.Unlock()
		}()
	}
	wg.Wait()

	if in.Logger != nil {
		in.Logger.Printf("window.Count: %d anchors, %d workers, window=[%d,%d), k=%d",
			len(in.Anchors), workers, in.B0, in.B1, in.K)
	}

	return result
}

// countOne computes the histogram for a single anchor.
func countOne(in Input, a int32, mc *memo) []int {
	hist := make([]int, in.K+1)

	start := int(a) + in.B0
	end := int(a) + in.B1
	if start < 0 || end > len(in.RefText) || start > end {
		return hist
	}
	w := in.RefText[start:end]

	if mc != nil {
		if cached, ok := mc.get(w); ok {
			copy(hist, cached)
			return hist
		}
	}

	for d := 0; d <= in.K; d++ {
		neighbors := neighbor.AtDistance(w, d)
		count := 0
		for _, nb := range neighbors {
			if len(nb) > len(in.TargetText) {
				continue
			}
			if in.Screen != nil && !in.Screen.MaybePresent(nb) {
				continue
			}
			count += locate.Count(in.TargetText, in.TargetSA, nb)
		}
		hist[d] = count
	}

	if mc != nil {
		mc.put(w, hist)
	}
	return hist
}
