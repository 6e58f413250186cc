// Copyright 2017, Kerby Shedden and the Muscato contributors.

package seqmatch

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/kshedden/seqmatch/internal/config"
	"github.com/kshedden/seqmatch/internal/locate"
	"github.com/kshedden/seqmatch/internal/screen"
	"github.com/kshedden/seqmatch/internal/window"
	"github.com/kshedden/seqmatch/sais"
)

// Searcher is the façade: it owns a reference text and the suffix array
// built over it, and exposes exact and approximate substring search. A
// Searcher is safe for concurrent read-only use across multiple calls,
// provided the caller does not mutate any target text passed to
// FindRepeatCounts while a call is outstanding.
type Searcher struct {
	text   []byte
	sa     []int32
	id     uuid.UUID
	logger *log.Logger
	cfg    config.Config
}

// New builds a Searcher over text. Construction builds the suffix array
// once; text is retained by reference and must not be mutated afterward.
func New(text []byte) (s *Searcher, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = newResourceError("seqmatch: suffix array construction failed", fmt.Errorf("%v", r))
		}
	}()

	sa := sais.Build(text)
	return &Searcher{
		text:   text,
		sa:     sa,
		id:     uuid.New(),
		logger: log.New(io.Discard, "", 0),
		cfg:    config.Default(),
	}, nil
}

// WithLogger returns a copy of s that logs diagnostics to l. A nil l
// discards diagnostics, the default.
func (s *Searcher) WithLogger(l *log.Logger) *Searcher {
	cp := *s
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	cp.logger = l
	return &cp
}

// WithConfig returns a copy of s using cfg to size the Window-Counter's
// Bloom screen, memoization, and worker pool. It never changes any
// returned count.
func (s *Searcher) WithConfig(cfg config.Config) *Searcher {
	cp := *s
	cp.cfg = cfg
	return &cp
}

// ID returns the correlation identifier logged alongside this Searcher's
// diagnostics, stable for the Searcher's lifetime.
func (s *Searcher) ID() uuid.UUID {
	return s.id
}

// FindAnchors returns every start position of pattern in the reference
// text, in suffix-array order. An empty pattern returns no anchors.
func (s *Searcher) FindAnchors(pattern []byte) ([]int32, error) {
	if pattern == nil {
		return nil, newShapeError("seqmatch: pattern must be a byte sequence")
	}
	return locate.Find(s.text, s.sa, pattern), nil
}

// Window is the (b0, b1) pair defining the byte range [a+b0, a+b1) before
// an anchor a, with b0 <= b1 <= 0.
type Window struct {
	B0, B1 int
}

// validate checks the window tuple and the distance k against it,
// returning the window length on success.
func (w Window) validate(k int) (int, error) {
	if w.B0 > w.B1 {
		return 0, newDomainError("start after end")
	}
	if w.B1 > 0 {
		return 0, newDomainError("window before anchor overlapping anchor")
	}
	l := w.B1 - w.B0
	if l < k {
		return 0, newDomainError("max distance is larger than search window size")
	}
	return l, nil
}

// FindRepeatCounts locates every occurrence of pattern, then for each
// occurrence a counts, over target (defaulting to the reference text when
// target is nil), the number of positions at Hamming distance exactly
// 0, 1, ..., k from the window T[a+win.B0 : a+win.B1).
//
// All validation happens before any search is launched: on a validation
// error, no work is performed and the Searcher is left unchanged.
func (s *Searcher) FindRepeatCounts(pattern []byte, win Window, k int, target []byte) (result map[int32][]int, err error) {
	if pattern == nil {
		return nil, newShapeError("seqmatch: pattern must be a byte sequence")
	}
	if k < 0 {
		return nil, newDomainError("max distance is larger than search window size")
	}
	l, err := win.validate(k)
	if err != nil {
		return nil, err
	}

	usingRefText := target == nil
	if usingRefText {
		target = s.text
	}

	anchors, err := s.FindAnchors(pattern)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = newResourceError("seqmatch: neighbor enumeration failed", fmt.Errorf("%v", r))
		}
	}()

	targetSA := s.sa
	if !usingRefText {
		targetSA = sais.Build(target)
	}

	var scr *screen.Screen
	if l > 0 {
		if w := firstWindow(s.text, anchors, win); w != nil && screen.DinucComplexity(w) >= s.cfg.MinDinucComplexity {
			scr = screen.Build(target, l, s.cfg.BloomHashes, s.cfg.BloomBitsPerWindow, int64(binary.BigEndian.Uint64(s.id[:8])))
		}
	}

	s.logger.Printf("seqmatch[%s]: find_repeat_counts pattern=%q window=(%d,%d) k=%d anchors=%d",
		s.id, pattern, win.B0, win.B1, k, len(anchors))

	result = window.Count(window.Input{
		RefText:    s.text,
		Anchors:    anchors,
		B0:         win.B0,
		B1:         win.B1,
		K:          k,
		TargetText: target,
		TargetSA:   targetSA,
		Screen:     scr,
		Workers:    s.cfg.Workers,
		Dedup:      s.cfg.Dedup,
		Logger:     s.logger,
	})
	return result, nil
}

// firstWindow returns the first in-range window among anchors, or nil if
// none is in range; used only to size the screen-worthiness check.
func firstWindow(text []byte, anchors []int32, win Window) []byte {
	for _, a := range anchors {
		start := int(a) + win.B0
		end := int(a) + win.B1
		if start >= 0 && end <= len(text) && start <= end {
			return text[start:end]
		}
	}
	return nil
}
