// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package screen sketches every length-L window of a text into a Bloom
// filter backed by a rolling hash, the same two-stage "screen, then
// confirm" idea Muscato's own screening step uses for candidate read
// matches. A neighbor string the screen reports absent can never occur in
// the text and the caller can skip the expensive exact search entirely; a
// neighbor the screen reports present must still be confirmed exactly,
// since Bloom filters admit false positives but never false negatives.
package screen

import (
	"math/rand"

	"github.com/chmduquesne/rollinghash"
	"github.com/chmduquesne/rollinghash/buzhash32"
	"github.com/golang-collections/go-datastructures/bitarray"
)

// Screen is a Bloom sketch of every length-L window of a text.
type Screen struct {
	bits   bitarray.BitArray
	size   uint64
	tables [][256]uint32
	l      int
}

// Build sketches every length-l window of text into a Bloom filter with
// numHash independent hash functions and bitsPerWindow bits of filter per
// window. seed makes the hash functions reproducible, which matters for
// tests; production callers can pass time.Now().UnixNano().
//
// Build returns nil if text has no length-l window (len(text) < l); in
// that case the caller should treat every window as absent without
// consulting the screen.
func Build(text []byte, l, numHash int, bitsPerWindow uint64, seed int64) *Screen {
	windows := len(text) - l + 1
	if windows <= 0 {
		return nil
	}

	size := uint64(windows) * bitsPerWindow
	if size < 64 {
		size = 64
	}

	tables := genTables(numHash, seed)
	bits := bitarray.NewBitArray(size)
	hashes := newHashes(tables)

	for _, h := range hashes {
		h.Write(text[0:l])
	}
	insert(hashes, bits, size)
	for j := l; j < len(text); j++ {
		for _, h := range hashes {
			h.Roll(text[j])
		}
		insert(hashes, bits, size)
	}

	return &Screen{bits: bits, size: size, tables: tables, l: l}
}

// MaybePresent reports whether window (which must have length l) could
// occur in the screened text. false is a certain answer: window cannot
// occur. true only means window might occur and must be confirmed exactly.
func (s *Screen) MaybePresent(window []byte) bool {
	if s == nil {
		return true
	}
	hashes := newHashes(s.tables)
	for _, h := range hashes {
		h.Write(window)
		x := uint64(h.Sum32()) % s.size
		present, _ := s.bits.GetBit(x)
		if !present {
			return false
		}
	}
	return true
}

func insert(hashes []rollinghash.Hash32, bits bitarray.BitArray, size uint64) {
	for _, h := range hashes {
		x := uint64(h.Sum32()) % size
		bits.SetBit(x)
	}
}

func newHashes(tables [][256]uint32) []rollinghash.Hash32 {
	hashes := make([]rollinghash.Hash32, len(tables))
	for j := range hashes {
		hashes[j] = buzhash32.NewFromUint32Array(tables[j])
	}
	return hashes
}

// genTables generates numHash independent byte-substitution tables for
// buzhash32, each a random permutation-like assignment of distinct
// uint32 values to the 256 byte values.
func genTables(numHash int, seed int64) [][256]uint32 {
	r := rand.New(rand.NewSource(seed))
	tables := make([][256]uint32, numHash)
	for j := 0; j < numHash; j++ {
		seen := make(map[uint32]bool, 256)
		for i := 0; i < 256; i++ {
			for {
				x := uint32(r.Int63())
				if !seen[x] {
					tables[j][i] = x
					seen[x] = true
					break
				}
			}
		}
	}
	return tables
}
