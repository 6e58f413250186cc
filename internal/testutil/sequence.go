// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package testutil provides test-fixture helpers: a FASTA loader for real
// sequence data and a synthetic generator for planted-repeat data, used by
// the package tests that exercise the suffix array, locator, and
// window-counter against more than hand-written strings.
package testutil

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// LoadFASTA reads every record in a FASTA file and returns their
// concatenated sequence bytes, one []byte per record, in file order.
func LoadFASTA(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("testutil: opening %s: %w", path, err)
	}
	defer f.Close()

	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA)))

	var out [][]byte
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		buf := make([]byte, len(seq.Seq))
		for i, l := range seq.Seq {
			buf[i] = byte(l)
		}
		out = append(out, buf)
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("testutil: reading %s: %w", path, err)
	}
	return out, nil
}

// RandomDNA returns a random sequence of length n over {A,C,G,T}, using r
// for reproducibility.
func RandomDNA(r *rand.Rand, n int) []byte {
	const bases = "ACGT"
	out := make([]byte, n)
	for i := range out {
		out[i] = bases[r.Intn(4)]
	}
	return out
}

// PlantRepeat copies src and overwrites count non-overlapping positions
// with literal copies of motif, spaced at least motif-length apart,
// returning the resulting sequence and the positions planted at. Used to
// build fixtures with a known, controllable number of approximate-match
// anchors.
func PlantRepeat(r *rand.Rand, src []byte, motif []byte, count int) ([]byte, []int) {
	out := append([]byte(nil), src...)
	positions := make([]int, 0, count)
	step := len(out) / (count + 1)
	if step < len(motif) {
		step = len(motif)
	}
	pos := step
	for i := 0; i < count && pos+len(motif) <= len(out); i++ {
		copy(out[pos:pos+len(motif)], motif)
		positions = append(positions, pos)
		pos += step
	}
	return out, positions
}
