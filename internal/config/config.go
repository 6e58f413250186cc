// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package config loads the tunables that size the Window-Counter's
// optimizations without changing any result it returns, the same
// separation Muscato draws between its JSON-configured pipeline stage
// parameters (utils.Config) and the stages' actual matching logic.
package config

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the settings a bench or CLI run loads from a TOML file.
// Every field is performance-only: two runs that differ only in Config
// must still agree on every count returned by the Searcher.
type Config struct {
	// Workers bounds the number of goroutines the Window-Counter runs
	// concurrently. Zero or missing means runtime.NumCPU().
	Workers int

	// BloomBitsPerWindow sizes the rolling-hash Bloom screen built over
	// the target text, in bits per indexed window.
	BloomBitsPerWindow uint64

	// BloomHashes is the number of rolling hash functions the screen
	// uses.
	BloomHashes int

	// MinDinucComplexity is the minimum number of distinct dinucleotide
	// subsequences a window must contain before a screen is worth
	// building for it at all; below this, windows are low-complexity
	// runs where the screen saturates and confirming directly is
	// cheaper. Mirrors Muscato's MinDinuc.
	MinDinucComplexity int

	// Dedup enables the cross-anchor window memoization cache.
	Dedup bool

	// Profile, if true, wraps a bench run in github.com/pkg/profile CPU
	// profiling.
	Profile bool
}

// Default returns the Config a Searcher uses when none is supplied.
func Default() Config {
	return Config{
		Workers:            runtime.NumCPU(),
		BloomBitsPerWindow: 16,
		BloomHashes:        4,
		MinDinucComplexity: 3,
		Dedup:              true,
		Profile:            false,
	}
}

// Load decodes a Config from a TOML file, filling unset fields from
// Default.
func Load(filename string) (Config, error) {
	c := Default()
	meta, err := toml.DecodeFile(filename, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", filename, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: %s: unrecognized keys %v", filename, undecoded)
	}
	return c, nil
}
