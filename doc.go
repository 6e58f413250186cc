// Copyright 2017, Kerby Shedden and the Muscato contributors.

// Package seqmatch provides fast exact and approximate substring search
// over large byte texts, built around a single suffix array constructed
// once and reused for many queries.
//
// The typical workload is: given a short anchor pattern, find every
// occurrence of it in a reference text (FindAnchors), then for each
// occurrence examine a fixed window located at a constant negative offset
// before the occurrence and count how many positions in a target text
// match the window's contents at Hamming distance 0, 1, ..., k
// (FindRepeatCounts). The counts, bucketed by distance, are returned per
// anchor. This mirrors Muscato's own near-miss counting step, generalized
// into a single in-process library instead of a pipeline of external
// commands exchanging files.
//
// Construction builds a linear-time suffix array (package sais, an
// induced-sorting implementation). Anchor location (package
// internal/locate) is two binary searches over that array. Window
// counting (package internal/window) enumerates the DNA-alphabet Hamming
// neighborhood of each window (package internal/neighbor) and locates each
// neighbor exactly, optionally screened by a rolling-hash Bloom filter
// (package internal/screen) and memoized across anchors sharing identical
// window content.
//
// A Searcher is immutable after construction and safe for concurrent
// read-only use; FindRepeatCounts parallelizes across anchors internally.
package seqmatch
