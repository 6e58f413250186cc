// Copyright 2017, Kerby Shedden and the Muscato contributors.

// seqmatchbench loads a reference FASTA (and, optionally, a separate
// target FASTA) and runs FindRepeatCounts over every occurrence of a
// pattern, reporting anchor counts, elapsed time, and the resulting
// distance histograms. It is a demonstration and benchmarking consumer of
// package seqmatch, not a re-implementation of the façade: the -pattern,
// -b0, -b1, -k and -target flags map directly onto Searcher.FindRepeatCounts
// arguments, and all window-tuple validation is left to the Searcher itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"

	"github.com/kshedden/seqmatch"
	"github.com/kshedden/seqmatch/internal/config"
	"github.com/kshedden/seqmatch/internal/testutil"
)

var (
	refFile    = flag.String("ref", "", "reference FASTA file (required)")
	targetFile = flag.String("target", "", "target FASTA file; defaults to the reference")
	configFile = flag.String("config", "", "TOML file of internal/config.Config tunables")
	pattern    = flag.String("pattern", "", "anchor pattern (required)")
	b0         = flag.Int("b0", 0, "window start offset, relative to each anchor (<= b1 <= 0)")
	b1         = flag.Int("b1", 0, "window end offset, relative to each anchor (<= 0)")
	k          = flag.Int("k", 2, "maximum Hamming distance to bucket")
	doProfile  = flag.Bool("profile", false, "capture a CPU profile of the FindRepeatCounts call")
)

func main() {
	flag.Parse()
	if *refFile == "" || *pattern == "" {
		flag.Usage()
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "seqmatchbench: ", log.Ltime)

	refRecords, err := testutil.LoadFASTA(*refFile)
	if err != nil {
		logger.Fatalf("loading reference: %v", err)
	}
	ref := concat(refRecords)

	var target []byte
	if *targetFile != "" {
		targetRecords, err := testutil.LoadFASTA(*targetFile)
		if err != nil {
			logger.Fatalf("loading target: %v", err)
		}
		target = concat(targetRecords)
	}

	cfg := config.Default()
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
		if err != nil {
			logger.Fatalf("loading config: %v", err)
		}
	}

	if cfg.Profile || *doProfile {
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
		defer p.Stop()
	}

	logger.Printf("reference: %s bases", humanize.Comma(int64(len(ref))))
	if target != nil {
		logger.Printf("target: %s bases", humanize.Comma(int64(len(target))))
	}

	start := time.Now()
	s, err := seqmatch.New(ref)
	if err != nil {
		logger.Fatalf("building searcher: %v", err)
	}
	s = s.WithLogger(logger).WithConfig(cfg)
	logger.Printf("suffix array built in %s", time.Since(start))

	win := seqmatch.Window{B0: *b0, B1: *b1}
	start = time.Now()
	result, err := s.FindRepeatCounts([]byte(*pattern), win, *k, target)
	if err != nil {
		logger.Fatalf("find_repeat_counts: %v", err)
	}
	elapsed := time.Since(start)

	anchors := make([]int32, 0, len(result))
	for a := range result {
		anchors = append(anchors, a)
	}
	seqmatch.SortAnchors(anchors)

	logger.Printf("%s anchors processed in %s", humanize.Comma(int64(len(anchors))), elapsed)
	for _, a := range anchors {
		fmt.Printf("%d\t%v\n", a, result[a])
	}
}

// concat joins FASTA records with a single 'N' separator so a multi-record
// file (e.g. a chromosome set) behaves as one reference text, the same
// choice Muscato's own target preparation step makes when concatenating
// gene sequences.
func concat(records [][]byte) []byte {
	if len(records) == 0 {
		return nil
	}
	if len(records) == 1 {
		return records[0]
	}
	var out []byte
	for i, r := range records {
		if i > 0 {
			out = append(out, 'N')
		}
		out = append(out, r...)
	}
	return out
}
