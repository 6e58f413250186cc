// Copyright 2017, Kerby Shedden and the Muscato contributors.

package seqmatch

import "golang.org/x/exp/slices"

// SortAnchors sorts anchors into increasing numeric order in place and
// returns it. FindAnchors returns anchors in SA-interval order (see
// FindAnchors); callers that need numeric order, e.g. to walk a reference
// left to right, must call this themselves.
func SortAnchors(anchors []int32) []int32 {
	slices.Sort(anchors)
	return anchors
}
