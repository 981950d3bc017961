// Package bruteforce is the O(n^2) reference pipeline spec §8's
// "brute-force equivalence" property is checked against: every unordered
// pair is tested directly with pairtest.Test, with no spatial pruning.
// It shares the PairTester with the quadtree pipeline so a mismatch
// between the two can only come from candidate generation, never from the
// intersection test itself.
package bruteforce

import (
	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/pairtest"
)

// Candidates returns every unordered pair (a.ID<b.ID) of the input lines,
// the brute-force analogue of quadtree's Candidates.
func Candidates(lines []*geom.Line) []CandidatePair {
	var out []CandidatePair
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			a, b := orderByID(lines[i], lines[j])
			out = append(out, CandidatePair{A: a, B: b})
		}
	}
	return out
}

// CandidatePair mirrors quadtree.CandidatePair so the two packages' outputs
// can be compared directly in equivalence tests.
type CandidatePair struct {
	A, B *geom.Line
}

// orderByID returns l1, l2 with the smaller ID first, matching quadtree's
// convention of always calling pairtest.Test with the smaller-ID line as
// its first argument (the frame PairTester's Kind result is relative to).
func orderByID(l1, l2 *geom.Line) (*geom.Line, *geom.Line) {
	if l1.ID < l2.ID {
		return l1, l2
	}
	return l2, l1
}

// Query runs pairtest.Test over every unordered pair and pushes every
// non-NoIntersection result to sink. Pair order mirrors the position order
// of the input slice, but within each pair the smaller-ID line is always
// l1, so Kind agrees bitwise with quadtree's Query for the same input.
func Query(lines []*geom.Line, dt float64, sink events.Sink) {
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			a, b := orderByID(lines[i], lines[j])
			kind := pairtest.Test(a, b, dt)
			if kind == events.NoIntersection {
				continue
			}
			sink.Push(events.IntersectionEvent{L1: a, L2: b, Kind: kind})
		}
	}
}
