package quadtree

import (
	"github.com/pkg/errors"
	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/pairtest"
)

// ErrNilSink is returned by Query when handed a nil sink (spec's
// NULL_POINTER condition at the query_events boundary).
var ErrNilSink = errors.New("quadtree: nil event sink")

// ErrDtMismatch is returned when Query is called with a dt different from
// the one Build cached — spec §9 calls this a caller bug that "must be
// detected in debug builds".
var ErrDtMismatch = errors.New("quadtree: dt passed to Query does not match Build")

// CandidatePair is one entry of the query's candidate list (spec §3): two
// line references with a.ID < b.ID.
type CandidatePair struct {
	A, B *geom.Line
}

// Candidates enumerates the ordered, duplicate-free candidate list from
// spec §4.3, without running the PairTester. It exists so the completeness
// and de-duplication properties in spec §8 can be tested independently of
// pairtest.
func (ix *Index) Candidates(dt float64) ([]CandidatePair, error) {
	if err := ix.checkDt(dt); err != nil {
		return nil, err
	}
	var out []CandidatePair
	ix.forEachCandidateSequential(func(i, j int) {
		out = append(out, CandidatePair{A: ix.lines[i], B: ix.lines[j]})
	})
	return out, nil
}

// Query runs the sequential pipeline: descend for every line, emit each
// duplicate-free candidate pair exactly once, run the exact PairTester, and
// push any resulting event to sink (spec §4.3, §4.4, §4.5).
func (ix *Index) Query(dt float64, sink events.Sink) error {
	if sink == nil {
		ix.log.Errorw("quadtree query: nil event sink")
		return ErrNilSink
	}
	if err := ix.checkDt(dt); err != nil {
		return err
	}
	if ix.empty {
		return nil
	}

	ix.forEachCandidateSequential(func(i, j int) {
		a, b := ix.lines[i], ix.lines[j]
		kind := pairtest.Test(a, b, dt)
		if kind != events.NoIntersection {
			sink.Push(events.IntersectionEvent{L1: a, L2: b, Kind: kind})
		}
	})
	return nil
}

func (ix *Index) checkDt(dt float64) error {
	if ix.dt != dt {
		ix.log.Errorw("quadtree query: dt mismatch between build and query",
			"builtDt", ix.dt, "queriedDt", dt)
		return ErrDtMismatch
	}
	return nil
}

// forEachCandidateSequential implements §4.3's algorithm directly: for each
// line a (by its position i in the borrowed array), take its expanded AABB
// from the build-time cache (so build and query agree bit-for-bit), descend,
// and emit (i,j) once per unordered pair via the seen-set. A pair that shares
// a leaf but whose expanded AABBs do not overlap is not a candidate.
func (ix *Index) forEachCandidateSequential(fn func(i, j int)) {
	n := len(ix.lines)
	ps := newPairSet(n)
	var scratch []int

	for i := 0; i < n; i++ {
		scratch = ix.collectLeaves(ix.root, ix.expanded[i], scratch[:0])
		for _, leafIdx := range scratch {
			for _, j := range ix.nodes[leafIdx].lines {
				if j == i {
					continue
				}
				a, b := ix.lines[i], ix.lines[j]
				if a.ID >= b.ID {
					continue
				}
				if !ix.expanded[i].Overlaps(ix.expanded[j]) {
					continue
				}
				minPos, maxPos := i, j
				if minPos > maxPos {
					minPos, maxPos = maxPos, minPos
				}
				if !ps.claim(minPos, maxPos) {
					continue
				}
				ix.stats.recordPairEmitted(1)
				fn(i, j)
			}
		}
	}
}

// collectLeaves appends to out every leaf node whose square overlaps box,
// reusing out as scratch space. Read-only traversal: safe to call
// concurrently from multiple goroutines since the tree never mutates after
// Build.
func (ix *Index) collectLeaves(nodeIdx int, box geom.AABB, out []int) []int {
	n := &ix.nodes[nodeIdx]
	if !n.box.Overlaps(box) {
		return out
	}
	ix.stats.recordCellQueried()
	if n.leaf {
		return append(out, nodeIdx)
	}
	for _, c := range n.children {
		if c != noChild {
			out = ix.collectLeaves(c, box, out)
		}
	}
	return out
}
