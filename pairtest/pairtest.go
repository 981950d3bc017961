// Package pairtest implements the exact swept-parallelogram intersection
// test from spec §4.4. It is deliberately dependency-free: no example repo
// in the retrieval pack ships a computational-geometry library that would
// serve this predicate better than hand-written orientation tests (see
// DESIGN.md).
package pairtest

import (
	"math"

	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/vec"
)

const eps = 1e-9

// Test runs the exact pairwise intersection test for l1 against l2 over a
// step of duration dt and returns the PairTester's result kind.
//
// Definition (spec §4.4): let u = v2 - v1. In the frame of l1 during
// [0,dt], l2 sweeps the parallelogram P = { p + t*u : p in segment(l2), t
// in [0,dt] }. NO_INTERSECTION holds iff segment(l1) and P are disjoint.
func Test(l1, l2 *geom.Line, dt float64) events.Kind {
	u := l2.Velocity.Sub(l1.Velocity)
	uTd := u.Scale(dt)

	q1, q2 := l2.P1, l2.P2
	q1b, q2b := q1.Add(uTd), q2.Add(uTd)
	p1, p2 := l1.P1, l1.P2

	area := vec.Cross(q2.Sub(q1), uTd)
	if math.Abs(area) <= eps {
		return testDegenerate(p1, p2, q1, q2, q1b, q2b)
	}
	return testParallelogram(p1, p2, q1, q2, q1b, q2b)
}

// testParallelogram handles the generic, non-degenerate swept quadrilateral
// q1 -> q2 -> q2b -> q1b (in order around the boundary).
func testParallelogram(p1, p2, q1, q2, q1b, q2b vec.Vec) events.Kind {
	// Side edges trace the path an endpoint of l2 swept through; crossing
	// one means l2's endpoint reached l1's segment.
	if segmentsIntersect(p1, p2, q1, q1b) || segmentsIntersect(p1, p2, q2, q2b) {
		return events.L2TouchesL1
	}

	// Front/back edges are l2's own segment at the start and end of the
	// step; crossing one is a transversal segment-segment crossing.
	if segmentsIntersect(p1, p2, q1, q2) || segmentsIntersect(p1, p2, q1b, q2b) {
		return events.LineCross
	}

	// No boundary crossing: either disjoint, or l1's segment is wholly
	// inside the swept region, meaning l1's own endpoint is what the
	// envelope engulfs first.
	poly := [4]vec.Vec{q1, q2, q2b, q1b}
	if pointInConvexPolygon(p1, poly) || pointInConvexPolygon(p2, poly) {
		return events.L1TouchesL2
	}
	return events.NoIntersection
}

// testDegenerate handles the case where the swept parallelogram has
// (numerically) zero area — l2's relative velocity is parallel to its own
// segment, or zero, or dt is zero. The "parallelogram" collapses onto a
// single line segment; classifying the result as a plain segment crossing
// matches spec scenario 2 (the head-on, zero-height sweep case).
func testDegenerate(p1, p2, q1, q2, q1b, q2b vec.Vec) events.Kind {
	dir := q2.Sub(q1)
	if dir.Norm2() <= eps*eps {
		dir = q1b.Sub(q1)
	}
	if dir.Norm2() <= eps*eps {
		// l2 is a degenerate point with zero relative velocity: test it as
		// a single point against l1's segment.
		if onSegment(p1, q1, p2) {
			return events.LineCross
		}
		return events.NoIntersection
	}

	a, b := extent([4]vec.Vec{q1, q2, q1b, q2b}, dir)
	if segmentsIntersect(p1, p2, a, b) {
		return events.LineCross
	}
	return events.NoIntersection
}

// extent projects pts onto dir and returns the two extreme points.
func extent(pts [4]vec.Vec, dir vec.Vec) (min, max vec.Vec) {
	min, max = pts[0], pts[0]
	minD, maxD := pts[0].Dot(dir), pts[0].Dot(dir)
	for _, p := range pts[1:] {
		d := p.Dot(dir)
		if d < minD {
			minD, min = d, p
		}
		if d > maxD {
			maxD, max = d, p
		}
	}
	return min, max
}

// orientation returns 0 for collinear, 1 for clockwise, 2 for
// counter-clockwise, the classic CLRS-style segment-intersection predicate.
func orientation(p, q, r vec.Vec) int {
	val := vec.Cross(q.Sub(p), r.Sub(p))
	switch {
	case math.Abs(val) <= eps:
		return 0
	case val < 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether r, known collinear with p and q, lies within
// the bounding box of segment pq (inclusive of endpoints).
func onSegment(p, q, r vec.Vec) bool {
	return r.X() >= math.Min(p.X(), q.X())-eps && r.X() <= math.Max(p.X(), q.X())+eps &&
		r.Y() >= math.Min(p.Y(), q.Y())-eps && r.Y() <= math.Max(p.Y(), q.Y())+eps
}

// segmentsIntersect reports whether segments p1p2 and q1q2 share any point,
// including touching endpoints and collinear overlap.
func segmentsIntersect(p1, p2, q1, q2 vec.Vec) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	return false
}

// pointInConvexPolygon reports whether pt lies inside or on the boundary of
// the convex quadrilateral poly, regardless of the vertices' winding order.
func pointInConvexPolygon(pt vec.Vec, poly [4]vec.Vec) bool {
	var pos, neg bool
	for i := 0; i < 4; i++ {
		a := poly[i]
		b := poly[(i+1)%4]
		cross := vec.Cross(b.Sub(a), pt.Sub(a))
		if cross < -eps {
			neg = true
		} else if cross > eps {
			pos = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}
