package geom

import (
	"math"

	"github.com/segcollide/sim/vec"
	"gonum.org/v1/gonum/spatial/r2"
)

// ExpansionConfig carries the AABB expansion tunables from spec §4.1.
type ExpansionConfig struct {
	KRel        float64
	KGap        float64
	EpsPrec     float64
	MinCellSize float64
}

// DefaultExpansionConfig returns the spec's documented defaults.
func DefaultExpansionConfig() ExpansionConfig {
	return ExpansionConfig{
		KRel:        0.3,
		KGap:        0.15,
		EpsPrec:     1e-6,
		MinCellSize: 1e-3,
	}
}

// AABB is an axis-aligned bounding box. xmin<=xmax and ymin<=ymax always
// hold. A quadtree node stores only its own square as an AABB; a line's
// expanded AABB is never stored inside a node (the index keeps one per line
// for the duration of a step).
type AABB struct {
	box r2.Box
}

// Min returns the lower-left corner.
func (a AABB) Min() vec.Vec { return vec.New(a.box.Min.X, a.box.Min.Y) }

// Max returns the upper-right corner.
func (a AABB) Max() vec.Vec { return vec.New(a.box.Max.X, a.box.Max.Y) }

// NewAABB builds an AABB from raw coordinates, normalizing min/max order.
func NewAABB(xmin, ymin, xmax, ymax float64) AABB {
	return newAABB(xmin, ymin, xmax, ymax)
}

func newAABB(xmin, ymin, xmax, ymax float64) AABB {
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	return AABB{box: r2.Box{Min: r2.Vec{X: xmin, Y: ymin}, Max: r2.Vec{X: xmax, Y: ymax}}}
}

// Overlaps reports whether two AABBs share any point. The comparison is
// inclusive of shared boundary coordinates (spec §8 boundary behavior: two
// AABBs touching at exactly one coordinate still overlap).
func (a AABB) Overlaps(b AABB) bool {
	return a.box.Min.X <= b.box.Max.X && a.box.Max.X >= b.box.Min.X &&
		a.box.Min.Y <= b.box.Max.Y && a.box.Max.Y >= b.box.Min.Y
}

// Union returns the smallest AABB containing both a and b.
func Union(a, b AABB) AABB {
	u := r2.Union(a.box, b.box)
	return AABB{box: u}
}

// sweptRaw computes the unexpanded AABB of the parallelogram swept by l's
// segment over [0, dt] under its velocity (spec §4.1).
func sweptRaw(l *Line, dt float64) AABB {
	q1 := l.P1.Add(l.Velocity.Scale(dt))
	q2 := l.P2.Add(l.Velocity.Scale(dt))

	xmin := math.Min(math.Min(l.P1.X(), l.P2.X()), math.Min(q1.X(), q2.X()))
	xmax := math.Max(math.Max(l.P1.X(), l.P2.X()), math.Max(q1.X(), q2.X()))
	ymin := math.Min(math.Min(l.P1.Y(), l.P2.Y()), math.Min(q1.Y(), q2.Y()))
	ymax := math.Max(math.Max(l.P1.Y(), l.P2.Y()), math.Max(q1.Y(), q2.Y()))

	return newAABB(xmin, ymin, xmax, ymax)
}

// Expanded computes l's expanded swept AABB for a step of duration dt, given
// the step's cached max|v| across all lines in play. It must be called
// identically (same dt, same maxSpeed) during Build and during Query so the
// two phases agree bit-for-bit (spec §4.1, §4.3).
func Expanded(l *Line, dt, maxSpeed float64, cfg ExpansionConfig) AABB {
	raw := sweptRaw(l, dt)

	eps := math.Max(cfg.KRel*maxSpeed*dt, cfg.KGap*cfg.MinCellSize) + cfg.EpsPrec

	return newAABB(
		raw.box.Min.X-eps, raw.box.Min.Y-eps,
		raw.box.Max.X+eps, raw.box.Max.Y+eps,
	)
}

// Side returns max(width, height) of the box, used when squaring a region.
func (a AABB) Side() float64 {
	w := a.box.Max.X - a.box.Min.X
	h := a.box.Max.Y - a.box.Min.Y
	if w > h {
		return w
	}
	return h
}

// Center returns the midpoint of the box.
func (a AABB) Center() vec.Vec {
	return vec.New((a.box.Min.X+a.box.Max.X)/2, (a.box.Min.Y+a.box.Max.Y)/2)
}

// Square returns the smallest square AABB centered on a's center whose side
// is at least a's longer dimension, used to build the quadtree's dynamic
// root (spec §4.2 step 3).
func (a AABB) Square() AABB {
	s := a.Side()
	c := a.Center()
	half := s / 2
	return newAABB(c.X()-half, c.Y()-half, c.X()+half, c.Y()+half)
}
