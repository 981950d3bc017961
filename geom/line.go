// Package geom holds the Line record and the swept-AABB helpers that the
// quadtree builds on. Lines are owned by the caller; this package never
// mutates one after construction.
package geom

import "github.com/segcollide/sim/vec"

// Line is a moving line segment. Its id is stable and unique; endpoints and
// velocity are read-only for the duration of a simulation step and are only
// ever changed between steps by the external resolver.
type Line struct {
	ID       uint32
	P1, P2   vec.Vec
	Velocity vec.Vec

	speed float64 // cached |Velocity|
}

// NewLine constructs a Line and caches its speed.
func NewLine(id uint32, p1, p2, velocity vec.Vec) *Line {
	return &Line{
		ID:       id,
		P1:       p1,
		P2:       p2,
		Velocity: velocity,
		speed:    velocity.Norm(),
	}
}

// Speed returns the cached |Velocity|.
func (l *Line) Speed() float64 {
	return l.speed
}

// MaxSpeed returns the largest cached speed across lines. Callers build the
// index once per step and must reuse this value (not recompute it) during
// both Build and Query, and during split redistribution — recomputing it
// per insertion was the accidental O(n^2) in the reference implementation
// (spec §9).
func MaxSpeed(lines []*Line) float64 {
	var max float64
	for _, l := range lines {
		if l.speed > max {
			max = l.speed
		}
	}
	return max
}
