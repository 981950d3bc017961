// Package physics is the collision-response collaborator named but not
// specified by the detection pipeline: spec §1 lists "collision response
// physics" and "line-wall collisions" as non-core systems that sit on the
// other side of the EventSink boundary. It is grounded on
// other_examples/dedfa76f_skyrocket-qy-td__internal-systems-collision.go's
// split between a detection system (CollisionSystem.Update, which this
// repo's quadtree/bruteforce packages replace) and a resolution callback
// (onCollision) invoked once per detected pair; Resolve plays the role of
// that callback.
package physics

import (
	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/vec"
)

// Resolve applies an elastic response to every event in evs: the two
// lines swap the velocity components along the contact normal implied by
// the event's Kind, leaving the tangential components untouched. Events
// are processed in order; a line touched by more than one event in the
// same step accumulates every exchange in sequence.
func Resolve(lines map[uint32]*geom.Line, evs []events.IntersectionEvent) {
	for _, ev := range evs {
		l1, l2 := lines[ev.L1.ID], lines[ev.L2.ID]
		if l1 == nil || l2 == nil {
			continue
		}
		n := contactNormal(l1, l2, ev.Kind)
		exchangeAlongNormal(l1, l2, n)
	}
}

// contactNormal picks the axis the two lines exchange velocity along. A
// transversal LineCross uses the perpendicular of l1's own segment;
// touching events use the perpendicular of whichever line was touched,
// matching the side that defines the contact.
func contactNormal(l1, l2 *geom.Line, kind events.Kind) vec.Vec {
	switch kind {
	case events.L2TouchesL1:
		return perpendicular(l1)
	case events.L1TouchesL2:
		return perpendicular(l2)
	default:
		return perpendicular(l1)
	}
}

// perpendicular returns the unit normal of l's segment direction, or the
// zero vector for a degenerate (zero-length) segment.
func perpendicular(l *geom.Line) vec.Vec {
	dir := l.P2.Sub(l.P1)
	n := vec.New(-dir.Y(), dir.X())
	norm := n.Norm()
	if norm <= 1e-12 {
		return vec.Zero
	}
	return n.Scale(1 / norm)
}

// exchangeAlongNormal swaps l1 and l2's velocity components along n,
// the 1D elastic collision of equal masses: each line keeps its
// tangential component and takes the other's normal component.
func exchangeAlongNormal(l1, l2 *geom.Line, n vec.Vec) {
	if n == vec.Zero {
		return
	}
	v1n := l1.Velocity.Dot(n)
	v2n := l2.Velocity.Dot(n)

	l1.Velocity = l1.Velocity.Add(n.Scale(v2n - v1n))
	l2.Velocity = l2.Velocity.Add(n.Scale(v1n - v2n))
}

// Advance moves every line by its velocity over dt, the integration step
// between one step's detection/resolution pass and the next.
func Advance(lines []*geom.Line, dt float64) {
	for _, l := range lines {
		d := l.Velocity.Scale(dt)
		l.P1 = l.P1.Add(d)
		l.P2 = l.P2.Add(d)
	}
}

// BounceWalls reflects the velocity component of any line with an
// endpoint outside [0,1]x[0,1] and clamps that endpoint back onto the
// boundary, returning the number of endpoints it corrected. It is the
// "line-wall collisions" collaborator named in spec §1.
func BounceWalls(lines []*geom.Line) int {
	count := 0
	for _, l := range lines {
		p1, hit1 := bounceClampPoint(l.P1)
		p2, hit2 := bounceClampPoint(l.P2)
		l.P1 = p1
		l.P2 = p2
		if hit1 {
			l.Velocity = vec.New(reflectIfOut(l.P1.X(), l.Velocity.X()), l.Velocity.Y())
			l.Velocity = vec.New(l.Velocity.X(), reflectIfOut(l.P1.Y(), l.Velocity.Y()))
			count++
		}
		if hit2 {
			l.Velocity = vec.New(reflectIfOut(l.P2.X(), l.Velocity.X()), l.Velocity.Y())
			l.Velocity = vec.New(l.Velocity.X(), reflectIfOut(l.P2.Y(), l.Velocity.Y()))
			count++
		}
	}
	return count
}

func bounceClampPoint(p vec.Vec) (vec.Vec, bool) {
	x, y := p.X(), p.Y()
	hit := false
	if x < 0 {
		x = 0
		hit = true
	} else if x > 1 {
		x = 1
		hit = true
	}
	if y < 0 {
		y = 0
		hit = true
	} else if y > 1 {
		y = 1
		hit = true
	}
	return vec.New(x, y), hit
}

// reflectIfOut flips v's sign when the clamped coordinate sits exactly on
// a boundary and v still points outward across it.
func reflectIfOut(coord, v float64) float64 {
	if coord <= 0 && v < 0 {
		return -v
	}
	if coord >= 1 && v > 0 {
		return -v
	}
	return v
}
