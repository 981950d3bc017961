package physics

import (
	"testing"

	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/vec"
	"github.com/stretchr/testify/assert"
)

func TestResolveSwapsNormalComponentOnLineCross(t *testing.T) {
	l1 := geom.NewLine(1, vec.New(-1, 0), vec.New(1, 0), vec.New(0, 1))
	l2 := geom.NewLine(2, vec.New(0, -1), vec.New(0, 1), vec.New(1, 0))
	lines := map[uint32]*geom.Line{1: l1, 2: l2}

	Resolve(lines, []events.IntersectionEvent{{L1: l1, L2: l2, Kind: events.LineCross}})

	// l1's segment is horizontal; its normal is vertical. l1 had all its
	// velocity along that normal (0,1) and should pick up l2's normal
	// component (which was 0 along l1's normal), leaving l1 near rest on
	// that axis while l2 gains it.
	assert.InDelta(t, 0, l1.Velocity.Y(), 1e-9)
	assert.InDelta(t, 1, l2.Velocity.Y(), 1e-9)
}

func TestResolveIgnoresUnknownLineIDs(t *testing.T) {
	l1 := geom.NewLine(1, vec.New(-1, 0), vec.New(1, 0), vec.New(0, 1))
	l2 := geom.NewLine(2, vec.New(0, -1), vec.New(0, 1), vec.New(1, 0))
	lines := map[uint32]*geom.Line{1: l1}

	assert.NotPanics(t, func() {
		Resolve(lines, []events.IntersectionEvent{{L1: l1, L2: l2, Kind: events.LineCross}})
	})
}

func TestAdvanceMovesByVelocityTimesDt(t *testing.T) {
	l := geom.NewLine(1, vec.New(0, 0), vec.New(1, 0), vec.New(2, 3))
	lines := []*geom.Line{l}

	Advance(lines, 0.5)

	assert.InDelta(t, 1, l.P1.X(), 1e-9)
	assert.InDelta(t, 1.5, l.P1.Y(), 1e-9)
	assert.InDelta(t, 2, l.P2.X(), 1e-9)
	assert.InDelta(t, 1.5, l.P2.Y(), 1e-9)
}

func TestBounceWallsClampsAndReflects(t *testing.T) {
	l := geom.NewLine(1, vec.New(0.5, 0.5), vec.New(1.1, 0.5), vec.New(1, 0))
	lines := []*geom.Line{l}

	hits := BounceWalls(lines)

	assert.Equal(t, 1, hits)
	assert.InDelta(t, 1, l.P2.X(), 1e-9)
	assert.Less(t, l.Velocity.X(), 0.0)
}

func TestBounceWallsNoOpWhenInsideUnitSquare(t *testing.T) {
	l := geom.NewLine(1, vec.New(0.2, 0.2), vec.New(0.8, 0.8), vec.New(0.1, -0.1))
	lines := []*geom.Line{l}

	hits := BounceWalls(lines)

	assert.Equal(t, 0, hits)
	assert.InDelta(t, 0.1, l.Velocity.X(), 1e-9)
}
