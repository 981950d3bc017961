package quadtree

import (
	"math/rand"
	"testing"

	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyLinesNoError(t *testing.T) {
	ix, err := Build(nil, 0.5, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.True(t, ix.Empty())

	v := events.NewView()
	require.NoError(t, ix.Query(0.5, v))
	assert.Equal(t, 0, v.Len())
}

func TestBuildOneLineNoCandidates(t *testing.T) {
	l := geom.NewLine(1, vec.New(0, 0), vec.New(1, 0), vec.New(0, 0))
	ix, err := Build([]*geom.Line{l}, 1, DefaultConfig(), nil)
	require.NoError(t, err)

	c, err := ix.Candidates(1)
	require.NoError(t, err)
	assert.Len(t, c, 0)
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 0
	_, err := Build(nil, 1, cfg, nil)
	assert.Error(t, err)
}

func TestQueryRejectsDtMismatch(t *testing.T) {
	l := geom.NewLine(1, vec.New(0, 0), vec.New(1, 0), vec.New(0, 0))
	ix, err := Build([]*geom.Line{l}, 1, DefaultConfig(), nil)
	require.NoError(t, err)

	err = ix.Query(2, events.NewView())
	assert.ErrorIs(t, err, ErrDtMismatch)
}

func TestQueryRejectsNilSink(t *testing.T) {
	ix, err := Build(nil, 1, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, ix.Query(1, nil), ErrNilSink)
}

// Scenario 1 (spec §8): two parallel, non-overlapping stationary lines.
func TestScenarioOneParallelNonOverlapping(t *testing.T) {
	l1 := geom.NewLine(1, vec.New(0.1, 0.5), vec.New(0.2, 0.5), vec.New(0, 0))
	l2 := geom.NewLine(2, vec.New(0.4, 0.5), vec.New(0.5, 0.5), vec.New(0, 0))

	ix, err := Build([]*geom.Line{l1, l2}, 0.5, DefaultConfig(), nil)
	require.NoError(t, err)

	c, err := ix.Candidates(0.5)
	require.NoError(t, err)
	assert.Len(t, c, 0)

	v := events.NewView()
	require.NoError(t, ix.Query(0.5, v))
	assert.Equal(t, 0, v.Len())
}

// Scenario 2 (spec §8): head-on crossing.
func TestScenarioTwoHeadOnCrossing(t *testing.T) {
	l1 := geom.NewLine(1, vec.New(0.2, 0.5), vec.New(0.3, 0.5), vec.New(0.5, 0))
	l2 := geom.NewLine(2, vec.New(0.7, 0.5), vec.New(0.8, 0.5), vec.New(-0.5, 0))

	ix, err := Build([]*geom.Line{l1, l2}, 0.5, DefaultConfig(), nil)
	require.NoError(t, err)

	c, err := ix.Candidates(0.5)
	require.NoError(t, err)
	require.Len(t, c, 1)

	v := events.NewView()
	require.NoError(t, ix.Query(0.5, v))
	require.Len(t, v.Events(), 1)
	assert.Equal(t, events.LineCross, v.Events()[0].Kind)
}

// Scenario 3 (spec §8): AABBs adjacent at a nominal cell boundary still
// overlap (inclusive boundary) and must be emitted as a candidate despite
// sitting on either side of the x=0.5 seam. The gap (2e-4) sits inside the
// default kGap*minCellSize margin (1.51e-4 per side, 3.02e-4 total).
func TestScenarioThreeAdjacentAtCellBoundary(t *testing.T) {
	l1 := geom.NewLine(1, vec.New(0.49, 0.5), vec.New(0.4999, 0.6), vec.New(0, 0))
	l2 := geom.NewLine(2, vec.New(0.5001, 0.5), vec.New(0.510, 0.6), vec.New(0, 0))

	ix, err := Build([]*geom.Line{l1, l2}, 0.1, DefaultConfig(), nil)
	require.NoError(t, err)

	c, err := ix.Candidates(0.1)
	require.NoError(t, err)
	require.Len(t, c, 1)

	v := events.NewView()
	require.NoError(t, ix.Query(0.1, v))
	assert.Equal(t, 0, v.Len())
}

// Scenario 4 (spec §8): 64 lines packed into a tiny square must force the
// tree to subdivide rather than collapse to a single leaf.
func buildClusterLines() []*geom.Line {
	rng := rand.New(rand.NewSource(42))
	lines := make([]*geom.Line, 64)
	for i := range lines {
		x1 := 0.50 + rng.Float64()*0.02
		y1 := 0.50 + rng.Float64()*0.02
		x2 := x1 + 0.001 + rng.Float64()*0.005
		y2 := y1 + 0.001 + rng.Float64()*0.005
		vx := (rng.Float64() - 0.5) * 0.01
		vy := (rng.Float64() - 0.5) * 0.01
		lines[i] = geom.NewLine(uint32(i), vec.New(x1, y1), vec.New(x2, y2), vec.New(vx, vy))
	}
	return lines
}

func TestScenarioFourClusterForcesSubdivision(t *testing.T) {
	lines := buildClusterLines()
	ix, err := Build(lines, 1e-2, DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Greater(t, len(ix.nodes), 1, "cluster must force at least one split")

	c, err := ix.Candidates(1e-2)
	require.NoError(t, err)
	assert.Less(t, len(c), 64*63/2)
}

// Scenario 5 (spec §8): lines straddling x=0.5 just outside the nominal
// [0.5,1.0]^2 world must still be indexed once the dynamic root expands to
// contain them.
func TestScenarioFiveOutsideRootRescue(t *testing.T) {
	l1 := geom.NewLine(1, vec.New(0.49985, 0.6), vec.New(0.49990, 0.7), vec.New(0, 0))
	l2 := geom.NewLine(2, vec.New(0.50010, 0.6), vec.New(0.50015, 0.7), vec.New(0, 0))

	ix, err := Build([]*geom.Line{l1, l2}, 0.1, DefaultConfig(), nil)
	require.NoError(t, err)

	root := ix.nodes[ix.root].box
	assert.True(t, root.Overlaps(ix.expanded[0]))
	assert.True(t, root.Overlaps(ix.expanded[1]))

	c, err := ix.Candidates(0.1)
	require.NoError(t, err)
	assert.Len(t, c, 1)
}

// Scenario 6 (spec §8): replaying scenario 4 under worker counts 1,2,4,8
// must produce the same event set and count.
func TestScenarioSixDeterminismAcrossWorkerCounts(t *testing.T) {
	lines := buildClusterLines()
	ix, err := Build(lines, 1e-2, DefaultConfig(), nil)
	require.NoError(t, err)

	var reference []events.IntersectionEvent
	var referenceCount int64

	for i, workers := range []int{1, 2, 4, 8} {
		view, err := ix.QueryParallel(1e-2, workers)
		require.NoError(t, err)

		got := append([]events.IntersectionEvent(nil), view.Events()...)
		events.SortByPair(got)

		if i == 0 {
			reference = got
			referenceCount = view.Count()
			continue
		}
		assert.Equal(t, referenceCount, view.Count(), "workers=%d", workers)
		require.Len(t, got, len(reference), "workers=%d", workers)
		for k := range reference {
			assert.Equal(t, reference[k].L1.ID, got[k].L1.ID, "workers=%d", workers)
			assert.Equal(t, reference[k].L2.ID, got[k].L2.ID, "workers=%d", workers)
			assert.Equal(t, reference[k].Kind, got[k].Kind, "workers=%d", workers)
		}
	}
}

// Invariant: idempotence — building twice over the same input yields
// indices whose Query results are the same event set.
func TestIdempotenceOfBuild(t *testing.T) {
	lines := buildClusterLines()

	ix1, err := Build(lines, 1e-2, DefaultConfig(), nil)
	require.NoError(t, err)
	ix2, err := Build(lines, 1e-2, DefaultConfig(), nil)
	require.NoError(t, err)

	v1 := events.NewView()
	require.NoError(t, ix1.Query(1e-2, v1))
	v2 := events.NewView()
	require.NoError(t, ix2.Query(1e-2, v2))

	got1 := append([]events.IntersectionEvent(nil), v1.Events()...)
	got2 := append([]events.IntersectionEvent(nil), v2.Events()...)
	events.SortByPair(got1)
	events.SortByPair(got2)

	assert.Equal(t, got1, got2)
}

// Invariant: de-duplication — every candidate pair must be unique.
func TestCandidatesHaveNoDuplicates(t *testing.T) {
	lines := buildClusterLines()
	ix, err := Build(lines, 1e-2, DefaultConfig(), nil)
	require.NoError(t, err)

	c, err := ix.Candidates(1e-2)
	require.NoError(t, err)

	seen := make(map[[2]uint32]bool, len(c))
	for _, pair := range c {
		key := [2]uint32{pair.A.ID, pair.B.ID}
		assert.False(t, seen[key], "duplicate candidate pair %v", key)
		seen[key] = true
		assert.Less(t, pair.A.ID, pair.B.ID)
	}
}

// Invariant: k_rel = k_gap = 0 exposes the "gap" failure mode on the
// scenario-3 calibration input, while the defaults do not miss the pair.
func TestZeroExpansionExposesMissedGapPair(t *testing.T) {
	l1 := geom.NewLine(1, vec.New(0.49, 0.5), vec.New(0.4999, 0.6), vec.New(0, 0))
	l2 := geom.NewLine(2, vec.New(0.5001, 0.5), vec.New(0.510, 0.6), vec.New(0, 0))

	cfg := DefaultConfig()
	cfg.KRel = 0
	cfg.KGap = 0

	ix, err := Build([]*geom.Line{l1, l2}, 0.1, cfg, nil)
	require.NoError(t, err)

	c, err := ix.Candidates(0.1)
	require.NoError(t, err)
	assert.Len(t, c, 0, "zero expansion must miss the scenario-3 pair across the gap")
}

// Invariant: index containment — after Build, every line's expanded AABB
// overlaps the root square.
func TestIndexContainment(t *testing.T) {
	lines := buildClusterLines()
	ix, err := Build(lines, 1e-2, DefaultConfig(), nil)
	require.NoError(t, err)

	root := ix.nodes[ix.root].box
	for i := range lines {
		assert.True(t, root.Overlaps(ix.expanded[i]))
	}
}
