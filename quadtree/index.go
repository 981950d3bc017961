package quadtree

import (
	"github.com/segcollide/sim/geom"
	"go.uber.org/zap"
)

// Index is the spatial index built fresh every simulation step. It borrows
// the caller's line slice; it never copies or mutates a Line.
type Index struct {
	nodes    []node
	root     int
	lines    []*geom.Line
	expanded []geom.AABB // expanded[i] is the cached expanded AABB of lines[i]
	idPos    map[uint32]int

	dt       float64
	maxSpeed float64
	cfg      Config

	stats *Stats
	log   *zap.SugaredLogger

	empty bool
}

// Stats returns the debug counters, or nil if EnableDebugStats was false.
func (ix *Index) Stats() *Stats { return ix.stats }

// Empty reports whether the index was built over zero lines.
func (ix *Index) Empty() bool { return ix.empty }

// Build constructs a SpatialIndex over lines for a step of duration dt,
// per spec §4.2. A nil logger disables structured diagnostics.
func Build(lines []*geom.Line, dt float64, cfg Config, log *zap.SugaredLogger) (*Index, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if err := cfg.validate(); err != nil {
		log.Warnw("quadtree build: rejecting degraded config", "error", err)
		return nil, err
	}

	ix := &Index{
		lines: lines,
		dt:    dt,
		cfg:   cfg,
		idPos: make(map[uint32]int, len(lines)),
		log:   log,
	}
	if cfg.EnableDebugStats {
		ix.stats = &Stats{}
	}

	for i, l := range lines {
		ix.idPos[l.ID] = i
	}

	if len(lines) == 0 {
		// Empty inputs are not an error (spec §4.2 "Failure modes", §7).
		ix.empty = true
		root := newLeaf(geom.NewAABB(0, 0, cfg.MinCellSize, cfg.MinCellSize), 0)
		ix.nodes = []node{root}
		ix.root = 0
		log.Debugw("quadtree build: empty line set")
		return ix, nil
	}

	// Step 1: max|v| once, cached (spec §9 — the reference's accidental
	// O(n^2) recompute-per-insertion is the bug this caching avoids).
	ix.maxSpeed = geom.MaxSpeed(lines)

	// Cache per-line expanded AABBs for reuse during insertion and during
	// Query's recomputation requirement.
	exp := ix.cfg.expansion()
	ix.expanded = make([]geom.AABB, len(lines))
	var union geom.AABB
	for i, l := range lines {
		ab := geom.Expanded(l, dt, ix.maxSpeed, exp)
		ix.expanded[i] = ab
		if i == 0 {
			union = ab
		} else {
			union = geom.Union(union, ab)
		}
	}

	// Step 2-3: pad by epsPrec and square around the union's center. This
	// dynamic root is a hard correctness requirement (spec §4.2 step 3):
	// any line whose AABB falls outside it is never visited by Query.
	padded := geom.NewAABB(
		union.Min().X()-cfg.EpsPrec, union.Min().Y()-cfg.EpsPrec,
		union.Max().X()+cfg.EpsPrec, union.Max().Y()+cfg.EpsPrec,
	)
	rootBox := padded.Square()
	if rootBox.Side() <= 0 {
		err := wrapBounds("root square collapsed to zero or negative side")
		log.Errorw("quadtree build: degenerate root bounds", "error", err, "lines", len(lines))
		return nil, err
	}

	ix.nodes = make([]node, 0, len(lines))
	ix.nodes = append(ix.nodes, newLeaf(rootBox, 0))
	ix.root = 0

	// Step 4: insert each line's cached AABB into the root.
	for i := range lines {
		ix.insert(ix.root, i)
	}

	if ix.stats != nil {
		for idx := range ix.nodes {
			n := &ix.nodes[idx]
			ix.stats.recordNode(n.leaf, n.depth, len(n.lines))
		}
	}

	log.Debugw("quadtree build complete",
		"lines", len(lines), "nodes", len(ix.nodes), "maxSpeed", ix.maxSpeed, "dt", dt)

	return ix, nil
}

// insert applies the §4.2 insertion rule at node nodeIdx for line lines[i].
func (ix *Index) insert(nodeIdx, i int) {
	box := ix.nodes[nodeIdx].box
	if !box.Overlaps(ix.expanded[i]) {
		return
	}

	if ix.nodes[nodeIdx].leaf {
		ix.nodes[nodeIdx].lines = append(ix.nodes[nodeIdx].lines, i)

		n := &ix.nodes[nodeIdx]
		if len(n.lines) > ix.cfg.MaxLinesPerNode &&
			n.depth < ix.cfg.MaxDepth &&
			n.box.Side() >= 2*ix.cfg.MinCellSize {
			ix.split(nodeIdx)
		}
		return
	}

	children := ix.nodes[nodeIdx].children
	for _, c := range children {
		if c != noChild {
			ix.insert(c, i)
		}
	}
}

// split subdivides a leaf into 4 equal children and redistributes its
// existing lines by the same overlap rule — a line may land in more than
// one child (spec §4.2), unlike the teacher's fully-contained-quadrant
// split which assigns an object to at most one quadrant.
func (ix *Index) split(nodeIdx int) {
	box := ix.nodes[nodeIdx].box
	depth := ix.nodes[nodeIdx].depth
	oldLines := ix.nodes[nodeIdx].lines
	ix.nodes[nodeIdx].lines = nil
	ix.nodes[nodeIdx].leaf = false

	quads := quadrants(box)
	var childIdx [4]int
	for q := 0; q < 4; q++ {
		ix.nodes = append(ix.nodes, newLeaf(quads[q], depth+1))
		childIdx[q] = len(ix.nodes) - 1
	}
	ix.nodes[nodeIdx].children = childIdx

	ix.log.Debugw("quadtree split", "node", nodeIdx, "depth", depth, "lines", len(oldLines))

	// Redistribute exactly once each, including the line that triggered
	// the split (spec §4.2).
	for _, i := range oldLines {
		for _, c := range childIdx {
			ix.insert(c, i)
		}
	}
}
