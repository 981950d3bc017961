package quadtree

import "sync/atomic"

// Stats are the optional debug counters from spec §6 (enableDebugStats).
// CellsQueried and PairsEmitted are updated with atomic ops because
// Query/QueryParallel may touch them from multiple worker goroutines
// concurrently; TotalNodes/Leaves/DeepestDepth/MaxLinesInNode are only
// written during the sequential Build phase.
type Stats struct {
	TotalNodes     int
	Leaves         int
	DeepestDepth   int
	MaxLinesInNode int
	CellsQueried   int64
	PairsEmitted   int64
}

func (s *Stats) recordNode(leaf bool, depth, lineCount int) {
	if s == nil {
		return
	}
	s.TotalNodes++
	if leaf {
		s.Leaves++
	}
	if depth > s.DeepestDepth {
		s.DeepestDepth = depth
	}
	if lineCount > s.MaxLinesInNode {
		s.MaxLinesInNode = lineCount
	}
}

func (s *Stats) recordCellQueried() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.CellsQueried, 1)
}

func (s *Stats) recordPairEmitted(n int64) {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.PairsEmitted, n)
}
