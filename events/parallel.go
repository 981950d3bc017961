package events

// ParallelSink hands out one private View per worker slot and merges them
// deterministically at join, per spec §5/§9: "each worker accumulates a
// private view ... sub-views are combined by (ordered concatenation,
// integer addition)".
type ParallelSink struct {
	views []*View
}

// NewParallelSink preallocates workers private views.
func NewParallelSink(workers int) *ParallelSink {
	ps := &ParallelSink{views: make([]*View, workers)}
	for i := range ps.views {
		ps.views[i] = NewView()
	}
	return ps
}

// Worker returns the private View for worker index i. It must only be
// written to by that worker — views are not synchronized with each other.
func (ps *ParallelSink) Worker(i int) *View {
	return ps.views[i]
}

// Merge combines every worker's view into one, in worker-index order. The
// resulting event order is the merge order, not guaranteed to match any
// particular interleaving of the workers' real-time completion (spec §5);
// callers wanting brute-force-equivalent ordering should call SortByPair on
// the result.
func (ps *ParallelSink) Merge() *View {
	return MergeAll(ps.views)
}
