package quadtree

import (
	"runtime"

	"github.com/grailbio/base/traverse"
	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/pairtest"
)

// QueryParallel runs the parallel region from spec §5: Query+PairTest
// sharded across workers via github.com/grailbio/base/traverse (the same
// fork-join primitive grailbio/bio's pileup/snp package uses to shard a
// shard list across goroutines and join on return). Each worker holds its
// own scratch leaf buffer (spec §9: sharing one scratch buffer across
// workers is the observed reference bug) and its own events.View reducer;
// pair ownership is decided by the shared atomic seen-set. workers<=0 means
// runtime.NumCPU().
func (ix *Index) QueryParallel(dt float64, workers int) (*events.View, error) {
	if err := ix.checkDt(dt); err != nil {
		return nil, err
	}
	if ix.empty {
		return events.NewView(), nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	n := len(ix.lines)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	ps := newPairSet(n)
	sink := events.NewParallelSink(workers)

	err := traverse.Each(workers, func(worker int) error {
		view := sink.Worker(worker)
		var scratch []int

		start := (worker * n) / workers
		end := ((worker + 1) * n) / workers

		for i := start; i < end; i++ {
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
					kind := pairtest.Test(a, b, dt)
					if kind != events.NoIntersection {
						view.Push(events.IntersectionEvent{L1: a, L2: b, Kind: kind})
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sink.Merge(), nil
}
