package graph

import (
	"github.com/0xsoniclabs/tracy"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"

	"github.com/dajuguan/PEVM/vm"
)

// BuildParallel produces the same graph as Build, distributing the per-key
// edge discovery over the given number of workers. Edge membership is
// order-independent, so the per-key buckets can be processed in any
// interleaving and unioned afterwards.
func BuildParallel(rwSets []vm.TxRWSet, numWorkers int) ConflictGraph {
	readers, writers := bucketByKey(rwSets)
	keys := maps.Keys(writers)

	// Not worth the overhead of parallelism for small batches.
	if numWorkers < 2 || len(keys) < 64 {
		res := newConflictGraph(len(rwSets))
		for _, key := range keys {
			connectKey(res, writers[key], readers[key])
		}
		return res
	}

	// Map: every worker covers a strided share of the keys and collects
	// the resulting edges in a private partial graph.
	partials := make([]ConflictGraph, numWorkers)
	var group errgroup.Group
	for worker := range numWorkers {
		group.Go(func() error {
			zone := tracy.ZoneBegin("graph::worker")
			defer zone.End()
			partial := ConflictGraph{}
			for i := worker; i < len(keys); i += numWorkers {
				key := keys[i]
				connectKey(partial, writers[key], readers[key])
			}
			partials[worker] = partial
			return nil
		})
	}
	// The workers cannot fail; the group only provides the join point.
	_ = group.Wait()

	// Reduce: union the partial edge sets.
	zone := tracy.ZoneBegin("graph::merge")
	defer zone.End()
	res := newConflictGraph(len(rwSets))
	for _, partial := range partials {
		for from, neighbors := range partial {
			for to := range neighbors {
				res.addEdge(from, to)
			}
		}
	}
	return res
}
