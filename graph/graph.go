// Package graph builds the conflict graph of a transaction batch from the
// read/write footprints observed while executing the batch sequentially.
//
// Nodes are transaction indices. Two kinds of hazards produce edges:
//
//   - write-write: every unordered pair of writers of a key is connected
//     symmetrically, in both directions;
//   - write-read / read-write: every reader of a key is connected to every
//     other writer of that key, in the reader-to-writer direction only.
//
// This mix of symmetric and one-directional edges is the contract consumed
// by external schedulers; it must not be strengthened or weakened. The edge
// set is a pure, deterministic function of the input, independent of any
// internal iteration order.
package graph

import (
	"slices"

	"golang.org/x/exp/maps"

	"github.com/dajuguan/PEVM/common"
	"github.com/dajuguan/PEVM/vm"
)

// NodeSet is a duplicate-free set of transaction indices.
type NodeSet map[int]struct{}

func (s NodeSet) Add(index int) {
	s[index] = struct{}{}
}

func (s NodeSet) Contains(index int) bool {
	_, found := s[index]
	return found
}

// List returns the indices in ascending order.
func (s NodeSet) List() []int {
	res := maps.Keys(s)
	slices.Sort(res)
	return res
}

// ConflictGraph maps every transaction index of a batch, conflicting or
// not, to the set of indices it conflicts with. It is a read-only artifact
// of one Build call and is not updated incrementally.
type ConflictGraph map[int]NodeSet

// Neighbors returns the conflicting indices of the given transaction in
// ascending order.
func (g ConflictGraph) Neighbors(index int) []int {
	return g[index].List()
}

func (g ConflictGraph) addEdge(from, to int) {
	set, found := g[from]
	if !found {
		set = NodeSet{}
		g[from] = set
	}
	set.Add(to)
}

// Build constructs the conflict graph for the given batch of footprints.
// The footprint IDs are treated as positional indices 0..n-1; the producer
// guarantees that equivalence. Every index appears in the result, mapped to
// an empty set if the transaction has no conflicts.
func Build(rwSets []vm.TxRWSet) ConflictGraph {
	readers, writers := bucketByKey(rwSets)

	res := newConflictGraph(len(rwSets))
	for key, ws := range writers {
		connectKey(res, ws, readers[key])
	}
	return res
}

// bucketByKey inverts the footprints into per-key reader and writer index
// buckets.
func bucketByKey(rwSets []vm.TxRWSet) (readers, writers map[common.FlatKey]NodeSet) {
	readers = map[common.FlatKey]NodeSet{}
	writers = map[common.FlatKey]NodeSet{}
	for _, rwSet := range rwSets {
		index := int(rwSet.ID)
		for key := range rwSet.Reads {
			addToBucket(readers, key, index)
		}
		for key := range rwSet.Writes {
			addToBucket(writers, key, index)
		}
	}
	return readers, writers
}

func addToBucket(buckets map[common.FlatKey]NodeSet, key common.FlatKey, index int) {
	set, found := buckets[key]
	if !found {
		set = NodeSet{}
		buckets[key] = set
	}
	set.Add(index)
}

// connectKey adds all edges caused by one key to the graph: symmetric
// edges between all writer pairs, and directed reader-to-writer edges. No
// writer-to-reader edge is added.
func connectKey(g ConflictGraph, writers, readers NodeSet) {
	writerList := writers.List()
	for i, a := range writerList {
		for _, b := range writerList[i+1:] {
			g.addEdge(a, b)
			g.addEdge(b, a)
		}
	}
	for writer := range writers {
		for reader := range readers {
			if writer != reader {
				g.addEdge(reader, writer)
			}
		}
	}
}

func newConflictGraph(numTxs int) ConflictGraph {
	res := make(ConflictGraph, numTxs)
	for i := range numTxs {
		res[i] = NodeSet{}
	}
	return res
}
