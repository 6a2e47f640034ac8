package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dajuguan/PEVM/common"
	"github.com/dajuguan/PEVM/vm"
)

func keySet(keys ...common.FlatKey) vm.KeySet {
	res := vm.KeySet{}
	for _, key := range keys {
		res.Add(key)
	}
	return res
}

func rwSet(id uint64, reads, writes []common.FlatKey) vm.TxRWSet {
	return vm.TxRWSet{
		ID:     id,
		Reads:  keySet(reads...),
		Writes: keySet(writes...),
	}
}

func TestBuild_ProducesExpectedEdges(t *testing.T) {
	keys := func(keys ...common.FlatKey) []common.FlatKey { return keys }
	none := []common.FlatKey{}

	tests := map[string]struct {
		rwSets   []vm.TxRWSet
		expected [][]int
	}{
		"no conflicts on disjoint keys": {
			rwSets: []vm.TxRWSet{
				rwSet(0, keys(1), keys(2)),
				rwSet(1, keys(3), keys(4)),
				rwSet(2, keys(5), keys(6)),
			},
			expected: [][]int{{}, {}, {}},
		},
		"read-write chain": {
			rwSets: []vm.TxRWSet{
				rwSet(0, keys(0xa, 0xb), keys(0xc)),
				rwSet(1, keys(0xc), keys(0xd)),
				rwSet(2, keys(0xd), none),
			},
			expected: [][]int{{}, {0}, {1}},
		},
		"write-write cycle": {
			rwSets: []vm.TxRWSet{
				rwSet(0, none, keys(1)),
				rwSet(1, none, keys(1)),
			},
			expected: [][]int{{1}, {0}},
		},
		"mixed write-write and read-write": {
			rwSets: []vm.TxRWSet{
				rwSet(0, none, keys(10)),
				rwSet(1, keys(10), keys(11)),
				rwSet(2, keys(11), keys(10)),
			},
			expected: [][]int{{2}, {0, 2}, {0, 1}},
		},
		"self access is not a conflict": {
			rwSets: []vm.TxRWSet{
				rwSet(0, keys(1), keys(1)),
			},
			expected: [][]int{{}},
		},
		"empty batch": {
			rwSets:   []vm.TxRWSet{},
			expected: [][]int{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			graph := Build(test.rwSets)
			require.Len(graph, len(test.expected))
			for index, neighbors := range test.expected {
				require.Contains(graph, index)
				require.Equal(neighbors, graph.Neighbors(index), "neighbors of tx %d", index)
			}
		})
	}
}

func TestBuild_ContainsEveryIndexIncludingConflictFree(t *testing.T) {
	require := require.New(t)

	rwSets := []vm.TxRWSet{
		rwSet(0, nil, []common.FlatKey{1}),
		rwSet(1, nil, []common.FlatKey{1}),
		rwSet(2, nil, nil), // touches nothing
	}
	graph := Build(rwSets)

	require.Len(graph, 3)
	for i := range 3 {
		require.Contains(graph, i)
	}
	require.Empty(graph.Neighbors(2))
}

func TestBuild_WriteWriteConflictsAreSymmetric(t *testing.T) {
	require := require.New(t)

	rwSets := []vm.TxRWSet{
		rwSet(0, nil, []common.FlatKey{7}),
		rwSet(1, nil, []common.FlatKey{7}),
	}
	graph := Build(rwSets)

	require.True(graph[0].Contains(1))
	require.True(graph[1].Contains(0))
	require.Len(graph[0], 1)
	require.Len(graph[1], 1)
}

func TestBuild_ReadWriteConflictsAreDirected(t *testing.T) {
	require := require.New(t)

	// tx 0 reads what tx 1 writes: only the reader-to-writer edge exists.
	rwSets := []vm.TxRWSet{
		rwSet(0, []common.FlatKey{7}, nil),
		rwSet(1, nil, []common.FlatKey{7}),
	}
	graph := Build(rwSets)

	require.True(graph[0].Contains(1))
	require.False(graph[1].Contains(0))
	require.Empty(graph.Neighbors(1))
}

func TestBuild_MultipleWritersConnectToAllPairs(t *testing.T) {
	require := require.New(t)

	rwSets := []vm.TxRWSet{
		rwSet(0, nil, []common.FlatKey{7}),
		rwSet(1, nil, []common.FlatKey{7}),
		rwSet(2, nil, []common.FlatKey{7}),
	}
	graph := Build(rwSets)

	require.Equal([]int{1, 2}, graph.Neighbors(0))
	require.Equal([]int{0, 2}, graph.Neighbors(1))
	require.Equal([]int{0, 1}, graph.Neighbors(2))
}

func TestBuild_EdgesAreIndependentOfInputOrder(t *testing.T) {
	require := require.New(t)

	forward := []vm.TxRWSet{
		rwSet(0, []common.FlatKey{1}, []common.FlatKey{2}),
		rwSet(1, []common.FlatKey{2}, []common.FlatKey{3}),
		rwSet(2, []common.FlatKey{3}, []common.FlatKey{1}),
	}
	backward := []vm.TxRWSet{forward[2], forward[1], forward[0]}

	require.Equal(Build(forward), Build(backward))
}

func TestConflictGraph_NeighborsOfUnknownIndexIsEmpty(t *testing.T) {
	graph := Build(nil)
	require.Empty(t, graph.Neighbors(42))
}
