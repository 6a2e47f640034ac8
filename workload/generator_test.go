package workload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dajuguan/PEVM/common"
	"github.com/dajuguan/PEVM/graph"
	"github.com/dajuguan/PEVM/state"
	"github.com/dajuguan/PEVM/vm"
)

func testConfig() Config {
	return Config{
		NumTxs:        25,
		KeySpace:      1000,
		ConflictRatio: 0.2,
		ColdRatio:     0.1,
		Seed:          42,
	}
}

func TestGenerate_IsDeterministicPerSeed(t *testing.T) {
	require := require.New(t)

	config := testConfig()
	require.Equal(Generate(config), Generate(config))

	other := config
	other.Seed = 43
	require.NotEqual(Generate(config), Generate(other))
}

func TestGenerate_ProducesRequestedBatchShape(t *testing.T) {
	require := require.New(t)

	config := testConfig()
	txs := Generate(config)
	require.Len(txs, config.NumTxs)

	for i, tx := range txs {
		require.Equal(uint64(i), tx.ID)
		require.NotEmpty(tx.Reads)
		require.NotEmpty(tx.Writes)
		require.LessOrEqual(len(tx.Reads), 20)
		require.LessOrEqual(len(tx.Writes), 20)
		require.Equal(uint64(len(tx.Reads)+len(tx.Writes))*10, tx.GasHint)
		require.Equal(vm.Noop(), tx.Program[len(tx.Program)-1])
	}
}

func TestGenerate_ProgramsTouchExactlyTheDeclaredKeys(t *testing.T) {
	require := require.New(t)

	txs := Generate(testConfig())
	rwSets, err := vm.ExecuteAll(txs, state.NewMemoryStore())
	require.NoError(err)

	for i, rwSet := range rwSets {
		// Written keys are re-read by the program, so the observed read
		// set covers both declared lists.
		expectedReads := vm.KeySet{}
		expectedWrites := vm.KeySet{}
		for _, key := range txs[i].Reads {
			expectedReads.Add(common.FlatKeyOf(key))
		}
		for _, key := range txs[i].Writes {
			expectedReads.Add(common.FlatKeyOf(key))
			expectedWrites.Add(common.FlatKeyOf(key))
		}
		require.Equal(expectedReads, rwSet.Reads, "tx %d", i)
		require.Equal(expectedWrites, rwSet.Writes, "tx %d", i)
	}
}

func TestGenerate_HotKeysProduceConflicts(t *testing.T) {
	require := require.New(t)

	config := testConfig()
	config.NumTxs = 50
	txs := Generate(config)

	rwSets, err := vm.ExecuteAll(txs, state.NewMemoryStore())
	require.NoError(err)

	conflictGraph := graph.Build(rwSets)
	conflicts := 0
	for _, neighbors := range conflictGraph {
		conflicts += len(neighbors)
	}
	require.Greater(conflicts, 0)
}
