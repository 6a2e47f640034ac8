// Package workload produces synthetic transaction batches for exercising
// the interpreter and the conflict graph builder. Batches are deterministic
// for a given configuration, so experiments can be replayed.
package workload

import (
	"encoding/binary"
	"math/rand"

	"github.com/holiman/uint256"

	"github.com/dajuguan/PEVM/common"
	"github.com/dajuguan/PEVM/vm"
)

// Config controls the shape of a generated batch. The key space is an index
// range [0, KeySpace) mapped to structured keys; the first
// ConflictRatio*KeySpace indices form the hot set that transactions touch
// disproportionately often, concentrating conflicts on few keys.
type Config struct {
	NumTxs        int
	KeySpace      int
	ConflictRatio float64 // share of the key space treated as hot keys
	ColdRatio     float64 // probability of picking a uniformly random key
	Seed          int64
}

const addressPoolSize = 10

// Generate produces a batch of NumTxs transactions with declared read/write
// key lists and a program that touches exactly those keys.
func Generate(config Config) []vm.Tx {
	rng := rand.New(rand.NewSource(config.Seed))

	pool := make([]common.Address, addressPoolSize)
	for i := range pool {
		rng.Read(pool[i][:])
	}

	hotSize := int(config.ConflictRatio * float64(config.KeySpace))
	if hotSize < 1 {
		hotSize = 1
	}

	txs := make([]vm.Tx, 0, config.NumTxs)
	for i := range config.NumTxs {
		numReads := 1 + rng.Intn(20)
		numWrites := 1 + rng.Intn(20)

		reads := make([]common.Key, 0, numReads)
		for range numReads {
			reads = append(reads, keyFromIndex(pickIndex(rng, config, hotSize), pool))
		}
		writes := make([]common.Key, 0, numWrites)
		for range numWrites {
			writes = append(writes, keyFromIndex(pickIndex(rng, config, hotSize), pool))
		}

		txs = append(txs, vm.Tx{
			ID:      uint64(i),
			Reads:   reads,
			Writes:  writes,
			GasHint: uint64(numReads+numWrites) * 10,
			Program: buildProgram(uint64(i), reads, writes),
		})
	}
	return txs
}

// pickIndex draws a key index: a fully random (cold) key with ColdRatio
// probability, a hot key with ConflictRatio probability, and a key outside
// the hot set otherwise.
func pickIndex(rng *rand.Rand, config Config, hotSize int) int {
	switch {
	case rng.Float64() < config.ColdRatio:
		return rng.Intn(config.KeySpace)
	case rng.Float64() < config.ConflictRatio:
		return rng.Intn(hotSize)
	case hotSize < config.KeySpace:
		return hotSize + rng.Intn(config.KeySpace-hotSize)
	default:
		return rng.Intn(config.KeySpace)
	}
}

// keyFromIndex maps a key index to a structured key. The slot is derived
// from the index by hashing, the address cycles through the shared pool so
// that several slots live under the same account.
func keyFromIndex(index int, pool []common.Address) common.Key {
	var encoded [8]byte
	binary.BigEndian.PutUint64(encoded[:], uint64(index))
	hash := common.Keccak256(encoded[:])
	slot := uint256.NewInt(binary.BigEndian.Uint64(hash[:8])).Bytes32()
	return common.Key{
		Address: pool[index%len(pool)],
		Slot:    common.Slot(slot),
	}
}

// buildProgram turns the declared key lists into a micro-op program: every
// read key is loaded and folded into the accumulator, every write key is
// stored and immediately re-read.
func buildProgram(txID uint64, reads, writes []common.Key) []vm.MicroOp {
	program := make([]vm.MicroOp, 0, 2*len(reads)+3*len(writes)+1)
	for _, key := range reads {
		program = append(program, vm.Sload(key), vm.Add(common.FlatValue(txID)))
	}
	for i, key := range writes {
		program = append(program,
			vm.Add(common.FlatValue(i)),
			vm.Sstore(key),
			vm.Sload(key),
		)
	}
	return append(program, vm.Noop())
}
