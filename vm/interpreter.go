package vm

import (
	"fmt"

	"github.com/dajuguan/PEVM/common"
	"github.com/dajuguan/PEVM/state"
)

// ExecutionError is the fatal outcome of running a single transaction. It
// identifies the failing instruction so that callers can decide whether to
// abort the batch or skip the transaction; this package makes no such
// decision and performs no rollback of writes already applied.
type ExecutionError struct {
	TxID    uint64
	OpIndex int
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tx %d: op %d: %v", e.TxID, e.OpIndex, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Execute runs the transaction's program in order against the given store
// and records the observed read/write footprint. The single accumulator
// register starts at zero for every transaction and is never shared between
// transactions. All accumulator arithmetic wraps around modulo 2^64.
//
// Execution is deterministic given the program and the store content. Keys
// touched more than once contribute a single footprint entry.
func Execute(tx *Tx, store state.Store) (TxRWSet, error) {
	res := TxRWSet{
		ID:     tx.ID,
		Reads:  KeySet{},
		Writes: KeySet{},
	}
	acc := common.FlatValue(0)
	for i, op := range tx.Program {
		switch op.Op {
		case SLOAD:
			key := common.FlatKeyOf(op.Key)
			value, err := store.Get(key)
			if err != nil {
				return TxRWSet{}, &ExecutionError{TxID: tx.ID, OpIndex: i, Err: err}
			}
			acc += value
			res.Reads.Add(key)
		case SSTORE:
			key := common.FlatKeyOf(op.Key)
			if err := store.Set(key, acc); err != nil {
				return TxRWSet{}, &ExecutionError{TxID: tx.ID, OpIndex: i, Err: err}
			}
			res.Writes.Add(key)
		case ADD:
			acc += op.Imm
		case NOOP:
			// no effect
		default:
			return TxRWSet{}, &ExecutionError{TxID: tx.ID, OpIndex: i, Err: fmt.Errorf("unknown opcode: %d", byte(op.Op))}
		}
	}
	return res, nil
}

// ExecuteAll runs all transactions strictly sequentially against the one
// shared store and returns their footprints in batch order. The first
// failing transaction aborts the run.
func ExecuteAll(txs []Tx, store state.Store) ([]TxRWSet, error) {
	res := make([]TxRWSet, 0, len(txs))
	for i := range txs {
		rwSet, err := Execute(&txs[i], store)
		if err != nil {
			return nil, err
		}
		res = append(res, rwSet)
	}
	return res, nil
}
