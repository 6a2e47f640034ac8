package vm

import (
	"slices"

	"golang.org/x/exp/maps"

	"github.com/dajuguan/PEVM/common"
)

// Tx is one transaction of a batch. The declared Reads and Writes lists are
// hints provided by the producer; the authoritative footprint is the TxRWSet
// observed while executing Program. Transactions are never mutated.
type Tx struct {
	ID       uint64       `json:"id"`
	Reads    []common.Key `json:"reads"`
	Writes   []common.Key `json:"writes"`
	GasHint  uint64       `json:"gas_hint"`
	Metadata *string      `json:"metadata"`
	Program  []MicroOp    `json:"program"`
}

// KeySet is a duplicate-free set of flat keys.
type KeySet map[common.FlatKey]struct{}

func (s KeySet) Add(key common.FlatKey) {
	s[key] = struct{}{}
}

func (s KeySet) Contains(key common.FlatKey) bool {
	_, found := s[key]
	return found
}

// List returns the keys in ascending order, giving consumers a stable view
// independent of map iteration order.
func (s KeySet) List() []common.FlatKey {
	res := maps.Keys(s)
	slices.Sort(res)
	return res
}

// TxRWSet is the footprint a transaction was observed to touch while its
// program was executed: the sets of flat keys it actually read and wrote.
// The ID equals the originating Tx.ID.
type TxRWSet struct {
	ID     uint64
	Reads  KeySet
	Writes KeySet
}
