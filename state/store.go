package state

import (
	"github.com/dajuguan/PEVM/common"
)

//go:generate mockgen -source store.go -destination store_mock.go -package state

// Store is the capability the micro-op interpreter requires from a state
// backend. It is deliberately minimal so that alternate backings (layered,
// snapshotting, persistent) can be substituted without touching the
// interpreter.
type Store interface {
	// Get returns the value stored under the given key. Absent keys read as
	// the zero value, matching zero-initialized storage semantics; absence
	// is not an error.
	Get(key common.FlatKey) (common.FlatValue, error)

	// Set unconditionally overwrites the value stored under the given key.
	// The new value is visible to all subsequent reads in the same run.
	Set(key common.FlatKey, value common.FlatValue) error
}
