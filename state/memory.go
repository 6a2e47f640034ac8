package state

import (
	"github.com/dajuguan/PEVM/common"
)

// MemoryStore is the default all-in-memory store backing.
type MemoryStore struct {
	data map[common.FlatKey]common.FlatValue
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[common.FlatKey]common.FlatValue)}
}

func (s *MemoryStore) Get(key common.FlatKey) (common.FlatValue, error) {
	return s.data[key], nil
}

func (s *MemoryStore) Set(key common.FlatKey, value common.FlatValue) error {
	s.data[key] = value
	return nil
}

// Len returns the number of keys that have been written.
func (s *MemoryStore) Len() int {
	return len(s.data)
}
