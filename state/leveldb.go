package state

import (
	"encoding/binary"

	"github.com/pbnjay/memory"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/dajuguan/PEVM/common"
)

// LevelDbStore is a persistent store backing using LevelDB. Keys and values
// are persisted as 8-byte big-endian integers.
type LevelDbStore struct {
	db *leveldb.DB
}

func NewLevelDbStore(path string) (*LevelDbStore, error) {
	// Scale the block cache with the machine instead of relying on the
	// library default, which is tuned for much smaller data sets.
	cache := int(memory.TotalMemory() / 128)
	if cache < opt.DefaultBlockCacheCapacity {
		cache = opt.DefaultBlockCacheCapacity
	}
	db, err := leveldb.OpenFile(path, &opt.Options{
		BlockCacheCapacity: cache,
	})
	if err != nil {
		return nil, err
	}
	return &LevelDbStore{db: db}, nil
}

func (s *LevelDbStore) Get(key common.FlatKey) (common.FlatValue, error) {
	data, err := s.db.Get(encodeUint64(uint64(key)), nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return common.FlatValue(binary.BigEndian.Uint64(data)), nil
}

func (s *LevelDbStore) Set(key common.FlatKey, value common.FlatValue) error {
	return s.db.Put(encodeUint64(uint64(key)), encodeUint64(uint64(value)), nil)
}

func (s *LevelDbStore) Close() error {
	return s.db.Close()
}

func encodeUint64(value uint64) []byte {
	res := make([]byte, 8)
	binary.BigEndian.PutUint64(res, value)
	return res
}
