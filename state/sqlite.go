package state

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dajuguan/PEVM/common"
)

// SqliteStore is a persistent store backing using a single-table SQLite
// database. Keys and values are persisted as 64-bit integers; the unsigned
// domain is mapped onto SQLite's signed integers by plain bit conversion.
type SqliteStore struct {
	db  *sql.DB
	get *sql.Stmt
	set *sql.Stmt
}

func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS storage (key INTEGER PRIMARY KEY, value INTEGER NOT NULL)"); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to initialize schema: %w", err), db.Close())
	}
	get, err := db.Prepare("SELECT value FROM storage WHERE key = ?")
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	set, err := db.Prepare("INSERT INTO storage (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return nil, errors.Join(err, get.Close(), db.Close())
	}
	return &SqliteStore{db: db, get: get, set: set}, nil
}

func (s *SqliteStore) Get(key common.FlatKey) (common.FlatValue, error) {
	var value int64
	err := s.get.QueryRow(int64(key)).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return common.FlatValue(value), nil
}

func (s *SqliteStore) Set(key common.FlatKey, value common.FlatValue) error {
	_, err := s.set.Exec(int64(key), int64(value))
	return err
}

func (s *SqliteStore) Close() error {
	return errors.Join(
		s.get.Close(),
		s.set.Close(),
		s.db.Close(),
	)
}
