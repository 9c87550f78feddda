// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
)

// StateDB state db over a persistent backend, writes of a transaction stay in memory until Commit
type StateDB struct {
	db      dbm.DB
	txcache map[string][]byte
	keys    []string
	intx    bool
}

// NewStateDB new state db
func NewStateDB(db dbm.DB) *StateDB {
	return &StateDB{db: db}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = make(map[string][]byte)
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit flush the writes of the transaction in one batch
func (s *StateDB) Commit() error {
	if !s.intx {
		return nil
	}
	batch := s.db.NewBatch(true)
	keys := make([]string, 0, len(s.txcache))
	for k := range s.txcache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.txcache[k]
		if v == nil {
			batch.Delete([]byte(k))
			continue
		}
		batch.Set([]byte(k), v)
	}
	err := batch.Write()
	s.resetTx()
	return err
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx {
		if value, ok := s.txcache[skey]; ok {
			if value == nil {
				return nil, types.ErrNotFound
			}
			return value, nil
		}
	}
	value, err := s.db.Get(key)
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	return value, err
}

// Set set key value to state db, a nil value deletes the key.
// Outside a transaction the write goes straight to the backend.
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if !s.intx {
		if value == nil {
			return s.db.Delete(key)
		}
		return s.db.Set(key, value)
	}
	if _, ok := s.txcache[skey]; !ok {
		s.keys = append(s.keys, skey)
	}
	s.txcache[skey] = value
	return nil
}

// GetSetKeys  get state db set keys
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}
