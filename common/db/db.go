// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db key value backends of the ledger state
package db

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFoundInDb key not in db
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// KV the view of the state a transaction works on
type KV interface {
	Get(key []byte) (value []byte, err error)
	Set(key []byte, value []byte) (err error)
}

// DB a persistent backend
type DB interface {
	KV
	SetSync([]byte, []byte) error
	Delete([]byte) error
	DeleteSync([]byte) error
	Close()
	NewBatch(sync bool) Batch
	// Iterator walks keys with prefix in ascending order, descending if reverse
	Iterator(prefix []byte, reverse bool) Iterator
	Stats() map[string]string
}

// Batch atomic group of writes
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

// Iterator db iterator, Rewind must be called first
type Iterator interface {
	Rewind() bool
	Next() bool
	Valid() bool
	Key() []byte
	Value() []byte
	Error() error
	Close()
}

//-----------------------------------------------------------------------------

// backend names
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB open a db of the given backend
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	dbCreator, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown db backend %q", backend)
	}
	return dbCreator(name, dir, cache)
}

// Backends registered backend names, sorted
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrefixScan collect the keys and values stored under prefix
func PrefixScan(db DB, prefix []byte) (keys, values [][]byte, err error) {
	it := db.Iterator(prefix, false)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, cloneBytes(it.Key()))
		values = append(values, cloneBytes(it.Value()))
	}
	return keys, values, it.Error()
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
