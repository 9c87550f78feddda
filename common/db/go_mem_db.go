// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"sort"
	"strconv"
	"sync"

	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

// GoMemDB map backed db for tests and local simulation
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	// memdb 不需要创建文件
	mlog.Debug("NewGoMemDB", "name", name)
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

// Get get value by key
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return cloneBytes(entry), nil
	}
	return nil, ErrNotFoundInDb
}

// Set set key value
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db[string(key)] = cloneBytes(value)
	return nil
}

// SetSync same as Set
func (db *GoMemDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete delete key
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

// DeleteSync same as Delete
func (db *GoMemDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

// Close nothing to release
func (db *GoMemDB) Close() {}

// Stats key count
func (db *GoMemDB) Stats() map[string]string {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return map[string]string{"memdb.keys": strconv.Itoa(len(db.db))}
}

// Iterator snapshot of the keys under prefix
func (db *GoMemDB) Iterator(prefix []byte, reverse bool) Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	var keys []string
	for k := range db.db {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = cloneBytes(db.db[k])
	}
	return &goMemDBIt{keys: keys, values: values, index: -1}
}

type goMemDBIt struct {
	keys   []string
	values [][]byte
	index  int
}

func (it *goMemDBIt) Rewind() bool {
	it.index = 0
	return it.Valid()
}

func (it *goMemDBIt) Next() bool {
	it.index++
	return it.Valid()
}

func (it *goMemDBIt) Valid() bool {
	return it.index >= 0 && it.index < len(it.keys)
}

func (it *goMemDBIt) Key() []byte {
	return []byte(it.keys[it.index])
}

func (it *goMemDBIt) Value() []byte {
	return it.values[it.index]
}

func (it *goMemDBIt) Error() error { return nil }

func (it *goMemDBIt) Close() {}

// NewBatch new
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

type batchOp struct {
	key, value []byte
	del        bool
}

type memBatch struct {
	db   *GoMemDB
	ops  []batchOp
	size int
}

func (b *memBatch) Set(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: cloneBytes(key), value: cloneBytes(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: cloneBytes(key), del: true})
	b.size++
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()
	for _, op := range b.ops {
		if op.del {
			delete(b.db.db, string(op.key))
			continue
		}
		b.db.db[string(op.key)] = op.value
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}
