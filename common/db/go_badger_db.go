// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"path"
	"strconv"

	"github.com/dgraph-io/badger"
	log "github.com/inconshreveable/log15"
)

var blog = log.New("module", "db.gobadgerdb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

// GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

// NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	opts := badger.DefaultOptions(path.Join(dir, name+".db"))
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

// Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFoundInDb
	}
	if err != nil {
		blog.Error("Get", "error", err)
		return nil, err
	}
	return val, nil
}

// Set set
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		blog.Error("Set", "error", err)
	}
	return err
}

// SetSync badger 默认同步写
func (db *GoBadgerDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete delete
func (db *GoBadgerDB) Delete(key []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		blog.Error("Delete", "error", err)
	}
	return err
}

// DeleteSync same as Delete
func (db *GoBadgerDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

// DB raw badger handle
func (db *GoBadgerDB) DB() *badger.DB {
	return db.db
}

// Close close
func (db *GoBadgerDB) Close() {
	if err := db.db.Close(); err != nil {
		blog.Error("Close", "error", err)
	}
}

// Stats lsm and value log sizes
func (db *GoBadgerDB) Stats() map[string]string {
	lsm, vlog := db.db.Size()
	return map[string]string{
		"badger.lsm.size":  strconv.FormatInt(lsm, 10),
		"badger.vlog.size": strconv.FormatInt(vlog, 10),
	}
}

// Iterator prefix iterator over a read only transaction
func (db *GoBadgerDB) Iterator(prefix []byte, reverse bool) Iterator {
	txn := db.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	return &goBadgerDBIt{txn: txn, it: txn.NewIterator(opts), prefix: cloneBytes(prefix), reverse: reverse}
}

type goBadgerDBIt struct {
	txn     *badger.Txn
	it      *badger.Iterator
	prefix  []byte
	reverse bool
	err     error
}

func (it *goBadgerDBIt) Rewind() bool {
	if it.reverse {
		// 反向迭代从前缀范围之后的第一个键开始
		it.it.Seek(append(cloneBytes(it.prefix), 0xff))
	} else {
		it.it.Seek(it.prefix)
	}
	return it.Valid()
}

func (it *goBadgerDBIt) Next() bool {
	it.it.Next()
	return it.Valid()
}

func (it *goBadgerDBIt) Valid() bool {
	return it.it.ValidForPrefix(it.prefix)
}

func (it *goBadgerDBIt) Key() []byte {
	return it.it.Item().KeyCopy(nil)
}

func (it *goBadgerDBIt) Value() []byte {
	value, err := it.it.Item().ValueCopy(nil)
	if err != nil {
		it.err = err
		return nil
	}
	return value
}

func (it *goBadgerDBIt) Error() error {
	return it.err
}

func (it *goBadgerDBIt) Close() {
	it.it.Close()
	it.txn.Discard()
}

// NewBatch writes are applied in one badger transaction
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &goBadgerDBBatch{db: db}
}

type goBadgerDBBatch struct {
	db   *GoBadgerDB
	ops  []batchOp
	size int
}

func (mBatch *goBadgerDBBatch) Set(key, value []byte) {
	mBatch.ops = append(mBatch.ops, batchOp{key: cloneBytes(key), value: cloneBytes(value)})
	mBatch.size += len(value)
}

func (mBatch *goBadgerDBBatch) Delete(key []byte) {
	mBatch.ops = append(mBatch.ops, batchOp{key: cloneBytes(key), del: true})
	mBatch.size++
}

func (mBatch *goBadgerDBBatch) Write() error {
	err := mBatch.db.db.Update(func(txn *badger.Txn) error {
		for _, op := range mBatch.ops {
			var err error
			if op.del {
				err = txn.Delete(op.key)
			} else {
				err = txn.Set(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		blog.Error("Write", "error", err)
	}
	return err
}

func (mBatch *goBadgerDBBatch) ValueSize() int {
	return mBatch.size
}

func (mBatch *goBadgerDBBatch) Reset() {
	mBatch.ops = mBatch.ops[:0]
	mBatch.size = 0
}
