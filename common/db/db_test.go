// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBGetSet(t *testing.T, db DB) {
	_, err := db.Get([]byte("missing"))
	require.Equal(t, ErrNotFoundInDb, err)

	require.Nil(t, db.Set([]byte("k1"), []byte("v1")))
	v, err := db.Get([]byte("k1"))
	require.Nil(t, err)
	assert.Equal(t, []byte("v1"), v)

	require.Nil(t, db.SetSync([]byte("k1"), []byte("v11")))
	v, err = db.Get([]byte("k1"))
	require.Nil(t, err)
	assert.Equal(t, []byte("v11"), v)

	require.Nil(t, db.Delete([]byte("k1")))
	_, err = db.Get([]byte("k1"))
	assert.Equal(t, ErrNotFoundInDb, err)
	assert.NotNil(t, db.Stats())
}

// 迭代测试
func testDBIterator(t *testing.T, db DB) {
	for _, k := range []string{"aaaaaa/1", "my_key/1", "my_key/2", "my_key/3", "my", "my_", "zzzzzz/1"} {
		require.Nil(t, db.Set([]byte(k), []byte(k)))
	}
	require.Nil(t, db.Set([]byte{0xff}, []byte("0xff")))

	keys, values, err := PrefixScan(db, []byte("my"))
	require.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("my"), []byte("my_"), []byte("my_key/1"), []byte("my_key/2"), []byte("my_key/3")}, keys)
	assert.Equal(t, keys, values)

	it := db.Iterator([]byte("my_key/"), true)
	var reversed []string
	for it.Rewind(); it.Valid(); it.Next() {
		reversed = append(reversed, string(it.Key()))
	}
	require.Nil(t, it.Error())
	it.Close()
	assert.Equal(t, []string{"my_key/3", "my_key/2", "my_key/1"}, reversed)

	keys, _, err = PrefixScan(db, nil)
	require.Nil(t, err)
	assert.Len(t, keys, 8)
	assert.Equal(t, []byte{0xff}, keys[7])
}

func testDBBatch(t *testing.T, db DB) {
	require.Nil(t, db.Set([]byte("b3"), []byte("old")))
	batch := db.NewBatch(true)
	batch.Set([]byte("b1"), []byte("v1"))
	batch.Set([]byte("b2"), []byte("v2"))
	batch.Delete([]byte("b3"))
	assert.Equal(t, 5, batch.ValueSize())

	// 写入前不可见
	_, err := db.Get([]byte("b1"))
	assert.Equal(t, ErrNotFoundInDb, err)

	require.Nil(t, batch.Write())
	v, err := db.Get([]byte("b2"))
	require.Nil(t, err)
	assert.Equal(t, []byte("v2"), v)
	_, err = db.Get([]byte("b3"))
	assert.Equal(t, ErrNotFoundInDb, err)

	batch.Reset()
	assert.Equal(t, 0, batch.ValueSize())
}

func testAll(t *testing.T, open func(t *testing.T) DB) {
	t.Run("getset", func(t *testing.T) {
		db := open(t)
		defer db.Close()
		testDBGetSet(t, db)
	})
	t.Run("iterator", func(t *testing.T) {
		db := open(t)
		defer db.Close()
		testDBIterator(t, db)
	})
	t.Run("batch", func(t *testing.T) {
		db := open(t)
		defer db.Close()
		testDBBatch(t, db)
	})
}

func TestGoMemDB(t *testing.T) {
	testAll(t, func(t *testing.T) DB {
		db, err := NewGoMemDB("test", "", 0)
		require.Nil(t, err)
		return db
	})
}

func TestGoLevelDB(t *testing.T) {
	testAll(t, func(t *testing.T) DB {
		db, err := NewGoLevelDB("test", t.TempDir(), 16)
		require.Nil(t, err)
		return db
	})
}

func TestGoBadgerDB(t *testing.T) {
	testAll(t, func(t *testing.T) DB {
		db, err := NewGoBadgerDB("test", t.TempDir(), 16)
		require.Nil(t, err)
		return db
	})
}

func TestNewDB(t *testing.T) {
	assert.Equal(t, []string{GoBadgerDBBackendStr, GoLevelDBBackendStr, LevelDBBackendStr, MemDBBackendStr}, Backends())

	db, err := NewDB("test", MemDBBackendStr, "", 0)
	require.Nil(t, err)
	_, ok := db.(*GoMemDB)
	assert.True(t, ok)

	_, err = NewDB("test", "nosuchdb", "", 0)
	assert.NotNil(t, err)
}
