// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"math"
	"testing"

	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	addr1 = address.Address{1}
	addr2 = address.Address{2}
	prog  = address.Address{0xaa}
)

func newAccountDB(t *testing.T) (*DB, dbm.DB) {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	return NewAccountDB(db), db
}

func TestLoadDefault(t *testing.T) {
	accDB, _ := newAccountDB(t)
	acc, err := accDB.LoadAccount(addr1)
	require.Nil(t, err)
	assert.Equal(t, addr1, acc.Key)
	assert.Equal(t, types.SystemProgramID, acc.Owner)
	assert.Equal(t, uint64(0), acc.Lamports)
	assert.Nil(t, acc.Data)
}

func TestSaveLoad(t *testing.T) {
	accDB, _ := newAccountDB(t)
	acc := &types.Account{Key: addr1, Lamports: 99, Data: []byte{1, 2, 3}, Owner: prog, Executable: true}
	require.Nil(t, accDB.SaveAccount(acc))

	got, err := accDB.LoadAccount(addr1)
	require.Nil(t, err)
	assert.Equal(t, acc, got)

	accs, err := accDB.LoadAccounts([]address.Address{addr1, addr2})
	require.Nil(t, err)
	require.Len(t, accs, 2)
	assert.Equal(t, uint64(99), accs[0].Lamports)
	assert.Equal(t, addr2, accs[1].Key)
}

func TestGetKVSet(t *testing.T) {
	accDB, _ := newAccountDB(t)
	kvs := accDB.GetKVSet(&types.Account{Key: addr1, Owner: prog})
	require.Len(t, kvs, 1)
	assert.Equal(t, append([]byte(types.AccountKeyPrefix), addr1[:]...), kvs[0].Key)
	acc, err := DecodeAccount(kvs[0].Value)
	require.Nil(t, err)
	assert.Equal(t, prog, acc.Owner)
}

func TestDecodeAccount(t *testing.T) {
	acc := &types.Account{Key: addr1, Lamports: math.MaxUint64, Owner: prog}
	b := EncodeAccount(acc)
	// 未知字段被忽略
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 5)
	got, err := DecodeAccount(b)
	require.Nil(t, err)
	assert.Equal(t, acc, got)

	_, err = DecodeAccount(b[:len(b)-3])
	assert.NotNil(t, err)

	var bad []byte
	bad = protowire.AppendTag(bad, fieldKey, protowire.BytesType)
	bad = protowire.AppendBytes(bad, []byte{1, 2})
	_, err = DecodeAccount(bad)
	assert.Equal(t, types.ErrInvalidAccountData, err)
}

func TestLoadCorrupted(t *testing.T) {
	accDB, db := newAccountDB(t)
	require.Nil(t, db.Set(accDB.AccountKey(addr1), EncodeAccount(&types.Account{Key: addr2})))
	_, err := accDB.LoadAccount(addr1)
	assert.Equal(t, types.ErrInvalidAccountData, err)
}

func TestGenesis(t *testing.T) {
	accDB, db := newAccountDB(t)
	_, err := accDB.GenesisInit(addr1, 10)
	require.Nil(t, err)
	acc, err := accDB.GenesisInit(addr1, 5)
	require.Nil(t, err)
	assert.Equal(t, uint64(15), acc.Lamports)

	_, err = accDB.GenesisInit(addr1, math.MaxUint64)
	assert.Equal(t, types.ErrArithmeticOverflow, err)

	_, err = accDB.GenesisInitData(addr2, 7, prog, make([]byte, 38))
	require.Nil(t, err)

	owned, err := ProgramAccounts(db, prog)
	require.Nil(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, addr2, owned[0].Key)
	assert.Len(t, owned[0].Data, 38)

	_, err = accDB.GenesisInitData(addr2, 7, prog, make([]byte, types.MaxPermittedDataLength+1))
	assert.Equal(t, types.ErrInvalidArgument, err)
}
