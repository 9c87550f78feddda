// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
账户数据库, 保存账本上的所有账户
*/
package account

//package for account manger
//1. load from db
//2. save to db
//3. KVSet
//4. scan by owner

import (
	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	log "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

var alog = log.New("module", "account")

// KeyValue one state write
type KeyValue struct {
	Key   []byte
	Value []byte
}

// DB for account
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
}

// NewAccountDB new
func NewAccountDB(db dbm.KV) *DB {
	return &DB{db: db, accountKeyPerfix: []byte(types.AccountKeyPrefix)}
}

// SetDB switch the backing kv, used when a transaction opens a new state view
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// LoadAccount load key, an account never written loads as empty and system owned
func (acc *DB) LoadAccount(key address.Address) (*types.Account, error) {
	value, err := acc.db.Get(acc.AccountKey(key))
	if err == dbm.ErrNotFoundInDb || err == types.ErrNotFound {
		return types.NewAccount(key), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load account %s", key)
	}
	acc1, err := DecodeAccount(value)
	if err != nil {
		//数据库已经损坏
		alog.Error("LoadAccount", "addr", key.String(), "err", err)
		return nil, err
	}
	if acc1.Key != key {
		alog.Error("LoadAccount key mismatch", "addr", key.String(), "stored", acc1.Key.String())
		return nil, types.ErrInvalidAccountData
	}
	return acc1, nil
}

// LoadAccounts load keys in order
func (acc *DB) LoadAccounts(keys []address.Address) ([]*types.Account, error) {
	accs := make([]*types.Account, 0, len(keys))
	for _, key := range keys {
		acc1, err := acc.LoadAccount(key)
		if err != nil {
			return nil, err
		}
		accs = append(accs, acc1)
	}
	return accs, nil
}

// SaveAccount write account to the backing kv
func (acc *DB) SaveAccount(acc1 *types.Account) error {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		if err := acc.db.Set(set[i].Key, set[i].Value); err != nil {
			return errors.Wrapf(err, "save account %s", acc1.Key)
		}
	}
	return nil
}

// GetKVSet state writes of the account
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*KeyValue) {
	kvset = append(kvset, &KeyValue{
		Key:   acc.AccountKey(acc1.Key),
		Value: EncodeAccount(acc1),
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(addr address.Address) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, addr[:]...)
	return key
}

// ProgramAccounts scan db for the accounts owned by owner
func ProgramAccounts(db dbm.DB, owner address.Address) ([]*types.Account, error) {
	_, values, err := dbm.PrefixScan(db, []byte(types.AccountKeyPrefix))
	if err != nil {
		return nil, err
	}
	var accs []*types.Account
	for _, value := range values {
		acc1, err := DecodeAccount(value)
		if err != nil {
			return nil, err
		}
		if acc1.Owner == owner {
			accs = append(accs, acc1)
		}
	}
	return accs, nil
}
