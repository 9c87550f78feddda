// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/33cn/wager/common/address"

// Receipt result of one transaction
type Receipt struct {
	Ty     int32
	ID     string
	TxHash []byte
	Slot   uint64
	Logs   []string
	Err    error
	// CustomCode set when Err is a program specific error
	CustomCode *uint32
	// Accounts post state of the writable accounts, empty on failure
	Accounts []*Account
}

// NewErrReceipt failed receipt, no account is changed
func NewErrReceipt(id string, hash []byte, slot uint64, logs []string, err error) *Receipt {
	r := &Receipt{Ty: ExecErr, ID: id, TxHash: hash, Slot: slot, Logs: logs, Err: err}
	if code, ok := ErrorCode(err); ok {
		r.CustomCode = &code
	}
	return r
}

// IsOK transaction committed
func (r *Receipt) IsOK() bool {
	return r.Ty == ExecOk
}

// TyName 收据类型名称
func (r *Receipt) TyName() string {
	switch r.Ty {
	case ExecOk:
		return "ExecOk"
	case ExecErr:
		return "ExecErr"
	}
	return "unknown"
}

// FindAccount post state of key, nil when not written
func (r *Receipt) FindAccount(key address.Address) *Account {
	for _, acc := range r.Accounts {
		if acc.Key == key {
			return acc
		}
	}
	return nil
}
