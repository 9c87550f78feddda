// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
)

// SystemProgramID the base account-management service, owner of every fresh account
var SystemProgramID = address.Zero

// Account ledger storage cell
type Account struct {
	Key        address.Address
	Lamports   uint64
	Data       []byte
	Owner      address.Address
	Executable bool
}

// NewAccount empty account owned by the system service
func NewAccount(key address.Address) *Account {
	return &Account{Key: key, Owner: SystemProgramID}
}

// Clone deep copy
func (a *Account) Clone() *Account {
	c := *a
	c.Data = common.CopyBytes(a.Data)
	return &c
}

// DataLen 数据长度
func (a *Account) DataLen() int {
	return len(a.Data)
}

// AccountInfo an account as seen by one program invocation.
// Account is shared between the caller and callee of a cross-program call.
type AccountInfo struct {
	*Account
	IsSigner   bool
	IsWritable bool
}

// AccountMeta account reference of an instruction
type AccountMeta struct {
	Pubkey     address.Address
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta writable account
func NewAccountMeta(key address.Address, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta readonly account
func NewReadonlyAccountMeta(key address.Address, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: isSigner}
}

// Instruction a call of one program
type Instruction struct {
	ProgramID address.Address
	Accounts  []AccountMeta
	Data      []byte
}
