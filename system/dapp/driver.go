// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

//package dapp the framework every ledger program is written against
//a program only sees the accounts of the instruction and the invoke context

import (
	"context"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

// Context the host services a running program can use
type Context interface {
	// Context 交易执行的上下文, cancelled when the caller gives up
	Context() context.Context
	Rent() types.Rent
	Clock() types.Clock
	// Log append a line to the transaction receipt
	Log(msg string, ctx ...interface{})
	// Invoke call another program with a subset of the current accounts
	Invoke(ix *types.Instruction) error
	// InvokeSigned same as Invoke, signers grant signature to authorities derived from the current program
	InvokeSigned(ix *types.Instruction, signers ...*address.ProgramSigner) error
}

// Program a ledger program
type Program interface {
	Process(ctx Context, programID address.Address, accounts []*types.AccountInfo, data []byte) error
}

// ProgramFunc adapt a function to Program
type ProgramFunc func(ctx Context, programID address.Address, accounts []*types.AccountInfo, data []byte) error

// Process call f
func (f ProgramFunc) Process(ctx Context, programID address.Address, accounts []*types.AccountInfo, data []byte) error {
	return f(ctx, programID, accounts, data)
}

// AccountIter walks the accounts of an instruction in order
type AccountIter struct {
	accounts []*types.AccountInfo
	index    int
}

// NewAccountIter new
func NewAccountIter(accounts []*types.AccountInfo) *AccountIter {
	return &AccountIter{accounts: accounts}
}

// Next next account, ErrNotEnoughAccountKeys when exhausted
func (it *AccountIter) Next() (*types.AccountInfo, error) {
	if it.index >= len(it.accounts) {
		return nil, types.ErrNotEnoughAccountKeys
	}
	acc := it.accounts[it.index]
	it.index++
	return acc, nil
}

// Remaining accounts not yet returned by Next
func (it *AccountIter) Remaining() []*types.AccountInfo {
	return it.accounts[it.index:]
}
