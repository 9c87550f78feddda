// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types instructions of the base account-management service
package types

import (
	"encoding/binary"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

// SysprogX 执行器名称
const SysprogX = "system"

// ProgramID address of the service
var ProgramID = types.SystemProgramID

// instruction tags, u32 little endian
const (
	CreateAccountTag uint32 = 0
	AssignTag        uint32 = 1
	TransferTag      uint32 = 2
	AllocateTag      uint32 = 8
)

// SysInstruction decoded instruction of the service
type SysInstruction struct {
	Tag      uint32
	Lamports uint64
	Space    uint64
	Owner    address.Address
}

type reader struct {
	data []byte
	err  error
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data) < n {
		r.err = types.ErrInvalidInstructionData
		return nil
	}
	b := r.data[:n]
	r.data = r.data[n:]
	return b
}

func (r *reader) u32() uint32 {
	if b := r.next(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *reader) u64() uint64 {
	if b := r.next(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (r *reader) addr() (a address.Address) {
	if b := r.next(address.AddressLength); b != nil {
		copy(a[:], b)
	}
	return a
}

// Decode decode instruction data
func Decode(data []byte) (*SysInstruction, error) {
	r := &reader{data: data}
	ix := &SysInstruction{Tag: r.u32()}
	if r.err != nil {
		return nil, r.err
	}
	switch ix.Tag {
	case CreateAccountTag:
		ix.Lamports = r.u64()
		ix.Space = r.u64()
		ix.Owner = r.addr()
	case AssignTag:
		ix.Owner = r.addr()
	case TransferTag:
		ix.Lamports = r.u64()
	case AllocateTag:
		ix.Space = r.u64()
	default:
		return nil, types.ErrInvalidInstructionData
	}
	if r.err != nil {
		return nil, r.err
	}
	return ix, nil
}

// Encode encode instruction data
func (ix *SysInstruction) Encode() []byte {
	b := binary.LittleEndian.AppendUint32(nil, ix.Tag)
	switch ix.Tag {
	case CreateAccountTag:
		b = binary.LittleEndian.AppendUint64(b, ix.Lamports)
		b = binary.LittleEndian.AppendUint64(b, ix.Space)
		b = append(b, ix.Owner[:]...)
	case AssignTag:
		b = append(b, ix.Owner[:]...)
	case TransferTag:
		b = binary.LittleEndian.AppendUint64(b, ix.Lamports)
	case AllocateTag:
		b = binary.LittleEndian.AppendUint64(b, ix.Space)
	}
	return b
}

// CreateAccount fund, allocate and assign a fresh account
func CreateAccount(from, to address.Address, lamports, space uint64, owner address.Address) *types.Instruction {
	return &types.Instruction{
		ProgramID: ProgramID,
		Accounts:  []types.AccountMeta{types.NewAccountMeta(from, true), types.NewAccountMeta(to, true)},
		Data:      (&SysInstruction{Tag: CreateAccountTag, Lamports: lamports, Space: space, Owner: owner}).Encode(),
	}
}

// Assign change the owner of account
func Assign(account, owner address.Address) *types.Instruction {
	return &types.Instruction{
		ProgramID: ProgramID,
		Accounts:  []types.AccountMeta{types.NewAccountMeta(account, true)},
		Data:      (&SysInstruction{Tag: AssignTag, Owner: owner}).Encode(),
	}
}

// Transfer move lamports from a service owned account
func Transfer(from, to address.Address, lamports uint64) *types.Instruction {
	return &types.Instruction{
		ProgramID: ProgramID,
		Accounts:  []types.AccountMeta{types.NewAccountMeta(from, true), types.NewAccountMeta(to, false)},
		Data:      (&SysInstruction{Tag: TransferTag, Lamports: lamports}).Encode(),
	}
}

// Allocate give account space bytes of zeroed storage, authority signs for the account's owner
func Allocate(account, authority address.Address, space uint64) *types.Instruction {
	return &types.Instruction{
		ProgramID: ProgramID,
		Accounts:  []types.AccountMeta{types.NewAccountMeta(account, false), types.NewReadonlyAccountMeta(authority, true)},
		Data:      (&SysInstruction{Tag: AllocateTag, Space: space}).Encode(),
	}
}
