// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/33cn/wager/common/address"
	sty "github.com/33cn/wager/system/dapp/sysprog/types"
	"github.com/33cn/wager/types"
)

// NewBet open a wager
type NewBet struct {
	BetType BetType
	Bump    uint8
	Guess   uint64
}

// WagerAction decoded instruction, exactly one payload is set
type WagerAction struct {
	Tag    uint8
	NewBet *NewBet
}

// DecodeAction decode instruction data, bytes after the payload are ignored
func DecodeAction(data []byte) (*WagerAction, error) {
	if len(data) == 0 {
		return nil, ErrInvalidInstruction
	}
	switch data[0] {
	case NewBetTag:
		if len(data) < NewBetLen {
			return nil, ErrInvalidInstruction
		}
		bt, err := BetTypeFromByte(data[1])
		if err != nil {
			return nil, err
		}
		return &WagerAction{Tag: NewBetTag, NewBet: &NewBet{
			BetType: bt,
			Bump:    data[2],
			Guess:   binary.LittleEndian.Uint64(data[3:NewBetLen]),
		}}, nil
	}
	return nil, ErrInvalidInstruction
}

// Encode the instruction data of a NewBet
func (nb *NewBet) Encode() []byte {
	b := make([]byte, NewBetLen)
	b[0] = NewBetTag
	b[1] = byte(nb.BetType)
	b[2] = nb.Bump
	binary.LittleEndian.PutUint64(b[3:], nb.Guess)
	return b
}

// NewBetInstruction build a NewBet call of programID.
// The wager account signs too, the system service asks it for the owner change.
func NewBetInstruction(programID, bettor, authority, wager address.Address, nb *NewBet) *types.Instruction {
	return &types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			types.NewReadonlyAccountMeta(bettor, true),
			types.NewAccountMeta(authority, false),
			types.NewAccountMeta(wager, true),
			types.NewReadonlyAccountMeta(sty.ProgramID, false),
		},
		Data: nb.Encode(),
	}
}

// FindAuthority derived authority of betType and its bump, for clients
func FindAuthority(programID address.Address, betType BetType) (address.Address, uint8, error) {
	if !betType.Valid() {
		return address.Address{}, 0, ErrInvalidBetType
	}
	return address.FindProgramAddress(programID, betType.Seed())
}
