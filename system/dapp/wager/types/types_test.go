// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math"
	"testing"

	"github.com/33cn/wager/common/address"
	sty "github.com/33cn/wager/system/dapp/sysprog/types"
	"github.com/33cn/wager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetType(t *testing.T) {
	seen := make(map[string]bool)
	for _, bt := range BetTypes() {
		seed := string(bt.Seed())
		assert.NotEmpty(t, seed)
		assert.False(t, seen[seed], "duplicate seed %s", seed)
		seen[seed] = true
	}
	assert.Equal(t, []byte("solusd"), SolUsd.Seed())
	assert.Equal(t, "SolUsd", SolUsd.String())
	assert.Nil(t, BetType(9).Seed())
	assert.Equal(t, "unknown", BetType(9).String())

	bt, err := BetTypeFromByte(0)
	require.Nil(t, err)
	assert.Equal(t, SolUsd, bt)
	_, err = BetTypeFromByte(1)
	assert.Equal(t, ErrInvalidBetType, err)

	bt, err = ParseBetType("solusd")
	require.Nil(t, err)
	assert.Equal(t, SolUsd, bt)
	_, err = ParseBetType("btcusd")
	assert.Equal(t, ErrInvalidBetType, err)
}

func TestErrorCodes(t *testing.T) {
	codes := []*types.CustomError{
		ErrInvalidInstruction, ErrInvalidBetType, ErrBetIsClose, ErrInvalidPDAAccount,
		ErrNotRentExempt, ErrBetLamportNotEnough, ErrBetAccountContainsData,
	}
	for i, e := range codes {
		assert.Equal(t, uint32(i), e.Code)
		assert.Equal(t, e, ErrorFromCode(uint32(i)))
	}
	assert.Nil(t, ErrorFromCode(7))
	assert.Equal(t, "custom program error: 0x3 (Invalid PDA Account)", ErrInvalidPDAAccount.Error())
}

func TestDecodeAction(t *testing.T) {
	guesses := []uint64{0, 1, 12345, math.MaxUint64}
	for _, g := range guesses {
		for _, bump := range []uint8{0, 254, 255} {
			nb := &NewBet{BetType: SolUsd, Bump: bump, Guess: g}
			data := nb.Encode()
			require.Len(t, data, NewBetLen)
			act, err := DecodeAction(data)
			require.Nil(t, err)
			assert.Equal(t, NewBetTag, act.Tag)
			assert.Equal(t, nb, act.NewBet)
		}
	}

	data := (&NewBet{BetType: SolUsd, Bump: 7, Guess: 12345}).Encode()
	assert.Equal(t, []byte{0, 0, 7, 0x39, 0x30, 0, 0, 0, 0, 0, 0}, data)
	for i := 0; i < NewBetLen; i++ {
		_, err := DecodeAction(data[:i])
		assert.Equal(t, ErrInvalidInstruction, err, "len %d", i)
	}

	// 多余的字节被忽略
	act, err := DecodeAction(append(append([]byte{}, data...), 1, 2, 3))
	require.Nil(t, err)
	assert.Equal(t, uint64(12345), act.NewBet.Guess)

	bad := append([]byte{}, data...)
	bad[1] = 1
	_, err = DecodeAction(bad)
	assert.Equal(t, ErrInvalidBetType, err)
	bad[1] = 0xff
	_, err = DecodeAction(bad)
	assert.Equal(t, ErrInvalidBetType, err)

	bad[0] = 1
	_, err = DecodeAction(bad)
	assert.Equal(t, ErrInvalidInstruction, err)
}

func TestNewBetInstruction(t *testing.T) {
	prog, bettor, authority, wager := address.Address{1}, address.Address{2}, address.Address{3}, address.Address{4}
	ix := NewBetInstruction(prog, bettor, authority, wager, &NewBet{Guess: 1})
	assert.Equal(t, prog, ix.ProgramID)
	assert.Equal(t, []types.AccountMeta{
		{Pubkey: bettor, IsSigner: true},
		{Pubkey: authority, IsWritable: true},
		{Pubkey: wager, IsSigner: true, IsWritable: true},
		{Pubkey: sty.ProgramID},
	}, ix.Accounts)
	assert.Len(t, ix.Data, NewBetLen)
}

func TestFindAuthority(t *testing.T) {
	key, bump, err := FindAuthority(DefaultProgramID, SolUsd)
	require.Nil(t, err)
	_, err = address.VerifyProgramAddress(DefaultProgramID, key, SolUsd.Seed(), []byte{bump})
	assert.Nil(t, err)

	_, _, err = FindAuthority(DefaultProgramID, BetType(3))
	assert.Equal(t, ErrInvalidBetType, err)
}

func TestAggregateRecord(t *testing.T) {
	recs := []*AggregateRecord{
		{},
		{BetType: SolUsd, IsOpen: true, HeadAddress: address.Address{1, 2, 3}, BettorCount: math.MaxUint32},
	}
	for _, r := range recs {
		b := r.Pack()
		require.Len(t, b, AggregateRecordLen)
		got, err := UnpackAggregate(b)
		require.Nil(t, err)
		assert.Equal(t, r, got)
		assert.Equal(t, b, got.Pack())
	}

	b := recs[1].Pack()
	assert.Equal(t, byte(1), b[1])
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b[34:])

	bad := append([]byte{}, b...)
	bad[1] = 2
	_, err := UnpackAggregate(bad)
	assert.Equal(t, types.ErrInvalidAccountData, err)
	_, err = UnpackAggregateUnchecked(bad)
	assert.Nil(t, err)

	bad[0] = 4
	_, err = UnpackAggregate(bad)
	assert.Equal(t, ErrInvalidBetType, err)

	_, err = UnpackAggregate(b[:37])
	assert.Equal(t, types.ErrInvalidAccountData, err)
	assert.Equal(t, types.ErrInvalidAccountData, recs[0].PackInto(make([]byte, 39)))
	dst := make([]byte, AggregateRecordLen)
	require.Nil(t, recs[1].PackInto(dst))
	assert.Equal(t, b, dst)
}

func TestWagerRecord(t *testing.T) {
	recs := []*WagerRecord{
		{},
		{BetType: SolUsd, Guess: math.MaxUint64, TimeMarker: 99, BettorAddress: address.Address{0xee}},
		{Guess: 12345, TimeMarker: math.MaxUint64, NextWagerAddress: address.Address{1}, BettorAddress: address.Address{2}},
	}
	for _, r := range recs {
		b := r.Pack()
		require.Len(t, b, WagerRecordLen)
		got, err := UnpackWager(b)
		require.Nil(t, err)
		assert.Equal(t, r, got)
		assert.Equal(t, b, got.Pack())
	}

	b := recs[2].Pack()
	assert.Equal(t, []byte{0x39, 0x30, 0, 0, 0, 0, 0, 0}, b[1:9])
	assert.Equal(t, byte(1), b[17])
	assert.Equal(t, byte(2), b[49])

	// 未初始化的空间
	zero, err := UnpackWagerUnchecked(make([]byte, WagerRecordLen))
	require.Nil(t, err)
	assert.Equal(t, &WagerRecord{}, zero)

	bad := append([]byte{}, b...)
	bad[0] = 0x80
	_, err = UnpackWager(bad)
	assert.Equal(t, ErrInvalidBetType, err)
	r, err := UnpackWagerUnchecked(bad)
	require.Nil(t, err)
	assert.Equal(t, bad, r.Pack())

	_, err = UnpackWager(b[:80])
	assert.Equal(t, types.ErrInvalidAccountData, err)
	assert.Equal(t, types.ErrInvalidAccountData, recs[0].PackInto(nil))
}
