// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/system/dapp"
	sty "github.com/33cn/wager/system/dapp/sysprog/types"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
)

type action struct {
	ctx       dapp.Context
	programID address.Address
	accounts  *dapp.AccountIter
}

func newAction(ctx dapp.Context, programID address.Address, accounts []*types.AccountInfo) *action {
	return &action{ctx: ctx, programID: programID, accounts: dapp.NewAccountIter(accounts)}
}

// newBet accounts: [bettor (signer), authority (writable), wager (writable, signer), system]
func (a *action) newBet(nb *wty.NewBet) error {
	bettor, err := a.accounts.Next()
	if err != nil {
		return err
	}
	if !bettor.IsSigner {
		wlog.Error("newBet bettor not signer", "bettor", bettor.Key.String())
		return types.ErrMissingRequiredSignature
	}

	authority, err := a.accounts.Next()
	if err != nil {
		return err
	}
	// 先检查所有者再计算派生地址
	if authority.Owner != a.programID {
		wlog.Error("newBet authority not owned by program", "authority", authority.Key.String(), "owner", authority.Owner.String())
		return wty.ErrInvalidPDAAccount
	}
	signer, err := address.VerifyProgramAddress(a.programID, authority.Key, nb.BetType.Seed(), []byte{nb.Bump})
	if err != nil {
		wlog.Error("newBet authority mismatch", "authority", authority.Key.String(), "bump", nb.Bump, "err", err)
		return wty.ErrInvalidPDAAccount
	}
	if !a.ctx.Rent().IsExempt(authority.Lamports, authority.DataLen()) {
		wlog.Error("newBet authority not rent exempt", "lamports", authority.Lamports, "size", authority.DataLen())
		return wty.ErrNotRentExempt
	}

	wager, err := a.accounts.Next()
	if err != nil {
		return err
	}
	if wager.Lamports < wty.MinBetLamports {
		wlog.Error("newBet stake too low", "lamports", wager.Lamports, "min", wty.MinBetLamports)
		return wty.ErrBetLamportNotEnough
	}
	if wager.DataLen() > 0 {
		wlog.Error("newBet wager account contains data", "size", wager.DataLen())
		return wty.ErrBetAccountContainsData
	}

	if _, err := a.accounts.Next(); err != nil {
		return err
	}

	a.ctx.Log("assign wager account to authority", "wager", wager.Key, "authority", authority.Key)
	if err := a.ctx.Invoke(sty.Assign(wager.Key, authority.Key)); err != nil {
		return err
	}
	a.ctx.Log("allocate wager record", "size", wty.WagerRecordLen)
	if err := a.ctx.InvokeSigned(sty.Allocate(wager.Key, authority.Key, wty.WagerRecordLen), signer); err != nil {
		return err
	}

	record, err := wty.UnpackWagerUnchecked(wager.Data)
	if err != nil {
		return err
	}
	record.BetType = nb.BetType
	record.Guess = nb.Guess
	record.TimeMarker = a.ctx.Clock().Slot
	record.BettorAddress = bettor.Key
	if err := record.PackInto(wager.Data); err != nil {
		return err
	}
	wlog.Debug("newBet", "wager", wager.Key.String(), "bettor", bettor.Key.String(), "guess", nb.Guess, "slot", record.TimeMarker)
	return nil
}
