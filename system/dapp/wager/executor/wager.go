// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
wager 执行器支持下注

交易类型:
1. NewBet: 创建下注账户, 所有者转给下注类型的派生地址, 写入下注记录
*/

import (
	"github.com/33cn/wager/common/address"
	log "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/system/dapp"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
)

var wlog = log.New("module", "execs.wager")

func init() {
	dapp.Register(wty.WagerX, wty.DefaultProgramID, newWager, false)
}

// Wager the wagering program
type Wager struct{}

func newWager() dapp.Program {
	return &Wager{}
}

// Process decode and dispatch one instruction
func (w *Wager) Process(ctx dapp.Context, programID address.Address, accounts []*types.AccountInfo, data []byte) error {
	action, err := wty.DecodeAction(data)
	if err != nil {
		wlog.Error("Process decode", "err", err)
		return err
	}
	switch action.Tag {
	case wty.NewBetTag:
		nb := action.NewBet
		ctx.Log("Instruction: NewBet", "type", nb.BetType)
		return newAction(ctx, programID, accounts).newBet(nb)
	}
	return wty.ErrInvalidInstruction
}
