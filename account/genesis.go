// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

// GenesisInit 生成创世地址账户收据
func (acc *DB) GenesisInit(addr address.Address, lamports uint64) (*types.Account, error) {
	acc1, err := acc.LoadAccount(addr)
	if err != nil {
		return nil, err
	}
	acc1.Lamports += lamports
	if acc1.Lamports < lamports {
		return nil, types.ErrArithmeticOverflow
	}
	if err := acc.SaveAccount(acc1); err != nil {
		return nil, err
	}
	alog.Debug("GenesisInit", "addr", addr.String(), "lamports", lamports)
	return acc1, nil
}

// GenesisInitData seed a program owned account, used for accounts no instruction creates
func (acc *DB) GenesisInitData(addr address.Address, lamports uint64, owner address.Address, data []byte) (*types.Account, error) {
	if len(data) > types.MaxPermittedDataLength {
		return nil, types.ErrInvalidArgument
	}
	acc1 := &types.Account{
		Key:      addr,
		Lamports: lamports,
		Owner:    owner,
		Data:     common.CopyBytes(data),
	}
	if err := acc.SaveAccount(acc1); err != nil {
		return nil, err
	}
	alog.Debug("GenesisInitData", "addr", addr.String(), "owner", owner.String(), "size", len(data))
	return acc1, nil
}
