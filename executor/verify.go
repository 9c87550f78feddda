// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"
	"math/bits"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

func (f *invokeFrame) snapshot() {
	f.pre = make(map[address.Address]*types.Account, len(f.accounts))
	for _, info := range f.accounts {
		if _, ok := f.pre[info.Key]; !ok {
			f.pre[info.Key] = info.Account.Clone()
		}
	}
}

// controls the program may change accounts owned by itself or by one of its authority accounts
func (f *invokeFrame) controls(owner address.Address) bool {
	if owner == f.program {
		return true
	}
	if acc, ok := f.env.accounts[owner]; ok {
		return acc.Owner == f.program
	}
	acc, err := f.env.exec.accDB.LoadAccount(owner)
	if err != nil {
		return false
	}
	return acc.Owner == f.program
}

// verify the changes made since the last snapshot
func (f *invokeFrame) verify() error {
	var preHi, preLo, postHi, postLo, carry uint64
	for key, pre := range f.pre {
		info := f.find(key)
		if err := f.verifyAccount(pre, info.Account, info.IsWritable); err != nil {
			elog.Error("verify", "program", f.program.String(), "account", key.String(), "err", err)
			return err
		}
		preLo, carry = bits.Add64(preLo, pre.Lamports, 0)
		preHi += carry
		postLo, carry = bits.Add64(postLo, info.Lamports, 0)
		postHi += carry
	}
	if preHi != postHi || preLo != postLo {
		return types.ErrUnbalancedInstruction
	}
	return nil
}

func (f *invokeFrame) verifyAccount(pre, post *types.Account, writable bool) error {
	controlled := f.controls(pre.Owner)
	if pre.Executable != post.Executable {
		return types.ErrExecutableModified
	}
	if pre.Owner != post.Owner {
		if !writable || !controlled || !common.IsZeroBytes(post.Data) {
			return types.ErrModifiedProgramID
		}
	}
	if pre.Lamports != post.Lamports {
		if !writable {
			return types.ErrReadonlyLamportChange
		}
		if post.Lamports < pre.Lamports && !controlled {
			return types.ErrExternalLamportSpend
		}
	}
	if !bytes.Equal(pre.Data, post.Data) {
		if !writable {
			return types.ErrReadonlyDataModified
		}
		if !controlled {
			return types.ErrExternalDataModified
		}
	}
	return nil
}
