// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
系统程序, 负责账户的创建, 转账, 所有者变更和空间分配

账户规则:
1. 只有当前所有者可以修改账户的所有者, 且账户可写, 不可执行, 数据为空或全零
2. 空间只能在数据为空时分配, 由账户自身或其派生所有者签名
3. 转出账户必须由本程序拥有且不带数据
*/

import (
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	log "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/system/dapp"
	sty "github.com/33cn/wager/system/dapp/sysprog/types"
	"github.com/33cn/wager/types"
)

var slog = log.New("module", "execs.sysprog")

func init() {
	dapp.Register(sty.SysprogX, sty.ProgramID, newSysprog, true)
}

// Sysprog the base account-management service
type Sysprog struct{}

func newSysprog() dapp.Program {
	return &Sysprog{}
}

// Process dispatch one instruction
func (s *Sysprog) Process(ctx dapp.Context, programID address.Address, accounts []*types.AccountInfo, data []byte) error {
	ix, err := sty.Decode(data)
	if err != nil {
		return err
	}
	it := dapp.NewAccountIter(accounts)
	switch ix.Tag {
	case sty.CreateAccountTag:
		from, to, err := nextTwo(it)
		if err != nil {
			return err
		}
		return createAccount(from, to, ix.Lamports, ix.Space, ix.Owner)
	case sty.AssignTag:
		acc, err := it.Next()
		if err != nil {
			return err
		}
		return assign(acc, ix.Owner)
	case sty.TransferTag:
		from, to, err := nextTwo(it)
		if err != nil {
			return err
		}
		return transfer(from, to, ix.Lamports)
	case sty.AllocateTag:
		acc, err := it.Next()
		if err != nil {
			return err
		}
		authority := acc
		if rest := it.Remaining(); len(rest) > 0 {
			authority = rest[0]
		}
		return allocate(acc, authority, ix.Space)
	}
	return types.ErrInvalidInstructionData
}

func nextTwo(it *dapp.AccountIter) (*types.AccountInfo, *types.AccountInfo, error) {
	a, err := it.Next()
	if err != nil {
		return nil, nil, err
	}
	b, err := it.Next()
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func assign(acc *types.AccountInfo, owner address.Address) error {
	if !acc.IsSigner {
		slog.Error("assign: account must sign", "account", acc.Key.String())
		return types.ErrMissingRequiredSignature
	}
	if acc.Owner == owner {
		return nil
	}
	if !acc.IsWritable {
		return types.ErrInvalidArgument
	}
	if acc.Owner != sty.ProgramID {
		slog.Error("assign: account not owned by system", "account", acc.Key.String(), "owner", acc.Owner.String())
		return types.ErrInvalidAccountOwner
	}
	if acc.Executable {
		return types.ErrExecutableModified
	}
	if !common.IsZeroBytes(acc.Data) {
		return types.ErrAccountAlreadyInUse
	}
	acc.Owner = owner
	return nil
}

func allocate(acc, authority *types.AccountInfo, space uint64) error {
	if !acc.IsWritable {
		return types.ErrInvalidArgument
	}
	self := acc.Owner == sty.ProgramID && acc.IsSigner
	derived := acc.Owner == authority.Key && authority.IsSigner
	if !self && !derived {
		slog.Error("allocate: missing signature", "account", acc.Key.String(), "authority", authority.Key.String())
		return types.ErrMissingRequiredSignature
	}
	if len(acc.Data) != 0 {
		slog.Error("allocate: already in use", "account", acc.Key.String(), "size", len(acc.Data))
		return types.ErrAccountAlreadyInUse
	}
	if space > types.MaxPermittedDataLength {
		slog.Error("allocate: requested too much space", "space", space, "max", types.MaxPermittedDataLength)
		return types.ErrInvalidArgument
	}
	acc.Data = make([]byte, space)
	return nil
}

func transfer(from, to *types.AccountInfo, lamports uint64) error {
	if !from.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	if !from.IsWritable || !to.IsWritable {
		return types.ErrInvalidArgument
	}
	if from.Owner != sty.ProgramID || len(from.Data) != 0 {
		slog.Error("transfer: from must be a plain system account", "from", from.Key.String())
		return types.ErrInvalidArgument
	}
	if from.Lamports < lamports {
		slog.Error("transfer: insufficient lamports", "from", from.Key.String(), "balance", from.Lamports, "need", lamports)
		return types.ErrInsufficientFunds
	}
	from.Lamports -= lamports
	if to.Lamports+lamports < to.Lamports {
		from.Lamports += lamports
		return types.ErrArithmeticOverflow
	}
	to.Lamports += lamports
	return nil
}

func createAccount(from, to *types.AccountInfo, lamports, space uint64, owner address.Address) error {
	if !to.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	if to.Lamports != 0 || len(to.Data) != 0 || to.Owner != sty.ProgramID {
		slog.Error("createAccount: already in use", "to", to.Key.String())
		return types.ErrAccountAlreadyInUse
	}
	if err := allocate(to, to, space); err != nil {
		return err
	}
	if err := assign(to, owner); err != nil {
		return err
	}
	return transfer(from, to, lamports)
}
