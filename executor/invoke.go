// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"context"
	"fmt"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/metrics"
	"github.com/33cn/wager/system/dapp"
	"github.com/33cn/wager/types"
)

//执行器 -> 交易环境
type txEnv struct {
	ctx      context.Context
	exec     *Executor
	accounts map[address.Address]*types.Account
	keys     []address.Address
	writable map[address.Address]bool
	logs     []string
	stack    []address.Address
}

func newTxEnv(ctx context.Context, exec *Executor) *txEnv {
	if ctx == nil {
		ctx = context.Background()
	}
	return &txEnv{
		ctx:      ctx,
		exec:     exec,
		accounts: make(map[address.Address]*types.Account),
		writable: make(map[address.Address]bool),
	}
}

// load every account the transaction references, each key is loaded once and shared
func (env *txEnv) load(tx *types.Transaction, signers map[address.Address]bool) error {
	env.keys = tx.AccountKeys()
	if len(env.keys) > types.MaxInstructionAccounts {
		return types.ErrInvalidArgument
	}
	for _, key := range env.keys {
		acc, err := env.exec.accDB.LoadAccount(key)
		if err != nil {
			return err
		}
		env.accounts[key] = acc
	}
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			if meta.IsSigner && !signers[meta.Pubkey] {
				return types.ErrMissingRequiredSignature
			}
			if meta.IsWritable {
				env.writable[meta.Pubkey] = true
			}
		}
	}
	return nil
}

func (env *txEnv) writableAccounts() []*types.Account {
	var accs []*types.Account
	for _, key := range env.keys {
		if env.writable[key] {
			accs = append(accs, env.accounts[key].Clone())
		}
	}
	return accs
}

func (env *txEnv) log(format string, args ...interface{}) {
	env.logs = append(env.logs, fmt.Sprintf(format, args...))
}

// processInstruction run ix, caller is nil for a top level instruction
func (env *txEnv) processInstruction(ix *types.Instruction, caller *invokeFrame, signers []*address.ProgramSigner) error {
	if err := env.ctx.Err(); err != nil {
		return err
	}
	depth := len(env.stack) + 1
	if depth > env.exec.maxDepth {
		return types.ErrCallDepth
	}
	// 只允许直接递归调用自身
	if n := len(env.stack); n > 0 && env.stack[n-1] != ix.ProgramID {
		for _, p := range env.stack {
			if p == ix.ProgramID {
				return types.ErrReentrancyNotAllowed
			}
		}
	}
	if len(ix.Accounts) > types.MaxInstructionAccounts {
		return types.ErrInvalidArgument
	}
	infos, err := env.accountInfos(ix, caller, signers)
	if err != nil {
		return err
	}
	prog, builtin, err := dapp.LoadProgram(ix.ProgramID)
	if err != nil {
		return err
	}
	frame := &invokeFrame{env: env, program: ix.ProgramID, accounts: infos, builtin: builtin}
	if !builtin {
		frame.snapshot()
	}

	name := dapp.ProgramName(ix.ProgramID)
	env.log("Program %s invoke [%d]", ix.ProgramID, depth)
	env.stack = append(env.stack, ix.ProgramID)
	err = prog.Process(frame, ix.ProgramID, infos, ix.Data)
	env.stack = env.stack[:len(env.stack)-1]
	if err == nil && !builtin {
		err = frame.verify()
	}
	metrics.ObserveInstruction(name, err == nil)
	if err != nil {
		env.log("Program %s failed: %v", ix.ProgramID, err)
		return err
	}
	env.log("Program %s success", ix.ProgramID)
	return nil
}

// accountInfos privileges of ix, a cross program call can not gain privileges the caller lacks
// except a signature granted through a ProgramSigner of the caller
func (env *txEnv) accountInfos(ix *types.Instruction, caller *invokeFrame, signers []*address.ProgramSigner) ([]*types.AccountInfo, error) {
	if caller != nil {
		if caller.find(ix.ProgramID) == nil {
			return nil, types.ErrMissingAccount
		}
		for _, s := range signers {
			if !s.Valid() {
				return nil, types.ErrInvalidSeeds
			}
			if s.Program() != caller.program {
				return nil, types.ErrPrivilegeEscalation
			}
		}
	}
	infos := make([]*types.AccountInfo, 0, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		acc, ok := env.accounts[meta.Pubkey]
		if !ok {
			return nil, types.ErrMissingAccount
		}
		info := &types.AccountInfo{Account: acc, IsSigner: meta.IsSigner, IsWritable: meta.IsWritable}
		if caller != nil {
			ci := caller.find(meta.Pubkey)
			if ci == nil {
				return nil, types.ErrMissingAccount
			}
			if meta.IsWritable && !ci.IsWritable {
				elog.Error("accountInfos writable escalation", "account", meta.Pubkey.String())
				return nil, types.ErrPrivilegeEscalation
			}
			if meta.IsSigner && !ci.IsSigner && !signedBy(signers, meta.Pubkey) {
				elog.Error("accountInfos signer escalation", "account", meta.Pubkey.String())
				return nil, types.ErrPrivilegeEscalation
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func signedBy(signers []*address.ProgramSigner, key address.Address) bool {
	for _, s := range signers {
		if s.Key() == key {
			return true
		}
	}
	return false
}

// invokeFrame one running program, implements dapp.Context
type invokeFrame struct {
	env      *txEnv
	program  address.Address
	accounts []*types.AccountInfo
	builtin  bool
	pre      map[address.Address]*types.Account
}

func (f *invokeFrame) find(key address.Address) *types.AccountInfo {
	var found *types.AccountInfo
	for _, info := range f.accounts {
		if info.Key != key {
			continue
		}
		if found == nil {
			found = &types.AccountInfo{Account: info.Account}
		}
		found.IsSigner = found.IsSigner || info.IsSigner
		found.IsWritable = found.IsWritable || info.IsWritable
	}
	return found
}

func (f *invokeFrame) Context() context.Context {
	return f.env.ctx
}

func (f *invokeFrame) Rent() types.Rent {
	return f.env.exec.Rent()
}

func (f *invokeFrame) Clock() types.Clock {
	return f.env.exec.clock
}

func (f *invokeFrame) Log(msg string, ctx ...interface{}) {
	line := "Program " + f.program.String() + " log: " + msg
	for i := 0; i+1 < len(ctx); i += 2 {
		line += fmt.Sprintf(" %v=%v", ctx[i], ctx[i+1])
	}
	f.env.logs = append(f.env.logs, line)
	elog.Debug(msg, append([]interface{}{"program", f.program.String()}, ctx...)...)
}

func (f *invokeFrame) Invoke(ix *types.Instruction) error {
	return f.InvokeSigned(ix)
}

func (f *invokeFrame) InvokeSigned(ix *types.Instruction, signers ...*address.ProgramSigner) error {
	if !f.builtin {
		// 调用之前先检查本程序已做的修改
		if err := f.verify(); err != nil {
			return err
		}
	}
	if err := f.env.processInstruction(ix, f, signers); err != nil {
		return err
	}
	if !f.builtin {
		f.snapshot()
	}
	return nil
}
