// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/system/dapp"
	sty "github.com/33cn/wager/system/dapp/sysprog/types"
	"github.com/33cn/wager/types"
	pkgerr "github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

var (
	testProgramID   = address.Address{0x7f, 0x7f}
	bounceProgramID = address.Address{0x7c, 0x7c}
)

// 测试程序的操作
const (
	modeWriteData byte = iota
	modeMoveLamport
	modeMintLamport
	modeStealTransfer
	modeRecurse
	modeNoCallee
	modeWriteAfterAssign
	modeBounce
)

func init() {
	dapp.Register("test.program", testProgramID, func() dapp.Program { return dapp.ProgramFunc(testProcess) }, false)
	dapp.Register("test.bounce", bounceProgramID, func() dapp.Program { return dapp.ProgramFunc(bounceProcess) }, false)
}

// bounceProcess call back into the test program
func bounceProcess(ctx dapp.Context, programID address.Address, accounts []*types.AccountInfo, data []byte) error {
	return ctx.Invoke(&types.Instruction{
		ProgramID: testProgramID,
		Accounts:  []types.AccountMeta{types.NewReadonlyAccountMeta(testProgramID, false)},
		Data:      []byte{modeMintLamport},
	})
}

func testProcess(ctx dapp.Context, programID address.Address, accounts []*types.AccountInfo, data []byte) error {
	ctx.Log("test", "mode", data[0])
	switch data[0] {
	case modeWriteData:
		accounts[0].Data[0] = data[1]
	case modeMoveLamport:
		accounts[0].Lamports--
		accounts[1].Lamports++
	case modeMintLamport:
		accounts[0].Lamports++
	case modeStealTransfer:
		return ctx.Invoke(sty.Transfer(accounts[0].Key, accounts[1].Key, 1))
	case modeRecurse:
		return ctx.Invoke(&types.Instruction{
			ProgramID: programID,
			Accounts:  []types.AccountMeta{types.NewReadonlyAccountMeta(programID, false)},
			Data:      []byte{modeRecurse},
		})
	case modeNoCallee:
		return ctx.Invoke(sty.Assign(accounts[0].Key, programID))
	case modeWriteAfterAssign:
		if err := ctx.Invoke(sty.Assign(accounts[0].Key, programID)); err != nil {
			return err
		}
		accounts[0].Data = []byte{1}
	case modeBounce:
		return ctx.Invoke(&types.Instruction{
			ProgramID: bounceProgramID,
			Accounts: []types.AccountMeta{
				types.NewReadonlyAccountMeta(testProgramID, false),
				types.NewReadonlyAccountMeta(bounceProgramID, false),
			},
		})
	}
	return nil
}

func newTestExecutor(t *testing.T) *Executor {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	exec, err := New(types.DefaultConfig(), db)
	require.Nil(t, err)
	return exec
}

func newKey(t *testing.T) (address.Address, ed25519.PrivateKey) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.Nil(t, err)
	addr, err := address.PubKeyToAddress(pub)
	require.Nil(t, err)
	return addr, priv
}

func testIx(mode byte, extra []byte, metas ...types.AccountMeta) *types.Instruction {
	metas = append(metas, types.NewReadonlyAccountMeta(testProgramID, false))
	return &types.Instruction{ProgramID: testProgramID, Accounts: metas, Data: append([]byte{mode}, extra...)}
}

func cause(r *types.Receipt) error {
	return pkgerr.Cause(r.Err)
}

func TestTransfer(t *testing.T) {
	exec := newTestExecutor(t)
	from, priv := newKey(t)
	to := address.Address{0x22}
	_, err := exec.AccountDB().GenesisInit(from, 1000)
	require.Nil(t, err)

	okBefore := gometrics.GetOrRegisterCounter("executor/tx/ok", nil).Count()
	tx := types.NewTransaction(sty.Transfer(from, to, 300))
	tx.Sign(priv)
	r := exec.ExecTx(context.Background(), tx)
	require.Nil(t, r.Err)
	assert.True(t, r.IsOK())
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, tx.Hash(), r.TxHash)
	assert.Equal(t, uint64(700), r.FindAccount(from).Lamports)
	assert.Equal(t, uint64(300), r.FindAccount(to).Lamports)
	assert.Equal(t, okBefore+1, gometrics.GetOrRegisterCounter("executor/tx/ok", nil).Count())
	assert.Contains(t, r.Logs[0], "invoke [1]")

	acc, err := exec.LoadAccount(to)
	require.Nil(t, err)
	assert.Equal(t, uint64(300), acc.Lamports)

	// 第二条指令失败, 第一条也不生效
	tx = types.NewTransaction(sty.Transfer(from, to, 100), sty.Transfer(from, to, 1000))
	tx.Sign(priv)
	r = exec.ExecTx(context.Background(), tx)
	assert.False(t, r.IsOK())
	assert.Equal(t, types.ErrInsufficientFunds, cause(r))
	assert.Empty(t, r.Accounts)
	acc, err = exec.LoadAccount(from)
	require.Nil(t, err)
	assert.Equal(t, uint64(700), acc.Lamports)
}

func TestTxErrors(t *testing.T) {
	exec := newTestExecutor(t)
	from, priv := newKey(t)
	to := address.Address{0x22}

	tx := types.NewTransaction(sty.Transfer(from, to, 1))
	r := exec.ExecTx(context.Background(), tx)
	assert.Equal(t, types.ErrMissingRequiredSignature, cause(r))
	assert.Nil(t, r.CustomCode)

	r = exec.ExecTx(context.Background(), types.NewTransaction())
	assert.Equal(t, types.ErrTxEmpty, cause(r))

	tx = types.NewTransaction(&types.Instruction{ProgramID: address.Address{0x99}})
	r = exec.ExecTx(context.Background(), tx)
	assert.Equal(t, types.ErrUnsupportedProgramID, cause(r))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tx = types.NewTransaction(sty.Transfer(from, to, 1))
	tx.Sign(priv)
	r = exec.ExecTx(ctx, tx)
	assert.Equal(t, context.Canceled, cause(r))
}

func TestVerifyData(t *testing.T) {
	exec := newTestExecutor(t)
	owned, foreign := address.Address{0x31}, address.Address{0x32}
	_, err := exec.AccountDB().GenesisInitData(owned, 10, testProgramID, []byte{0})
	require.Nil(t, err)
	_, err = exec.AccountDB().GenesisInitData(foreign, 10, address.Address{0x55}, []byte{0})
	require.Nil(t, err)

	r := exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeWriteData, []byte{7}, types.NewAccountMeta(owned, false))))
	require.Nil(t, r.Err)
	assert.Equal(t, []byte{7}, r.FindAccount(owned).Data)

	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeWriteData, []byte{7}, types.NewAccountMeta(foreign, false))))
	assert.Equal(t, types.ErrExternalDataModified, cause(r))

	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeWriteData, []byte{8}, types.NewReadonlyAccountMeta(owned, false))))
	assert.Equal(t, types.ErrReadonlyDataModified, cause(r))
	acc, err := exec.LoadAccount(owned)
	require.Nil(t, err)
	assert.Equal(t, []byte{7}, acc.Data)
}

func TestVerifyLamports(t *testing.T) {
	exec := newTestExecutor(t)
	owned, foreign, other := address.Address{0x31}, address.Address{0x32}, address.Address{0x33}
	_, err := exec.AccountDB().GenesisInitData(owned, 10, testProgramID, nil)
	require.Nil(t, err)
	_, err = exec.AccountDB().GenesisInit(foreign, 10)
	require.Nil(t, err)

	r := exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeMoveLamport, nil,
		types.NewAccountMeta(owned, false), types.NewAccountMeta(other, false))))
	require.Nil(t, r.Err)
	assert.Equal(t, uint64(9), r.FindAccount(owned).Lamports)
	assert.Equal(t, uint64(1), r.FindAccount(other).Lamports)

	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeMoveLamport, nil,
		types.NewAccountMeta(foreign, false), types.NewAccountMeta(other, false))))
	assert.Equal(t, types.ErrExternalLamportSpend, cause(r))

	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeMoveLamport, nil,
		types.NewAccountMeta(owned, false), types.NewReadonlyAccountMeta(other, false))))
	assert.Equal(t, types.ErrReadonlyLamportChange, cause(r))

	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeMintLamport, nil, types.NewAccountMeta(owned, false))))
	assert.Equal(t, types.ErrUnbalancedInstruction, cause(r))
}

func TestInvoke(t *testing.T) {
	exec := newTestExecutor(t)
	a, b := address.Address{0x41}, address.Address{0x42}
	_, err := exec.AccountDB().GenesisInit(a, 10)
	require.Nil(t, err)

	// 调用方没有签名权限
	r := exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeStealTransfer, nil,
		types.NewAccountMeta(a, false), types.NewAccountMeta(b, false), types.NewReadonlyAccountMeta(sty.ProgramID, false))))
	assert.Equal(t, types.ErrPrivilegeEscalation, cause(r))

	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeNoCallee, nil, types.NewAccountMeta(a, false))))
	assert.Equal(t, types.ErrMissingAccount, cause(r))

	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeRecurse, nil)))
	assert.Equal(t, types.ErrCallDepth, cause(r))
}

func TestInvokeRecursion(t *testing.T) {
	exec := newTestExecutor(t)

	// 直接递归到深度上限
	r := exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeRecurse, nil)))
	assert.Equal(t, types.ErrCallDepth, cause(r))
	for depth := 1; depth <= types.DefaultMaxInvokeDepth; depth++ {
		assert.Contains(t, r.Logs, fmt.Sprintf("Program %s invoke [%d]", testProgramID, depth))
	}
	assert.NotContains(t, r.Logs, fmt.Sprintf("Program %s invoke [%d]", testProgramID, types.DefaultMaxInvokeDepth+1))

	// A -> B -> A
	r = exec.ExecTx(context.Background(), types.NewTransaction(testIx(modeBounce, nil,
		types.NewReadonlyAccountMeta(bounceProgramID, false))))
	assert.Equal(t, types.ErrReentrancyNotAllowed, cause(r))
	assert.Contains(t, r.Logs, fmt.Sprintf("Program %s invoke [2]", bounceProgramID))
}

func TestInvokeAssign(t *testing.T) {
	exec := newTestExecutor(t)
	key, priv := newKey(t)
	_, err := exec.AccountDB().GenesisInit(key, 10)
	require.Nil(t, err)

	tx := types.NewTransaction(testIx(modeWriteAfterAssign, nil,
		types.NewAccountMeta(key, true), types.NewReadonlyAccountMeta(sty.ProgramID, false)))
	tx.Sign(priv)
	r := exec.ExecTx(context.Background(), tx)
	require.Nil(t, r.Err)
	acc := r.FindAccount(key)
	assert.Equal(t, testProgramID, acc.Owner)
	assert.Equal(t, []byte{1}, acc.Data)
	assert.Equal(t, uint64(10), acc.Lamports)
}

func TestSetEnv(t *testing.T) {
	db, err := dbm.NewDB("env", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	exec, err := New(nil, db)
	require.Nil(t, err)
	exec.SetEnv(42, 1700000000)
	assert.Equal(t, types.Clock{Slot: 42, UnixTimestamp: 1700000000}, exec.Clock())
	assert.Equal(t, types.DefaultRent(), exec.Rent())

	exec, err = New(types.DefaultConfig(), db)
	require.Nil(t, err)
	assert.Equal(t, uint64(42), exec.Clock().Slot)

	cfg := types.DefaultConfig()
	cfg.Exec.WagerProgram = "not-base58-0OIl"
	_, err = New(cfg, db)
	assert.NotNil(t, err)

	cfg.Exec.WagerProgram = testProgramID.String()
	_, err = New(cfg, db)
	assert.NotNil(t, err)
}
