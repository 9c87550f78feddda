// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 执行交易, the host side of the ledger: it loads accounts,
// runs every instruction through its program and commits or discards the result.
package executor

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/33cn/wager/account"
	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	log "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/metrics"
	"github.com/33cn/wager/system/dapp"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"

	// register programs
	_ "github.com/33cn/wager/system"
)

var elog = log.New("module", "execs")

var (
	txOkCounter   = gometrics.NewRegisteredCounter("executor/tx/ok", nil)
	txFailCounter = gometrics.NewRegisteredCounter("executor/tx/fail", nil)
	txTimer       = gometrics.NewRegisteredTimer("executor/tx/time", nil)
)

// Executor a single ledger, transactions are executed one by one
type Executor struct {
	mu       sync.Mutex
	cfg      *types.Config
	db       dbm.DB
	state    *StateDB
	accDB    *account.DB
	clock    types.Clock
	maxDepth int
}

// New create executor over db, the wager program is deployed at cfg.Exec.WagerProgram when set
func New(cfg *types.Config, db dbm.DB) (*Executor, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	if cfg.Exec.WagerProgram != "" {
		id, err := address.NewAddrFromString(cfg.Exec.WagerProgram)
		if err != nil {
			return nil, errors.Wrap(err, "exec.wagerProgram")
		}
		if err := dapp.Deploy(wty.WagerX, id); err != nil {
			return nil, errors.Wrapf(err, "deploy %s at %s", wty.WagerX, id)
		}
	}
	state := NewStateDB(db)
	exec := &Executor{
		cfg:      cfg,
		db:       db,
		state:    state,
		accDB:    account.NewAccountDB(state),
		maxDepth: cfg.Exec.MaxInvokeDepth,
	}
	if v, err := db.Get([]byte(types.SlotKey)); err == nil && len(v) == 16 {
		exec.clock.Slot = binary.LittleEndian.Uint64(v)
		exec.clock.UnixTimestamp = int64(binary.LittleEndian.Uint64(v[8:]))
	}
	elog.Info("New executor", "title", cfg.Title, "slot", exec.clock.Slot, "maxInvokeDepth", exec.maxDepth)
	return exec, nil
}

// SetEnv set the ledger time the next transactions run at
func (exec *Executor) SetEnv(slot uint64, unixTime int64) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	exec.clock = types.Clock{Slot: slot, UnixTimestamp: unixTime}
	v := make([]byte, 16)
	binary.LittleEndian.PutUint64(v, slot)
	binary.LittleEndian.PutUint64(v[8:], uint64(unixTime))
	if err := exec.db.SetSync([]byte(types.SlotKey), v); err != nil {
		elog.Error("SetEnv", "slot", slot, "err", err)
	}
}

// Clock current ledger time
func (exec *Executor) Clock() types.Clock {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	return exec.clock
}

// Rent rent policy of the ledger
func (exec *Executor) Rent() types.Rent {
	return *exec.cfg.Rent
}

// AccountDB committed accounts, used for genesis and queries
func (exec *Executor) AccountDB() *account.DB {
	return exec.accDB
}

// LoadAccount committed state of key
func (exec *Executor) LoadAccount(key address.Address) (*types.Account, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	return exec.accDB.LoadAccount(key)
}

// ExecTx execute tx atomically, every failure is reported in the receipt
func (exec *Executor) ExecTx(ctx context.Context, tx *types.Transaction) *types.Receipt {
	defer txTimer.UpdateSince(time.Now())
	exec.mu.Lock()
	defer exec.mu.Unlock()

	id := uuid.New().String()
	hash := tx.Hash()
	env := newTxEnv(ctx, exec)
	err := exec.execTx(env, tx)
	if err != nil {
		exec.state.Rollback()
		txFailCounter.Inc(1)
		metrics.ObserveTx(false)
		elog.Error("ExecTx", "id", id, "slot", exec.clock.Slot, "err", err)
		return types.NewErrReceipt(id, hash, exec.clock.Slot, env.logs, err)
	}
	txOkCounter.Inc(1)
	metrics.ObserveTx(true)
	elog.Debug("ExecTx", "id", id, "slot", exec.clock.Slot, "accounts", len(env.keys))
	return &types.Receipt{
		Ty:       types.ExecOk,
		ID:       id,
		TxHash:   hash,
		Slot:     exec.clock.Slot,
		Logs:     env.logs,
		Accounts: env.writableAccounts(),
	}
}

func (exec *Executor) execTx(env *txEnv, tx *types.Transaction) error {
	signers, err := tx.Verify()
	if err != nil {
		return err
	}
	if err := env.ctx.Err(); err != nil {
		return err
	}
	exec.state.Begin()
	if err := env.load(tx, signers); err != nil {
		return err
	}
	for i, ix := range tx.Instructions {
		if err := env.processInstruction(ix, nil, nil); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
	}
	for _, acc := range env.writableAccounts() {
		if err := exec.accDB.SaveAccount(acc); err != nil {
			return err
		}
	}
	return exec.state.Commit()
}
