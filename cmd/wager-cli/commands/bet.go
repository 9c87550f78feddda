// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/executor"
	"github.com/33cn/wager/metrics"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

type keypair struct {
	addr address.Address
	priv ed25519.PrivateKey
}

func newKeypair() (*keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	addr, err := address.PubKeyToAddress(pub)
	if err != nil {
		return nil, err
	}
	return &keypair{addr: addr, priv: priv}, nil
}

// BetCmd place a bet on a local ledger
func BetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bet",
		Short: "Place a bet on a local ledger",
		Run:   placeBet,
	}
	addBetFlags(cmd)
	return cmd
}

func addBetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("conf", "c", "", "config file, defaults are used when empty")
	cmd.Flags().StringP("bettype", "t", "solusd", "bet type")
	cmd.Flags().Uint64P("guess", "g", 0, "wagered prediction")
	cmd.MarkFlagRequired("guess")
	cmd.Flags().Float64P("stake", "s", 0.1, "stake in sol, moved to the wager account")
}

// ReceiptResult readable receipt
type ReceiptResult struct {
	ID     string       `json:"id"`
	Ty     string       `json:"ty"`
	TxHash string       `json:"txHash"`
	Slot   uint64       `json:"slot"`
	Error  string       `json:"error,omitempty"`
	Code   *uint32      `json:"code,omitempty"`
	Logs   []string     `json:"logs"`
	Wager  *WagerResult `json:"wager,omitempty"`
}

func placeBet(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if err := runBet(cmd, out); err != nil {
		fmt.Fprintln(out, err)
	}
}

func runBet(cmd *cobra.Command, out io.Writer) error {
	conf, _ := cmd.Flags().GetString("conf")
	guess, _ := cmd.Flags().GetUint64("guess")
	stake, _ := cmd.Flags().GetFloat64("stake")
	bt, err := getBetType(cmd)
	if err != nil {
		return err
	}
	cfg := types.DefaultConfig()
	if conf != "" {
		if cfg, err = types.InitCfg(conf); err != nil {
			return err
		}
		log.SetFileLog(cfg.Log)
	}
	metrics.StartMetrics(cfg.Metrics, prometheus.DefaultRegisterer)

	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer db.Close()
	exec, err := executor.New(cfg, db)
	if err != nil {
		return err
	}
	program := wty.DefaultProgramID
	if cfg.Exec.WagerProgram != "" {
		program = address.MustParse(cfg.Exec.WagerProgram)
	}
	authority, bump, err := wty.FindAuthority(program, bt)
	if err != nil {
		return err
	}
	if err := seedAuthority(exec, program, authority, bt); err != nil {
		return err
	}

	bettor, err := newKeypair()
	if err != nil {
		return err
	}
	wager, err := newKeypair()
	if err != nil {
		return err
	}
	lamports := types.SolToLamports(stake)
	if _, err := exec.AccountDB().GenesisInit(bettor.addr, types.LamportsPerSol); err != nil {
		return err
	}
	if _, err := exec.AccountDB().GenesisInit(wager.addr, lamports); err != nil {
		return err
	}
	exec.SetEnv(exec.Clock().Slot+1, time.Now().Unix())

	tx := types.NewTransaction(wty.NewBetInstruction(program, bettor.addr, authority, wager.addr,
		&wty.NewBet{BetType: bt, Bump: bump, Guess: guess}))
	tx.Sign(bettor.priv)
	tx.Sign(wager.priv)
	r := exec.ExecTx(context.Background(), tx)

	res := &ReceiptResult{
		ID:     r.ID,
		Ty:     r.TyName(),
		TxHash: fmt.Sprintf("%x", r.TxHash),
		Slot:   r.Slot,
		Code:   r.CustomCode,
		Logs:   r.Logs,
	}
	if r.Err != nil {
		res.Error = r.Err.Error()
	}
	if acc := r.FindAccount(wager.addr); acc != nil && len(acc.Data) == wty.WagerRecordLen {
		rec, err := wty.UnpackWager(acc.Data)
		if err != nil {
			return err
		}
		res.Wager = wagerResult(rec)
	}
	printJSON(out, res)
	for _, line := range metrics.Dump(nil) {
		fmt.Fprintln(out, line)
	}
	if cfg.Metrics.EnableMetrics {
		lines, err := metrics.Gather(prometheus.DefaultGatherer)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// seedAuthority 创建下注类型的汇总账户
func seedAuthority(exec *executor.Executor, program, authority address.Address, bt wty.BetType) error {
	acc, err := exec.LoadAccount(authority)
	if err != nil {
		return err
	}
	if acc.Owner == program {
		return nil
	}
	agg := &wty.AggregateRecord{BetType: bt, IsOpen: true}
	_, err = exec.AccountDB().GenesisInitData(authority, exec.Rent().MinimumBalance(wty.AggregateRecordLen), program, agg.Pack())
	return err
}
