// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands wager-cli 子命令
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/33cn/wager/common/address"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/spf13/cobra"
)

// Commands every sub command of wager-cli
func Commands() []*cobra.Command {
	return []*cobra.Command{
		PdaCmd(),
		InstructionCmd(),
		RecordCmd(),
		BetCmd(),
		KeygenCmd(),
	}
}

func printJSON(w io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func programFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("program", "p", wty.DefaultProgramID.String(), "wager program id")
}

func getProgram(cmd *cobra.Command) (address.Address, error) {
	s, _ := cmd.Flags().GetString("program")
	return address.NewAddrFromString(s)
}

func getBetType(cmd *cobra.Command) (wty.BetType, error) {
	s, _ := cmd.Flags().GetString("bettype")
	return wty.ParseBetType(s)
}

// PdaCmd find the derived authority of a bet type
func PdaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pda",
		Short: "Find the derived authority of a bet type",
		Run:   findPda,
	}
	programFlag(cmd)
	cmd.Flags().StringP("bettype", "t", "solusd", "bet type")
	return cmd
}

// PdaResult authority and bump
type PdaResult struct {
	Program   string `json:"program"`
	BetType   string `json:"betType"`
	Seed      string `json:"seed"`
	Authority string `json:"authority"`
	Bump      uint8  `json:"bump"`
}

func findPda(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	program, err := getProgram(cmd)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	bt, err := getBetType(cmd)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	key, bump, err := wty.FindAuthority(program, bt)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	printJSON(out, &PdaResult{
		Program:   program.String(),
		BetType:   bt.String(),
		Seed:      string(bt.Seed()),
		Authority: key.String(),
		Bump:      bump,
	})
}

// KeygenCmd generate an ed25519 keypair
func KeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ed25519 keypair",
		Run:   keygen,
	}
	return cmd
}

// KeyResult generated keypair
type KeyResult struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}

func keygen(cmd *cobra.Command, args []string) {
	kp, err := newKeypair()
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), err)
		return
	}
	printJSON(cmd.OutOrStdout(), &KeyResult{Address: kp.addr.String(), PrivateKey: fmt.Sprintf("%x", []byte(kp.priv))})
}
