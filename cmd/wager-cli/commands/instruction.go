// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/wager/common"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/spf13/cobra"
)

// InstructionCmd instruction encoding
func InstructionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instruction",
		Short: "Encode wager instructions",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(NewBetCmd())
	return cmd
}

// NewBetCmd encode a NewBet instruction
func NewBetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newbet",
		Short: "Encode a NewBet instruction",
		Run:   encodeNewBet,
	}
	addNewBetFlags(cmd)
	return cmd
}

func addNewBetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("bettype", "t", "solusd", "bet type")
	cmd.Flags().Uint8P("bump", "b", 0, "bump of the derived authority")
	cmd.Flags().Uint64P("guess", "g", 0, "wagered prediction")
	cmd.MarkFlagRequired("guess")
}

func encodeNewBet(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	bt, err := getBetType(cmd)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	bump, _ := cmd.Flags().GetUint8("bump")
	guess, _ := cmd.Flags().GetUint64("guess")
	nb := &wty.NewBet{BetType: bt, Bump: bump, Guess: guess}
	fmt.Fprintln(out, common.ToHex(nb.Encode()))
}
