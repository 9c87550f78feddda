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

// RecordCmd stored record tools
func RecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Stored record tools",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(DecodeRecordCmd())
	return cmd
}

// DecodeRecordCmd checked decode of a record
func DecodeRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode a wager or aggregate record",
		Args:  cobra.ExactArgs(1),
		Run:   decodeRecord,
	}
	cmd.Flags().StringP("kind", "k", "wager", "record kind, wager or aggregate")
	return cmd
}

// WagerResult readable wager record
type WagerResult struct {
	BetType          string `json:"betType"`
	Guess            uint64 `json:"guess"`
	TimeMarker       uint64 `json:"timeMarker"`
	NextWagerAddress string `json:"nextWagerAddress"`
	BettorAddress    string `json:"bettorAddress"`
}

func wagerResult(r *wty.WagerRecord) *WagerResult {
	return &WagerResult{
		BetType:          r.BetType.String(),
		Guess:            r.Guess,
		TimeMarker:       r.TimeMarker,
		NextWagerAddress: r.NextWagerAddress.String(),
		BettorAddress:    r.BettorAddress.String(),
	}
}

// AggregateResult readable aggregate record
type AggregateResult struct {
	BetType     string `json:"betType"`
	IsOpen      bool   `json:"isOpen"`
	HeadAddress string `json:"headAddress"`
	BettorCount uint32 `json:"bettorCount"`
}

func decodeRecord(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	kind, _ := cmd.Flags().GetString("kind")
	data, err := common.FromHex(args[0])
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	switch kind {
	case "wager":
		r, err := wty.UnpackWager(data)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		printJSON(out, wagerResult(r))
	case "aggregate":
		r, err := wty.UnpackAggregate(data)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		printJSON(out, &AggregateResult{
			BetType:     r.BetType.String(),
			IsOpen:      r.IsOpen,
			HeadAddress: r.HeadAddress.String(),
			BettorCount: r.BettorCount,
		})
	default:
		fmt.Fprintln(out, "unknown record kind", kind)
	}
}
