// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

// WagerX 执行器名称
const WagerX = "wager"

// DefaultProgramID address the program is deployed at unless configured otherwise
var DefaultProgramID = address.Address(common.Sha256Parts([]byte(WagerX), []byte("program")))

// MinBetLamports minimum stake of a wager account, 0.1 sol
var MinBetLamports = types.SolToLamports(0.1)

// instruction tags
const (
	NewBetTag uint8 = 0
)

// NewBetLen encoded length of a NewBet instruction
const NewBetLen = 1 + 1 + 1 + 8

// record sizes
const (
	AggregateRecordLen = 1 + 1 + address.AddressLength + 4
	WagerRecordLen     = 1 + 8 + 8 + address.AddressLength + address.AddressLength
)
