// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	LamportsPerSol         uint64 = 1e9
	MaxPermittedDataLength        = 10 * 1024 * 1024 //10M
	MaxTxSize                     = 64 * 1024 //64K
	MaxInstructionAccounts        = 255
	DefaultMaxInvokeDepth         = 4
)

// receipt type
const (
	ExecErr = 0
	ExecOk  = 2
)

// 账户持久化的键前缀
const (
	AccountKeyPrefix = "mavl-ledger-acc-"
	SlotKey          = "mavl-ledger-slot"
)
