// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var lamportsPerSol = decimal.NewFromInt(int64(LamportsPerSol))

// SolToLamports 原生币转换为最小单位, fractions of a lamport are truncated
func SolToLamports(sol float64) uint64 {
	if sol <= 0 {
		return 0
	}
	return uint64(decimal.NewFromFloat(sol).Mul(lamportsPerSol).IntPart())
}

// LamportsToSol decimal text of lamports in native units
func LamportsToSol(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), 0).Div(lamportsPerSol).String()
}
