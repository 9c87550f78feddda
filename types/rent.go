// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/shopspring/decimal"

// AccountStorageOverhead bytes charged for every account on top of its data
const AccountStorageOverhead = 128

// default rent policy
const (
	DefaultLamportsPerByteYear uint64  = 3480
	DefaultExemptionThreshold  float64 = 2.0
)

// Rent minimum-balance-for-permanence policy
type Rent struct {
	LamportsPerByteYear uint64  `toml:"lamportsPerByteYear"`
	ExemptionThreshold  float64 `toml:"exemptionThreshold"`
}

// DefaultRent default policy
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// MinimumBalance balance an account of dataLen bytes must hold to never be reclaimed
func (r Rent) MinimumBalance(dataLen int) uint64 {
	bytes := decimal.NewFromInt(int64(AccountStorageOverhead + dataLen))
	perYear := bytes.Mul(decimal.NewFromInt(int64(r.LamportsPerByteYear)))
	return uint64(perYear.Mul(decimal.NewFromFloat(r.ExemptionThreshold)).IntPart())
}

// IsExempt 余额是否满足永久保存
func (r Rent) IsExempt(lamports uint64, dataLen int) bool {
	return lamports >= r.MinimumBalance(dataLen)
}
