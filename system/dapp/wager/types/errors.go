// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/33cn/wager/types"

// wager program errors, the code is the position in this list
var (
	ErrInvalidInstruction     = types.NewCustomError(0, "Invalid Instruction")
	ErrInvalidBetType         = types.NewCustomError(1, "Invalid Bet Type")
	ErrBetIsClose             = types.NewCustomError(2, "Bet Is Close")
	ErrInvalidPDAAccount      = types.NewCustomError(3, "Invalid PDA Account")
	ErrNotRentExempt          = types.NewCustomError(4, "Account Is Not Rent Exempt")
	ErrBetLamportNotEnough    = types.NewCustomError(5, "Bet Lamports Are Not Enough")
	ErrBetAccountContainsData = types.NewCustomError(6, "The Bet Account Contains Data")
)

var errorsByCode = []*types.CustomError{
	ErrInvalidInstruction,
	ErrInvalidBetType,
	ErrBetIsClose,
	ErrInvalidPDAAccount,
	ErrNotRentExempt,
	ErrBetLamportNotEnough,
	ErrBetAccountContainsData,
}

// ErrorFromCode the wager error reported with code, nil when unknown
func ErrorFromCode(code uint32) *types.CustomError {
	if int(code) >= len(errorsByCode) {
		return nil
	}
	return errorsByCode[code]
}
