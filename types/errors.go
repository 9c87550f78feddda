// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"

	"github.com/33cn/wager/common/address"
	pkgerr "github.com/pkg/errors"
)

// ledger built-in errors
var (
	ErrMissingRequiredSignature = errors.New("ErrMissingRequiredSignature")
	ErrInvalidAccountData       = errors.New("ErrInvalidAccountData")
	ErrInvalidInstructionData   = errors.New("ErrInvalidInstructionData")
	ErrNotEnoughAccountKeys     = errors.New("ErrNotEnoughAccountKeys")
	ErrInvalidArgument          = errors.New("ErrInvalidArgument")
	ErrInsufficientFunds        = errors.New("ErrInsufficientFunds")
	ErrAccountAlreadyInUse      = errors.New("ErrAccountAlreadyInUse")
	ErrInvalidAccountOwner      = errors.New("ErrInvalidAccountOwner")
	ErrUnsupportedProgramID     = errors.New("ErrUnsupportedProgramID")
	ErrMissingAccount           = errors.New("ErrMissingAccount")
	ErrPrivilegeEscalation      = errors.New("ErrPrivilegeEscalation")
	ErrCallDepth                = errors.New("ErrCallDepth")
	ErrReentrancyNotAllowed     = errors.New("ErrReentrancyNotAllowed")
	ErrExternalDataModified     = errors.New("ErrExternalDataModified")
	ErrReadonlyDataModified     = errors.New("ErrReadonlyDataModified")
	ErrExternalLamportSpend     = errors.New("ErrExternalLamportSpend")
	ErrReadonlyLamportChange    = errors.New("ErrReadonlyLamportChange")
	ErrModifiedProgramID        = errors.New("ErrModifiedProgramID")
	ErrExecutableModified       = errors.New("ErrExecutableModified")
	ErrUnbalancedInstruction    = errors.New("ErrUnbalancedInstruction")
	ErrArithmeticOverflow       = errors.New("ErrArithmeticOverflow")
	ErrTxSignature              = errors.New("ErrTxSignature")
	ErrTxEmpty                  = errors.New("ErrTxEmpty")
	ErrTxSize                   = errors.New("ErrTxSize")
	ErrNotFound                 = errors.New("ErrNotFound")
	ErrInvalidSeeds             = address.ErrInvalidSeeds
	ErrMaxSeedLengthExceeded    = address.ErrMaxSeedLengthExceeded
)

// CustomError program specific failure, the host reports Code verbatim
type CustomError struct {
	Code uint32
	Msg  string
}

// NewCustomError new
func NewCustomError(code uint32, msg string) *CustomError {
	return &CustomError{Code: code, Msg: msg}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x (%s)", e.Code, e.Msg)
}

// ErrorCode unwrap err and return the custom code it carries
func ErrorCode(err error) (uint32, bool) {
	if err == nil {
		return 0, false
	}
	var ce *CustomError
	if errors.As(pkgerr.Cause(err), &ce) {
		return ce.Code, true
	}
	return 0, false
}
