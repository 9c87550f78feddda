// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address ledger addresses and program derived authorities
package address

import (
	"errors"
	"fmt"

	"github.com/decred/base58"
)

// AddressLength address length in bytes
const AddressLength = 32

var (
	// ErrAddressLength address is not 32 bytes
	ErrAddressLength = errors.New("ErrAddressLength")
	// ErrAddressDecode address is not valid base58
	ErrAddressDecode = errors.New("ErrAddressDecode")
)

// Address 32 字节账户地址, ed25519 公钥或者程序派生地址
type Address [AddressLength]byte

// Zero the all-zero address
var Zero Address

// NewAddrFromBytes copy b into a new address
func NewAddrFromBytes(b []byte) (a Address, err error) {
	if len(b) != AddressLength {
		return a, ErrAddressLength
	}
	copy(a[:], b)
	return a, nil
}

//NewAddrFromString new 地址
func NewAddrFromString(s string) (a Address, err error) {
	dec := base58.Decode(s)
	if len(dec) == 0 && s != "" {
		return a, ErrAddressDecode
	}
	return NewAddrFromBytes(dec)
}

// MustParse parse a base58 address, panic on error
func MustParse(s string) Address {
	a, err := NewAddrFromString(s)
	if err != nil {
		panic(fmt.Sprintf("address %q: %v", s, err))
	}
	return a
}

// PubKeyToAddress ed25519 公钥即地址
func PubKeyToAddress(pub []byte) (Address, error) {
	return NewAddrFromBytes(pub)
}

// Bytes returns a copy of the raw address
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// IsZero reports whether a is the all-zero address
func (a Address) IsZero() bool {
	return a == Zero
}

func (a Address) String() string {
	return base58.Encode(a[:])
}
