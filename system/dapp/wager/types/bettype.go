// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "strings"

// BetType wager category
type BetType uint8

// bet types, every one needs a seed in betTypeSeeds
const (
	SolUsd BetType = iota

	betTypeCount
)

// betTypeSeeds seed of the derived authority of each bet type
var betTypeSeeds = [...]string{
	SolUsd: "solusd",
}

var betTypeNames = [...]string{
	SolUsd: "SolUsd",
}

// 编译期检查: 每个类型有且只有一个种子
var (
	_ [int(betTypeCount) - len(betTypeSeeds)]struct{}
	_ [len(betTypeSeeds) - int(betTypeCount)]struct{}
	_ [int(betTypeCount) - len(betTypeNames)]struct{}
	_ [len(betTypeNames) - int(betTypeCount)]struct{}
)

// BetTypeFromByte checked conversion
func BetTypeFromByte(b byte) (BetType, error) {
	if BetType(b) >= betTypeCount {
		return 0, ErrInvalidBetType
	}
	return BetType(b), nil
}

// ParseBetType bet type by name, case insensitive
func ParseBetType(name string) (BetType, error) {
	for i, n := range betTypeNames {
		if strings.EqualFold(n, name) {
			return BetType(i), nil
		}
	}
	return 0, ErrInvalidBetType
}

// BetTypes every known bet type
func BetTypes() []BetType {
	bts := make([]BetType, 0, betTypeCount)
	for i := BetType(0); i < betTypeCount; i++ {
		bts = append(bts, i)
	}
	return bts
}

// Valid known bet type
func (b BetType) Valid() bool {
	return b < betTypeCount
}

// Seed derivation seed, nil for an unknown bet type
func (b BetType) Seed() []byte {
	if !b.Valid() {
		return nil
	}
	return []byte(betTypeSeeds[b])
}

func (b BetType) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return betTypeNames[b]
}
