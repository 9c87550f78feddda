// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/binary"
	"errors"

	"filippo.io/edwards25519"
	"github.com/33cn/wager/common"
	lru "github.com/hashicorp/golang-lru"
)

const (
	// MaxSeeds max seeds of a derived address, bump included
	MaxSeeds = 16
	// MaxSeedLen max length of a single seed
	MaxSeedLen = 32
)

var (
	// ErrMaxSeedLengthExceeded too many seeds or a seed too long
	ErrMaxSeedLengthExceeded = errors.New("ErrMaxSeedLengthExceeded")
	// ErrInvalidSeeds the derived point lies on the ed25519 curve
	ErrInvalidSeeds = errors.New("ErrInvalidSeeds")
	// ErrNoViableBump no bump in [0, 255] yields an off-curve address
	ErrNoViableBump = errors.New("ErrNoViableBump")
	// ErrAddressMismatch derived address differs from the supplied one
	ErrAddressMismatch = errors.New("ErrAddressMismatch")
)

var pdaMarker = []byte("ProgramDerivedAddress")

// 派生地址计算有一次 sha256 和一次点解压, 做一次cache
var pdaCache *lru.Cache

type pdaResult struct {
	addr Address
	err  error
}

func init() {
	pdaCache, _ = lru.New(10240)
}

func cacheKey(programID Address, seeds [][]byte) string {
	buf := make([]byte, 0, AddressLength+len(seeds)*(MaxSeedLen+1))
	buf = append(buf, programID[:]...)
	for _, s := range seeds {
		buf = append(buf, byte(len(s)))
		buf = append(buf, s...)
	}
	return string(buf)
}

// IsOnCurve reports whether b decodes to a point of the ed25519 curve
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress derive the authority of programID owned by seeds.
// Only off-curve addresses are realizable, there is no private key for them.
func CreateProgramAddress(programID Address, seeds ...[]byte) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Zero, ErrMaxSeedLengthExceeded
	}
	for _, s := range seeds {
		if len(s) > MaxSeedLen {
			return Zero, ErrMaxSeedLengthExceeded
		}
	}
	key := cacheKey(programID, seeds)
	if value, ok := pdaCache.Get(key); ok {
		r := value.(pdaResult)
		return r.addr, r.err
	}
	parts := make([][]byte, 0, len(seeds)+2)
	parts = append(parts, seeds...)
	parts = append(parts, programID[:], pdaMarker)
	hash := common.Sha256Parts(parts...)

	r := pdaResult{addr: Address(hash)}
	if IsOnCurve(hash[:]) {
		r = pdaResult{err: ErrInvalidSeeds}
	}
	pdaCache.Add(key, r)
	return r.addr, r.err
}

// FindProgramAddress search the highest bump giving an off-curve address.
// Used by clients, programs are handed the bump and only verify it.
func FindProgramAddress(programID Address, seeds ...[]byte) (Address, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(programID, withBump...)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if err != ErrInvalidSeeds {
			return Zero, 0, err
		}
	}
	return Zero, 0, ErrNoViableBump
}

// SeedUint64 little-endian seed for numeric components
func SeedUint64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}
