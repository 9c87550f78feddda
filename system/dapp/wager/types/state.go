// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

// AggregateRecord control record of one bet type
type AggregateRecord struct {
	BetType     BetType
	IsOpen      bool
	HeadAddress address.Address
	BettorCount uint32
}

// Pack fixed width encoding
func (r *AggregateRecord) Pack() []byte {
	dst := make([]byte, AggregateRecordLen)
	r.pack(dst)
	return dst
}

// PackInto encode into dst, dst must be exactly AggregateRecordLen bytes
func (r *AggregateRecord) PackInto(dst []byte) error {
	if len(dst) != AggregateRecordLen {
		return types.ErrInvalidAccountData
	}
	r.pack(dst)
	return nil
}

func (r *AggregateRecord) pack(dst []byte) {
	dst[0] = byte(r.BetType)
	dst[1] = 0
	if r.IsOpen {
		dst[1] = 1
	}
	copy(dst[2:34], r.HeadAddress[:])
	binary.LittleEndian.PutUint32(dst[34:38], r.BettorCount)
}

// UnpackAggregate checked decode
func UnpackAggregate(src []byte) (*AggregateRecord, error) {
	r, err := UnpackAggregateUnchecked(src)
	if err != nil {
		return nil, err
	}
	if !r.BetType.Valid() {
		return nil, ErrInvalidBetType
	}
	switch src[1] {
	case 0, 1:
	default:
		return nil, types.ErrInvalidAccountData
	}
	return r, nil
}

// UnpackAggregateUnchecked decode without validating the field values
func UnpackAggregateUnchecked(src []byte) (*AggregateRecord, error) {
	if len(src) != AggregateRecordLen {
		return nil, types.ErrInvalidAccountData
	}
	r := &AggregateRecord{
		BetType:     BetType(src[0]),
		IsOpen:      src[1] == 1,
		BettorCount: binary.LittleEndian.Uint32(src[34:38]),
	}
	copy(r.HeadAddress[:], src[2:34])
	return r, nil
}

// WagerRecord one placed wager
type WagerRecord struct {
	BetType          BetType
	Guess            uint64
	TimeMarker       uint64
	NextWagerAddress address.Address
	BettorAddress    address.Address
}

// Pack fixed width encoding
func (r *WagerRecord) Pack() []byte {
	dst := make([]byte, WagerRecordLen)
	r.pack(dst)
	return dst
}

// PackInto encode into dst, dst must be exactly WagerRecordLen bytes
func (r *WagerRecord) PackInto(dst []byte) error {
	if len(dst) != WagerRecordLen {
		return types.ErrInvalidAccountData
	}
	r.pack(dst)
	return nil
}

func (r *WagerRecord) pack(dst []byte) {
	dst[0] = byte(r.BetType)
	binary.LittleEndian.PutUint64(dst[1:9], r.Guess)
	binary.LittleEndian.PutUint64(dst[9:17], r.TimeMarker)
	copy(dst[17:49], r.NextWagerAddress[:])
	copy(dst[49:81], r.BettorAddress[:])
}

// UnpackWager checked decode
func UnpackWager(src []byte) (*WagerRecord, error) {
	r, err := UnpackWagerUnchecked(src)
	if err != nil {
		return nil, err
	}
	if !r.BetType.Valid() {
		return nil, ErrInvalidBetType
	}
	return r, nil
}

// UnpackWagerUnchecked decode without validating the field values, used on freshly allocated storage
func UnpackWagerUnchecked(src []byte) (*WagerRecord, error) {
	if len(src) != WagerRecordLen {
		return nil, types.ErrInvalidAccountData
	}
	r := &WagerRecord{
		BetType:    BetType(src[0]),
		Guess:      binary.LittleEndian.Uint64(src[1:9]),
		TimeMarker: binary.LittleEndian.Uint64(src[9:17]),
	}
	copy(r.NextWagerAddress[:], src[17:49])
	copy(r.BettorAddress[:], src[49:81])
	return r, nil
}
