// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// 账户字段编号
const (
	fieldKey        protowire.Number = 1
	fieldLamports   protowire.Number = 2
	fieldData       protowire.Number = 3
	fieldOwner      protowire.Number = 4
	fieldExecutable protowire.Number = 5
)

// EncodeAccount protobuf wire form of the account
func EncodeAccount(acc *types.Account) []byte {
	b := make([]byte, 0, 2*address.AddressLength+len(acc.Data)+24)
	b = protowire.AppendTag(b, fieldKey, protowire.BytesType)
	b = protowire.AppendBytes(b, acc.Key[:])
	if acc.Lamports != 0 {
		b = protowire.AppendTag(b, fieldLamports, protowire.VarintType)
		b = protowire.AppendVarint(b, acc.Lamports)
	}
	if len(acc.Data) != 0 {
		b = protowire.AppendTag(b, fieldData, protowire.BytesType)
		b = protowire.AppendBytes(b, acc.Data)
	}
	b = protowire.AppendTag(b, fieldOwner, protowire.BytesType)
	b = protowire.AppendBytes(b, acc.Owner[:])
	if acc.Executable {
		b = protowire.AppendTag(b, fieldExecutable, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

// DecodeAccount parse EncodeAccount output, unknown fields are skipped
func DecodeAccount(b []byte) (*types.Account, error) {
	acc := &types.Account{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldKey && typ == protowire.BytesType,
			num == fieldOwner && typ == protowire.BytesType,
			num == fieldData && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			if num == fieldData {
				acc.Data = append([]byte(nil), v...)
				continue
			}
			addr, err := address.NewAddrFromBytes(v)
			if err != nil {
				return nil, types.ErrInvalidAccountData
			}
			if num == fieldKey {
				acc.Key = addr
			} else {
				acc.Owner = addr
			}
		case num == fieldLamports && typ == protowire.VarintType,
			num == fieldExecutable && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			if num == fieldLamports {
				acc.Lamports = v
			} else {
				acc.Executable = protowire.DecodeBool(v)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return acc, nil
}
