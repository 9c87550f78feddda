// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	"golang.org/x/crypto/ed25519"
	"google.golang.org/protobuf/encoding/protowire"
)

// Signature ed25519 signature of the transaction message
type Signature struct {
	PubKey address.Address
	Sig    []byte
}

// Transaction instructions executed atomically
type Transaction struct {
	Instructions []*Instruction
	Signatures   []*Signature
}

// NewTransaction new
func NewTransaction(ixs ...*Instruction) *Transaction {
	return &Transaction{Instructions: ixs}
}

// Message 签名的内容, protobuf wire encoding of the instructions
func (tx *Transaction) Message() []byte {
	var b []byte
	for _, ix := range tx.Instructions {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeInstruction(ix))
	}
	return b
}

func encodeInstruction(ix *Instruction) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, ix.ProgramID[:])
	for _, meta := range ix.Accounts {
		var m []byte
		m = protowire.AppendTag(m, 1, protowire.BytesType)
		m = protowire.AppendBytes(m, meta.Pubkey[:])
		m = protowire.AppendTag(m, 2, protowire.VarintType)
		m = protowire.AppendVarint(m, protowire.EncodeBool(meta.IsSigner))
		m = protowire.AppendTag(m, 3, protowire.VarintType)
		m = protowire.AppendVarint(m, protowire.EncodeBool(meta.IsWritable))
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, ix.Data)
	return b
}

// Hash sha256 of the message
func (tx *Transaction) Hash() []byte {
	return common.Sha256(tx.Message())
}

// Sign 用私钥签名, an earlier signature of the same key is replaced
func (tx *Transaction) Sign(priv ed25519.PrivateKey) {
	pub, _ := address.PubKeyToAddress(priv.Public().(ed25519.PublicKey))
	sig := ed25519.Sign(priv, tx.Message())
	for _, s := range tx.Signatures {
		if s.PubKey == pub {
			s.Sig = sig
			return
		}
	}
	tx.Signatures = append(tx.Signatures, &Signature{PubKey: pub, Sig: sig})
}

// Verify check every signature and return the signer set
func (tx *Transaction) Verify() (map[address.Address]bool, error) {
	if len(tx.Instructions) == 0 {
		return nil, ErrTxEmpty
	}
	msg := tx.Message()
	if len(msg) > MaxTxSize {
		return nil, ErrTxSize
	}
	signers := make(map[address.Address]bool, len(tx.Signatures))
	for _, s := range tx.Signatures {
		if !ed25519.Verify(ed25519.PublicKey(s.PubKey[:]), msg, s.Sig) {
			return nil, ErrTxSignature
		}
		signers[s.PubKey] = true
	}
	return signers, nil
}

// AccountKeys distinct accounts referenced by the transaction, in first use order
func (tx *Transaction) AccountKeys() []address.Address {
	seen := make(map[address.Address]bool)
	var keys []address.Address
	add := func(k address.Address) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			add(meta.Pubkey)
		}
		add(ix.ProgramID)
	}
	return keys
}
