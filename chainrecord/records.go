// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainrecord - on-disk record types of the chain index
package chainrecord

import (
	"github.com/obsidian-money/obsidiand/keypair"
	"github.com/obsidian-money/obsidiand/serializer"
)

// DiskTxPos - location of a transaction body in the external block
// files: file index, byte offset of the block, byte offset of the
// transaction within the block
type DiskTxPos struct {
	File     uint32
	BlockPos uint32
	TxPos    uint32
}

// SetNull - mark the position as unset
func (p *DiskTxPos) SetNull() {
	p.File = ^uint32(0)
	p.BlockPos = 0
	p.TxPos = 0
}

// IsNull - position is unset
func (p DiskTxPos) IsNull() bool {
	return ^uint32(0) == p.File
}

// Serialize - three little-endian words
func (p DiskTxPos) Serialize(w *serializer.Writer) {
	w.WriteUint32(p.File)
	w.WriteUint32(p.BlockPos)
	w.WriteUint32(p.TxPos)
}

// Deserialize - three little-endian words
func (p *DiskTxPos) Deserialize(r *serializer.Reader) error {
	var err error
	if p.File, err = r.ReadUint32(); nil != err {
		return err
	}
	if p.BlockPos, err = r.ReadUint32(); nil != err {
		return err
	}
	p.TxPos, err = r.ReadUint32()
	return err
}

// TxIndex - where a transaction lives on disk and how many outputs it
// carries (one spend marker per output is kept elsewhere)
type TxIndex struct {
	Pos        DiskTxPos
	NumOutputs uint32
}

// SetNull - reset to the unset state
func (t *TxIndex) SetNull() {
	t.Pos.SetNull()
	t.NumOutputs = 0
}

// Serialize - position then output count
func (t TxIndex) Serialize(w *serializer.Writer) {
	t.Pos.Serialize(w)
	w.WriteUint32(t.NumOutputs)
}

// Deserialize - position then output count
func (t *TxIndex) Deserialize(r *serializer.Reader) error {
	err := t.Pos.Deserialize(r)
	if nil != err {
		return err
	}
	t.NumOutputs, err = r.ReadUint32()
	return err
}

// OutPoint - reference to one output of a transaction
type OutPoint struct {
	Hash serializer.Uint256
	N    uint32
}

// Serialize - hash then index
func (o OutPoint) Serialize(w *serializer.Writer) {
	o.Hash.Serialize(w)
	w.WriteUint32(o.N)
}

// Deserialize - hash then index
func (o *OutPoint) Deserialize(r *serializer.Reader) error {
	err := o.Hash.Deserialize(r)
	if nil != err {
		return err
	}
	o.N, err = r.ReadUint32()
	return err
}

// Transaction - an opaque transaction body with the output count the
// index needs
//
// the body format belongs to the consensus layer; storage only needs
// stable bytes, the derived hash and how many outputs the body holds
type Transaction struct {
	Body       []byte
	NumOutputs uint32
}

// Hash - double SHA-256 over the body
func (t Transaction) Hash() serializer.Uint256 {
	return keypair.Hash(t.Body)
}

// Serialize - compact-size prefixed body then the output count
func (t Transaction) Serialize(w *serializer.Writer) {
	w.WriteVarBytes(t.Body)
	w.WriteUint32(t.NumOutputs)
}

// Deserialize - compact-size prefixed body then the output count
func (t *Transaction) Deserialize(r *serializer.Reader) error {
	body, err := r.ReadVarBytes()
	if nil != err {
		return err
	}
	t.Body = body
	t.NumOutputs, err = r.ReadUint32()
	return err
}
