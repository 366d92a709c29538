// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainrecord

import (
	"github.com/obsidian-money/obsidiand/keypair"
	"github.com/obsidian-money/obsidiand/serializer"
)

// DiskBlockIndex - the on-disk form of one block index node
//
// neighbours are recorded by hash; the loader resolves them back to
// in-memory node references.  a zero hash is the sentinel for no
// neighbour.
type DiskBlockIndex struct {
	Version  int32
	HashNext serializer.Uint256
	File     uint32
	BlockPos uint32
	Height   int32

	// block header
	HashPrev   serializer.Uint256
	MerkleRoot serializer.Uint256
	Time       uint32
	Bits       uint32
	Nonce      uint32
}

// Serialize - index fields, then the embedded header
//
// the version word leads both parts, preserving the historical record
// layout
func (d DiskBlockIndex) Serialize(w *serializer.Writer) {
	w.WriteInt32(d.Version)
	d.HashNext.Serialize(w)
	w.WriteUint32(d.File)
	w.WriteUint32(d.BlockPos)
	w.WriteInt32(d.Height)

	w.WriteInt32(d.Version)
	d.HashPrev.Serialize(w)
	d.MerkleRoot.Serialize(w)
	w.WriteUint32(d.Time)
	w.WriteUint32(d.Bits)
	w.WriteUint32(d.Nonce)
}

// Deserialize - index fields, then the embedded header
func (d *DiskBlockIndex) Deserialize(r *serializer.Reader) error {
	var err error
	if d.Version, err = r.ReadInt32(); nil != err {
		return err
	}
	if err = d.HashNext.Deserialize(r); nil != err {
		return err
	}
	if d.File, err = r.ReadUint32(); nil != err {
		return err
	}
	if d.BlockPos, err = r.ReadUint32(); nil != err {
		return err
	}
	if d.Height, err = r.ReadInt32(); nil != err {
		return err
	}

	if d.Version, err = r.ReadInt32(); nil != err {
		return err
	}
	if err = d.HashPrev.Deserialize(r); nil != err {
		return err
	}
	if err = d.MerkleRoot.Deserialize(r); nil != err {
		return err
	}
	if d.Time, err = r.ReadUint32(); nil != err {
		return err
	}
	if d.Bits, err = r.ReadUint32(); nil != err {
		return err
	}
	d.Nonce, err = r.ReadUint32()
	return err
}

// BlockHash - hash of the reconstructed block header
func (d DiskBlockIndex) BlockHash() serializer.Uint256 {
	w := serializer.NewWriter()
	w.WriteInt32(d.Version)
	d.HashPrev.Serialize(w)
	d.MerkleRoot.Serialize(w)
	w.WriteUint32(d.Time)
	w.WriteUint32(d.Bits)
	w.WriteUint32(d.Nonce)
	return keypair.Hash(w.Bytes())
}
