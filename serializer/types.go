// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serializer

import (
	"encoding/hex"

	"github.com/obsidian-money/obsidiand/fault"
)

// Uint256 - a 256 bit hash, stored as raw little-endian bytes
type Uint256 [32]byte

// Uint160 - a 160 bit hash, stored as raw little-endian bytes
type Uint160 [20]byte

// Serialize - raw bytes, no length prefix
func (u Uint256) Serialize(w *Writer) {
	w.WriteRaw(u[:])
}

// Deserialize - raw bytes, no length prefix
func (u *Uint256) Deserialize(r *Reader) error {
	data, err := r.take(len(u))
	if nil != err {
		return err
	}
	copy(u[:], data)
	return nil
}

// IsZero - all bytes zero, the sentinel value for absent links
func (u Uint256) IsZero() bool {
	for _, b := range u {
		if 0 != b {
			return false
		}
	}
	return true
}

// String - reversed hex, the conventional display order for hashes
func (u Uint256) String() string {
	return reverseHex(u[:])
}

// Uint256FromSlice - build a hash from exactly 32 bytes
func Uint256FromSlice(data []byte) (Uint256, error) {
	u := Uint256{}
	if len(u) != len(data) {
		return u, fault.InvalidKeyLength
	}
	copy(u[:], data)
	return u, nil
}

// Serialize - raw bytes, no length prefix
func (u Uint160) Serialize(w *Writer) {
	w.WriteRaw(u[:])
}

// Deserialize - raw bytes, no length prefix
func (u *Uint160) Deserialize(r *Reader) error {
	data, err := r.take(len(u))
	if nil != err {
		return err
	}
	copy(u[:], data)
	return nil
}

// IsZero - all bytes zero
func (u Uint160) IsZero() bool {
	for _, b := range u {
		if 0 != b {
			return false
		}
	}
	return true
}

// String - reversed hex
func (u Uint160) String() string {
	return reverseHex(u[:])
}

func reverseHex(data []byte) string {
	reversed := make([]byte, len(data))
	for i, b := range data {
		reversed[len(data)-1-i] = b
	}
	return hex.EncodeToString(reversed)
}

// scalar adapters so plain values can go through the typed
// storage read/write path

// String - a compact-size prefixed string record
type String string

// Bytes - a compact-size prefixed byte vector record
type Bytes []byte

// Int32 - a little-endian 32 bit signed record
type Int32 int32

// Int64 - a little-endian 64 bit signed record
type Int64 int64

// Uint32 - a little-endian 32 bit record
type Uint32 uint32

// Uint64 - a little-endian 64 bit record
type Uint64 uint64

// Bool - a single byte record
type Bool bool

// Serialize - string adapter
func (s String) Serialize(w *Writer) { w.WriteString(string(s)) }

// Deserialize - string adapter
func (s *String) Deserialize(r *Reader) error {
	value, err := r.ReadString()
	*s = String(value)
	return err
}

// Serialize - byte vector adapter
func (b Bytes) Serialize(w *Writer) { w.WriteVarBytes(b) }

// Deserialize - byte vector adapter
func (b *Bytes) Deserialize(r *Reader) error {
	value, err := r.ReadVarBytes()
	*b = value
	return err
}

// Serialize - int32 adapter
func (i Int32) Serialize(w *Writer) { w.WriteInt32(int32(i)) }

// Deserialize - int32 adapter
func (i *Int32) Deserialize(r *Reader) error {
	value, err := r.ReadInt32()
	*i = Int32(value)
	return err
}

// Serialize - int64 adapter
func (i Int64) Serialize(w *Writer) { w.WriteInt64(int64(i)) }

// Deserialize - int64 adapter
func (i *Int64) Deserialize(r *Reader) error {
	value, err := r.ReadInt64()
	*i = Int64(value)
	return err
}

// Serialize - uint32 adapter
func (u Uint32) Serialize(w *Writer) { w.WriteUint32(uint32(u)) }

// Deserialize - uint32 adapter
func (u *Uint32) Deserialize(r *Reader) error {
	value, err := r.ReadUint32()
	*u = Uint32(value)
	return err
}

// Serialize - uint64 adapter
func (u Uint64) Serialize(w *Writer) { w.WriteUint64(uint64(u)) }

// Deserialize - uint64 adapter
func (u *Uint64) Deserialize(r *Reader) error {
	value, err := r.ReadUint64()
	*u = Uint64(value)
	return err
}

// Serialize - bool adapter
func (b Bool) Serialize(w *Writer) { w.WriteBool(bool(b)) }

// Deserialize - bool adapter
func (b *Bool) Deserialize(r *Reader) error {
	value, err := r.ReadBool()
	*b = Bool(value)
	return err
}
