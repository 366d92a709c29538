// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serializer

import (
	"encoding/binary"

	"github.com/obsidian-money/obsidiand/fault"
)

// Decodable - a record that can be read back from the disk byte stream
type Decodable interface {
	Deserialize(r *Reader) error
}

// Reader - a sequential disk byte stream decoder
type Reader struct {
	buf []byte
	pos int
}

// NewReader - decode from a buffer
//
// the reader takes ownership of the buffer; Wipe destroys it
func NewReader(buf []byte) *Reader {
	return &Reader{
		buf: buf,
		pos: 0,
	}
}

// Remaining - bytes not yet consumed
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Wipe - zero the whole backing buffer
func (r *Reader) Wipe() {
	WipeBytes(r.buf)
	r.pos = len(r.buf)
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, fault.RecordTruncated
	}
	data := r.buf[r.pos : r.pos+n]
	r.pos += n
	return data, nil
}

// ReadUint8 - one byte
func (r *Reader) ReadUint8() (uint8, error) {
	data, err := r.take(1)
	if nil != err {
		return 0, err
	}
	return data[0], nil
}

// ReadUint16 - little-endian 16 bit value
func (r *Reader) ReadUint16() (uint16, error) {
	data, err := r.take(2)
	if nil != err {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUint32 - little-endian 32 bit value
func (r *Reader) ReadUint32() (uint32, error) {
	data, err := r.take(4)
	if nil != err {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUint64 - little-endian 64 bit value
func (r *Reader) ReadUint64() (uint64, error) {
	data, err := r.take(8)
	if nil != err {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadInt32 - little-endian 32 bit signed value
func (r *Reader) ReadInt32() (int32, error) {
	value, err := r.ReadUint32()
	return int32(value), err
}

// ReadInt64 - little-endian 64 bit signed value
func (r *Reader) ReadInt64() (int64, error) {
	value, err := r.ReadUint64()
	return int64(value), err
}

// ReadBool - one byte, non-zero is true
func (r *Reader) ReadBool() (bool, error) {
	value, err := r.ReadUint8()
	return 0 != value, err
}

// ReadCompactSize - variable width count
func (r *Reader) ReadCompactSize() (uint64, error) {
	marker, err := r.ReadUint8()
	if nil != err {
		return 0, err
	}
	switch marker {
	case 0xfd:
		value, err := r.ReadUint16()
		return uint64(value), err
	case 0xfe:
		value, err := r.ReadUint32()
		return uint64(value), err
	case 0xff:
		return r.ReadUint64()
	default:
		return uint64(marker), nil
	}
}

// ReadRaw - a fixed number of bytes, copied out
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	data, err := r.take(n)
	if nil != err {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, data)
	return out, nil
}

// ReadVarBytes - a compact-size prefixed byte vector, copied out
func (r *Reader) ReadVarBytes() ([]byte, error) {
	n, err := r.ReadCompactSize()
	if nil != err {
		return nil, err
	}
	if n > uint64(r.Remaining()) {
		return nil, fault.RecordTruncated
	}
	return r.ReadRaw(int(n))
}

// ReadString - a compact-size prefixed string
func (r *Reader) ReadString() (string, error) {
	data, err := r.ReadVarBytes()
	if nil != err {
		return "", err
	}
	return string(data), nil
}

// Decode - helper to deserialize one record from a buffer
func Decode(buf []byte, record Decodable) error {
	return record.Deserialize(NewReader(buf))
}
