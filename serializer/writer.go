// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serializer

import (
	"encoding/binary"
)

// Encodable - a record that can be written to the disk byte stream
type Encodable interface {
	Serialize(w *Writer)
}

// Writer - an append-only disk byte stream
type Writer struct {
	buf []byte
}

// NewWriter - create an empty stream
func NewWriter() *Writer {
	return &Writer{
		buf: make([]byte, 0, 256),
	}
}

// Bytes - the encoded stream
//
// this returns the actual buffer - it is only valid until the next
// write or Wipe
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len - number of bytes written so far
func (w *Writer) Len() int {
	return len(w.buf)
}

// Wipe - zero the backing store
//
// required after the stream carried private key material
func (w *Writer) Wipe() {
	WipeBytes(w.buf[:cap(w.buf)])
	w.buf = w.buf[:0]
}

// WriteUint8 - append one byte
func (w *Writer) WriteUint8(value uint8) {
	w.buf = append(w.buf, value)
}

// WriteUint16 - append a little-endian 16 bit value
func (w *Writer) WriteUint16(value uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], value)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint32 - append a little-endian 32 bit value
func (w *Writer) WriteUint32(value uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint64 - append a little-endian 64 bit value
func (w *Writer) WriteUint64(value uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], value)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt32 - append a little-endian 32 bit signed value
func (w *Writer) WriteInt32(value int32) {
	w.WriteUint32(uint32(value))
}

// WriteInt64 - append a little-endian 64 bit signed value
func (w *Writer) WriteInt64(value int64) {
	w.WriteUint64(uint64(value))
}

// WriteBool - append a bool as a single byte
func (w *Writer) WriteBool(value bool) {
	b := byte(0)
	if value {
		b = 1
	}
	w.buf = append(w.buf, b)
}

// WriteCompactSize - append a variable width count
//
// one byte below 253, otherwise a marker byte followed by the
// smallest little-endian integer that holds the value
func (w *Writer) WriteCompactSize(value uint64) {
	switch {
	case value < 0xfd:
		w.WriteUint8(uint8(value))
	case value <= 0xffff:
		w.WriteUint8(0xfd)
		w.WriteUint16(uint16(value))
	case value <= 0xffffffff:
		w.WriteUint8(0xfe)
		w.WriteUint32(uint32(value))
	default:
		w.WriteUint8(0xff)
		w.WriteUint64(value)
	}
}

// WriteRaw - append bytes with no length prefix
func (w *Writer) WriteRaw(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteVarBytes - append a compact-size prefixed byte vector
func (w *Writer) WriteVarBytes(data []byte) {
	w.WriteCompactSize(uint64(len(data)))
	w.buf = append(w.buf, data...)
}

// WriteString - append a compact-size prefixed string
func (w *Writer) WriteString(value string) {
	w.WriteCompactSize(uint64(len(value)))
	w.buf = append(w.buf, value...)
}

// Encode - helper to serialize a record and return its bytes
//
// the caller owns the buffer and is responsible for wiping it when it
// carried key material
func Encode(record Encodable) []byte {
	w := NewWriter()
	record.Serialize(w)
	return w.Bytes()
}
