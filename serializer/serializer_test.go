// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serializer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
)

func TestScalarRoundTrip(t *testing.T) {
	w := serializer.NewWriter()
	w.WriteUint8(0x7f)
	w.WriteUint16(0xbeef)
	w.WriteUint32(0xdeadbeef)
	w.WriteUint64(0x0102030405060708)
	w.WriteInt32(-42)
	w.WriteInt64(-1)
	w.WriteBool(true)
	w.WriteBool(false)

	r := serializer.NewReader(w.Bytes())

	u8, err := r.ReadUint8()
	assert.Nil(t, err)
	assert.Equal(t, uint8(0x7f), u8)

	u16, err := r.ReadUint16()
	assert.Nil(t, err)
	assert.Equal(t, uint16(0xbeef), u16)

	u32, err := r.ReadUint32()
	assert.Nil(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	u64, err := r.ReadUint64()
	assert.Nil(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	i32, err := r.ReadInt32()
	assert.Nil(t, err)
	assert.Equal(t, int32(-42), i32)

	i64, err := r.ReadInt64()
	assert.Nil(t, err)
	assert.Equal(t, int64(-1), i64)

	b, err := r.ReadBool()
	assert.Nil(t, err)
	assert.True(t, b)

	b, err = r.ReadBool()
	assert.Nil(t, err)
	assert.False(t, b)

	assert.Equal(t, 0, r.Remaining())
}

func TestLittleEndianLayout(t *testing.T) {
	w := serializer.NewWriter()
	w.WriteUint32(0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, w.Bytes())
}

func TestCompactSizeBoundaries(t *testing.T) {
	testCases := []struct {
		value uint64
		width int
	}{
		{0, 1},
		{0xfc, 1},
		{0xfd, 3},
		{0xffff, 3},
		{0x10000, 5},
		{0xffffffff, 5},
		{0x100000000, 9},
	}
	for _, item := range testCases {
		w := serializer.NewWriter()
		w.WriteCompactSize(item.value)
		if w.Len() != item.width {
			t.Errorf("compact size of %d: width: %d  expected: %d", item.value, w.Len(), item.width)
		}
		r := serializer.NewReader(w.Bytes())
		back, err := r.ReadCompactSize()
		if nil != err {
			t.Fatalf("compact size of %d: error: %s", item.value, err)
		}
		if back != item.value {
			t.Errorf("compact size round trip: got: %d  expected: %d", back, item.value)
		}
	}
}

func TestStringAndVarBytes(t *testing.T) {
	w := serializer.NewWriter()
	w.WriteString("blockindex")
	w.WriteVarBytes([]byte{1, 2, 3})

	// one byte count then the raw bytes
	expected := append([]byte{10}, "blockindex"...)
	expected = append(expected, 3, 1, 2, 3)
	assert.Equal(t, expected, w.Bytes())

	r := serializer.NewReader(w.Bytes())
	s, err := r.ReadString()
	assert.Nil(t, err)
	assert.Equal(t, "blockindex", s)
	v, err := r.ReadVarBytes()
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)
}

// pair encoding is the plain concatenation of the component encodings
func TestPairConcatenation(t *testing.T) {
	hash := serializer.Uint256{0x01, 0x02}

	w := serializer.NewWriter()
	w.WriteString("tx")
	hash.Serialize(w)

	tag := serializer.NewWriter()
	tag.WriteString("tx")
	suffix := serializer.NewWriter()
	hash.Serialize(suffix)

	joined := append([]byte{}, tag.Bytes()...)
	joined = append(joined, suffix.Bytes()...)
	assert.Equal(t, joined, w.Bytes())
	assert.True(t, bytes.HasPrefix(w.Bytes(), tag.Bytes()))
}

func TestHashRoundTrip(t *testing.T) {
	hash := serializer.Uint256{}
	for i := range hash {
		hash[i] = byte(i)
	}
	w := serializer.NewWriter()
	hash.Serialize(w)
	assert.Equal(t, 32, w.Len())

	back := serializer.Uint256{}
	err := serializer.Decode(w.Bytes(), &back)
	assert.Nil(t, err)
	assert.Equal(t, hash, back)

	short := serializer.Uint160{0xff}
	ws := serializer.NewWriter()
	short.Serialize(ws)
	assert.Equal(t, 20, ws.Len())
}

func TestTruncatedRecord(t *testing.T) {
	r := serializer.NewReader([]byte{0x01, 0x02})
	_, err := r.ReadUint32()
	assert.Equal(t, fault.RecordTruncated, err)

	// declared length longer than the buffer
	r = serializer.NewReader([]byte{0x05, 'a', 'b'})
	_, err = r.ReadVarBytes()
	assert.Equal(t, fault.RecordTruncated, err)
}

func TestWipe(t *testing.T) {
	w := serializer.NewWriter()
	w.WriteVarBytes([]byte("super secret key material"))
	buf := w.Bytes()
	w.Wipe()
	for i, b := range buf[:cap(buf)] {
		if 0 != b {
			t.Fatalf("byte %d not wiped", i)
		}
	}

	data := []byte("more secret bytes")
	r := serializer.NewReader(data)
	_, _ = r.ReadUint8()
	r.Wipe()
	for i, b := range data {
		if 0 != b {
			t.Fatalf("byte %d not wiped", i)
		}
	}
}
