// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/iterator"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
)

// CursorFlag - positioning request for Cursor.Read
type CursorFlag int

// cursor positioning requests
const (
	Next         CursorFlag = iota // step to the following record
	Set                            // seek to the exact key
	SetRange                       // seek to the smallest key >= the given key
	GetBoth                        // seek to the exact key and value
	GetBothRange                   // seek to the exact key with value >= the given value
)

// Cursor - an ordered iterator over one file
//
// the cursor is bound to no transaction; it observes the committed
// state of the database at creation time
type Cursor struct {
	handle *Handle
	iter   iterator.Iterator
}

// NewCursor - open a cursor on the handle's file
func (h *Handle) NewCursor() (*Cursor, error) {
	if nil == h || h.closed {
		return nil, fault.InvalidCursor
	}
	return &Cursor{
		handle: h,
		iter:   h.entry.db.NewIterator(nil, nil),
	}, nil
}

// Close - release the cursor
func (c *Cursor) Close() {
	if nil != c && nil != c.iter {
		c.iter.Release()
		c.iter = nil
	}
}

// Read - step or seek the cursor and return the current record
//
// for Set/SetRange the key buffer is the seek target and for
// GetBoth/GetBothRange the value buffer too; on success both buffers
// are replaced by copies of the record at the cursor (the previous
// contents are wiped first).  found is false when the scan is
// exhausted - the soft terminator of the scan protocol; any engine
// error is hard.
func (c *Cursor) Read(key *[]byte, value *[]byte, flag CursorFlag) (bool, error) {
	if nil == c || nil == c.iter {
		return false, fault.InvalidCursor
	}

	ok := false
	switch flag {
	case Next:
		ok = c.iter.Next()
	case Set:
		ok = c.iter.Seek(*key) && bytes.Equal(c.iter.Key(), *key)
	case SetRange:
		ok = c.iter.Seek(*key)
	case GetBoth:
		ok = c.iter.Seek(*key) && bytes.Equal(c.iter.Key(), *key) &&
			bytes.Equal(c.iter.Value(), *value)
	case GetBothRange:
		ok = c.iter.Seek(*key) && bytes.Equal(c.iter.Key(), *key) &&
			bytes.Compare(c.iter.Value(), *value) >= 0
	default:
		return false, fault.InvalidCursorFlag
	}

	if !ok {
		err := c.iter.Error()
		if nil != err {
			globalData.log.Errorf("cursor: %s  error: %s", c.handle.file, err)
			return false, err
		}
		return false, nil
	}

	// the iterator's slices are only valid until the next step, and
	// the caller's old buffers may have carried key material
	serializer.WipeBytes(*key)
	serializer.WipeBytes(*value)

	currentKey := c.iter.Key()
	currentValue := c.iter.Value()

	outKey := make([]byte, len(currentKey))
	copy(outKey, currentKey)
	outValue := make([]byte, len(currentValue))
	copy(outValue, currentValue)

	*key = outKey
	*value = outValue
	return true, nil
}
