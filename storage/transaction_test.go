// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
)

func TestTxnAbortDiscards(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "blkindex.dat", "cr+")
	defer h.Close()

	key := hashKey("tx", filledHash(0x01))

	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.Write(key, serializer.String("pending"), true))

	// visible inside the transaction
	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.True(t, found)

	assert.Nil(t, h.TxnAbort())

	// gone after the abort
	found, err = h.Read(key, &back)
	assert.Nil(t, err)
	assert.False(t, found)
}

func TestTxnCommitPersists(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "blkindex.dat", "cr+")
	defer h.Close()

	key := hashKey("tx", filledHash(0x02))

	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.Write(key, serializer.String("durable"), true))
	assert.Nil(t, h.TxnCommit())

	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, serializer.String("durable"), back)
}

func TestNestedTxnAbortInsideCommit(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "blkindex.dat", "cr+")
	defer h.Close()

	key := hashKey("tx", filledHash(0x03))

	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.TxnBegin())
	assert.Equal(t, 2, h.TxnDepth())
	assert.Nil(t, h.Write(key, serializer.String("never"), true))
	assert.Nil(t, h.TxnAbort())
	assert.Nil(t, h.TxnCommit())

	// the child was aborted, so the outer commit stores nothing
	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.False(t, found)
}

func TestNestedTxnCommitThrough(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "blkindex.dat", "cr+")
	defer h.Close()

	key := hashKey("tx", filledHash(0x04))

	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.Write(key, serializer.String("both"), true))
	assert.Nil(t, h.TxnCommit())

	// committed into the parent, not yet into the database
	assert.Equal(t, 1, h.TxnDepth())

	assert.Nil(t, h.TxnCommit())
	assert.Equal(t, 0, h.TxnDepth())

	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.True(t, found)
}

func TestTxnDeleteShadows(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "blkindex.dat", "cr+")
	defer h.Close()

	key := hashKey("tx", filledHash(0x05))
	assert.Nil(t, h.Write(key, serializer.String("committed"), true))

	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.Erase(key))

	// deleted inside the transaction even though the database still
	// holds the record
	assert.False(t, h.Exists(key))
	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.False(t, found)

	assert.Nil(t, h.TxnAbort())
	assert.True(t, h.Exists(key))
}

func TestTxnStackErrors(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "blkindex.dat", "cr+")
	defer h.Close()

	assert.Equal(t, fault.NoPendingTransaction, h.TxnCommit())
	assert.Equal(t, fault.NoPendingTransaction, h.TxnAbort())
}

func TestCloseAbortsOutstanding(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "blkindex.dat", "cr+")
	key := hashKey("tx", filledHash(0x06))

	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.TxnBegin())
	assert.Nil(t, h.Write(key, serializer.String("leaked"), true))
	h.Close()

	// destruction aborts the bottom of the stack, discarding all
	// nested levels
	h = openHandle(t, "blkindex.dat", "r+")
	defer h.Close()
	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.False(t, found)
}
