// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/obsidian-money/obsidiand/fault"
)

// one level of the nested transaction stack: the pending writes as an
// engine batch plus a read-through overlay of the same operations
type txnLevel struct {
	batch *leveldb.Batch
	cache *overlayCache
}

func newTxnLevel() *txnLevel {
	return &txnLevel{
		batch: new(leveldb.Batch),
		cache: newOverlayCache(),
	}
}

// replay target that folds a committed child level into its parent
type levelReplay struct {
	parent *txnLevel
}

func (r levelReplay) Put(key []byte, value []byte) {
	r.parent.batch.Put(key, value)
	r.parent.cache.set(dbPut, key, value)
}

func (r levelReplay) Delete(key []byte) {
	r.parent.batch.Delete(key)
	r.parent.cache.set(dbDelete, key, nil)
}

// TxnBegin - push a new transaction
//
// the new transaction is a child of the current top of the stack, or a
// root when the stack is empty; reads and writes on the handle use the
// top of the stack until it is committed or aborted
func (h *Handle) TxnBegin() error {
	if nil == h || h.closed {
		return fault.DoubleClose
	}
	if !h.txnOK {
		return fault.ReadOnlyDatabase
	}
	h.txns = append(h.txns, newTxnLevel())
	return nil
}

// TxnCommit - pop the top transaction and commit it
//
// committing a child folds its writes into the parent; only a root
// commit reaches the database.  strict nesting: a child always
// resolves before its parent.
func (h *Handle) TxnCommit() error {
	if nil == h || h.closed {
		return fault.DoubleClose
	}
	n := len(h.txns)
	if 0 == n {
		return fault.NoPendingTransaction
	}

	top := h.txns[n-1]
	h.txns = h.txns[:n-1]

	if n > 1 {
		parent := h.txns[n-2]
		err := top.batch.Replay(levelReplay{parent: parent})
		top.cache.clear()
		return err
	}

	err := h.entry.db.Write(top.batch, nil)
	top.cache.clear()
	if nil != err {
		globalData.log.Errorf("commit: %s  error: %s", h.file, err)
	}
	return err
}

// TxnAbort - pop the top transaction and discard it
func (h *Handle) TxnAbort() error {
	if nil == h || h.closed {
		return fault.DoubleClose
	}
	n := len(h.txns)
	if 0 == n {
		return fault.NoPendingTransaction
	}
	top := h.txns[n-1]
	h.txns = h.txns[:n-1]
	top.cache.clear()
	return nil
}

// TxnDepth - number of open transactions on the stack
func (h *Handle) TxnDepth() int {
	if nil == h {
		return 0
	}
	return len(h.txns)
}
