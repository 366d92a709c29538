// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/keypair"
	"github.com/obsidian-money/obsidiand/serializer"
)

// Handle - a live binding to one named database file
//
// a handle is owned by at most one thread at a time; the underlying
// database is shared with other handles through the environment
type Handle struct {
	file     string
	entry    *dbEntry
	readOnly bool
	txnOK    bool
	txns     []*txnLevel
	closed   bool
}

// NewHandle - bind a named file inside the environment
//
// mode letters: 'c' create the file if missing, 'w' or '+' writable,
// anything else read-only.  the transactional flag allows TxnBegin on
// an otherwise read-only handle.
//
// the environment is (re)opened if necessary and the file's open-count
// incremented; on failure the count is released before the error
// surfaces
func NewHandle(file string, mode string, transactional bool) (*Handle, error) {
	create := strings.ContainsRune(mode, 'c')
	readOnly := !strings.ContainsRune(mode, '+') && !strings.ContainsRune(mode, 'w')
	// create-if-missing implies a writable open, the engine cannot
	// create a read-only database
	if create {
		readOnly = false
	}

	globalData.Lock()
	err := ensureOpen()
	if nil != err {
		globalData.Unlock()
		return nil, err
	}

	registerUse(file)

	entry, created, err := getDatabase(file, create, readOnly)
	if nil != err {
		globalData.useCount[file] -= 1
		globalData.Unlock()
		return nil, err
	}
	globalData.Unlock()

	h := &Handle{
		file:     file,
		entry:    entry,
		readOnly: readOnly,
		txnOK:    !readOnly || transactional,
	}

	if created {
		exists := h.Exists(serializer.String("version"))
		if !exists {
			err = h.WriteVersion(CurrentVersion)
			if nil != err {
				h.Close()
				return nil, err
			}
		}
	}

	keypair.RandAddSeed(false)
	return h, nil
}

// Close - destroy the handle
//
// an outstanding transaction stack is aborted from the bottom, which
// discards every nested level; the file is checkpointed and its
// open-count released.  closing twice is harmless.
func (h *Handle) Close() {
	if nil == h || h.closed {
		return
	}
	if 0 != len(h.txns) {
		// aborting the root cascades over all children
		h.txns[0].cache.clear()
		h.txns = nil
	}
	h.closed = true
	checkpoint(h.entry.db)
	releaseUse(h.file)
	keypair.RandAddSeed(false)
}

// File - the bound file name
func (h *Handle) File() string {
	return h.file
}

// internal point lookup: transaction overlays from the top of the
// stack first, then the database
func (h *Handle) get(key []byte) ([]byte, bool, error) {
	for i := len(h.txns) - 1; i >= 0; i -= 1 {
		value, op, found := h.txns[i].cache.get(key)
		if found {
			if dbDelete == op {
				return nil, false, nil
			}
			out := make([]byte, len(value))
			copy(out, value)
			return out, true, nil
		}
	}

	data, err := h.entry.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	return data, true, nil
}

func (h *Handle) exists(key []byte) (bool, error) {
	for i := len(h.txns) - 1; i >= 0; i -= 1 {
		_, op, found := h.txns[i].cache.get(key)
		if found {
			return dbPut == op, nil
		}
	}
	return h.entry.db.Has(key, nil)
}

func (h *Handle) put(key []byte, value []byte) error {
	if 0 != len(h.txns) {
		top := h.txns[len(h.txns)-1]
		top.batch.Put(key, value)
		top.cache.set(dbPut, key, value)
		return nil
	}
	// auto-commit: durable independently of any transaction
	return h.entry.db.Put(key, value, nil)
}

func (h *Handle) remove(key []byte) error {
	if 0 != len(h.txns) {
		top := h.txns[len(h.txns)-1]
		top.batch.Delete(key)
		top.cache.set(dbDelete, key, nil)
		return nil
	}
	return h.entry.db.Delete(key, nil)
}

// Read - point lookup of a typed record
//
// an absent key is not an error: found is false and the value is left
// untouched.  all transient buffers are wiped before release.
func (h *Handle) Read(key serializer.Encodable, value serializer.Decodable) (bool, error) {
	if nil == h || h.closed {
		return false, nil
	}

	kw := serializer.NewWriter()
	key.Serialize(kw)
	data, found, err := h.get(kw.Bytes())
	kw.Wipe()
	if nil != err {
		globalData.log.Errorf("read: %s  error: %s", h.file, err)
		return false, err
	}
	if !found {
		return false, nil
	}

	r := serializer.NewReader(data)
	err = value.Deserialize(r)
	r.Wipe()
	if nil != err {
		return false, err
	}
	return true, nil
}

// Write - store a typed record
//
// with overwrite false an existing key fails with fault.KeyExists and
// the stored value is left intact
func (h *Handle) Write(key serializer.Encodable, value serializer.Encodable, overwrite bool) error {
	if nil == h || h.closed {
		return fault.DoubleClose
	}
	if h.readOnly {
		return fault.ReadOnlyDatabase
	}

	kw := serializer.NewWriter()
	key.Serialize(kw)
	vw := serializer.NewWriter()
	value.Serialize(vw)

	// wipe in case the buffers carried a private key
	defer kw.Wipe()
	defer vw.Wipe()

	if !overwrite {
		found, err := h.exists(kw.Bytes())
		if nil != err {
			return err
		}
		if found {
			return fault.KeyExists
		}
	}

	err := h.put(kw.Bytes(), vw.Bytes())
	if nil != err {
		globalData.log.Errorf("write: %s  error: %s", h.file, err)
	}
	return err
}

// Erase - remove a record
//
// erasing an absent key is a success
func (h *Handle) Erase(key serializer.Encodable) error {
	if nil == h || h.closed {
		return fault.DoubleClose
	}
	if h.readOnly {
		return fault.ReadOnlyDatabase
	}

	kw := serializer.NewWriter()
	key.Serialize(kw)
	err := h.remove(kw.Bytes())
	kw.Wipe()
	if leveldb.ErrNotFound == err {
		return nil
	}
	return err
}

// Exists - probe for a key without materialising its value
func (h *Handle) Exists(key serializer.Encodable) bool {
	if nil == h || h.closed {
		return false
	}

	kw := serializer.NewWriter()
	key.Serialize(kw)
	found, err := h.exists(kw.Bytes())
	kw.Wipe()
	if nil != err {
		globalData.log.Errorf("exists: %s  error: %s", h.file, err)
		return false
	}
	return found
}

// ReadVersion - the file's protocol version record
func (h *Handle) ReadVersion() (int32, bool) {
	version := serializer.Int32(0)
	found, err := h.Read(serializer.String("version"), &version)
	if nil != err || !found {
		return 0, false
	}
	return int32(version), true
}

// WriteVersion - set the file's protocol version record
func (h *Handle) WriteVersion(version int32) error {
	return h.Write(serializer.String("version"), serializer.Int32(version), true)
}
