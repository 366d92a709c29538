// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaindb - the transaction and block index store
//
// a typed façade over the blkindex.dat file: transaction index
// records, on-disk block index records, the owner height family and
// the best chain pointer, plus the loader that rebuilds the in-memory
// block index graph
package chaindb

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/chainrecord"
	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

// DatabaseFile - the named file this store binds
const DatabaseFile = "blkindex.dat"

// record family tags
const (
	tagTx            = "tx"
	tagBlockIndex    = "blockindex"
	tagOwner         = "owner"
	tagHashBestChain = "hashBestChain"
)

// a thin client keeps no transaction index; index operations in that
// mode are programming errors
var clientMode struct {
	sync.RWMutex
	enabled bool
}

// SetClientMode - flag the node as a thin client
func SetClientMode(enabled bool) {
	clientMode.Lock()
	clientMode.enabled = enabled
	clientMode.Unlock()
}

func assertFullNode() {
	clientMode.RLock()
	enabled := clientMode.enabled
	clientMode.RUnlock()
	if enabled {
		logger.Panic("chaindb: index operation in client mode")
	}
}

// TxReader - the external collaborator that loads transaction bodies
// from the flat block files
type TxReader interface {
	ReadTransaction(pos chainrecord.DiskTxPos) (chainrecord.Transaction, error)
}

var txReader struct {
	sync.RWMutex
	reader TxReader
}

// SetTxReader - install the block file reader
func SetTxReader(reader TxReader) {
	txReader.Lock()
	txReader.reader = reader
	txReader.Unlock()
}

func blockFileReader() TxReader {
	txReader.RLock()
	defer txReader.RUnlock()
	return txReader.reader
}

// Store - a handle bound to blkindex.dat
type Store struct {
	h *storage.Handle
}

// New - open the chain index store
func New(mode string) (*Store, error) {
	h, err := storage.NewHandle(DatabaseFile, mode, false)
	if nil != err {
		return nil, err
	}
	return &Store{h: h}, nil
}

// Close - release the underlying handle
func (s *Store) Close() {
	s.h.Close()
}

// Handle - the underlying handle, for transaction control
func (s *Store) Handle() *storage.Handle {
	return s.h
}

// composite keys

type txKey struct {
	hash serializer.Uint256
}

func (k txKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagTx)
	k.hash.Serialize(w)
}

type blockIndexKey struct {
	hash serializer.Uint256
}

func (k blockIndexKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagBlockIndex)
	k.hash.Serialize(w)
}

type ownerKey struct {
	owner serializer.Uint160
	pos   chainrecord.DiskTxPos
}

func (k ownerKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagOwner)
	k.owner.Serialize(w)
	k.pos.Serialize(w)
}

// ReadTxIndex - the index record of a transaction
func (s *Store) ReadTxIndex(hash serializer.Uint256) (chainrecord.TxIndex, bool) {
	assertFullNode()
	index := chainrecord.TxIndex{}
	index.SetNull()
	found, err := s.h.Read(txKey{hash: hash}, &index)
	return index, found && nil == err
}

// UpdateTxIndex - overwrite the index record of a transaction
func (s *Store) UpdateTxIndex(hash serializer.Uint256, index chainrecord.TxIndex) bool {
	assertFullNode()
	return nil == s.h.Write(txKey{hash: hash}, index, true)
}

// AddTxIndex - index a freshly connected transaction
//
// the height is recorded by the owner family, not the tx index
func (s *Store) AddTxIndex(tx chainrecord.Transaction, pos chainrecord.DiskTxPos, height int32) bool {
	assertFullNode()
	index := chainrecord.TxIndex{
		Pos:        pos,
		NumOutputs: tx.NumOutputs,
	}
	return nil == s.h.Write(txKey{hash: tx.Hash()}, index, true)
}

// EraseTxIndex - drop a disconnected transaction from the index
func (s *Store) EraseTxIndex(tx chainrecord.Transaction) bool {
	assertFullNode()
	return nil == s.h.Erase(txKey{hash: tx.Hash()})
}

// ContainsTx - is a transaction indexed
func (s *Store) ContainsTx(hash serializer.Uint256) bool {
	assertFullNode()
	return s.h.Exists(txKey{hash: hash})
}

// WriteOwnerTx - record that an output of a stored transaction pays a
// public key hash at a given height
func (s *Store) WriteOwnerTx(owner serializer.Uint160, pos chainrecord.DiskTxPos, height int32) bool {
	assertFullNode()
	key := ownerKey{owner: owner, pos: pos}
	return nil == s.h.Write(key, serializer.Int32(height), true)
}

// ReadDiskTx - resolve a transaction hash through the index and load
// the body from the block files
func (s *Store) ReadDiskTx(hash serializer.Uint256) (chainrecord.Transaction, chainrecord.TxIndex, bool) {
	assertFullNode()
	index, found := s.ReadTxIndex(hash)
	if !found {
		return chainrecord.Transaction{}, index, false
	}
	reader := blockFileReader()
	if nil == reader {
		return chainrecord.Transaction{}, index, false
	}
	tx, err := reader.ReadTransaction(index.Pos)
	if nil != err {
		return chainrecord.Transaction{}, index, false
	}
	return tx, index, true
}

// ReadDiskTxOutPoint - resolve an output reference to its transaction
func (s *Store) ReadDiskTxOutPoint(outpoint chainrecord.OutPoint) (chainrecord.Transaction, chainrecord.TxIndex, bool) {
	return s.ReadDiskTx(outpoint.Hash)
}

// WriteBlockIndex - store the on-disk record of a block index node
func (s *Store) WriteBlockIndex(record chainrecord.DiskBlockIndex) bool {
	key := blockIndexKey{hash: record.BlockHash()}
	return nil == s.h.Write(key, record, true)
}

// EraseBlockIndex - drop a block index record
func (s *Store) EraseBlockIndex(hash serializer.Uint256) bool {
	return nil == s.h.Erase(blockIndexKey{hash: hash})
}

// ReadHashBestChain - the recorded best chain tip hash
func (s *Store) ReadHashBestChain() (serializer.Uint256, bool) {
	hash := serializer.Uint256{}
	found, err := s.h.Read(serializer.String(tagHashBestChain), &hash)
	return hash, found && nil == err
}

// WriteHashBestChain - record the best chain tip hash
func (s *Store) WriteHashBestChain(hash serializer.Uint256) bool {
	return nil == s.h.Write(serializer.String(tagHashBestChain), hash, true)
}
