// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindb

import (
	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/blockindex"
	"github.com/obsidian-money/obsidiand/chainrecord"
	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

// LoadBlockIndex - rebuild the in-memory block index graph from disk
//
// records arrive in hash order, not chain order, so neighbour links
// are resolved through obtain-or-insert placeholders.  after the scan
// the best chain pointer is read: a missing pointer on a fresh
// database is success, anything else dangling is fatal.
func (s *Store) LoadBlockIndex() error {
	log := logger.New("chaindb")

	cursor, err := s.h.NewCursor()
	if nil != err {
		return err
	}
	defer cursor.Close()

	seek := serializer.NewWriter()
	seek.WriteString(tagBlockIndex)
	serializer.Uint256{}.Serialize(seek)

	key := seek.Bytes()
	value := []byte{}
	flag := storage.SetRange

	count := 0
loop:
	for {
		found, err := cursor.Read(&key, &value, flag)
		if nil != err {
			return err
		}
		if !found {
			break loop
		}
		flag = storage.Next

		r := serializer.NewReader(key)
		tag, err := r.ReadString()
		if nil != err {
			return err
		}
		if tagBlockIndex != tag {
			break loop
		}

		record := chainrecord.DiskBlockIndex{}
		err = serializer.Decode(value, &record)
		if nil != err {
			log.Errorf("block index record does not decode: %s", err)
			return err
		}

		hash := record.BlockHash()
		node := blockindex.Obtain(hash)
		node.Prev = blockindex.Obtain(record.HashPrev)
		node.Next = blockindex.Obtain(record.HashNext)
		node.File = record.File
		node.BlockPos = record.BlockPos
		node.Height = record.Height
		node.Version = record.Version
		node.MerkleRoot = record.MerkleRoot
		node.Time = record.Time
		node.Bits = record.Bits
		node.Nonce = record.Nonce
		count += 1

		if nil == blockindex.Genesis() && blockindex.GenesisHash == hash {
			blockindex.SetGenesis(node)
		}
	}

	bestHash, found := s.ReadHashBestChain()
	if !found {
		if nil == blockindex.Genesis() {
			// fresh database
			return nil
		}
		log.Error("best chain hash not found")
		return fault.MissingBestChain
	}

	tip := blockindex.Lookup(bestHash)
	if nil == tip {
		log.Errorf("no block index record for best chain: %s", bestHash)
		return fault.MissingBestChain
	}

	blockindex.SetBest(bestHash, tip)
	log.Infof("loaded %d block index records  best: %s  height: %d", count, bestHash, tip.Height)
	return nil
}

// ReadOwnerTxes - all stored transactions paying a public key hash at
// or above a minimum height
//
// the scan is seeded at (owner, zero position) and stops at the first
// record of another owner or family; bodies come from the block file
// reader in ascending position order
func (s *Store) ReadOwnerTxes(owner serializer.Uint160, minHeight int32) ([]chainrecord.Transaction, bool) {
	assertFullNode()

	reader := blockFileReader()
	if nil == reader {
		return nil, false
	}

	cursor, err := s.h.NewCursor()
	if nil != err {
		return nil, false
	}
	defer cursor.Close()

	seek := serializer.NewWriter()
	ownerKey{owner: owner, pos: chainrecord.DiskTxPos{}}.Serialize(seek)

	key := seek.Bytes()
	value := []byte{}
	flag := storage.SetRange

	txs := []chainrecord.Transaction{}
loop:
	for {
		found, err := cursor.Read(&key, &value, flag)
		if nil != err {
			return nil, false
		}
		if !found {
			break loop
		}
		flag = storage.Next

		r := serializer.NewReader(key)
		tag, err := r.ReadString()
		if nil != err {
			return nil, false
		}
		item := serializer.Uint160{}
		if tagOwner != tag {
			break loop
		}
		if err = item.Deserialize(r); nil != err {
			return nil, false
		}
		if owner != item {
			break loop
		}
		pos := chainrecord.DiskTxPos{}
		if err = pos.Deserialize(r); nil != err {
			return nil, false
		}

		height := serializer.Int32(0)
		if err = serializer.Decode(value, &height); nil != err {
			return nil, false
		}

		if int32(height) >= minHeight {
			tx, err := reader.ReadTransaction(pos)
			if nil != err {
				return nil, false
			}
			txs = append(txs, tx)
		}
	}
	return txs, true
}
