// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockindex - the in-memory block index graph
//
// one node per known block hash, cross-linked by prev and next
// references; the best chain is the path ending at the best tip.
// the graph is rebuilt from disk at startup and mutated through the
// chaindb store afterwards.
package blockindex

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
)

// GenesisHash - hash of the hard-coded genesis block
var GenesisHash = serializer.Uint256{
	0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72,
	0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63, 0xf7, 0x4f,
	0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c,
	0x68, 0xd6, 0x19, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// Node - one block in the graph
//
// nodes are owned by the package map and never destroyed during
// normal operation; Prev and Next point into the same map
type Node struct {
	Hash       serializer.Uint256
	Prev       *Node
	Next       *Node
	File       uint32
	BlockPos   uint32
	Height     int32
	Version    int32
	MerkleRoot serializer.Uint256
	Time       uint32
	Bits       uint32
	Nonce      uint32
}

// globals for the graph
type indexData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	nodes    map[serializer.Uint256]*Node
	genesis  *Node
	best     *Node
	bestHash serializer.Uint256

	// set once during initialise
	initialised bool
}

// global data
var globalData indexData

// Initialise - create an empty graph
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("blockindex")
	globalData.log.Info("starting…")

	globalData.nodes = make(map[serializer.Uint256]*Node)
	globalData.genesis = nil
	globalData.best = nil
	globalData.bestHash = serializer.Uint256{}

	globalData.initialised = true
	return nil
}

// Finalise - discard the graph
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.nodes = nil
	globalData.genesis = nil
	globalData.best = nil
	globalData.initialised = false
	return nil
}

// Obtain - return the node for a hash, creating a placeholder if the
// hash is new
//
// a zero hash is the no-neighbour sentinel and yields nil.  forward
// references during loading work because the placeholder is filled in
// when its own record arrives.
func Obtain(hash serializer.Uint256) *Node {
	if hash.IsZero() {
		return nil
	}

	globalData.Lock()
	defer globalData.Unlock()

	if node, ok := globalData.nodes[hash]; ok {
		return node
	}
	node := &Node{
		Hash: hash,
	}
	globalData.nodes[hash] = node
	return node
}

// Lookup - the node for a hash, nil when unknown
func Lookup(hash serializer.Uint256) *Node {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.nodes[hash]
}

// Count - number of nodes in the graph
func Count() int {
	globalData.RLock()
	defer globalData.RUnlock()
	return len(globalData.nodes)
}

// SetGenesis - record the genesis node
func SetGenesis(node *Node) {
	globalData.Lock()
	globalData.genesis = node
	globalData.Unlock()
}

// Genesis - the genesis node, nil when no genesis block is known
func Genesis() *Node {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.genesis
}

// SetBest - install the best chain tip
func SetBest(hash serializer.Uint256, node *Node) {
	globalData.Lock()
	globalData.bestHash = hash
	globalData.best = node
	globalData.Unlock()
}

// Best - the best chain tip, nil when the database is fresh
func Best() *Node {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.best
}

// BestHash - hash of the best chain tip
func BestHash() serializer.Uint256 {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.bestHash
}

// Height - height of the best chain tip, -1 when none is set
func Height() int32 {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil == globalData.best {
		return -1
	}
	return globalData.best.Height
}
