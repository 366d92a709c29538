// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/obsidian-money/obsidiand/blockindex"
	"github.com/obsidian-money/obsidiand/serializer"
)

const logDirectory = "test.logs"

func setup(t *testing.T) {
	os.RemoveAll(logDirectory)
	_ = os.Mkdir(logDirectory, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	err := blockindex.Initialise()
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	_ = blockindex.Finalise()
	logger.Finalise()
	os.RemoveAll(logDirectory)
}

func TestObtainCreatesOnce(t *testing.T) {
	setup(t)
	defer teardown(t)

	hash := serializer.Uint256{0x01}

	first := blockindex.Obtain(hash)
	assert.NotNil(t, first)
	assert.Equal(t, hash, first.Hash)

	second := blockindex.Obtain(hash)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, blockindex.Count())

	// the zero hash is the no-neighbour sentinel
	assert.Nil(t, blockindex.Obtain(serializer.Uint256{}))
	assert.Equal(t, 1, blockindex.Count())
}

func TestForwardReferenceLinking(t *testing.T) {
	setup(t)
	defer teardown(t)

	h1 := serializer.Uint256{0x01}
	h2 := serializer.Uint256{0x02}

	// neighbour referenced before its own record arrives
	placeholder := blockindex.Obtain(h2)
	node := blockindex.Obtain(h1)
	node.Next = placeholder

	later := blockindex.Obtain(h2)
	later.Height = 2

	assert.Equal(t, int32(2), node.Next.Height)
	assert.Nil(t, blockindex.Lookup(serializer.Uint256{0x03}))
}

func TestBestChainCursor(t *testing.T) {
	setup(t)
	defer teardown(t)

	assert.Nil(t, blockindex.Best())
	assert.Equal(t, int32(-1), blockindex.Height())

	hash := serializer.Uint256{0x09}
	tip := blockindex.Obtain(hash)
	tip.Height = 42
	blockindex.SetBest(hash, tip)

	assert.Equal(t, tip, blockindex.Best())
	assert.Equal(t, hash, blockindex.BestHash())
	assert.Equal(t, int32(42), blockindex.Height())
}
