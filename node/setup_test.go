// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/obsidian-money/obsidiand/blockindex"
	"github.com/obsidian-money/obsidiand/node"
	"github.com/obsidian-money/obsidiand/storage"
	"github.com/obsidian-money/obsidiand/walletdb"
)

const (
	testDirectory = "test.environment"
	logDirectory  = "test.logs"
)

func removeFiles() {
	os.RemoveAll(testDirectory)
	os.RemoveAll(logDirectory)
}

func setup(t *testing.T) {
	removeFiles()
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
}

func teardown(t *testing.T) {
	logger.Finalise()
	removeFiles()
}

// full start sequence on an empty directory, then a restart that
// finds the same wallet key again
func TestStartupAndRestart(t *testing.T) {
	setup(t)
	defer teardown(t)

	assert.Nil(t, node.Initialise(testDirectory))

	// fresh chain, fresh wallet with one generated key
	assert.Equal(t, int32(-1), blockindex.Height())
	active := walletdb.ActiveKey()
	assert.NotNil(t, active)
	firstPublicKey := append([]byte{}, active.PublicKey...)

	assert.Nil(t, node.Finalise())
	assert.False(t, storage.IsInitialised())

	assert.Nil(t, node.Initialise(testDirectory))
	active = walletdb.ActiveKey()
	assert.NotNil(t, active)
	assert.Equal(t, firstPublicKey, active.PublicKey)
	assert.Equal(t, 1, walletdb.KeyCount())
	assert.Nil(t, node.Finalise())
}
