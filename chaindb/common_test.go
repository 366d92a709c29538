// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindb_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/blockindex"
	"github.com/obsidian-money/obsidiand/chaindb"
	"github.com/obsidian-money/obsidiand/chainrecord"
	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/storage"
)

const (
	testDirectory = "test.environment"
	logDirectory  = "test.logs"
)

func removeFiles() {
	os.RemoveAll(testDirectory)
	os.RemoveAll(logDirectory)
}

func setup(t *testing.T) *chaindb.Store {
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

	err := storage.Initialise(testDirectory)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = blockindex.Initialise()
	if nil != err {
		t.Fatalf("blockindex initialise error: %s", err)
	}

	chaindb.SetClientMode(false)
	chaindb.SetTxReader(nil)

	store, err := chaindb.New("cr+")
	if nil != err {
		t.Fatalf("chaindb open error: %s", err)
	}
	return store
}

func teardown(t *testing.T, store *chaindb.Store) {
	store.Close()
	_ = blockindex.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// block file reader backed by a map, for the owner scan and disk
// transaction tests
type fakeTxReader struct {
	txs map[chainrecord.DiskTxPos]chainrecord.Transaction
}

func newFakeTxReader() *fakeTxReader {
	return &fakeTxReader{
		txs: make(map[chainrecord.DiskTxPos]chainrecord.Transaction),
	}
}

func (f *fakeTxReader) add(pos chainrecord.DiskTxPos, tx chainrecord.Transaction) {
	f.txs[pos] = tx
}

func (f *fakeTxReader) ReadTransaction(pos chainrecord.DiskTxPos) (chainrecord.Transaction, error) {
	tx, ok := f.txs[pos]
	if !ok {
		return chainrecord.Transaction{}, fault.RecordTruncated
	}
	return tx, nil
}
