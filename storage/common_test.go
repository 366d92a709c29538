// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

// test environment directory
const (
	testDirectory = "test.environment"
	logDirectory  = "test.logs"
)

// remove all files created by a test
func removeFiles() {
	os.RemoveAll(testDirectory)
	os.RemoveAll(logDirectory)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(testDirectory)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// open a handle or fail the test
func openHandle(t *testing.T, file string, mode string) *storage.Handle {
	h, err := storage.NewHandle(file, mode, false)
	if nil != err {
		t.Fatalf("open %q mode %q error: %s", file, mode, err)
	}
	return h
}

// build a composite key: tag ++ hash
func hashKey(tag string, hash serializer.Uint256) *compositeKey {
	return &compositeKey{tag: tag, hash: hash}
}

type compositeKey struct {
	tag  string
	hash serializer.Uint256
}

func (k *compositeKey) Serialize(w *serializer.Writer) {
	w.WriteString(k.tag)
	k.hash.Serialize(w)
}

// a hash with a recognisable fill byte
func filledHash(fill byte) serializer.Uint256 {
	hash := serializer.Uint256{}
	for i := range hash {
		hash[i] = fill
	}
	return hash
}
