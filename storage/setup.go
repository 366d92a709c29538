// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/fault"
)

// name of the engine working directory below the environment root
const logDirectoryName = "database"

// CurrentVersion - protocol version written to newly created files
const CurrentVersion = 105

// one open named database file
type dbEntry struct {
	db       *leveldb.DB
	readOnly bool
}

// the process-wide environment
//
// every mutation of any field is made while holding the mutex
var globalData struct {
	sync.Mutex

	log       *logger.L
	dir       string
	databases map[string]*dbEntry
	useCount  map[string]int

	initialised bool
}

// Initialise - open the environment rooted at the given directory
//
// this must be called before any handle is created; only one process
// may hold an environment open (each database file carries an
// operating system lock enforcing this)
func Initialise(dir string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.dir = dir
	return ensureOpen()
}

// Finalise - flush and close the environment
func Finalise() {
	Flush(true)
}

// Directory - the environment root directory
//
// also the application directory holding the optional seed files
func Directory() string {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.dir
}

// IsInitialised - report whether the environment is currently open
func IsInitialised() bool {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.initialised
}

// OpenCount - the current open-handle count of a named file
//
// second value is false when the file is not tracked at all
func OpenCount(file string) (int, bool) {
	globalData.Lock()
	defer globalData.Unlock()
	count, ok := globalData.useCount[file]
	return count, ok
}

// internal: must hold lock
//
// idempotent: a handle created after a shutdown flush reopens the
// environment at the recorded directory, recovering any in-flight
// writes from the engine journals
func ensureOpen() error {
	if globalData.initialised {
		return nil
	}
	if "" == globalData.dir {
		return fault.NotInitialised
	}

	if nil == globalData.log {
		globalData.log = logger.New("storage")
	}

	err := os.MkdirAll(filepath.Join(globalData.dir, logDirectoryName), 0700)
	if nil != err {
		globalData.log.Criticalf("environment directory: %s  error: %s", globalData.dir, err)
		return fault.CannotOpenEnvironment
	}

	globalData.databases = make(map[string]*dbEntry)
	if nil == globalData.useCount {
		globalData.useCount = make(map[string]int)
	}

	globalData.log.Infof("environment: %s", globalData.dir)
	globalData.initialised = true
	return nil
}

// internal: must hold lock
//
// open or reuse the engine database backing a named file; journal
// recovery runs on every fresh open
func getDatabase(file string, create bool, readOnly bool) (*dbEntry, bool, error) {
	entry, ok := globalData.databases[file]
	if ok {
		if entry.readOnly && !readOnly {
			if globalData.useCount[file] > 1 {
				return nil, false, fault.DatabaseInUse
			}
			entry.db.Close()
			delete(globalData.databases, file)
		} else {
			return entry, false, nil
		}
	}

	name := filepath.Join(globalData.dir, file)
	_, err := os.Stat(name)
	isNew := os.IsNotExist(err)

	options := &ldb_opt.Options{
		ErrorIfMissing:         !create,
		ReadOnly:               readOnly,
		WriteBuffer:            10 * ldb_opt.MiB, // journal cap before rotation
		OpenFilesCacheCapacity: 10000,
	}

	db, err := leveldb.OpenFile(name, options)
	if nil != err {
		globalData.log.Errorf("open: %s  error: %s", file, err)
		return nil, false, fault.CannotOpenDatabaseFile
	}

	entry = &dbEntry{
		db:       db,
		readOnly: readOnly,
	}
	globalData.databases[file] = entry
	return entry, isNew && create, nil
}

// internal: must hold lock
func registerUse(file string) {
	globalData.useCount[file] += 1
}

// releaseUse - drop one use of a named file
func releaseUse(file string) {
	globalData.Lock()
	globalData.useCount[file] -= 1
	globalData.Unlock()
}

// write barrier: force journal data onto the data pages so recovery
// of earlier work no longer needs the log
func checkpoint(db *leveldb.DB) {
	_ = db.Write(new(leveldb.Batch), &ldb_opt.WriteOptions{Sync: true})
}

// Flush - checkpoint the environment and trim idle files
//
// the checkpoint covers every open database even when files are still
// in use, so log data is durably applied before any pruning decision.
// files with a zero open-count are closed and dropped from the
// tracking maps.  with shutdown set the whole environment closes; the
// next handle reopens it.
func Flush(shutdown bool) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return
	}

	globalData.log.Debugf("flush: shutdown: %v", shutdown)

	for _, entry := range globalData.databases {
		checkpoint(entry.db)
	}

	for file, count := range globalData.useCount {
		if 0 == count {
			if entry, ok := globalData.databases[file]; ok {
				entry.db.Close()
				delete(globalData.databases, file)
			}
			delete(globalData.useCount, file)
		}
	}

	if shutdown {
		if 0 != len(globalData.useCount) {
			globalData.log.Warnf("shutdown with %d file(s) still in use", len(globalData.useCount))
		}
		// obsolete log data goes with the database handles here;
		// automatic removal during normal operation corrupts the
		// store and stays disabled
		for file, entry := range globalData.databases {
			entry.db.Close()
			delete(globalData.databases, file)
		}
		globalData.databases = nil
		globalData.initialised = false
		globalData.log.Info("environment closed")
	}
}
