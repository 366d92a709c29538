// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - startup and shutdown orchestration
//
// drives the storage subsystem through its fixed start sequence:
// open the environment, rebuild the block index graph, load the peer
// address tables, load the wallet (creating a default key on first
// run) and start the periodic flush, then the reverse at shutdown
package node

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/addrdb"
	"github.com/obsidian-money/obsidiand/background"
	"github.com/obsidian-money/obsidiand/blockindex"
	"github.com/obsidian-money/obsidiand/chaindb"
	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/storage"
	"github.com/obsidian-money/obsidiand/walletdb"
)

// how often idle database files are flushed and trimmed; the shutdown
// flush always runs regardless
const flushCycle = 10 * time.Minute

var globalData struct {
	sync.Mutex
	log       *logger.L
	processes *background.T

	initialised bool
}

// Initialise - bring the whole storage subsystem up
//
// a failed block index, address or wallet load is fatal to the caller
func Initialise(dataDirectory string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("node")
	globalData.log = log
	log.Info("starting…")

	err := storage.Initialise(dataDirectory)
	if nil != err {
		return err
	}

	if err = blockindex.Initialise(); nil != err {
		return err
	}
	if err = addrdb.Initialise(); nil != err {
		return err
	}
	if err = walletdb.Initialise(); nil != err {
		return err
	}

	chain, err := chaindb.New("cr+")
	if nil != err {
		return err
	}
	err = chain.LoadBlockIndex()
	chain.Close()
	if nil != err {
		log.Criticalf("block index load failed: %s", err)
		return err
	}
	log.Infof("block index height: %d", blockindex.Height())

	if !addrdb.LoadAddresses() {
		log.Critical("address load failed")
		return fault.AddressLoadFailed
	}

	if err = walletdb.LoadWallet(); nil != err {
		log.Criticalf("wallet load failed: %s", err)
		return err
	}

	globalData.processes = background.Start([]background.Process{
		{
			Name: "flusher",
			Run:  flusher,
		},
	})

	globalData.initialised = true
	return nil
}

// Finalise - orderly shutdown with a final flush
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")

	globalData.processes.Stop()
	globalData.processes = nil

	_ = walletdb.Finalise()
	_ = addrdb.Finalise()
	_ = blockindex.Finalise()
	storage.Finalise()

	globalData.initialised = false
	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// periodic checkpoint so idle files drop out of the recovery logs
func flusher(shutdown <-chan struct{}) {
	for {
		select {
		case <-shutdown:
			return
		case <-time.After(flushCycle):
			storage.Flush(false)
		}
	}
}
