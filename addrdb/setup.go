// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrdb

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/fault"
)

// the two in-memory address tables
//
// each table has its own lock; whenever both are taken the IRC table
// is always locked first - the order peer discovery uses
var ircAddresses struct {
	sync.Mutex
	table map[string]Address
}

var addresses struct {
	sync.Mutex
	table map[string]Address
}

var globalData struct {
	sync.Mutex
	log         *logger.L
	initialised bool
}

// Initialise - create the empty address tables
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("addrdb")
	globalData.log.Info("starting…")

	ircAddresses.Lock()
	ircAddresses.table = make(map[string]Address)
	ircAddresses.Unlock()

	addresses.Lock()
	addresses.table = make(map[string]Address)
	addresses.Unlock()

	globalData.initialised = true
	return nil
}

// Finalise - discard the address tables
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	ircAddresses.Lock()
	ircAddresses.table = nil
	ircAddresses.Unlock()

	addresses.Lock()
	addresses.table = nil
	addresses.Unlock()

	globalData.initialised = false
	return nil
}

// AddressCount - number of entries in the general table
func AddressCount() int {
	addresses.Lock()
	defer addresses.Unlock()
	return len(addresses.table)
}

// IRCAddressCount - number of entries in the IRC-seeded table
func IRCAddressCount() int {
	ircAddresses.Lock()
	defer ircAddresses.Unlock()
	return len(ircAddresses.table)
}

// LookupAddress - find an address in the general table by its key
func LookupAddress(key []byte) (Address, bool) {
	addresses.Lock()
	defer addresses.Unlock()
	addr, ok := addresses.table[string(key)]
	return addr, ok
}
