// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletdb

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/addrdb"
	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/keypair"
	"github.com/obsidian-money/obsidiand/serializer"
)

// the owned key tables
//
// whenever both wallet locks are taken the key table comes first -
// the same order the loader uses
var keyTable struct {
	sync.Mutex
	keys    map[string][]byte             // public key -> private key
	pubKeys map[serializer.Uint160][]byte // Hash160(public key) -> public key
}

// the wallet tables and settings
var walletTable struct {
	sync.Mutex
	txs         map[serializer.Uint256]WalletTx
	addressBook map[string]string

	generateCoins   bool
	transactionFee  int64
	incomingAddress addrdb.Address
}

var globalData struct {
	sync.Mutex
	log       *logger.L
	activeKey *keypair.KeyPair

	initialised bool
}

// Initialise - create the empty wallet state
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("walletdb")
	globalData.log.Info("starting…")
	globalData.activeKey = nil

	keyTable.Lock()
	keyTable.keys = make(map[string][]byte)
	keyTable.pubKeys = make(map[serializer.Uint160][]byte)
	keyTable.Unlock()

	walletTable.Lock()
	walletTable.txs = make(map[serializer.Uint256]WalletTx)
	walletTable.addressBook = make(map[string]string)
	walletTable.generateCoins = false
	walletTable.transactionFee = 0
	walletTable.incomingAddress = addrdb.Address{}
	walletTable.Unlock()

	globalData.initialised = true
	return nil
}

// Finalise - wipe and discard the wallet state
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	keyTable.Lock()
	for _, priv := range keyTable.keys {
		serializer.WipeBytes(priv)
	}
	keyTable.keys = nil
	keyTable.pubKeys = nil
	keyTable.Unlock()

	walletTable.Lock()
	walletTable.txs = nil
	walletTable.addressBook = nil
	walletTable.Unlock()

	if nil != globalData.activeKey {
		serializer.WipeBytes(globalData.activeKey.PrivateKey)
		globalData.activeKey = nil
	}

	globalData.initialised = false
	return nil
}

// KeyByPublicKey - the owned private key for a public key
func KeyByPublicKey(publicKey []byte) ([]byte, bool) {
	keyTable.Lock()
	defer keyTable.Unlock()
	priv, ok := keyTable.keys[string(publicKey)]
	return priv, ok
}

// PublicKeyByHash160 - the owned public key for an address hash
func PublicKeyByHash160(hash serializer.Uint160) ([]byte, bool) {
	keyTable.Lock()
	defer keyTable.Unlock()
	pub, ok := keyTable.pubKeys[hash]
	return pub, ok
}

// KeyCount - number of owned keys
func KeyCount() int {
	keyTable.Lock()
	defer keyTable.Unlock()
	return len(keyTable.keys)
}

// SetActiveKey - install the key used for receiving
func SetActiveKey(pair *keypair.KeyPair) {
	globalData.Lock()
	globalData.activeKey = pair
	globalData.Unlock()
}

// ActiveKey - the current receiving key, nil before the wallet loads
func ActiveKey() *keypair.KeyPair {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.activeKey
}

// AddressBookName - the human readable name of an address
func AddressBookName(address string) (string, bool) {
	walletTable.Lock()
	defer walletTable.Unlock()
	name, ok := walletTable.addressBook[address]
	return name, ok
}

// WalletTxByHash - an owned transaction
func WalletTxByHash(hash serializer.Uint256) (WalletTx, bool) {
	walletTable.Lock()
	defer walletTable.Unlock()
	wtx, ok := walletTable.txs[hash]
	return wtx, ok
}

// WalletTxCount - number of owned transactions
func WalletTxCount() int {
	walletTable.Lock()
	defer walletTable.Unlock()
	return len(walletTable.txs)
}

// GenerateCoins - the mining setting
func GenerateCoins() bool {
	walletTable.Lock()
	defer walletTable.Unlock()
	return walletTable.generateCoins
}

// TransactionFee - the fee setting
func TransactionFee() int64 {
	walletTable.Lock()
	defer walletTable.Unlock()
	return walletTable.transactionFee
}

// IncomingAddress - the advertised incoming address setting
func IncomingAddress() addrdb.Address {
	walletTable.Lock()
	defer walletTable.Unlock()
	return walletTable.incomingAddress
}
