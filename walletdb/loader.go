// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletdb

import (
	"github.com/obsidian-money/obsidiand/addrdb"
	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/keypair"
	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

// LoadWallet - scan the whole file and rebuild the wallet state
//
// records are dispatched on their discriminator tag.  the wallet must
// load whenever at all possible, so a record that fails its own
// consistency check is reported and still loaded, and unknown tags or
// settings are skipped; only engine errors abort the scan.
//
// returns the recorded default public key, empty when none exists yet
func (s *Store) LoadWallet() ([]byte, bool) {
	keyTable.Lock()
	defer keyTable.Unlock()
	walletTable.Lock()
	defer walletTable.Unlock()

	log := globalData.log

	cursor, err := s.h.NewCursor()
	if nil != err {
		return nil, false
	}
	defer cursor.Close()

	defaultKey := []byte{}
	key := []byte{}
	value := []byte{}

loop:
	for {
		found, err := cursor.Read(&key, &value, storage.Next)
		if nil != err {
			return nil, false
		}
		if !found {
			break loop
		}

		keyReader := serializer.NewReader(key)
		tag, err := keyReader.ReadString()
		if nil != err {
			continue loop
		}

		switch tag {

		case tagName:
			address, err := keyReader.ReadString()
			if nil != err {
				log.Errorf("name record key does not decode: %s", err)
				continue loop
			}
			name := serializer.String("")
			if err = serializer.Decode(value, &name); nil != err {
				log.Errorf("name record does not decode: %s", err)
				continue loop
			}
			walletTable.addressBook[address] = string(name)

		case tagTx:
			hash := serializer.Uint256{}
			if err = hash.Deserialize(keyReader); nil != err {
				log.Errorf("wallet tx key does not decode: %s", err)
				continue loop
			}
			wtx := WalletTx{}
			if err = serializer.Decode(value, &wtx); nil != err {
				log.Errorf("wallet tx record does not decode: %s", err)
				continue loop
			}
			if wtx.Hash() != hash {
				// report but keep the record, matching the
				// historical load behaviour
				log.Errorf("wallet tx hash mismatch for: %s", hash)
			}
			walletTable.txs[hash] = wtx

		case tagKey:
			pub, err := keyReader.ReadVarBytes()
			if nil != err {
				log.Errorf("key record key does not decode: %s", err)
				continue loop
			}
			priv := serializer.Bytes{}
			if err = serializer.Decode(value, &priv); nil != err {
				log.Errorf("key record does not decode: %s", err)
				continue loop
			}
			keyTable.keys[string(pub)] = priv
			keyTable.pubKeys[keypair.Hash160(pub)] = pub

		case tagDefaultKey:
			pub := serializer.Bytes{}
			if err = serializer.Decode(value, &pub); nil != err {
				log.Errorf("default key record does not decode: %s", err)
				continue loop
			}
			defaultKey = pub

		case tagSetting:
			name, err := keyReader.ReadString()
			if nil != err {
				continue loop
			}
			switch name {
			case SettingGenerateCoins:
				flag := serializer.Bool(false)
				if nil == serializer.Decode(value, &flag) {
					walletTable.generateCoins = bool(flag)
				}
			case SettingTransactionFee:
				fee := serializer.Int64(0)
				if nil == serializer.Decode(value, &fee) {
					walletTable.transactionFee = int64(fee)
				}
			case SettingIncomingAddress:
				addr := addrdb.Address{}
				if nil == serializer.Decode(value, &addr) {
					walletTable.incomingAddress = addr
				}
			default:
				// unknown settings are ignored
			}

		default:
			// other families ("version", future additions) are not
			// wallet state
		}
	}

	log.Infof("loaded %d keys, %d transactions, %d names",
		len(keyTable.keys), len(walletTable.txs), len(walletTable.addressBook))
	return defaultKey, true
}

// LoadWallet - open the wallet read/create, rebuild the state and
// make sure a default key exists
//
// when the recorded default key resolves to an owned private key it
// becomes the active key; otherwise a fresh pair is generated, stored
// append-only, named in the address book and recorded as the default
func LoadWallet() error {
	s, err := New("cr")
	if nil != err {
		return err
	}
	defer s.Close()

	defaultKey, ok := s.LoadWallet()
	if !ok {
		return fault.WalletLoadFailed
	}

	if priv, ok := KeyByPublicKey(defaultKey); ok {
		SetActiveKey(&keypair.KeyPair{
			PublicKey:  defaultKey,
			PrivateKey: priv,
		})
		return nil
	}

	keypair.RandAddSeed(true)
	pair, err := keypair.MakeNewKey()
	if nil != err {
		return err
	}
	if !s.AddKey(pair) {
		return fault.WalletLoadFailed
	}
	if !s.WriteName(keypair.PubKeyToAddress(pair.PublicKey), "Your Address") {
		return fault.WalletLoadFailed
	}
	if !s.WriteDefaultKey(pair.PublicKey) {
		return fault.WalletLoadFailed
	}
	SetActiveKey(pair)
	return nil
}
