// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletdb - the wallet store
//
// wallet.dat records (address book names, owned transactions, owned
// keys, the default key and typed settings), the loader that rebuilds
// the wallet state at startup, and that in-memory state itself
package walletdb

import (
	"github.com/obsidian-money/obsidiand/chainrecord"
	"github.com/obsidian-money/obsidiand/serializer"
)

// record family tags within wallet.dat
const (
	tagName       = "name"
	tagTx         = "tx"
	tagKey        = "key"
	tagDefaultKey = "defaultkey"
	tagSetting    = "setting"
)

// names of the defined settings; anything else is ignored silently so
// older wallets load under newer code
const (
	SettingGenerateCoins   = "fGenerateBitcoins"
	SettingTransactionFee  = "nTransactionFee"
	SettingIncomingAddress = "addrIncoming"
)

// WalletTx - a transaction known to the wallet with local metadata
type WalletTx struct {
	Tx        chainrecord.Transaction
	HashBlock serializer.Uint256
	Time      uint32
	FromMe    bool
	Spent     bool
	Comment   string
}

// Hash - the hash of the embedded transaction
//
// the loader recomputes this and compares it with the record key
func (t WalletTx) Hash() serializer.Uint256 {
	return t.Tx.Hash()
}

// Serialize - embedded transaction then the local metadata
func (t WalletTx) Serialize(w *serializer.Writer) {
	t.Tx.Serialize(w)
	t.HashBlock.Serialize(w)
	w.WriteUint32(t.Time)
	w.WriteBool(t.FromMe)
	w.WriteBool(t.Spent)
	w.WriteString(t.Comment)
}

// Deserialize - embedded transaction then the local metadata
func (t *WalletTx) Deserialize(r *serializer.Reader) error {
	err := t.Tx.Deserialize(r)
	if nil != err {
		return err
	}
	if err = t.HashBlock.Deserialize(r); nil != err {
		return err
	}
	if t.Time, err = r.ReadUint32(); nil != err {
		return err
	}
	if t.FromMe, err = r.ReadBool(); nil != err {
		return err
	}
	if t.Spent, err = r.ReadBool(); nil != err {
		return err
	}
	t.Comment, err = r.ReadString()
	return err
}
