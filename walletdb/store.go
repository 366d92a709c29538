// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletdb

import (
	"github.com/obsidian-money/obsidiand/keypair"
	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

// DatabaseFile - the named file this store binds
const DatabaseFile = "wallet.dat"

// Store - a handle bound to wallet.dat
type Store struct {
	h *storage.Handle
}

// New - open the wallet store
func New(mode string) (*Store, error) {
	h, err := storage.NewHandle(DatabaseFile, mode, false)
	if nil != err {
		return nil, err
	}
	return &Store{h: h}, nil
}

// Close - release the underlying handle
func (s *Store) Close() {
	s.h.Close()
}

// Handle - the underlying handle, for transaction control
func (s *Store) Handle() *storage.Handle {
	return s.h
}

// composite keys

type nameKey struct {
	address string
}

func (k nameKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagName)
	w.WriteString(k.address)
}

type txKey struct {
	hash serializer.Uint256
}

func (k txKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagTx)
	k.hash.Serialize(w)
}

type keyKey struct {
	publicKey []byte
}

func (k keyKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagKey)
	w.WriteVarBytes(k.publicKey)
}

type settingKey struct {
	name string
}

func (k settingKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagSetting)
	w.WriteString(k.name)
}

// ReadName - the address book name of an address
func (s *Store) ReadName(address string) (string, bool) {
	name := serializer.String("")
	found, err := s.h.Read(nameKey{address: address}, &name)
	return string(name), found && nil == err
}

// WriteName - name an address, in the book and on disk
func (s *Store) WriteName(address string, name string) bool {
	walletTable.Lock()
	walletTable.addressBook[address] = name
	walletTable.Unlock()
	return nil == s.h.Write(nameKey{address: address}, serializer.String(name), true)
}

// EraseName - drop an address from the book and the disk
func (s *Store) EraseName(address string) bool {
	walletTable.Lock()
	delete(walletTable.addressBook, address)
	walletTable.Unlock()
	return nil == s.h.Erase(nameKey{address: address})
}

// ReadTx - an owned transaction record
func (s *Store) ReadTx(hash serializer.Uint256) (WalletTx, bool) {
	wtx := WalletTx{}
	found, err := s.h.Read(txKey{hash: hash}, &wtx)
	return wtx, found && nil == err
}

// WriteTx - store an owned transaction record
func (s *Store) WriteTx(hash serializer.Uint256, wtx WalletTx) bool {
	return nil == s.h.Write(txKey{hash: hash}, wtx, true)
}

// EraseTx - drop an owned transaction record
func (s *Store) EraseTx(hash serializer.Uint256) bool {
	return nil == s.h.Erase(txKey{hash: hash})
}

// ReadKey - the private key stored for a public key
func (s *Store) ReadKey(publicKey []byte) ([]byte, bool) {
	priv := serializer.Bytes{}
	found, err := s.h.Read(keyKey{publicKey: publicKey}, &priv)
	return priv, found && nil == err
}

// WriteKey - store a key pair
//
// keys are append-only: an existing record is never overwritten, and
// a pair that does not verify is never written at all
func (s *Store) WriteKey(publicKey []byte, privateKey []byte) bool {
	if nil != keypair.VerifyPair(publicKey, privateKey) {
		return false
	}
	return nil == s.h.Write(keyKey{publicKey: publicKey}, serializer.Bytes(privateKey), false)
}

// AddKey - adopt a key pair: both key tables and the disk record
func (s *Store) AddKey(pair *keypair.KeyPair) bool {
	keyTable.Lock()
	keyTable.keys[string(pair.PublicKey)] = pair.PrivateKey
	keyTable.pubKeys[keypair.Hash160(pair.PublicKey)] = pair.PublicKey
	keyTable.Unlock()
	return s.WriteKey(pair.PublicKey, pair.PrivateKey)
}

// ReadDefaultKey - the recorded default public key
func (s *Store) ReadDefaultKey() ([]byte, bool) {
	pub := serializer.Bytes{}
	found, err := s.h.Read(serializer.String(tagDefaultKey), &pub)
	return pub, found && nil == err
}

// WriteDefaultKey - record the default public key
func (s *Store) WriteDefaultKey(publicKey []byte) bool {
	return nil == s.h.Write(serializer.String(tagDefaultKey), serializer.Bytes(publicKey), true)
}

// ReadSetting - a typed setting record
func (s *Store) ReadSetting(name string, value serializer.Decodable) bool {
	found, err := s.h.Read(settingKey{name: name}, value)
	return found && nil == err
}

// WriteSetting - store a typed setting record
func (s *Store) WriteSetting(name string, value serializer.Encodable) bool {
	return nil == s.h.Write(settingKey{name: name}, value, true)
}
