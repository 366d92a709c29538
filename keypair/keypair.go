// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keypair - key generation and hashing for the wallet
//
// secp256k1 key pairs, the Hash160 short hash and the base58check
// address string form used by the wallet address book.
package keypair

import (
	"crypto/sha256"
	"encoding/binary"
	"runtime"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
)

// AddressVersion - leading version byte of an address string
const AddressVersion = 0x00

// KeyPair - a public key with its private key
//
// the public key is the 65 byte uncompressed point, the private key
// the raw 32 byte scalar
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// MakeNewKey - generate a fresh secp256k1 key pair
func MakeNewKey() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  priv.PubKey().SerializeUncompressed(),
		PrivateKey: priv.Serialize(),
	}, nil
}

// VerifyPair - check that a private key belongs to a public key
//
// the wallet only ever stores matching pairs, which is what makes a
// later read of a "key" record trustworthy
func VerifyPair(publicKey []byte, privateKey []byte) error {
	if btcec.PrivKeyBytesLen != len(privateKey) {
		return fault.InvalidKeyLength
	}
	priv, _ := btcec.PrivKeyFromBytes(privateKey)
	derived := priv.PubKey().SerializeUncompressed()
	if len(derived) != len(publicKey) {
		return fault.KeyPairMismatch
	}
	for i, b := range derived {
		if publicKey[i] != b {
			return fault.KeyPairMismatch
		}
	}
	return nil
}

// Hash - double SHA-256 of a buffer
func Hash(data []byte) serializer.Uint256 {
	first := sha256.Sum256(data)
	return serializer.Uint256(sha256.Sum256(first[:]))
}

// Hash160 - RIPEMD-160 of the SHA-256 of a buffer
func Hash160(data []byte) serializer.Uint160 {
	first := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(first[:])
	u := serializer.Uint160{}
	copy(u[:], h.Sum(nil))
	return u
}

// PubKeyToAddress - base58check address string of a public key
func PubKeyToAddress(publicKey []byte) string {
	hash := Hash160(publicKey)
	payload := make([]byte, 0, 1+len(hash)+4)
	payload = append(payload, AddressVersion)
	payload = append(payload, hash[:]...)
	check := Hash(payload)
	payload = append(payload, check[0:4]...)
	return base58.Encode(payload)
}

// AddressToHash160 - recover the Hash160 from an address string
func AddressToHash160(address string) (serializer.Uint160, error) {
	u := serializer.Uint160{}
	payload, err := base58.Decode(address)
	if nil != err {
		return u, fault.CannotDecodeAddress
	}
	if 1+len(u)+4 != len(payload) || AddressVersion != payload[0] {
		return u, fault.CannotDecodeAddress
	}
	body := payload[:1+len(u)]
	check := Hash(body)
	for i := 0; i < 4; i += 1 {
		if check[i] != payload[1+len(u)+i] {
			return u, fault.CannotDecodeAddress
		}
	}
	copy(u[:], payload[1:])
	return u, nil
}

// entropy stirring pool
//
// key generation draws from the operating system generator; the pool
// only keeps the historical call sites that stir timing noise on
// database open and close
var seedPool struct {
	sync.Mutex
	state [32]byte
}

// RandAddSeed - stir timing noise into the seed pool
//
// perfmon also folds in the runtime memory statistics, the slower
// variant used before key generation
func RandAddSeed(perfmon bool) {
	seedPool.Lock()
	defer seedPool.Unlock()

	var stamp [8]byte
	binary.LittleEndian.PutUint64(stamp[:], uint64(time.Now().UnixNano()))

	h := sha256.New()
	h.Write(seedPool.state[:])
	h.Write(stamp[:])
	if perfmon {
		stats := runtime.MemStats{}
		runtime.ReadMemStats(&stats)
		var m [24]byte
		binary.LittleEndian.PutUint64(m[0:], stats.Alloc)
		binary.LittleEndian.PutUint64(m[8:], stats.Mallocs)
		binary.LittleEndian.PutUint64(m[16:], stats.PauseTotalNs)
		h.Write(m[:])
	}
	copy(seedPool.state[:], h.Sum(nil))
}
