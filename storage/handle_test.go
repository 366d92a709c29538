// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

func TestVersionOnCreate(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "wallet.dat", "cr+")
	defer h.Close()

	version, found := h.ReadVersion()
	assert.True(t, found, "version record missing on created file")
	assert.Equal(t, int32(storage.CurrentVersion), version)
}

func TestRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "wallet.dat", "cr+")
	defer h.Close()

	key := hashKey("tx", filledHash(0x11))
	err := h.Write(key, serializer.String("a wallet transaction"), true)
	assert.Nil(t, err)

	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, serializer.String("a wallet transaction"), back)

	assert.True(t, h.Exists(key))

	err = h.Erase(key)
	assert.Nil(t, err)
	assert.False(t, h.Exists(key))

	found, err = h.Read(key, &back)
	assert.Nil(t, err)
	assert.False(t, found)

	// erasing an absent key is success
	assert.Nil(t, h.Erase(key))
}

func TestNoOverwrite(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "wallet.dat", "cr+")
	defer h.Close()

	key := hashKey("key", filledHash(0x22))
	assert.Nil(t, h.Write(key, serializer.Bytes("first private key"), false))

	err := h.Write(key, serializer.Bytes("second private key"), false)
	assert.Equal(t, fault.KeyExists, err)

	// the first value must be intact
	back := serializer.Bytes{}
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, serializer.Bytes("first private key"), back)
}

func TestReadOnlyHandle(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "wallet.dat", "cr+")
	key := hashKey("tx", filledHash(0x33))
	assert.Nil(t, h.Write(key, serializer.String("stored"), true))
	h.Close()

	r := openHandle(t, "wallet.dat", "r")
	defer r.Close()

	back := serializer.String("")
	found, err := r.Read(key, &back)
	assert.Nil(t, err)
	assert.True(t, found)

	assert.Equal(t, fault.ReadOnlyDatabase, r.Write(key, serializer.String("x"), true))
	assert.Equal(t, fault.ReadOnlyDatabase, r.Erase(key))
	assert.Equal(t, fault.ReadOnlyDatabase, r.TxnBegin())
}

func TestPersistenceAcrossReopen(t *testing.T) {
	setup(t)
	defer teardown(t)

	h := openHandle(t, "addr.dat", "cr+")
	key := hashKey("addr", filledHash(0x44))
	assert.Nil(t, h.Write(key, serializer.String("endpoint"), true))
	h.Close()

	storage.Finalise()
	err := storage.Initialise(testDirectory)
	assert.Nil(t, err)

	h = openHandle(t, "addr.dat", "r+")
	defer h.Close()
	back := serializer.String("")
	found, err := h.Read(key, &back)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, serializer.String("endpoint"), back)
}
