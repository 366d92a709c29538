// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reviewdb_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/obsidian-money/obsidiand/addrdb"
	"github.com/obsidian-money/obsidiand/keypair"
	"github.com/obsidian-money/obsidiand/reviewdb"
	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

const (
	testDirectory = "test.environment"
	logDirectory  = "test.logs"
)

func removeFiles() {
	os.RemoveAll(testDirectory)
	os.RemoveAll(logDirectory)
}

func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	err := storage.Initialise(testDirectory)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func TestUserRecords(t *testing.T) {
	setup(t)
	defer teardown(t)

	s, err := reviewdb.New("cr+")
	assert.Nil(t, err)
	defer s.Close()

	addr, err := addrdb.ParseAddress("10.2.3.4:9417", addrdb.NodeNetwork)
	assert.Nil(t, err)

	user := reviewdb.User{
		Version:   1,
		PublicKey: []byte("a public key"),
		Addresses: []addrdb.Address{addr},
	}
	hash := keypair.Hash(user.PublicKey)

	_, found := s.ReadUser(hash)
	assert.False(t, found)

	assert.True(t, s.WriteUser(hash, user))
	back, found := s.ReadUser(hash)
	assert.True(t, found)
	assert.Equal(t, user, back)
}

func TestReviewSequence(t *testing.T) {
	setup(t)
	defer teardown(t)

	s, err := reviewdb.New("cr+")
	assert.Nil(t, err)
	defer s.Close()

	userHash := keypair.Hash([]byte("reviewed user"))

	reviews := reviewdb.ReviewList{
		{
			Version:       1,
			UserHash:      userHash,
			Rating:        5,
			Text:          "fast shipping",
			Time:          1234567890,
			PublicKeyFrom: []byte("reviewer one"),
			Signature:     []byte("sig one"),
		},
		{
			Version:       1,
			UserHash:      userHash,
			Rating:        2,
			Text:          "never arrived",
			Time:          1234567999,
			PublicKeyFrom: []byte("reviewer two"),
			Signature:     []byte("sig two"),
		},
	}

	assert.True(t, s.WriteReviews(userHash, reviews))

	back, found := s.ReadReviews(userHash)
	assert.True(t, found)
	assert.Equal(t, reviews, back)

	// the sequence order is preserved
	assert.Equal(t, "fast shipping", back[0].Text)
	assert.Equal(t, "never arrived", back[1].Text)
}

func TestMarketStore(t *testing.T) {
	setup(t)
	defer teardown(t)

	m, err := reviewdb.NewMarket("cr+")
	assert.Nil(t, err)
	defer m.Close()

	key := serializer.String("offer/123")
	assert.Nil(t, m.Write(key, serializer.String("ten coins for a pizza")))

	value := serializer.String("")
	found, err := m.Read(key, &value)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, serializer.String("ten coins for a pizza"), value)

	assert.Nil(t, m.Erase(key))
	found, err = m.Read(key, &value)
	assert.Nil(t, err)
	assert.False(t, found)
}
