// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// the operation recorded for an overlay entry
type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

// read-through overlay of one open transaction level
//
// puts and deletes recorded here shadow the database until the level
// commits or aborts; a delete marker must be distinguishable from an
// unknown key, otherwise a key deleted inside the transaction would
// still be found in the database below
type overlayCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

func newOverlayCache() *overlayCache {
	// entries live exactly as long as the transaction level
	return &overlayCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// returns the recorded value and operation; found is false when the
// key was never touched at this level
func (c *overlayCache) get(key []byte) ([]byte, dbOperation, bool) {
	obj, found := c.cache.Get(string(key))
	if !found {
		return nil, dbPut, false
	}
	data := obj.(cacheData)
	return data.value, data.op, true
}

// record an operation; the value is copied so the caller may wipe its
// buffer afterwards
func (c *overlayCache) set(op dbOperation, key []byte, value []byte) {
	data := cacheData{
		op: op,
	}
	if dbPut == op {
		data.value = make([]byte, len(value))
		copy(data.value, value)
	}
	c.cache.Set(string(key), data, cache.NoExpiration)
}

func (c *overlayCache) clear() {
	c.cache.Flush()
}
