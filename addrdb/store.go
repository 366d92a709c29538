// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrdb

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

// DatabaseFile - the named file this store binds
const DatabaseFile = "addr.dat"

// SeedFile - optional plain text seed list in the application
// directory, one address per line
const SeedFile = "addr.txt"

// record family tag
const tagAddr = "addr"

// Store - a handle bound to addr.dat
type Store struct {
	h *storage.Handle
}

// New - open the peer address store
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

type addrKey struct {
	key []byte
}

func (k addrKey) Serialize(w *serializer.Writer) {
	w.WriteString(tagAddr)
	w.WriteVarBytes(k.key)
}

// WriteAddress - store one peer address record
func (s *Store) WriteAddress(addr Address) bool {
	return nil == s.h.Write(addrKey{key: addr.Key()}, addr, true)
}

// insert into the general table and write through
//
// must hold the general table lock
func (s *Store) addAddressLocked(addr Address) {
	addresses.table[string(addr.Key())] = addr
	s.WriteAddress(addr)
}

// LoadAddresses - rebuild the in-memory address tables
//
// both tables are filled under their locks, IRC table first.  the
// seed file is read before the database so seeded peers are written
// through and survive the next restart.
func (s *Store) LoadAddresses() bool {
	ircAddresses.Lock()
	defer ircAddresses.Unlock()
	addresses.Lock()
	defer addresses.Unlock()

	// user provided seed addresses; malformed lines are skipped
	seedPath := filepath.Join(storage.Directory(), SeedFile)
	if f, err := os.Open(seedPath); nil == err {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			addr, err := ParseAddress(scanner.Text(), NodeNetwork)
			if nil != err || !addr.IsNonZero() {
				continue
			}
			s.addAddressLocked(addr)
			ircAddresses.table[string(addr.Key())] = addr
		}
		f.Close()
	}

	cursor, err := s.h.NewCursor()
	if nil != err {
		return false
	}
	defer cursor.Close()

	key := []byte{}
	value := []byte{}
loop:
	for {
		found, err := cursor.Read(&key, &value, storage.Next)
		if nil != err {
			return false
		}
		if !found {
			break loop
		}

		r := serializer.NewReader(key)
		tag, err := r.ReadString()
		if nil != err || tagAddr != tag {
			continue loop
		}

		addr := Address{}
		if err = serializer.Decode(value, &addr); nil != err {
			globalData.log.Errorf("address record does not decode: %s", err)
			continue loop
		}
		addresses.table[string(addr.Key())] = addr
	}

	// historical warm-up probe of the table with an 18 byte zero key;
	// kept until property testing can refute the need for it
	_, _ = addresses.table[string(make([]byte, 18))]

	globalData.log.Infof("loaded %d addresses (%d seeded)", len(addresses.table), len(ircAddresses.table))
	return true
}

// LoadAddresses - open the store read/create and rebuild the tables
func LoadAddresses() bool {
	s, err := New("cr+")
	if nil != err {
		return false
	}
	defer s.Close()
	return s.LoadAddresses()
}
