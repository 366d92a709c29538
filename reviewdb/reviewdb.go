// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reviewdb - the legacy review and market stores
//
// remnants of the early distributed market: user records and ordered
// review sequences in reviews.dat, free-form records in market.dat.
// no loader exists; the records are only touched point-wise.
package reviewdb

import (
	"github.com/obsidian-money/obsidiand/addrdb"
	"github.com/obsidian-money/obsidiand/serializer"
	"github.com/obsidian-money/obsidiand/storage"
)

// the named files these stores bind
const (
	DatabaseFile       = "reviews.dat"
	MarketDatabaseFile = "market.dat"
)

// record family tags
const (
	tagUser    = "user"
	tagReviews = "reviews"
)

// User - a market participant
type User struct {
	Version   int32
	PublicKey []byte
	Addresses []addrdb.Address
}

// Serialize - version, key, address vector
func (u User) Serialize(w *serializer.Writer) {
	w.WriteInt32(u.Version)
	w.WriteVarBytes(u.PublicKey)
	w.WriteCompactSize(uint64(len(u.Addresses)))
	for _, addr := range u.Addresses {
		addr.Serialize(w)
	}
}

// Deserialize - version, key, address vector
func (u *User) Deserialize(r *serializer.Reader) error {
	var err error
	if u.Version, err = r.ReadInt32(); nil != err {
		return err
	}
	if u.PublicKey, err = r.ReadVarBytes(); nil != err {
		return err
	}
	count, err := r.ReadCompactSize()
	if nil != err {
		return err
	}
	u.Addresses = make([]addrdb.Address, count)
	for i := range u.Addresses {
		if err = u.Addresses[i].Deserialize(r); nil != err {
			return err
		}
	}
	return nil
}

// Review - one signed review of a user
type Review struct {
	Version       int32
	UserHash      serializer.Uint256
	Rating        uint8
	Text          string
	Time          uint32
	PublicKeyFrom []byte
	Signature     []byte
}

// Serialize - all fields in order
func (v Review) Serialize(w *serializer.Writer) {
	w.WriteInt32(v.Version)
	v.UserHash.Serialize(w)
	w.WriteUint8(v.Rating)
	w.WriteString(v.Text)
	w.WriteUint32(v.Time)
	w.WriteVarBytes(v.PublicKeyFrom)
	w.WriteVarBytes(v.Signature)
}

// Deserialize - all fields in order
func (v *Review) Deserialize(r *serializer.Reader) error {
	var err error
	if v.Version, err = r.ReadInt32(); nil != err {
		return err
	}
	if err = v.UserHash.Deserialize(r); nil != err {
		return err
	}
	if v.Rating, err = r.ReadUint8(); nil != err {
		return err
	}
	if v.Text, err = r.ReadString(); nil != err {
		return err
	}
	if v.Time, err = r.ReadUint32(); nil != err {
		return err
	}
	if v.PublicKeyFrom, err = r.ReadVarBytes(); nil != err {
		return err
	}
	v.Signature, err = r.ReadVarBytes()
	return err
}

// ReviewList - the ordered review sequence stored per user
type ReviewList []Review

// Serialize - compact count then each review
func (l ReviewList) Serialize(w *serializer.Writer) {
	w.WriteCompactSize(uint64(len(l)))
	for _, v := range l {
		v.Serialize(w)
	}
}

// Deserialize - compact count then each review
func (l *ReviewList) Deserialize(r *serializer.Reader) error {
	count, err := r.ReadCompactSize()
	if nil != err {
		return err
	}
	list := make(ReviewList, count)
	for i := range list {
		if err = list[i].Deserialize(r); nil != err {
			return err
		}
	}
	*l = list
	return nil
}

// Store - a handle bound to reviews.dat
type Store struct {
	h *storage.Handle
}

// New - open the review store
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

type hashKey struct {
	tag  string
	hash serializer.Uint256
}

func (k hashKey) Serialize(w *serializer.Writer) {
	w.WriteString(k.tag)
	k.hash.Serialize(w)
}

// ReadUser - a user record
func (s *Store) ReadUser(hash serializer.Uint256) (User, bool) {
	user := User{}
	found, err := s.h.Read(hashKey{tag: tagUser, hash: hash}, &user)
	return user, found && nil == err
}

// WriteUser - store a user record
func (s *Store) WriteUser(hash serializer.Uint256, user User) bool {
	return nil == s.h.Write(hashKey{tag: tagUser, hash: hash}, user, true)
}

// ReadReviews - the review sequence of a user
func (s *Store) ReadReviews(hash serializer.Uint256) (ReviewList, bool) {
	reviews := ReviewList{}
	found, err := s.h.Read(hashKey{tag: tagReviews, hash: hash}, &reviews)
	return reviews, found && nil == err
}

// WriteReviews - store the review sequence of a user
func (s *Store) WriteReviews(hash serializer.Uint256, reviews ReviewList) bool {
	return nil == s.h.Write(hashKey{tag: tagReviews, hash: hash}, reviews, true)
}

// MarketStore - a handle bound to market.dat
//
// only the generic record surface remains in use
type MarketStore struct {
	h *storage.Handle
}

// NewMarket - open the market store
func NewMarket(mode string) (*MarketStore, error) {
	h, err := storage.NewHandle(MarketDatabaseFile, mode, false)
	if nil != err {
		return nil, err
	}
	return &MarketStore{h: h}, nil
}

// Close - release the underlying handle
func (m *MarketStore) Close() {
	m.h.Close()
}

// Read - generic point read
func (m *MarketStore) Read(key serializer.Encodable, value serializer.Decodable) (bool, error) {
	return m.h.Read(key, value)
}

// Write - generic point write
func (m *MarketStore) Write(key serializer.Encodable, value serializer.Encodable) error {
	return m.h.Write(key, value, true)
}

// Erase - generic point delete
func (m *MarketStore) Erase(key serializer.Encodable) error {
	return m.h.Erase(key)
}
