// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	ExistsError   GenericError
	InvalidError  GenericError
	NotFoundError GenericError
	ProcessError  GenericError
)

// common errors - keep in alphabetic order
var (
	AddressLoadFailed      = ProcessError("address load failed")
	AlreadyInitialised     = ProcessError("already initialised")
	CannotDecodeAddress    = InvalidError("cannot decode address")
	CannotOpenDatabaseFile = ProcessError("cannot open database file")
	CannotOpenEnvironment  = ProcessError("cannot open database environment")
	DatabaseInUse          = ProcessError("database file is still in use")
	DoubleClose            = ProcessError("database handle already closed")
	InvalidCursor          = InvalidError("invalid cursor")
	InvalidCursorFlag      = InvalidError("invalid cursor flag")
	InvalidKeyLength       = InvalidError("key length is invalid")
	KeyExists              = ExistsError("key already exists")
	KeyPairMismatch        = InvalidError("private key does not match public key")
	MissingBestChain       = NotFoundError("no block index record for best chain hash")
	NoPendingTransaction   = ProcessError("no pending transaction")
	NotInitialised         = ProcessError("not initialised")
	OutOfRange             = InvalidError("out of range")
	ReadOnlyDatabase       = InvalidError("database is read only")
	RecordTruncated        = InvalidError("record is truncated")
	WalletLoadFailed       = ProcessError("wallet load failed")
	WrongRecordTag         = InvalidError("record tag is not the expected one")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine if an exists error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an invalid error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if a not found error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if a process error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
