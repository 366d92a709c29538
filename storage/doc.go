// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// A single environment directory holds one embedded key-value database
// per named file, all managed by a process-wide environment:
//
//	blkindex.dat  transaction index, block index, best chain pointer
//	addr.dat      peer addresses
//	wallet.dat    address book, owned transactions, owned keys, settings
//	reviews.dat   (legacy) user reviews
//	market.dat    (legacy) market records
//
// Within a file several logical record families share the key space.
// Keys are composite: a discriminator tag (an ASCII string) followed by
// the encoded key components, so a cursor seeked to (tag, zero suffix)
// iterates exactly one family until the tag changes.
//
// Notes:
//  1. tag          = compact-size prefixed ASCII string
//  2. ++           = concatenation of encoded data
//  3. "tx" ++ hash                    - transaction index record
//  4. "blockindex" ++ hash            - on-disk block index record
//  5. "hashBestChain"                 - best chain tip hash
//  6. "owner" ++ hash160 ++ position  - owner height record
//  7. "addr" ++ address key           - peer address record
//  8. "name", "tx", "key", "defaultkey", "setting" - wallet families
//  9. "version"                       - written once at file creation
//
// A handle binds one named file and carries a strictly nested
// transaction stack; reads and writes use the top of the stack or
// auto-commit when the stack is empty.  The environment keeps an
// open-count per file so the flush service can drop idle files from
// the recovery logs.
package storage
