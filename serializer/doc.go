// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package serializer - the disk byte stream codec
//
// All records stored through the storage package are encoded with this
// package: little-endian integers, compact-size prefixed strings and
// byte vectors, raw fixed-width hashes.
//
// Composite keys are built by serializing the components one after the
// other with no framing, so the lexicographic order of an encoded key
// is the order of its encoded components.  The cursor scan protocol in
// the store packages depends on this.
//
// Buffers that may have carried private key material must be wiped
// before they are released; Writer.Wipe, Reader.Wipe and WipeBytes
// exist for that and the storage package calls them on every path.
package serializer
