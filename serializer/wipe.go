// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serializer

// WipeBytes - overwrite a buffer with zeros
//
// the wallet stores private keys through the generic read/write path,
// so every transient key/value buffer is destroyed this way before it
// is released
func WipeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
