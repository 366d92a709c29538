// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addrdb - the peer address store
//
// addr.dat records plus the in-memory address tables rebuilt at
// startup: the general table and the table of addresses seeded from
// the IRC discovery channel / the addr.txt seed file
package addrdb

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/obsidian-money/obsidiand/fault"
	"github.com/obsidian-money/obsidiand/serializer"
)

// DefaultPort - peer port assumed when a seed line has none
const DefaultPort = 9417

// NodeNetwork - service bit of a full relay node
const NodeNetwork = 1

// the IPv4-mapped prefix stored ahead of the four address bytes
var reservedPrefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// Address - one peer endpoint with its service bits
type Address struct {
	Services uint64
	IP       [4]byte
	Port     uint16
}

// Key - the canonical 18 byte table key: mapped prefix, address
// bytes, big-endian port
func (a Address) Key() []byte {
	key := make([]byte, 0, 18)
	key = append(key, reservedPrefix[:]...)
	key = append(key, a.IP[:]...)
	key = append(key, byte(a.Port>>8), byte(a.Port))
	return key
}

// IsNonZero - the address names a real host
func (a Address) IsNonZero() bool {
	return [4]byte{} != a.IP
}

// String - dotted quad with port
func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", a.IP[0], a.IP[1], a.IP[2], a.IP[3], a.Port)
}

// Serialize - service bits, mapped prefix, address bytes, big-endian
// port
func (a Address) Serialize(w *serializer.Writer) {
	w.WriteUint64(a.Services)
	w.WriteRaw(reservedPrefix[:])
	w.WriteRaw(a.IP[:])
	w.WriteRaw([]byte{byte(a.Port >> 8), byte(a.Port)})
}

// Deserialize - service bits, mapped prefix, address bytes, port
func (a *Address) Deserialize(r *serializer.Reader) error {
	var err error
	if a.Services, err = r.ReadUint64(); nil != err {
		return err
	}
	if _, err = r.ReadRaw(len(reservedPrefix)); nil != err {
		return err
	}
	ip, err := r.ReadRaw(len(a.IP))
	if nil != err {
		return err
	}
	copy(a.IP[:], ip)
	hi, err := r.ReadUint8()
	if nil != err {
		return err
	}
	lo, err := r.ReadUint8()
	if nil != err {
		return err
	}
	a.Port = uint16(hi)<<8 | uint16(lo)
	return nil
}

// ParseAddress - permissive "host" or "host:port" parser used for the
// seed file; anything that does not yield an IPv4 host is an error
func ParseAddress(line string, services uint64) (Address, error) {
	addr := Address{
		Services: services,
		Port:     DefaultPort,
	}

	text := strings.TrimSpace(line)
	if "" == text {
		return addr, fault.CannotDecodeAddress
	}

	host := text
	if p, portText, err := net.SplitHostPort(text); nil == err {
		port, err := strconv.ParseUint(portText, 10, 16)
		if nil != err {
			return addr, fault.CannotDecodeAddress
		}
		host = p
		addr.Port = uint16(port)
	}

	ip := net.ParseIP(host)
	if nil == ip {
		return addr, fault.CannotDecodeAddress
	}
	v4 := ip.To4()
	if nil == v4 {
		return addr, fault.CannotDecodeAddress
	}
	copy(addr.IP[:], v4)
	return addr, nil
}
