// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arico

import "errors"

// errUintLen indicates a byte count for an integer field that is out of
// range.
var errUintLen = errors.New("arico: integer field length out of range")

// uintLen returns the minimum number of bytes required to store u. The
// value zero requires one byte.
func uintLen(u uint64) int {
	n := 1
	for u >>= 8; u > 0; u >>= 8 {
		n++
	}
	return n
}

// putUintBE stores u as big-endian integer in p. All bytes of p are used,
// so p must be large enough to hold u.
func putUintBE(p []byte, u uint64) {
	for i := len(p) - 1; i >= 0; i-- {
		p[i] = byte(u)
		u >>= 8
	}
}

// appendUintBE appends u as big-endian integer with n bytes to p.
func appendUintBE(p []byte, u uint64, n int) []byte {
	k := len(p)
	for i := 0; i < n; i++ {
		p = append(p, 0)
	}
	putUintBE(p[k:], u)
	return p
}

// uintBE reads the big-endian integer stored in p. It supports up to 8
// bytes.
func uintBE(p []byte) (u uint64, err error) {
	if !(1 <= len(p) && len(p) <= 8) {
		return 0, errUintLen
	}
	for _, c := range p {
		u = u<<8 | uint64(c)
	}
	return u, nil
}
