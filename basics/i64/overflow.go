// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package i64 provides overflow-checked arithmetic for the int64 type.
// Byte counts and input lengths are summed with it.
package i64

// Minimum and maximum value for the int64 type.
const (
	Min = -1 << 63
	Max = 1<<63 - 1
)

// Add adds x and y and detects overflow.
func Add(x, y int64) (z int64, overflow bool) {
	z = x + y
	return z, (z^x)&(z^y)&Min != 0
}

// Sum adds all values. It reports overflow if any partial sum overflows.
func Sum(v ...int64) (z int64, overflow bool) {
	for _, x := range v {
		var o bool
		if z, o = Add(z, x); o {
			return z, true
		}
	}
	return z, false
}

// FitsUint reports whether the unsigned value u can be represented as
// non-negative int64.
func FitsUint(u uint64) bool { return u <= Max }
