// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model provides the static order-0 probability model used by
// the arithmetic coder. Byte frequencies are counted in a single pass and
// scaled into an integer range that depends on the register width of the
// coder.
package model

import (
	"io"

	"github.com/ulikunitz/arico/basics/i64"
)

// Symbol describes how often a single byte value occurs in the input.
type Symbol struct {
	Value byte
	Count int64
}

// Counts stores the number of occurrences for every byte value.
type Counts [256]int64

// Add counts the bytes in p.
func (c *Counts) Add(p []byte) {
	for _, b := range p {
		c[b]++
	}
}

// Total returns the sum of all counts. The flag overflow is set if the
// sum doesn't fit into an int64.
func (c *Counts) Total() (n int64, overflow bool) {
	return i64.Sum(c[:]...)
}

// Symbols returns the byte values with a count of at least one in
// ascending byte order. The decoder relies on this order to rebuild the
// same distribution from the archive header.
func (c *Counts) Symbols() []Symbol {
	var s []Symbol
	for v, k := range c {
		if k > 0 {
			s = append(s, Symbol{Value: byte(v), Count: k})
		}
	}
	return s
}

// Count reads r until io.EOF and counts all bytes. It returns the counts
// and the number of bytes read. Zero bytes are counted like any other
// byte; only io.EOF terminates the scan.
func Count(r io.Reader) (c Counts, n int64, err error) {
	p := make([]byte, 32*1024)
	for {
		k, err := r.Read(p)
		c.Add(p[:k])
		n += int64(k)
		if err != nil {
			if err == io.EOF {
				return c, n, nil
			}
			return c, n, err
		}
	}
}

// Build counts the bytes of r and returns the input length together with
// the ordered symbol table.
func Build(r io.Reader) (n int64, symbols []Symbol, err error) {
	c, n, err := Count(r)
	if err != nil {
		return n, nil, err
	}
	return n, c.Symbols(), nil
}
