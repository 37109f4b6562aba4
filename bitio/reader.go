// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitio

import "io"

// Reader extracts single bits from a byte stream.
type Reader struct {
	r io.ByteReader
	c byte
	// k is the number of bits of c that have already been returned. A
	// value of 8 requires the next byte to be read.
	k   uint
	n   int64
	err error
}

// NewReader creates a new bit reader.
func NewReader(r io.ByteReader) *Reader {
	return &Reader{r: r, k: 8}
}

// ReadBit returns the next bit. If the byte source is exhausted it
// returns io.EOF, which is never combined with a valid bit. All errors
// are sticky.
func (r *Reader) ReadBit() (b uint, err error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.k == 8 {
		c, err := r.r.ReadByte()
		if err != nil {
			r.err = err
			return 0, err
		}
		r.c, r.k = c, 0
	}
	b = uint(r.c>>(7-r.k)) & 1
	r.k++
	r.n++
	return b, nil
}

// Len returns the number of bits read.
func (r *Reader) Len() int64 { return r.n }
