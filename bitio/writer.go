// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitio supports the writing and reading of single bits to and
// from byte streams. Bits are packed into bytes starting with the most
// significant bit.
package bitio

import "io"

// Writer packs single bits into bytes. Full bytes are written to the
// underlying byte writer. The first write error is kept and returned by
// all following calls.
type Writer struct {
	w io.ByteWriter
	// c holds the bits of the trailing partial byte in its high bits.
	c byte
	// k is the number of bits used in c (0..7)
	k   uint
	n   int64
	err error
}

// NewWriter creates a new bit writer.
func NewWriter(w io.ByteWriter) *Writer {
	return &Writer{w: w}
}

// WriteBit appends the lowest bit of b to the stream.
func (w *Writer) WriteBit(b uint) error {
	if w.err != nil {
		return w.err
	}
	w.c |= byte(b&1) << (7 - w.k)
	w.k++
	w.n++
	if w.k < 8 {
		return nil
	}
	if err := w.w.WriteByte(w.c); err != nil {
		w.err = err
		return err
	}
	w.c, w.k = 0, 0
	return nil
}

// WriteBits writes the bit b n times.
func (w *Writer) WriteBits(b uint, n int64) error {
	for ; n > 0; n-- {
		if err := w.WriteBit(b); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the trailing partial byte. The unused low bits are zero.
// After Flush the stream is byte-aligned.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.k == 0 {
		return nil
	}
	if err := w.w.WriteByte(w.c); err != nil {
		w.err = err
		return err
	}
	w.n += int64(8 - w.k)
	w.c, w.k = 0, 0
	return nil
}

// Len returns the number of bits written including the padding bits
// added by Flush.
func (w *Writer) Len() int64 { return w.n }
