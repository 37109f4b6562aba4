// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ac

import (
	"errors"
	"io"
	"math/big"

	"github.com/ulikunitz/arico/bitio"
	"github.com/ulikunitz/arico/model"
)

var (
	// ErrTruncated indicates that the bit stream ended before all
	// symbols have been decoded.
	ErrTruncated = errors.New("ac: truncated stream")
	// ErrCorrupt indicates a code value outside of the coding interval.
	ErrCorrupt = errors.New("ac: corrupt stream")
)

// Decoder decodes a fixed number of bytes from a bit stream produced by
// Encoder with an identical distribution.
type Decoder struct {
	br   *bitio.Reader
	dist *model.Distribution
	r    registers
	code big.Int
	v    big.Int
	// n is the number of symbols to decode; k the number decoded.
	n   int64
	k   int64
	err error
}

// NewDecoder creates a decoder for n symbols. It fills the code register
// with the first width bits of the stream; missing bits at the end of the
// stream are treated as zeros.
func NewDecoder(r io.ByteReader, d *model.Distribution, n int64) (dec *Decoder, err error) {
	if n < 0 {
		return nil, errors.New("ac: negative number of symbols")
	}
	dec = &Decoder{
		br:   bitio.NewReader(r),
		dist: d,
		n:    n,
	}
	dec.r.init(distWidth(d))
	for i := 0; i < dec.r.width; i++ {
		b, err := dec.br.ReadBit()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			b = 0
		}
		shiftIn(&dec.code, dec.r.width, b)
	}
	return dec, nil
}

// Decode returns the next byte. After all n bytes have been decoded it
// returns io.EOF. Errors are sticky.
func (d *Decoder) Decode() (s byte, err error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.k >= d.n {
		return 0, io.EOF
	}
	if s, err = d.decode(); err != nil {
		d.err = err
		return 0, err
	}
	return s, nil
}

func (d *Decoder) decode() (s byte, err error) {
	// value = ((code - low + 1) * scale - 1) / range
	scale := d.dist.Scale()
	d.r.setRange()
	d.v.Sub(&d.code, &d.r.low)
	d.v.Add(&d.v, big.NewInt(1))
	d.v.Mul(&d.v, scale)
	d.v.Sub(&d.v, big.NewInt(1))
	d.v.Quo(&d.v, &d.r.rng)
	s, a, b, ok := d.dist.Find(&d.v)
	if !ok {
		return 0, ErrCorrupt
	}
	d.r.narrow(a, b, scale)
	d.k++
	if d.k == d.n {
		// No more bits are required.
		return s, nil
	}
	if err = d.normalize(); err != nil {
		return 0, err
	}
	return s, nil
}

// normalize mirrors the renormalization of the encoder and shifts the
// next bits of the stream into the code register.
func (d *Decoder) normalize() error {
	w := d.r.width
	for {
		lo, hi := d.r.top()
		if lo != hi {
			if !d.r.underflow() {
				return nil
			}
			d.r.widen()
			flipSecond(&d.code, w)
		}
		d.r.shift()
		b, err := d.br.ReadBit()
		if err != nil {
			if err == io.EOF {
				return ErrTruncated
			}
			return err
		}
		shiftIn(&d.code, w, b)
	}
}

// Decoded returns the number of bytes decoded.
func (d *Decoder) Decoded() int64 { return d.k }
