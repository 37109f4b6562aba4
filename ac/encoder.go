// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/arico/bitio"
	"github.com/ulikunitz/arico/model"
)

// ErrUnknownSymbol indicates a symbol that is not part of the
// distribution.
var ErrUnknownSymbol = errors.New("ac: symbol not in distribution")

// errClosed is returned if the encoder has already been closed.
var errClosed = errors.New("ac: encoder closed")

// Encoder encodes bytes using a static distribution. The resolved bits
// are written most significant bit first to the underlying byte writer.
type Encoder struct {
	w    *bitio.Writer
	dist *model.Distribution
	r    registers
	// pending counts the bits deferred by E3 steps.
	pending int64
	closed  bool
}

// NewEncoder creates a new encoder writing to w.
func NewEncoder(w io.ByteWriter, d *model.Distribution) *Encoder {
	e := &Encoder{
		w:    bitio.NewWriter(w),
		dist: d,
	}
	e.r.init(distWidth(d))
	return e
}

// emit writes bit b followed by the pending bits, which are the
// complement of b.
func (e *Encoder) emit(b uint) error {
	if err := e.w.WriteBit(b); err != nil {
		return err
	}
	if err := e.w.WriteBits(b^1, e.pending); err != nil {
		return err
	}
	e.pending = 0
	return nil
}

// Encode encodes a single byte.
func (e *Encoder) Encode(s byte) error {
	if e.closed {
		return errClosed
	}
	a, b, ok := e.dist.Interval(s)
	if !ok {
		return fmt.Errorf("%w: %#02x", ErrUnknownSymbol, s)
	}
	verifyInterval(s, a, b)
	e.r.narrow(a, b, e.dist.Scale())

	for {
		lo, hi := e.r.top()
		if lo == hi {
			// E1 and E2
			if err := e.emit(lo); err != nil {
				return err
			}
		} else if e.r.underflow() {
			// E3
			e.r.widen()
			e.pending++
		} else {
			return nil
		}
		e.r.shift()
	}
}

// Close terminates the code. It writes enough bits to select a value
// inside the final interval, pads the stream to a byte boundary and adds
// at least width zero bits, so the decoder never runs out of bits while
// filling its code register.
func (e *Encoder) Close() error {
	if e.closed {
		return errClosed
	}
	e.closed = true
	// After renormalization low < 2^(w-1) <= high holds and either
	// low < 2^(w-2) or high >= 3*2^(w-2). The value 2^(w-2) or 2^(w-1)
	// lies inside the interval.
	e.pending++
	if err := e.emit(e.r.low.Bit(e.r.width - 2)); err != nil {
		return err
	}
	if err := e.w.WriteBits(0, int64(e.r.width)); err != nil {
		return err
	}
	return e.w.Flush()
}

// Bits returns the number of bits written so far.
func (e *Encoder) Bits() int64 { return e.w.Len() }
