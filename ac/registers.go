// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ac implements a finite-precision arithmetic encoder and decoder
// for the static byte model of package model. The low, high and code
// registers have a configurable width and are represented by big
// integers, so widths beyond 64 bits are supported.
package ac

import (
	"fmt"
	"math/big"

	"github.com/ulikunitz/arico/model"
)

// registers holds the coding interval [low, high] shared by encoder and
// decoder.
type registers struct {
	width int
	low   big.Int
	high  big.Int

	// scratch values
	rng big.Int
	t   big.Int
}

// init resets the registers to [0, 2^width-1].
func (r *registers) init(width int) {
	r.width = width
	r.low.SetInt64(0)
	r.high.Lsh(big.NewInt(1), uint(width))
	r.high.Sub(&r.high, big.NewInt(1))
}

// setRange computes high - low + 1 in r.rng.
func (r *registers) setRange() {
	r.rng.Sub(&r.high, &r.low)
	r.rng.Add(&r.rng, big.NewInt(1))
}

// narrow reduces the interval to the sub-interval [a, b) of [0, scale).
func (r *registers) narrow(a, b, scale *big.Int) {
	r.setRange()
	// high = low + range*b/scale - 1
	r.t.Mul(&r.rng, b)
	r.t.Quo(&r.t, scale)
	r.high.Add(&r.low, &r.t)
	r.high.Sub(&r.high, big.NewInt(1))
	// low = low + range*a/scale
	r.t.Mul(&r.rng, a)
	r.t.Quo(&r.t, scale)
	r.low.Add(&r.low, &r.t)
}

// top returns the most significant bits of low and high.
func (r *registers) top() (lo, hi uint) {
	return r.low.Bit(r.width - 1), r.high.Bit(r.width - 1)
}

// underflow reports the E3 condition: the second bit of low is 1 and the
// second bit of high is 0. It must only be called if the top bits differ.
func (r *registers) underflow() bool {
	return r.low.Bit(r.width-2) == 1 && r.high.Bit(r.width-2) == 0
}

// flipSecond toggles the second most significant bit of x.
func flipSecond(x *big.Int, width int) {
	x.SetBit(x, width-2, x.Bit(width-2)^1)
}

// shiftIn shifts x left by one bit, drops the bit leaving the register
// and sets bit 0 to b.
func shiftIn(x *big.Int, width int, b uint) {
	x.Lsh(x, 1)
	x.SetBit(x, width, 0)
	x.SetBit(x, 0, b)
}

// shift moves the interval one bit to the left. Low receives a 0 and
// high a 1 as least significant bit.
func (r *registers) shift() {
	shiftIn(&r.low, r.width, 0)
	shiftIn(&r.high, r.width, 1)
}

// widen applies the E3 step to the interval.
func (r *registers) widen() {
	flipSecond(&r.low, r.width)
	flipSecond(&r.high, r.width)
}

// verifyInterval panics if the interval [a, b) is empty. The model
// rejects such distributions, so the panic indicates a programming error.
func verifyInterval(s byte, a, b *big.Int) {
	if a.Cmp(b) >= 0 {
		panic(fmt.Sprintf("ac: empty interval for symbol %#02x", s))
	}
}

// distWidth returns the register width of the distribution.
func distWidth(d *model.Distribution) int {
	w := d.Width()
	if w < model.MinWidth {
		panic("ac: register width too small")
	}
	return w
}
