// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ulikunitz/arico/basics/i64"
)

const (
	// MinWidth is the smallest supported register width. Two bits are
	// reserved as guard bits, so a width of 2 supports only a single
	// symbol.
	MinWidth = 2
	// MaxWidth is the largest supported register width.
	MaxWidth = 4096
)

var (
	// ErrWidth indicates a register width outside of the supported range.
	ErrWidth = errors.New("model: unsupported register width")
	// ErrOverflow indicates that a symbol count is scaled to zero.
	ErrOverflow = errors.New("model: symbol frequency scales to zero")
	// ErrSymbols indicates an invalid symbol table.
	ErrSymbols = errors.New("model: invalid symbol table")
)

// VerifyWidth checks whether the register width is supported.
func VerifyWidth(width int) error {
	if !(MinWidth <= width && width <= MaxWidth) {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrWidth, width,
			MinWidth, MaxWidth)
	}
	return nil
}

// NominalScale returns 2^(width-2), the value the counts are scaled to
// before truncation. The coding range after renormalization is always
// larger than a quarter of the register range, so a scale of at most
// 2^(width-2) keeps every non-empty interval non-empty in the registers.
func NominalScale(width int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(width-2))
}

// Interval is the half-open interval [Low, High) assigned to a symbol.
type Interval struct {
	Symbol byte
	Low    *big.Int
	High   *big.Int
}

// Distribution is the cumulative distribution of the scaled symbol
// frequencies. The intervals are contiguous and ordered by ascending byte
// value. The last interval ends at Scale, which might be smaller than the
// nominal scale because of truncation.
type Distribution struct {
	width   int
	symbols []byte
	// bounds[i] is the lower and bounds[i+1] the upper bound of
	// symbols[i].
	bounds []*big.Int
	// index maps a byte value to its position in symbols plus one.
	index [256]int
}

// NewDistribution scales the symbol counts for the given register width
// and computes the cumulative intervals. Each count c is scaled to
// floor(c * 2^(width-2) / n), where n is the sum of all counts. The
// function returns an error wrapping ErrOverflow if any scaled count is
// zero.
func NewDistribution(symbols []Symbol, width int) (d *Distribution, err error) {
	if err = VerifyWidth(width); err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols", ErrSymbols)
	}
	var n int64
	for i, s := range symbols {
		if s.Count <= 0 {
			return nil, fmt.Errorf("%w: count %d for symbol %#02x",
				ErrSymbols, s.Count, s.Value)
		}
		if i > 0 && symbols[i-1].Value >= s.Value {
			return nil, fmt.Errorf(
				"%w: symbols not in ascending order", ErrSymbols)
		}
		var overflow bool
		if n, overflow = i64.Add(n, s.Count); overflow {
			return nil, fmt.Errorf("%w: total count overflow",
				ErrSymbols)
		}
	}

	nominal := NominalScale(width)
	total := big.NewInt(n)
	d = &Distribution{
		width:   width,
		symbols: make([]byte, len(symbols)),
		bounds:  make([]*big.Int, len(symbols)+1),
	}
	d.bounds[0] = new(big.Int)
	var c big.Int
	for i, s := range symbols {
		c.SetInt64(s.Count)
		c.Mul(&c, nominal)
		c.Quo(&c, total)
		if c.Sign() == 0 {
			return nil, fmt.Errorf(
				"%w: symbol %#02x with count %d of %d at width %d",
				ErrOverflow, s.Value, s.Count, n, width)
		}
		d.symbols[i] = s.Value
		d.bounds[i+1] = new(big.Int).Add(d.bounds[i], &c)
		d.index[s.Value] = i + 1
	}
	return d, nil
}

// Width returns the register width the distribution has been scaled for.
func (d *Distribution) Width() int { return d.width }

// Len returns the number of symbols.
func (d *Distribution) Len() int { return len(d.symbols) }

// Scale returns the upper bound of the last interval. The value must not
// be modified.
func (d *Distribution) Scale() *big.Int { return d.bounds[len(d.symbols)] }

// Interval returns the bounds for the symbol s. The returned values must
// not be modified. The flag ok is false if the symbol is not part of the
// distribution.
func (d *Distribution) Interval(s byte) (low, high *big.Int, ok bool) {
	i := d.index[s] - 1
	if i < 0 {
		return nil, nil, false
	}
	return d.bounds[i], d.bounds[i+1], true
}

// Intervals returns copies of all intervals in ascending order.
func (d *Distribution) Intervals() []Interval {
	iv := make([]Interval, len(d.symbols))
	for i, s := range d.symbols {
		iv[i] = Interval{
			Symbol: s,
			Low:    new(big.Int).Set(d.bounds[i]),
			High:   new(big.Int).Set(d.bounds[i+1]),
		}
	}
	return iv
}

// Find returns the symbol whose interval contains v. The flag ok is false
// if v is outside of [0, Scale).
func (d *Distribution) Find(v *big.Int) (s byte, low, high *big.Int, ok bool) {
	if v.Sign() < 0 || v.Cmp(d.Scale()) >= 0 {
		return 0, nil, nil, false
	}
	n := len(d.symbols)
	i := sort.Search(n, func(i int) bool {
		return d.bounds[i+1].Cmp(v) > 0
	})
	return d.symbols[i], d.bounds[i], d.bounds[i+1], true
}

// Verify checks that the intervals are non-empty, contiguous, ordered by
// ascending symbol and cover exactly [0, Scale).
func (d *Distribution) Verify() error {
	if len(d.symbols) == 0 || len(d.bounds) != len(d.symbols)+1 {
		return fmt.Errorf("%w: no intervals", ErrSymbols)
	}
	if d.bounds[0].Sign() != 0 {
		return fmt.Errorf("%w: first interval doesn't start at zero",
			ErrSymbols)
	}
	for i, s := range d.symbols {
		if i > 0 && d.symbols[i-1] >= s {
			return fmt.Errorf("%w: symbols not ordered", ErrSymbols)
		}
		if d.bounds[i].Cmp(d.bounds[i+1]) >= 0 {
			return fmt.Errorf("%w: empty interval for %#02x",
				ErrOverflow, s)
		}
	}
	if d.Scale().Cmp(NominalScale(d.width)) > 0 {
		return fmt.Errorf("%w: scale exceeds 2^%d", ErrSymbols,
			d.width-2)
	}
	return nil
}
