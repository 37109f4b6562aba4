// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arico

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/arico/basics/i64"
	"github.com/ulikunitz/arico/model"
)

// signature stores the magic bytes at the start of every archive.
var signature = []byte{'A', 'R', 'I'}

// checkpoint is the sentinel byte following the fixed header fields and
// the symbol table.
const checkpoint byte = 0xa5

// fixedLen is the length of the signature and the three length bytes.
const fixedLen = 6

// Header describes the archive header. The signature, the field lengths
// and the checkpoints are not stored in the type; they are generated by
// MarshalBinary and checked by UnmarshalBinary.
type Header struct {
	// Length of the original input in bytes.
	Length int64
	// Width is the register width of the coder in bits.
	Width int
	// Symbols lists the byte counts in ascending byte order.
	Symbols []model.Symbol
}

// Verify checks the header for consistency.
func (h *Header) Verify() error {
	if h.Length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidFormat,
			h.Length)
	}
	if err := model.VerifyWidth(h.Width); err != nil {
		return kindError(err)
	}
	if len(h.Symbols) > 256 {
		return fmt.Errorf("%w: %d symbols", ErrInvalidFormat,
			len(h.Symbols))
	}
	if h.Length == 0 {
		if len(h.Symbols) != 0 {
			return fmt.Errorf("%w: symbols for empty input",
				ErrInvalidFormat)
		}
		return nil
	}
	if len(h.Symbols) == 0 {
		return fmt.Errorf("%w: no symbols", ErrInvalidFormat)
	}
	var n int64
	for i, s := range h.Symbols {
		if i > 0 && h.Symbols[i-1].Value >= s.Value {
			return fmt.Errorf("%w: symbols not in ascending order",
				ErrInvalidFormat)
		}
		if !(0 < s.Count && s.Count <= h.Length-n) {
			return fmt.Errorf("%w: count %d for symbol %#02x",
				ErrInvalidFormat, s.Count, s.Value)
		}
		n += s.Count
	}
	if n != h.Length {
		return fmt.Errorf("%w: counts sum to %d; length is %d",
			ErrInvalidFormat, n, h.Length)
	}
	return nil
}

// MarshalBinary converts the header into its binary representation.
func (h *Header) MarshalBinary() (data []byte, err error) {
	if err = h.Verify(); err != nil {
		return nil, err
	}
	lenLen := uintLen(uint64(h.Length))
	widthLen := uintLen(uint64(h.Width))
	var tableLen byte
	if len(h.Symbols) > 0 {
		tableLen = byte(len(h.Symbols) - 1)
	}
	data = make([]byte, 0,
		fixedLen+lenLen+widthLen+2+len(h.Symbols)*(1+lenLen))
	data = append(data, signature...)
	data = append(data, byte(lenLen), tableLen, byte(widthLen))
	data = appendUintBE(data, uint64(h.Length), lenLen)
	data = appendUintBE(data, uint64(h.Width), widthLen)
	data = append(data, checkpoint)
	for _, s := range h.Symbols {
		data = append(data, s.Value)
		data = appendUintBE(data, uint64(s.Count), lenLen)
	}
	data = append(data, checkpoint)
	return data, nil
}

// UnmarshalBinary decodes the header from data. The slice must contain
// exactly the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	g, err := ReadHeader(r)
	if err != nil {
		return err
	}
	if r.Len() > 0 {
		return fmt.Errorf("%w: %d trailing bytes after header",
			ErrInvalidFormat, r.Len())
	}
	*h = *g
	return nil
}

// readFull reads exactly len(p) bytes. A missing byte is reported as
// truncated stream.
func readFull(r io.Reader, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: header incomplete",
				ErrTruncatedStream)
		}
		return err
	}
	return nil
}

// readCheckpoint reads a single byte and checks it against the
// checkpoint value.
func readCheckpoint(r io.Reader, name string) error {
	var p [1]byte
	if err := readFull(r, p[:]); err != nil {
		return err
	}
	if p[0] != checkpoint {
		return fmt.Errorf("%w: %s checkpoint is %#02x; want %#02x",
			ErrInvalidFormat, name, p[0], checkpoint)
	}
	return nil
}

// errLength indicates a field length byte that is out of range.
var errLength = errors.New("field length out of range")

// ReadHeader reads the archive header from r. The reader is positioned
// at the start of the payload afterwards.
func ReadHeader(r io.Reader) (h *Header, err error) {
	p := make([]byte, fixedLen)
	if err = readFull(r, p[:len(signature)]); err != nil {
		return nil, err
	}
	if !bytes.Equal(p[:len(signature)], signature) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSignature,
			p[:len(signature)])
	}
	if err = readFull(r, p[len(signature):]); err != nil {
		return nil, err
	}
	lenLen, tableLen, widthLen := int(p[3]), int(p[4]), int(p[5])
	if !(1 <= lenLen && lenLen <= 8) {
		return nil, fmt.Errorf("%w: %w: length bytes %d",
			ErrInvalidFormat, errLength, lenLen)
	}
	if !(1 <= widthLen && widthLen <= 8) {
		return nil, fmt.Errorf("%w: %w: width bytes %d",
			ErrInvalidFormat, errLength, widthLen)
	}

	p = make([]byte, lenLen+widthLen)
	if err = readFull(r, p); err != nil {
		return nil, err
	}
	length, _ := uintBE(p[:lenLen])
	if !i64.FitsUint(length) {
		return nil, fmt.Errorf("%w: length %d out of range",
			ErrInvalidFormat, length)
	}
	width, _ := uintBE(p[lenLen:])
	if width > model.MaxWidth {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedWidth, width)
	}
	h = &Header{Length: int64(length), Width: int(width)}
	if err = readCheckpoint(r, "first"); err != nil {
		return nil, err
	}

	if h.Length > 0 {
		n := tableLen + 1
		p = make([]byte, n*(1+lenLen))
		if err = readFull(r, p); err != nil {
			return nil, err
		}
		h.Symbols = make([]model.Symbol, n)
		for i := range h.Symbols {
			q := p[i*(1+lenLen) : (i+1)*(1+lenLen)]
			c, _ := uintBE(q[1:])
			if !i64.FitsUint(c) {
				return nil, fmt.Errorf(
					"%w: count for %#02x out of range",
					ErrInvalidFormat, q[0])
			}
			h.Symbols[i] = model.Symbol{Value: q[0], Count: int64(c)}
		}
	} else if tableLen != 0 {
		return nil, fmt.Errorf("%w: table for empty input",
			ErrInvalidFormat)
	}
	if err = readCheckpoint(r, "second"); err != nil {
		return nil, err
	}
	if err = h.Verify(); err != nil {
		return nil, err
	}
	return h, nil
}

// writeHeader writes the binary header to w.
func writeHeader(w io.Writer, h *Header) (n int, err error) {
	data, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return w.Write(data)
}
