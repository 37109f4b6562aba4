// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arico

import (
	"bufio"
	"errors"
	"io"

	"github.com/ulikunitz/arico/ac"
	"github.com/ulikunitz/arico/model"
)

// Reader decompresses an archive. The header is read by NewReader; the
// payload is decoded while Read is called.
type Reader struct {
	h   Header
	dec *ac.Decoder
	err error
}

// byteReader is required by the header parser and the decoder.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// newByteReader returns r as byteReader adding a buffer if required.
func newByteReader(r io.Reader) byteReader {
	if br, ok := r.(byteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// NewReader reads the archive header from r and creates a reader that
// returns the decompressed data. If r doesn't support io.ByteReader it
// is buffered, so the Reader may read beyond the end of the archive.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, errors.New("arico: reader must not be nil")
	}
	br := newByteReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}
	z := &Reader{h: *h}
	if h.Length == 0 {
		return z, nil
	}
	dist, err := model.NewDistribution(h.Symbols, h.Width)
	if err != nil {
		return nil, kindError(err)
	}
	z.dec, err = ac.NewDecoder(br, dist, h.Length)
	if err != nil {
		return nil, kindError(err)
	}
	return z, nil
}

// Header returns a copy of the archive header.
func (z *Reader) Header() Header {
	h := z.h
	h.Symbols = append(h.Symbols[:0:0], z.h.Symbols...)
	return h
}

// Read decompresses data into p. It returns io.EOF after all bytes of
// the original input have been returned. Errors are sticky.
func (z *Reader) Read(p []byte) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}
	if z.dec == nil {
		z.err = io.EOF
		return 0, io.EOF
	}
	for n < len(p) {
		c, err := z.dec.Decode()
		if err != nil {
			if err != io.EOF {
				err = kindError(err)
			}
			z.err = err
			return n, err
		}
		p[n] = c
		n++
	}
	return n, nil
}

// Decompress decompresses the archive read from r and writes the
// original data to w. It returns the number of bytes written.
func Decompress(w io.Writer, r io.Reader) (n int64, err error) {
	z, err := NewReader(r)
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	n, err = io.Copy(bw, z)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return n, err
}
