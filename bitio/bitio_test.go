// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"
)

func TestWriterMSBFirst(t *testing.T) {
	tests := []struct {
		bits []uint
		want []byte
	}{
		{bits: nil, want: []byte{}},
		{bits: []uint{1}, want: []byte{0x80}},
		{bits: []uint{0, 1}, want: []byte{0x40}},
		{bits: []uint{1, 0, 1, 0, 1, 0, 0, 1}, want: []byte{0xa9}},
		{bits: []uint{1, 1, 1, 1, 1, 1, 1, 1, 1}, want: []byte{0xff, 0x80}},
		{bits: []uint{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
			want: []byte{0x00, 0x20}},
	}
	for _, tc := range tests {
		buf := new(bytes.Buffer)
		w := NewWriter(buf)
		for _, b := range tc.bits {
			if err := w.WriteBit(b); err != nil {
				t.Fatalf("WriteBit(%d) error %s", b, err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush error %s", err)
		}
		if g := buf.Bytes(); !bytes.Equal(g, tc.want) {
			t.Errorf("bits %v: got %#02x; want %#02x", tc.bits, g,
				tc.want)
		}
		if g, want := w.Len(), int64(8*len(tc.want)); g != want {
			t.Errorf("bits %v: Len() = %d; want %d", tc.bits, g,
				want)
		}
	}
}

func TestWriteBits(t *testing.T) {
	buf := new(bytes.Buffer)
	w := NewWriter(buf)
	if err := w.WriteBit(0); err != nil {
		t.Fatalf("WriteBit error %s", err)
	}
	if err := w.WriteBits(1, 10); err != nil {
		t.Fatalf("WriteBits error %s", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	want := []byte{0x7f, 0xe0}
	if g := buf.Bytes(); !bytes.Equal(g, want) {
		t.Fatalf("got %#02x; want %#02x", g, want)
	}
}

func TestReaderEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00}))
	for i := 0; i < 8; i++ {
		b, err := r.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit #%d error %s", i, err)
		}
		if b != 0 {
			t.Fatalf("ReadBit #%d returned %d; want 0", i, b)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := r.ReadBit(); err != io.EOF {
			t.Fatalf("ReadBit after end returned error %v; want %v",
				err, io.EOF)
		}
	}
	if g := r.Len(); g != 8 {
		t.Fatalf("Len() = %d; want 8", g)
	}
}

type failWriter struct{ n int }

var errFail = errors.New("write failed")

func (w *failWriter) WriteByte(c byte) error {
	if w.n == 0 {
		return errFail
	}
	w.n--
	return nil
}

func TestWriterStickyError(t *testing.T) {
	w := NewWriter(&failWriter{n: 1})
	if err := w.WriteBits(1, 8); err != nil {
		t.Fatalf("WriteBits error %s", err)
	}
	if err := w.WriteBits(1, 8); err != errFail {
		t.Fatalf("WriteBits returned %v; want %v", err, errFail)
	}
	if err := w.WriteBit(0); err != errFail {
		t.Fatalf("WriteBit returned %v; want %v", err, errFail)
	}
	if err := w.Flush(); err != errFail {
		t.Fatalf("Flush returned %v; want %v", err, errFail)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bits := make([]uint, 10007)
	for i := range bits {
		bits[i] = uint(rng.Intn(2))
	}
	buf := new(bytes.Buffer)
	bw := bufio.NewWriter(buf)
	w := NewWriter(bw)
	for _, b := range bits {
		if err := w.WriteBit(b); err != nil {
			t.Fatalf("WriteBit error %s", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("bw.Flush error %s", err)
	}
	if g, want := buf.Len(), (len(bits)+7)/8; g != want {
		t.Fatalf("wrote %d bytes; want %d", g, want)
	}

	r := NewReader(bufio.NewReader(buf))
	for i, want := range bits {
		b, err := r.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit #%d error %s", i, err)
		}
		if b != want {
			t.Fatalf("bit #%d is %d; want %d", i, b, want)
		}
	}
	// padding bits are zero
	for i := len(bits); i%8 != 0; i++ {
		b, err := r.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit padding error %s", err)
		}
		if b != 0 {
			t.Fatalf("padding bit is %d; want 0", b)
		}
	}
	if _, err := r.ReadBit(); err != io.EOF {
		t.Fatalf("ReadBit at end returned %v; want %v", err, io.EOF)
	}
}
