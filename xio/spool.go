// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xio provides I/O helpers. The [Spool] type stores a stream
// that must be read twice, keeping small streams in memory and spilling
// larger ones into a temporary file. The [CloserStack] type closes a
// sequence of resources in reverse order.
package xio

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// errSpoolClosed indicates that the spool has been closed.
var errSpoolClosed = errors.New("xio: spool closed")

// Spool collects written data. Up to limit bytes are kept in memory;
// beyond that the data is moved into a temporary file. The spool must be
// closed to remove the temporary file.
type Spool struct {
	dir    string
	limit  int64
	buf    bytes.Buffer
	f      *os.File
	n      int64
	closed bool
}

// NewSpool creates a new spool. The temporary file is created in dir; if
// dir is empty os.TempDir is used.
func NewSpool(dir string, limit int64) *Spool {
	return &Spool{dir: dir, limit: limit}
}

// spill moves the buffered data into a temporary file.
func (s *Spool) spill() error {
	f, err := os.CreateTemp(s.dir, "arico-spool-*")
	if err != nil {
		return err
	}
	if _, err = s.buf.WriteTo(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	s.f = f
	s.buf = bytes.Buffer{}
	return nil
}

// Write appends p to the spool.
func (s *Spool) Write(p []byte) (n int, err error) {
	if s.closed {
		return 0, errSpoolClosed
	}
	if s.f == nil && int64(s.buf.Len())+int64(len(p)) > s.limit {
		if err = s.spill(); err != nil {
			return 0, err
		}
	}
	if s.f != nil {
		n, err = s.f.Write(p)
	} else {
		n, err = s.buf.Write(p)
	}
	s.n += int64(n)
	return n, err
}

// Len returns the number of bytes written to the spool.
func (s *Spool) Len() int64 { return s.n }

// Spilled reports whether the data has been moved into a file.
func (s *Spool) Spilled() bool { return s.f != nil }

// ReadSeeker returns a reader positioned at the start of the spooled
// data. The reader becomes invalid if the spool is written to or closed.
func (s *Spool) ReadSeeker() (io.ReadSeeker, error) {
	if s.closed {
		return nil, errSpoolClosed
	}
	if s.f == nil {
		return bytes.NewReader(s.buf.Bytes()), nil
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return s.f, nil
}

// Close releases the memory and removes the temporary file.
func (s *Spool) Close() error {
	if s.closed {
		return errSpoolClosed
	}
	s.closed = true
	s.buf = bytes.Buffer{}
	if s.f == nil {
		return nil
	}
	name := s.f.Name()
	err := s.f.Close()
	if rerr := os.Remove(name); err == nil {
		err = rerr
	}
	s.f = nil
	return err
}

// Rescannable returns r if it supports seeking. Otherwise it copies r
// into a new spool and returns the spool's reader. The returned close
// function must be called after the reader is no longer needed.
func Rescannable(r io.Reader, dir string, limit int64) (rs io.ReadSeeker, closeFn func() error, err error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		if _, err = rs.Seek(0, io.SeekCurrent); err == nil {
			return rs, func() error { return nil }, nil
		}
	}
	s := NewSpool(dir, limit)
	if _, err = io.Copy(s, r); err != nil {
		s.Close()
		return nil, nil, err
	}
	if rs, err = s.ReadSeeker(); err != nil {
		s.Close()
		return nil, nil, err
	}
	return rs, s.Close, nil
}
