// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xio

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func readAll(t *testing.T, s *Spool) []byte {
	t.Helper()
	rs, err := s.ReadSeeker()
	if err != nil {
		t.Fatalf("ReadSeeker error %s", err)
	}
	p, err := io.ReadAll(rs)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	return p
}

func TestSpoolMemory(t *testing.T) {
	s := NewSpool(t.TempDir(), 100)
	defer s.Close()
	data := []byte(strings.Repeat("abc", 30))
	if _, err := s.Write(data); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if s.Spilled() {
		t.Fatalf("spool spilled below limit")
	}
	if s.Len() != int64(len(data)) {
		t.Fatalf("Len() = %d; want %d", s.Len(), len(data))
	}
	if p := readAll(t, s); !bytes.Equal(p, data) {
		t.Fatalf("spool content differs")
	}
}

func TestSpoolSpill(t *testing.T) {
	dir := t.TempDir()
	s := NewSpool(dir, 16)
	data := []byte(strings.Repeat("0123456789", 10))
	for i := 0; i < len(data); i += 7 {
		j := i + 7
		if j > len(data) {
			j = len(data)
		}
		if _, err := s.Write(data[i:j]); err != nil {
			t.Fatalf("Write error %s", err)
		}
	}
	if !s.Spilled() {
		t.Fatalf("spool didn't spill")
	}
	// the reader can be requested twice
	for i := 0; i < 2; i++ {
		if p := readAll(t, s); !bytes.Equal(p, data) {
			t.Fatalf("spool content differs")
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error %s", err)
	}
	if len(entries) != 0 {
		t.Fatalf("temporary file %s not removed", entries[0].Name())
	}
	if _, err = s.Write([]byte{1}); err == nil {
		t.Fatalf("Write after Close succeeded")
	}
	if err = s.Close(); err == nil {
		t.Fatalf("second Close succeeded")
	}
}

type onlyReader struct{ io.Reader }

func TestRescannable(t *testing.T) {
	data := []byte("rescannable data")
	br := bytes.NewReader(data)
	rs, closeFn, err := Rescannable(br, t.TempDir(), 4)
	if err != nil {
		t.Fatalf("Rescannable error %s", err)
	}
	if rs != io.ReadSeeker(br) {
		t.Fatalf("Rescannable didn't return the seekable reader")
	}
	closeFn()

	rs, closeFn, err = Rescannable(onlyReader{bytes.NewReader(data)},
		t.TempDir(), 4)
	if err != nil {
		t.Fatalf("Rescannable error %s", err)
	}
	defer closeFn()
	p, err := io.ReadAll(rs)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	if !bytes.Equal(p, data) {
		t.Fatalf("got %q; want %q", p, data)
	}
}

type testCloser struct {
	name  string
	order *[]string
	err   error
}

func (c *testCloser) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestCloserStack(t *testing.T) {
	var order []string
	errTest := errors.New("test")
	var s CloserStack
	s.Push(&testCloser{"a", &order, nil})
	s.Push(&testCloser{"b", &order, errTest})
	s.PushFunc(func() error {
		order = append(order, "c")
		return nil
	})
	if s.Len() != 3 {
		t.Fatalf("Len() = %d; want %d", s.Len(), 3)
	}
	err := s.Close()
	if !errors.Is(err, errTest) {
		t.Fatalf("Close returned %v; want %v", err, errTest)
	}
	if g := strings.Join(order, ""); g != "cba" {
		t.Fatalf("close order %q; want %q", g, "cba")
	}
	if s.Len() != 0 {
		t.Fatalf("stack not empty after Close")
	}
}
