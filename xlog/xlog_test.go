// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xlog

import (
	"bytes"
	"log"
	"os"
	"testing"
)

func TestNilLogger(t *testing.T) {
	var l Logger
	Print(l, "a")
	Printf(l, "%d", 1)
	Println(l, "b")
}

func TestPrintf(t *testing.T) {
	buf := new(bytes.Buffer)
	l := log.New(buf, "", 0)
	Printf(l, "width %d", 32)
	if g, want := buf.String(), "width 32\n"; g != want {
		t.Fatalf("Printf wrote %q; want %q", g, want)
	}
}

func TestLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetPrefix("test: ")
	old := SetLevel(Info)
	defer func() {
		SetLevel(old)
		SetPrefix("")
		SetOutput(os.Stderr)
	}()

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	want := "test: info 2\ntest: warn 3\n"
	if g := buf.String(); g != want {
		t.Fatalf("output %q; want %q", g, want)
	}
	if Std(Debug) != nil {
		t.Fatalf("Std(Debug) returned logger at level %s", Info)
	}
	if Std(Error) == nil {
		t.Fatalf("Std(Error) returned nil at level %s", Info)
	}
	buf.Reset()
	SetLevel(Silent)
	Errorf("error")
	if buf.Len() != 0 {
		t.Fatalf("silent logger printed %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	if g := Warning.String(); g != "warning" {
		t.Fatalf("Warning.String() = %q; want %q", g, "warning")
	}
	if g := Level(9).String(); g != "Level(9)" {
		t.Fatalf("Level(9).String() = %q", g)
	}
}
