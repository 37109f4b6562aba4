// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/arico"
	"github.com/ulikunitz/arico/randtxt"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		pck  packer
		path string
		out  string
	}{
		{compressor{}, "a.txt", "a.txt.ari"},
		{compressor{}, "-", "-"},
		{extractor{}, "a.txt.ari", "a.txt"},
		{extractor{}, "dir/data", "dir/data.out"},
		{extractor{}, "-", "-"},
	}
	for _, tc := range tests {
		out, err := tc.pck.outputPath(tc.path)
		if err != nil {
			t.Fatalf("outputPath(%q) error %s", tc.path, err)
		}
		if out != tc.out {
			t.Errorf("outputPath(%q) = %q; want %q", tc.path, out,
				tc.out)
		}
	}
	if _, err := (extractor{}).outputPath("dir/.ari"); err == nil {
		t.Fatalf("outputPath(%q) succeeded", "dir/.ari")
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions("arico", []string{"-a", "-i", "f", "-w", "16"})
	if err != nil {
		t.Fatalf("parseOptions error %s", err)
	}
	if opts.mode != archiveMode || opts.input != "f" || opts.width != 16 {
		t.Fatalf("parseOptions returned %+v", opts)
	}
	opts, err = parseOptions("arico", []string{"--extract", "--input=f.ari"})
	if err != nil {
		t.Fatalf("parseOptions error %s", err)
	}
	if opts.mode != extractMode || opts.width != arico.DefaultWidth {
		t.Fatalf("parseOptions returned %+v", opts)
	}
	opts, err = parseOptions("arico", []string{"-i", "f"})
	if err != nil {
		t.Fatalf("parseOptions error %s", err)
	}
	if opts.mode != archiveMode {
		t.Fatalf("default mode %s; want %s", opts.mode, archiveMode)
	}
	bad := [][]string{
		{"-a", "-x", "-i", "f"},
		{"-l"},
		{"-a", "-i", "f", "extra"},
	}
	for _, args := range bad {
		if _, err = parseOptions("arico", args); err == nil {
			t.Errorf("parseOptions(%q) succeeded", args)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lorem.txt")
	data := randtxt.Paragraphs(1, 20)
	if err := os.WriteFile(input, data, 0o666); err != nil {
		t.Fatalf("WriteFile error %s", err)
	}

	opts := &options{mode: archiveMode, input: input, width: 32}
	if err := run(opts, nil, nil); err != nil {
		t.Fatalf("archive error %s", err)
	}
	archive := input + ariSuffix
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive not created: %s", err)
	}
	// the output exists now
	if err := run(opts, nil, nil); err == nil {
		t.Fatalf("archive overwrote existing file without -f")
	}
	opts.force = true
	if err := run(opts, nil, nil); err != nil {
		t.Fatalf("archive with -f error %s", err)
	}

	if err := os.Remove(input); err != nil {
		t.Fatalf("Remove error %s", err)
	}
	opts = &options{mode: extractMode, input: archive}
	if err := run(opts, nil, nil); err != nil {
		t.Fatalf("extract error %s", err)
	}
	out, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("ReadFile error %s", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("extracted data differs from input")
	}

	var buf bytes.Buffer
	opts = &options{mode: listMode, input: archive, verbose: true}
	if err = run(opts, nil, &buf); err != nil {
		t.Fatalf("list error %s", err)
	}
	if !strings.Contains(buf.String(), archive) {
		t.Fatalf("list output doesn't contain file name:\n%s",
			buf.String())
	}
	t.Logf("list output:\n%s", buf.String())

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error %s", err)
	}
	if len(entries) != 2 {
		t.Fatalf("directory has %d entries; want 2", len(entries))
	}
}

func TestRunStdio(t *testing.T) {
	data := []byte("standard input and output\n")
	var archive bytes.Buffer
	opts := &options{mode: archiveMode, input: "-", output: "-", width: 24}
	if err := run(opts, bytes.NewReader(data), &archive); err != nil {
		t.Fatalf("archive error %s", err)
	}
	var out bytes.Buffer
	opts = &options{mode: extractMode, input: "-", output: "-"}
	if err := run(opts, &archive, &out); err != nil {
		t.Fatalf("extract error %s", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("got %q; want %q", out.Bytes(), data)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ari")
	if err := os.WriteFile(bad, []byte("XYZ\x01\x00\x01"), 0o666); err != nil {
		t.Fatalf("WriteFile error %s", err)
	}
	opts := &options{mode: extractMode, input: bad}
	err := run(opts, nil, nil)
	if !errors.Is(err, arico.ErrInvalidSignature) {
		t.Fatalf("extract returned %v; want %v", err,
			arico.ErrInvalidSignature)
	}
	// no output or temporary file remains
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error %s", err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory has %d entries; want 1", len(entries))
	}

	opts = &options{mode: archiveMode, input: bad, width: 1}
	if err = run(opts, nil, nil); !errors.Is(err, arico.ErrUnsupportedWidth) {
		t.Fatalf("archive returned %v; want %v", err,
			arico.ErrUnsupportedWidth)
	}
	opts = &options{mode: archiveMode, input: filepath.Join(dir, "none")}
	err = run(opts, nil, nil)
	if err == nil {
		t.Fatalf("archive of missing file succeeded")
	}
	if s := userError(err).Error(); strings.Contains(s, "open ") {
		t.Fatalf("userError(%q) contains operation", s)
	}
}
