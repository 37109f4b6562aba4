// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/arico"
	"github.com/ulikunitz/arico/xio"
	"github.com/ulikunitz/arico/xlog"
)

const ariSuffix = ".ari"

// stdinSpoolLimit is the number of bytes of standard input that are
// kept in memory.
const stdinSpoolLimit = 32 << 20

// packer converts the input into the output. The same interface is used
// for compression and extraction.
type packer interface {
	outputPath(path string) (out string, err error)
	pack(w io.Writer, r io.Reader, opts *options) (n int64, err error)
}

type compressor struct{}

func (c compressor) outputPath(path string) (out string, err error) {
	if path == "-" {
		return "-", nil
	}
	return path + ariSuffix, nil
}

func (c compressor) pack(w io.Writer, r io.Reader, opts *options) (n int64, err error) {
	// WriterConfig interprets zero as default width.
	if opts.width == 0 {
		return 0, errors.Wrap(arico.ErrUnsupportedWidth, "width 0")
	}
	rs, closeFn, err := xio.Rescannable(r, "", stdinSpoolLimit)
	if err != nil {
		return 0, err
	}
	defer closeFn()
	cfg := arico.WriterConfig{
		Width:  opts.width,
		Logger: xlog.Std(xlog.Debug),
	}
	return arico.CompressConfig(w, rs, cfg)
}

type extractor struct{}

func (x extractor) outputPath(path string) (out string, err error) {
	if path == "-" {
		return "-", nil
	}
	if !strings.HasSuffix(path, ariSuffix) {
		return path + ".out", nil
	}
	if filepath.Base(path) == ariSuffix {
		return "", errors.Errorf(
			"path %s has only suffix %s as filename",
			path, ariSuffix)
	}
	return path[:len(path)-len(ariSuffix)], nil
}

func (x extractor) pack(w io.Writer, r io.Reader, opts *options) (n int64, err error) {
	return arico.Decompress(w, bufio.NewReader(r))
}

// signalHandler removes the temporary file if the program is
// terminated by a signal. The returned quit channel must be closed to
// terminate the signal handler go routine.
func signalHandler(tmpPath string) chan<- struct{} {
	quit := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, termsigs...)
	go func() {
		select {
		case <-quit:
			signal.Stop(sigch)
			return
		case sig := <-sigch:
			os.Remove(tmpPath)
			xlog.Warnf("terminated by signal %s", sig)
			os.Exit(1)
		}
	}()
	return quit
}

// openInput opens the input file, which must be a regular file.
func openInput(path string, stdin io.Reader) (r io.ReadCloser, err error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, errors.Errorf("%s is not a regular file", path)
	}
	return f, nil
}

// processFile converts the input file into the output file. The output
// is first written to a temporary file in the directory of the output
// file that is renamed after successful completion.
func processFile(pck packer, opts *options, stdin io.Reader, stdout io.Writer) (err error) {
	out := opts.output
	if out == "" {
		if out, err = pck.outputPath(opts.input); err != nil {
			return err
		}
	}
	var stack xio.CloserStack
	defer func() {
		if cerr := stack.Close(); err == nil {
			err = cerr
		}
	}()

	r, err := openInput(opts.input, stdin)
	if err != nil {
		return err
	}
	stack.Push(r)

	if out == "-" {
		_, err = pck.pack(stdout, r, opts)
		return err
	}

	if _, err = os.Lstat(out); err == nil && !opts.force {
		return errors.Errorf("file %s exists", out)
	}
	f, err := os.CreateTemp(filepath.Dir(out),
		"."+filepath.Base(out)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	// The temporary file is removed unless it has been renamed.
	stack.PushFunc(func() error {
		if err := os.Remove(tmpPath); err != nil &&
			!os.IsNotExist(err) {
			return err
		}
		return nil
	})
	quit := signalHandler(tmpPath)
	stack.PushFunc(func() error { close(quit); return nil })

	n, err := pck.pack(f, r, opts)
	if err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	xlog.Debugf("%s: %d bytes written", tmpPath, n)
	if err = os.Rename(tmpPath, out); err != nil {
		return err
	}
	xlog.Debugf("%s renamed to %s", tmpPath, out)
	return nil
}

// list prints the header of the archive.
func list(w io.Writer, opts *options, stdin io.Reader) error {
	r, err := openInput(opts.input, stdin)
	if err != nil {
		return err
	}
	defer r.Close()
	h, err := arico.ReadHeader(bufio.NewReader(r))
	if err != nil {
		return errors.Wrapf(err, "%s", opts.input)
	}
	fmt.Fprintf(w, "%-10s %6s %8s %s\n",
		"length", "width", "symbols", "name")
	fmt.Fprintf(w, "%-10d %6d %8d %s\n",
		h.Length, h.Width, len(h.Symbols), opts.input)
	if !opts.verbose {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-6s %10s\n", "symbol", "count")
	for _, s := range h.Symbols {
		fmt.Fprintf(w, "%#-6x %10d\n", s.Value, s.Count)
	}
	return nil
}

// run executes the command line options.
func run(opts *options, stdin io.Reader, stdout io.Writer) error {
	switch opts.mode {
	case archiveMode:
		return processFile(compressor{}, opts, stdin, stdout)
	case extractMode:
		return processFile(extractor{}, opts, stdin, stdout)
	case listMode:
		return list(stdout, opts, stdin)
	}
	return errors.Errorf("unsupported mode %s", opts.mode)
}

// userPathError represents a path error presentable to a user. In
// difference to os.PathError it removes the information of the
// operation returning the error.
type userPathError struct {
	Path string
	Err  error
}

// Error provides the error string for the path error.
func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// userError converts a path error into an error message without the
// operation that caused it.
func userError(err error) error {
	pe, ok := errors.Cause(err).(*os.PathError)
	if !ok {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}
