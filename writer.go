// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arico

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/arico/ac"
	"github.com/ulikunitz/arico/model"
	"github.com/ulikunitz/arico/xio"
	"github.com/ulikunitz/arico/xlog"
)

// DefaultWidth is the register width used if none is configured.
const DefaultWidth = 32

// defaultSpoolLimit is the number of bytes the Writer keeps in memory
// before it spills the input into a temporary file.
const defaultSpoolLimit = 8 << 20

// WriterConfig describes the parameters for an archive writer.
type WriterConfig struct {
	// Width is the register width of the arithmetic coder in bits
	// (default: 32). Larger inputs and more skewed distributions
	// require larger widths.
	Width int

	// SpoolLimit is the number of input bytes the Writer buffers in
	// memory. Additional input is written into a temporary file in
	// SpoolDir. (default: 8 MiB)
	SpoolLimit int64
	// SpoolDir is the directory for the temporary file. If empty
	// os.TempDir is used.
	SpoolDir string

	// Logger receives debug information. Nil disables the output.
	Logger xlog.Logger
}

// ApplyDefaults replaces zero values with the default values.
func (c *WriterConfig) ApplyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.SpoolLimit == 0 {
		c.SpoolLimit = defaultSpoolLimit
	}
}

// Verify checks the configuration for errors. Zero values will be
// replaced by default values.
func (c *WriterConfig) Verify() error {
	if c == nil {
		return errors.New("arico: writer configuration is nil")
	}
	c.ApplyDefaults()
	if err := model.VerifyWidth(c.Width); err != nil {
		return kindError(err)
	}
	if c.SpoolLimit < 0 {
		return errors.New("arico: spool limit must be non-negative")
	}
	return nil
}

// countWriter counts the bytes written to the underlying writer.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Compress writes the archive for the data of r to w using the given
// register width. The reader is read twice: once to build the frequency
// model and once to encode the data. The function returns the number of
// bytes written to w.
//
// If the width is too small for the frequency distribution of the input,
// an error of kind ErrModelOverflow is returned before anything has been
// written.
func Compress(w io.Writer, r io.ReadSeeker, width int) (n int64, err error) {
	// The zero width is an error here and not a request for the default.
	if err = model.VerifyWidth(width); err != nil {
		return 0, kindError(err)
	}
	cfg := WriterConfig{Width: width}
	if err = cfg.Verify(); err != nil {
		return 0, err
	}
	return compress(w, r, &cfg)
}

// CompressConfig works like Compress but uses the width and the logger
// of the configuration.
func CompressConfig(w io.Writer, r io.ReadSeeker, cfg WriterConfig) (n int64, err error) {
	if err = cfg.Verify(); err != nil {
		return 0, err
	}
	return compress(w, r, &cfg)
}

// compress implements Compress for a verified configuration.
func compress(w io.Writer, r io.ReadSeeker, cfg *WriterConfig) (n int64, err error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	length, symbols, err := model.Build(r)
	if err != nil {
		return 0, err
	}
	h := &Header{Length: length, Width: cfg.Width, Symbols: symbols}
	xlog.Printf(cfg.Logger, "arico: length %d, %d symbols, width %d",
		length, len(symbols), cfg.Width)

	var dist *model.Distribution
	if length > 0 {
		if dist, err = model.NewDistribution(symbols, cfg.Width); err != nil {
			return 0, kindError(err)
		}
		xlog.Printf(cfg.Logger, "arico: scale %s", dist.Scale())
	}

	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	if _, err = writeHeader(bw, h); err != nil {
		return cw.n, err
	}
	if length > 0 {
		if _, err = r.Seek(start, io.SeekStart); err != nil {
			return cw.n, err
		}
		if err = encode(bw, bufio.NewReader(r), dist, length); err != nil {
			return cw.n, err
		}
	}
	if err = bw.Flush(); err != nil {
		return cw.n, err
	}
	xlog.Printf(cfg.Logger, "arico: %d bytes -> %d bytes", length, cw.n)
	return cw.n, nil
}

// errInputChanged indicates that the second pass over the input didn't
// return the data of the first pass.
var errInputChanged = errors.New(
	"arico: input changed between model and coding pass")

// encode encodes exactly n bytes from r.
func encode(w io.ByteWriter, r io.ByteReader, dist *model.Distribution, n int64) error {
	e := ac.NewEncoder(w, dist)
	for i := int64(0); i < n; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return errInputChanged
			}
			return err
		}
		if err = e.Encode(c); err != nil {
			if errors.Is(err, ac.ErrUnknownSymbol) {
				return fmt.Errorf("%w: %w", errInputChanged, err)
			}
			return err
		}
	}
	return e.Close()
}

// errWriterClosed indicates that the Writer has already been closed.
var errWriterClosed = errors.New("arico: writer is closed")

// Writer compresses the data written to it. Since the frequency model
// requires the complete input, the data is collected and the archive is
// written when Close is called.
type Writer struct {
	cfg   WriterConfig
	w     io.Writer
	spool *xio.Spool
	err   error
}

// NewWriter creates a new archive writer using the default
// configuration.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterConfig(w, WriterConfig{})
}

// NewWriterConfig creates a new archive writer with the given
// configuration.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errors.New("arico: writer must not be nil")
	}
	return &Writer{
		cfg:   cfg,
		w:     w,
		spool: xio.NewSpool(cfg.SpoolDir, cfg.SpoolLimit),
	}, nil
}

// Write collects the data to compress.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err = w.spool.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}

// Close compresses the collected data and writes the archive. It doesn't
// close the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	w.err = errWriterClosed
	r, err := w.spool.ReadSeeker()
	if err == nil {
		if w.spool.Spilled() {
			xlog.Printf(w.cfg.Logger,
				"arico: input spilled to temporary file")
		}
		_, err = compress(w.w, r, &w.cfg)
	}
	if cerr := w.spool.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		w.err = err
	}
	return err
}
