// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arico

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/arico/ac"
	"github.com/ulikunitz/arico/model"
)

// The error kinds reported by the package. Use errors.Is to test for
// them; the actual errors carry additional detail.
var (
	// ErrInvalidSignature indicates that the archive doesn't start with
	// the signature.
	ErrInvalidSignature = errors.New("arico: invalid signature")
	// ErrInvalidFormat indicates a structural error in the archive, for
	// instance a wrong checkpoint byte.
	ErrInvalidFormat = errors.New("arico: invalid format")
	// ErrModelOverflow indicates that the register width is too small
	// for the frequency distribution of the input.
	ErrModelOverflow = errors.New("arico: model overflow")
	// ErrTruncatedStream indicates that the archive ended before all
	// bytes could be decoded.
	ErrTruncatedStream = errors.New("arico: truncated stream")
	// ErrUnsupportedWidth indicates a register width outside the
	// supported range.
	ErrUnsupportedWidth = errors.New("arico: unsupported register width")
)

// kindError converts errors of the model and ac packages into the error
// kinds of this package. Other errors are returned unchanged.
func kindError(err error) error {
	var kind error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrOverflow):
		kind = ErrModelOverflow
	case errors.Is(err, model.ErrWidth):
		kind = ErrUnsupportedWidth
	case errors.Is(err, model.ErrSymbols), errors.Is(err, ac.ErrCorrupt):
		kind = ErrInvalidFormat
	case errors.Is(err, ac.ErrTruncated):
		kind = ErrTruncatedStream
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		kind = ErrTruncatedStream
	default:
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
