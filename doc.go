// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arico compresses and decompresses single-file archives using
// an arithmetic coder with a static order-0 model.
//
// The compressor reads the input twice. The first pass counts the bytes;
// the counts are stored in the archive header and define the frequency
// distribution. The second pass encodes the input with registers of
// configurable width. Wider registers support larger inputs and more
// skewed distributions; the width is stored in the header, so the
// decompressor needs no configuration.
//
// The archive format is
//
//	"ARI" lenLen tableLen widthLen length width 0xA5
//	{symbol count}... 0xA5 payload
//
// All integers are stored big-endian using the minimal number of bytes.
// The counts use lenLen bytes each and tableLen is the number of table
// entries minus one. An empty input has no table.
//
// Errors are classified by the kinds ErrInvalidSignature,
// ErrInvalidFormat, ErrModelOverflow, ErrTruncatedStream and
// ErrUnsupportedWidth, which can be tested with errors.Is.
package arico
