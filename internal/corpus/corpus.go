// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus loads test corpora and measures the compressor on them.
package corpus

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/ulikunitz/arico"
	"github.com/ulikunitz/arico/randtxt"
)

// File is a single corpus file.
type File struct {
	Type string
	Name string
	Data []byte
}

// Files reads all regular files of the file system. The type of the
// files is set to typ.
func Files(corpus fs.FS, typ string) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Type: typ, Name: path, Data: data})
			return nil
		})
	return files, err
}

// ReadFiles reads the files given by the paths. The file type is the
// extension without the dot or "file" if there is none.
func ReadFiles(paths []string) (files []File, err error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "corpus")
		}
		typ := filepath.Ext(path)
		if len(typ) > 1 {
			typ = typ[1:]
		} else {
			typ = "file"
		}
		files = append(files, File{
			Type: typ,
			Name: filepath.Base(path),
			Data: data,
		})
	}
	return files, nil
}

// Lorem generates a lorem ipsum file for each paragraph count.
func Lorem(counts []int) []File {
	files := make([]File, 0, len(counts))
	for i, n := range counts {
		files = append(files, File{
			Type: "lorem",
			Name: fmt.Sprintf("lorem_ipsum_%dp.txt", n),
			Data: randtxt.Paragraphs(int64(i+1), n),
		})
	}
	return files
}

// Truncate limits the data of every file to at most n bytes.
func Truncate(files []File, n int) {
	for i := range files {
		if len(files[i].Data) > n {
			files[i].Data = files[i].Data[:n]
		}
	}
}

// Size returns the total size of the files.
func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.n += int64(n)
	return n, nil
}

// CompressedSize returns the total size of the archives for all files.
func CompressedSize(files []File, width int) (compressedSize int64, err error) {
	for _, f := range files {
		cw := &countWriter{}
		_, err = arico.Compress(cw, bytes.NewReader(f.Data), width)
		compressedSize += cw.n
		if err != nil {
			return compressedSize, errors.Wrapf(err, "file %s", f.Name)
		}
	}
	return compressedSize, nil
}

// Result describes the compression of a single file.
type Result struct {
	Type           string
	Name           string
	Width          int
	SizeBefore     int64
	SizeAfter      int64
	// Coefficient is the size reduction in percent.
	Coefficient    float64
	CompressTime   time.Duration
	DecompressTime time.Duration
}

// Measure compresses the file, decompresses the archive and checks that
// the output matches the input.
func Measure(f File, width int) (r Result, err error) {
	r = Result{
		Type:       f.Type,
		Name:       f.Name,
		Width:      width,
		SizeBefore: int64(len(f.Data)),
	}
	buf := new(bytes.Buffer)
	start := time.Now()
	r.SizeAfter, err = arico.Compress(buf, bytes.NewReader(f.Data), width)
	r.CompressTime = time.Since(start)
	if err != nil {
		return r, errors.Wrapf(err, "compress %s", f.Name)
	}
	if r.SizeBefore > 0 {
		r.Coefficient = float64(r.SizeBefore-r.SizeAfter) /
			float64(r.SizeBefore) * 100
	}

	h := sha256.New()
	start = time.Now()
	_, err = arico.Decompress(h, buf)
	r.DecompressTime = time.Since(start)
	if err != nil {
		return r, errors.Wrapf(err, "decompress %s", f.Name)
	}
	want := sha256.Sum256(f.Data)
	if !bytes.Equal(h.Sum(nil), want[:]) {
		return r, errors.Errorf("%s: decompressed data differs", f.Name)
	}
	return r, nil
}

// Run measures all files for all widths. Errors don't stop the
// measurement; they are reported through the errs slice.
func Run(files []File, widths []int, log io.Writer) (results []Result, errs []error) {
	for _, width := range widths {
		for _, f := range files {
			r, err := Measure(f, width)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if log != nil {
				fmt.Fprintf(log, "%s w=%d: %d -> %d (%.1f%%) %s\n",
					f.Name, width, r.SizeBefore, r.SizeAfter,
					r.Coefficient, r.CompressTime)
			}
			results = append(results, r)
		}
	}
	return results, errs
}
