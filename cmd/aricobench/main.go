// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command aricobench measures compression ratio and speed of the
// arithmetic coder for a set of files and register widths. The results
// are written as CSV report.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/ogier/pflag"
	"github.com/pkg/errors"
	"github.com/ulikunitz/arico/internal/corpus"
	"github.com/ulikunitz/arico/xlog"
	"github.com/ulikunitz/zdata"
)

const usageStr = `Usage: aricobench [OPTION]... [FILE]...
Compress FILEs and lorem ipsum texts and write a CSV report.

  -w, --widths LIST    comma-separated register widths; default 32
  -o, --output FILE    CSV report file; default benchmark_report.csv
      --lorem LIST     comma-separated paragraph counts for generated
                       lorem ipsum files; default 1,10,100
      --silesia        include the Silesia corpus
      --max-size N     truncate every file to N bytes; 0 disables
  -v, --verbose        verbose mode
  -h, --help           give this help
`

var header = []string{
	"file_type",
	"file_name",
	"size_before",
	"size_after",
	"compression_coefficient",
	"execution_time",
}

// parseInts parses a comma-separated list of integers.
func parseInts(s string) (a []int, err error) {
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "list %q", s)
		}
		a = append(a, n)
	}
	return a, nil
}

// record converts the result into a CSV record.
func record(r corpus.Result) []string {
	return []string{
		r.Type,
		r.Name,
		strconv.FormatInt(r.SizeBefore, 10),
		strconv.FormatInt(r.SizeAfter, 10),
		strconv.FormatFloat(r.Coefficient, 'f', 3, 64),
		strconv.FormatFloat(r.CompressTime.Seconds(), 'f', 6, 64),
	}
}

// writeReport writes the CSV report.
func writeReport(w io.Writer, results []corpus.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// summary aggregates the results for a single width.
type summary struct {
	Width       int
	Files       int
	SizeBefore  int64
	SizeAfter   int64
	Coefficient float64
	Time        time.Duration
}

func summarize(results []corpus.Result) []summary {
	var sums []summary
	idx := make(map[int]int)
	for _, r := range results {
		i, ok := idx[r.Width]
		if !ok {
			i = len(sums)
			idx[r.Width] = i
			sums = append(sums, summary{Width: r.Width})
		}
		s := &sums[i]
		s.Files++
		s.SizeBefore += r.SizeBefore
		s.SizeAfter += r.SizeAfter
		s.Time += r.CompressTime
	}
	for i := range sums {
		s := &sums[i]
		if s.SizeBefore > 0 {
			s.Coefficient = float64(s.SizeBefore-s.SizeAfter) /
				float64(s.SizeBefore) * 100
		}
	}
	return sums
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	xlog.SetPrefix(fmt.Sprintf("%s: ", cmdName))

	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.SetInterspersed(true)
	pflag.Usage = func() { fmt.Fprint(os.Stderr, usageStr); os.Exit(1) }
	var (
		help    = pflag.BoolP("help", "h", false, "")
		verbose = pflag.BoolP("verbose", "v", false, "")
		widths  = pflag.StringP("widths", "w", "32", "")
		output  = pflag.StringP("output", "o", "benchmark_report.csv", "")
		lorem   = pflag.String("lorem", "1,10,100", "")
		silesia = pflag.Bool("silesia", false, "")
		maxSize = pflag.Int("max-size", 0, "")
	)
	pflag.Parse()
	if *help {
		fmt.Fprint(os.Stdout, usageStr)
		os.Exit(0)
	}
	if *verbose {
		xlog.SetLevel(xlog.Debug)
	}
	if err := run(*widths, *lorem, *silesia, *maxSize, *output,
		pflag.Args()); err != nil {
		xlog.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(widthList, loremList string, silesia bool, maxSize int, output string, paths []string) error {
	widths, err := parseInts(widthList)
	if err != nil {
		return err
	}
	if len(widths) == 0 {
		return errors.New("no widths given")
	}
	counts, err := parseInts(loremList)
	if err != nil {
		return err
	}
	files, err := corpus.ReadFiles(paths)
	if err != nil {
		return err
	}
	files = append(files, corpus.Lorem(counts)...)
	if silesia {
		sf, err := corpus.Files(zdata.Silesia, "silesia")
		if err != nil {
			return errors.Wrap(err, "silesia corpus")
		}
		files = append(files, sf...)
	}
	if maxSize > 0 {
		corpus.Truncate(files, maxSize)
	}
	if len(files) == 0 {
		return errors.New("no files to measure")
	}
	xlog.Infof("benchmark started: %d files, %d bytes, widths %v",
		len(files), corpus.Size(files), widths)

	start := time.Now()
	var progress io.Writer
	if xlog.Std(xlog.Debug) != nil {
		progress = os.Stderr
	}
	results, errs := corpus.Run(files, widths, progress)
	for _, err := range errs {
		xlog.Warn(err)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err = writeReport(f, results); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", output)
	}
	if err = f.Close(); err != nil {
		return err
	}
	pretty.Println(summarize(results))
	fmt.Printf("report written to %s in %s\n", output, time.Since(start))
	if len(errs) > 0 {
		return errors.Errorf("%d measurements failed", len(errs))
	}
	return nil
}
