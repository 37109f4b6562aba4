// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command arico creates, extracts and lists arithmetic coding archives.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kr/pretty"
	"github.com/ogier/pflag"
	"github.com/pkg/errors"
	"github.com/ulikunitz/arico"
	"github.com/ulikunitz/arico/xlog"
)

const usageStr = `Usage: arico MODE -i FILE [OPTION]...
Compress or extract FILE using an arithmetic coder with a static model.

Modes:
  -a, --archive     compress the input file (default)
  -x, --extract     extract the original file from an archive
  -l, --list        list the header of an archive

Options:
  -i, --input FILE  input file; - reads standard input
  -o, --output FILE output file; - writes to standard output
  -w, --width BITS  register width of the coder; default is 32
  -f, --force       overwrite an existing output file
  -v, --verbose     verbose mode
  -h, --help        give this help

Without -o the archive is written to FILE.ari. Extraction removes the
suffix .ari or appends .out if there is none.
`

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

type mode int

const (
	archiveMode mode = iota + 1
	extractMode
	listMode
)

func (m mode) String() string {
	switch m {
	case archiveMode:
		return "archive"
	case extractMode:
		return "extract"
	case listMode:
		return "list"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// options stores the parsed command line.
type options struct {
	mode    mode
	input   string
	output  string
	width   int
	force   bool
	verbose bool
	help    bool
}

// parseOptions parses the arguments without the command name.
func parseOptions(cmdName string, args []string) (opts *options, err error) {
	fs := pflag.NewFlagSet(cmdName, pflag.ContinueOnError)
	fs.SetInterspersed(true)
	fs.Usage = func() {}
	var (
		archive = fs.BoolP("archive", "a", false, "")
		extract = fs.BoolP("extract", "x", false, "")
		list    = fs.BoolP("list", "l", false, "")
	)
	opts = new(options)
	fs.StringVarP(&opts.input, "input", "i", "", "")
	fs.StringVarP(&opts.output, "output", "o", "", "")
	fs.IntVarP(&opts.width, "width", "w", arico.DefaultWidth, "")
	fs.BoolVarP(&opts.force, "force", "f", false, "")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "")
	fs.BoolVarP(&opts.help, "help", "h", false, "")
	if err = fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.help {
		return opts, nil
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected argument %q", fs.Arg(0))
	}
	n := 0
	for _, m := range []struct {
		set  bool
		mode mode
	}{
		{*archive, archiveMode},
		{*extract, extractMode},
		{*list, listMode},
	} {
		if m.set {
			opts.mode = m.mode
			n++
		}
	}
	switch {
	case n == 0:
		opts.mode = archiveMode
	case n > 1:
		return nil, errors.New("only one of -a, -x or -l can be given")
	}
	if opts.input == "" {
		return nil, errors.New("input file must be given with -i")
	}
	return opts, nil
}

func main() {
	// setup logger
	cmdName := filepath.Base(os.Args[0])
	xlog.SetPrefix(fmt.Sprintf("%s: ", cmdName))

	opts, err := parseOptions(cmdName, os.Args[1:])
	if err != nil {
		xlog.Errorf("%s", err)
		xlog.Errorf("for help, type %s -h", cmdName)
		os.Exit(1)
	}
	if opts.help {
		usage(os.Stdout)
		os.Exit(0)
	}
	if opts.verbose {
		xlog.SetLevel(xlog.Debug)
	}
	xlog.Debugf("options %# v", pretty.Formatter(opts))

	if err = run(opts, os.Stdin, os.Stdout); err != nil {
		xlog.Errorf("%s", userError(err))
		os.Exit(1)
	}
}
