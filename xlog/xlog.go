// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xlog provides a Logger interface and supporting functions
to support control over debug output.

The Logger interface is supported by the log.Logger type. The functions
Print, Printf and Println accept a nil Logger and don't do anything in
that case, so libraries can keep logging statements that are disabled by
default.

The package also provides a package level logger with severity levels
that is used by the commands. Messages below the current level are
discarded before they are formatted.
*/
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is the interface required for the logger argument of Print,
// Printf and Println. The log.Logger type supports this interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// Print outputs the arguments using the logger. If the logger is nil nothing
// will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger argument
// is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument is
// nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}

// Level defines the severity of a message.
type Level int

// Severity levels of the package logger.
const (
	Debug Level = iota
	Info
	Warning
	Error
	Silent
)

var levelNames = []string{"debug", "info", "warning", "error", "silent"}

// String returns the name of the level.
func (l Level) String() string {
	if 0 <= l && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

var (
	mu    sync.Mutex
	std   = log.New(os.Stderr, "", 0)
	level = Warning
)

// SetOutput sets the output destination of the package logger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

// SetPrefix sets the prefix of the package logger.
func SetPrefix(prefix string) {
	mu.Lock()
	defer mu.Unlock()
	std.SetPrefix(prefix)
}

// SetLevel sets the minimum level of the messages that are printed and
// returns the previous level.
func SetLevel(l Level) Level {
	mu.Lock()
	defer mu.Unlock()
	old := level
	level = l
	return old
}

// Std returns the package logger if messages of the given level are
// printed; otherwise nil. The result can be used as Logger argument.
func Std(l Level) Logger {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return nil
	}
	return std
}

func output(l Level, s func() string) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	std.Output(3, s())
}

// Debugf prints a debug message.
func Debugf(format string, v ...interface{}) {
	output(Debug, func() string { return fmt.Sprintf(format, v...) })
}

// Infof prints an informational message.
func Infof(format string, v ...interface{}) {
	output(Info, func() string { return fmt.Sprintf(format, v...) })
}

// Warn prints a warning.
func Warn(v ...interface{}) {
	output(Warning, func() string { return fmt.Sprint(v...) })
}

// Warnf prints a warning using a format string.
func Warnf(format string, v ...interface{}) {
	output(Warning, func() string { return fmt.Sprintf(format, v...) })
}

// Errorf prints an error message.
func Errorf(format string, v ...interface{}) {
	output(Error, func() string { return fmt.Sprintf(format, v...) })
}
