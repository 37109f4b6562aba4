// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xio

import (
	"errors"
	"io"
)

// CloserStack closes a number of resources in the reverse order they
// have been pushed.
type CloserStack struct {
	stack []io.Closer
}

// Push adds a closer to the top of the stack. It panics if c is nil.
func (s *CloserStack) Push(c io.Closer) {
	if c == nil {
		panic("xio: cannot push nil closer onto stack")
	}
	s.stack = append(s.stack, c)
}

// PushFunc adds a close function to the stack.
func (s *CloserStack) PushFunc(f func() error) {
	s.Push(closeFunc(f))
}

// Len returns the number of closers on the stack.
func (s *CloserStack) Len() int { return len(s.stack) }

// Close closes all closers from top to bottom and combines the errors.
// The stack is empty afterwards.
func (s *CloserStack) Close() error {
	var errs []error
	for k := len(s.stack) - 1; k >= 0; k-- {
		errs = append(errs, s.stack[k].Close())
	}
	s.stack = nil
	return errors.Join(errs...)
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }
