// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package i64

import "testing"

func TestAdd(t *testing.T) {
	tests := [...]struct {
		x, y, z  int64
		overflow bool
	}{
		{1, 1, 2, false},
		{Max, 1, Min, true},
		{Max - 2, 3, Min, true},
		{1, Max, Min, true},
		{1, Min, Min + 1, false},
		{Min, -1, Max, true},
		{-1, Min, Max, true},
	}
	for _, c := range tests {
		z, overflow := Add(c.x, c.y)
		if z != c.z {
			t.Errorf("%#x + %#x = %#x; want %#x", c.x, c.y, z, c.z)
		}
		if overflow != c.overflow {
			t.Errorf("%#x + %#x = %t; want %t", c.x, c.y,
				overflow, c.overflow)
		}
	}
}

func TestSum(t *testing.T) {
	if z, o := Sum(1, 2, 3); z != 6 || o {
		t.Errorf("Sum(1, 2, 3) = %d, %t; want 6, false", z, o)
	}
	if _, o := Sum(Max/2, Max/2, 2); !o {
		t.Errorf("Sum(Max/2, Max/2, 2) didn't overflow")
	}
	if z, o := Sum(); z != 0 || o {
		t.Errorf("Sum() = %d, %t; want 0, false", z, o)
	}
}

func TestFitsUint(t *testing.T) {
	if !FitsUint(Max) {
		t.Errorf("FitsUint(Max) = false")
	}
	if FitsUint(Max + 1) {
		t.Errorf("FitsUint(Max+1) = true")
	}
}
