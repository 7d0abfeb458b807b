// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package ints

import "testing"

func TestSetTestClearBit(t *testing.T) {
	words := make([]uint64, 2)
	for _, k := range []int{0, 1, 63, 64, 100, 127} {
		if TestBit(words, k) {
			t.Fatalf("bit %d should start clear", k)
		}
		SetBit(words, k)
		if !TestBit(words, k) {
			t.Fatalf("bit %d should be set after SetBit", k)
		}
		ClearBit(words, k)
		if TestBit(words, k) {
			t.Fatalf("bit %d should be clear after ClearBit", k)
		}
	}
}

func TestSetBitIndependence(t *testing.T) {
	words := make([]uint64, 2)
	SetBit(words, 5)
	SetBit(words, 70)
	if !TestBit(words, 5) || !TestBit(words, 70) {
		t.Fatal("expected both bits set")
	}
	ClearBit(words, 5)
	if TestBit(words, 5) {
		t.Fatal("bit 5 should be clear")
	}
	if !TestBit(words, 70) {
		t.Fatal("clearing bit 5 must not affect bit 70")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ x, lo, hi, want int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.x, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c.x, c.lo, c.hi, got, c.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 {
		t.Error("Min(3, 7) != 3")
	}
	if Max(3, 7) != 7 {
		t.Error("Max(3, 7) != 7")
	}
}
