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

package vm

import "github.com/SnellerInc/flatql/ints"

// Bitmap is a packed per-slot validity marker: 1 means the
// corresponding column slot holds a real value, 0 means it is NULL.
// Storage is word-sized []uint64 lanes built on ints.TestBit/SetBit.
type Bitmap struct {
	words     []uint64
	n         int
	validRows int
}

// NewBitmap returns an empty Bitmap pre-sized for capacity bits.
func NewBitmap(capacity int) *Bitmap {
	return &Bitmap{words: make([]uint64, (capacity+63)/64)}
}

// Len reports the number of bits appended so far.
func (b *Bitmap) Len() int { return b.n }

func (b *Bitmap) grow() {
	if b.n/64 >= len(b.words) {
		b.words = append(b.words, 0)
	}
}

// Append records the validity of the next slot.
func (b *Bitmap) Append(valid bool) {
	b.grow()
	if valid {
		ints.SetBit(b.words, b.n)
		b.validRows++
	} else {
		ints.ClearBit(b.words, b.n)
	}
	b.n++
}

// Set overwrites the validity of an already-appended slot at index i.
func (b *Bitmap) Set(i int, valid bool) {
	was := ints.TestBit(b.words, i)
	if valid && !was {
		ints.SetBit(b.words, i)
		b.validRows++
	} else if !valid && was {
		ints.ClearBit(b.words, i)
		b.validRows--
	}
}

// IsValid reports whether the slot at index i holds a non-NULL value.
func (b *Bitmap) IsValid(i int) bool {
	return ints.TestBit(b.words, i)
}

// AllValid is a fast-path predicate: true iff every appended slot is
// valid (no NULLs at all in this column).
func (b *Bitmap) AllValid() bool {
	return b.validRows == b.n
}

// CountValid returns the number of valid bits among the first n
// physical slots.
func (b *Bitmap) CountValid(n int) int {
	if n > b.n {
		n = b.n
	}
	c := 0
	for i := 0; i < n; i++ {
		if ints.TestBit(b.words, i) {
			c++
		}
	}
	return c
}

// CountValidAt returns the number of valid bits among the physical
// slots named by sel. This is the selection-vector-aware popcount
// required by COUNT(column): unlike CountValid(len(sel)), which would
// test an arbitrary prefix of physical slots unrelated to which rows
// were actually selected, this tests exactly the selected slots.
func (b *Bitmap) CountValidAt(sel []uint16) int {
	c := 0
	for _, s := range sel {
		if ints.TestBit(b.words, int(s)) {
			c++
		}
	}
	return c
}

// Truncate shrinks the bitmap to its first n bits. The validRows
// fast-path counter is recomputed since bits beyond n may have been
// either valid or not.
func (b *Bitmap) Truncate(n int) {
	if n >= b.n {
		return
	}
	b.n = n
	b.validRows = b.CountValid(n)
}

// Reset empties the bitmap for reuse, retaining its backing storage.
func (b *Bitmap) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
	b.n = 0
	b.validRows = 0
}

// Clone returns an independent copy of b.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{
		words:     append([]uint64(nil), b.words...),
		n:         b.n,
		validRows: b.validRows,
	}
	return out
}
