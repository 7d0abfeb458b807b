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

import (
	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/value"
)

// StandardCapacity is the conventional soft row cap of a Batch.
const StandardCapacity = 2048

// Batch is a columnar unit of work: a list of column Vectors sharing
// the same physical Count, and an optional Selection vector naming
// the subset (and order) of physical rows currently "in scope" for
// downstream operators. The effective row count is SelectedCount():
// len(Selection) when a selection is present, else Count.
type Batch struct {
	Columns   []Vector
	Count     int
	Capacity  int
	Selection []uint16
}

// NewBatch allocates an empty Batch with one Vector per type in
// types, sized to capacity.
func NewBatch(types []schema.ColumnType, capacity int) *Batch {
	cols := make([]Vector, len(types))
	for i, t := range types {
		cols[i] = newVector(t, capacity)
	}
	return &Batch{Columns: cols, Capacity: capacity}
}

// Types reports the column types backing b.
func (b *Batch) Types() []schema.ColumnType {
	out := make([]schema.ColumnType, len(b.Columns))
	for i, c := range b.Columns {
		out[i] = c.Type()
	}
	return out
}

// SelectedCount is the batch's effective row count.
func (b *Batch) SelectedCount() int {
	if b.Selection != nil {
		return len(b.Selection)
	}
	return b.Count
}

// IsEmpty reports whether the batch has no selected rows.
func (b *Batch) IsEmpty() bool { return b.SelectedCount() == 0 }

// Full reports whether the batch has reached its soft capacity and
// should be handed off rather than accept another physical row.
func (b *Batch) Full() bool { return b.Capacity > 0 && b.Count >= b.Capacity }

// AppendRow appends one physical row, one value per column in order.
// It satisfies xsv.RowSink so scanner workers can build batches
// without this package importing xsv.
func (b *Batch) AppendRow(vals []value.Value) {
	for i, v := range vals {
		b.Columns[i].AppendValue(v)
	}
	b.Count++
}

// physical returns the value at column col, physical row r, ignoring
// any selection vector. It is the primitive every other accessor
// (Value, rowView) is built on.
func (b *Batch) physical(col, r int) value.Value {
	return b.Columns[col].Value(r)
}

// Value reads column col at logical row position j, respecting the
// selection vector when one is present. A j outside the effective
// row count yields Null rather than panicking.
func (b *Batch) Value(col, j int) value.Value {
	if j < 0 || j >= b.SelectedCount() {
		return value.Null()
	}
	if b.Selection != nil {
		return b.physical(col, int(b.Selection[j]))
	}
	return b.physical(col, j)
}

// rowView adapts one physical row of b to expr.Row for predicate
// evaluation.
type rowView struct {
	b *Batch
	r int
}

func (rv rowView) Value(col int) value.Value { return rv.b.physical(col, rv.r) }

// Reset empties b for reuse from the pool, dropping any selection.
func (b *Batch) Reset() {
	for _, c := range b.Columns {
		c.Reset()
	}
	b.Count = 0
	b.Selection = nil
}

// Clone returns an independent deep copy of b, suitable for handing
// to a caller that outlives the next pool reuse of the original.
func (b *Batch) Clone() *Batch {
	cols := make([]Vector, len(b.Columns))
	for i, c := range b.Columns {
		cols[i] = c.Clone()
	}
	var sel []uint16
	if b.Selection != nil {
		sel = append([]uint16(nil), b.Selection...)
	}
	return &Batch{Columns: cols, Count: b.Count, Capacity: b.Capacity, Selection: sel}
}

// CopyFrom replaces b's contents with a shallow copy of src's columns
// (by reference, since column vectors are not mutated in place once
// built within one push through the pipeline) plus independent Count,
// Capacity and Selection fields.
func (b *Batch) CopyFrom(src *Batch) {
	b.Columns = src.Columns
	b.Count = src.Count
	b.Capacity = src.Capacity
	if src.Selection != nil {
		b.Selection = append(b.Selection[:0], src.Selection...)
	} else {
		b.Selection = nil
	}
}
