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

// Vector is one column's worth of data within a Batch: a typed data
// array paired with a validity Bitmap of equal logical length. For a
// NULL slot the data array holds an arbitrary placeholder (the type's
// zero value) and callers MUST consult Valid before trusting it.
type Vector interface {
	Type() schema.ColumnType
	Len() int
	Valid(i int) bool
	Value(i int) value.Value
	AppendValue(v value.Value)
	Truncate(n int)
	Reset()
	Clone() Vector
}

type IntVector struct {
	Data  []int64
	Valid_ *Bitmap
}

func newIntVector(capacity int) *IntVector {
	return &IntVector{Data: make([]int64, 0, capacity), Valid_: NewBitmap(capacity)}
}

func (v *IntVector) Type() schema.ColumnType { return schema.Integer }
func (v *IntVector) Len() int                { return len(v.Data) }
func (v *IntVector) Valid(i int) bool        { return v.Valid_.IsValid(i) }
func (v *IntVector) Bitmap() *Bitmap         { return v.Valid_ }
func (v *IntVector) Truncate(n int)          { v.Data = v.Data[:n]; v.Valid_.Truncate(n) }
func (v *IntVector) Reset()                  { v.Data = v.Data[:0]; v.Valid_.Reset() }

func (v *IntVector) Value(i int) value.Value {
	if !v.Valid_.IsValid(i) {
		return value.Null()
	}
	return value.Int(v.Data[i])
}

func (v *IntVector) AppendValue(val value.Value) {
	if val.IsNull() {
		v.Data = append(v.Data, 0)
		v.Valid_.Append(false)
		return
	}
	v.Data = append(v.Data, val.I)
	v.Valid_.Append(true)
}

func (v *IntVector) Clone() Vector {
	return &IntVector{Data: append([]int64(nil), v.Data...), Valid_: v.Valid_.Clone()}
}

type FloatVector struct {
	Data  []float64
	Valid_ *Bitmap
}

func newFloatVector(capacity int) *FloatVector {
	return &FloatVector{Data: make([]float64, 0, capacity), Valid_: NewBitmap(capacity)}
}

func (v *FloatVector) Type() schema.ColumnType { return schema.Float }
func (v *FloatVector) Len() int                { return len(v.Data) }
func (v *FloatVector) Valid(i int) bool        { return v.Valid_.IsValid(i) }
func (v *FloatVector) Bitmap() *Bitmap         { return v.Valid_ }
func (v *FloatVector) Truncate(n int)          { v.Data = v.Data[:n]; v.Valid_.Truncate(n) }
func (v *FloatVector) Reset()                  { v.Data = v.Data[:0]; v.Valid_.Reset() }

func (v *FloatVector) Value(i int) value.Value {
	if !v.Valid_.IsValid(i) {
		return value.Null()
	}
	return value.Float(v.Data[i])
}

func (v *FloatVector) AppendValue(val value.Value) {
	if val.IsNull() {
		v.Data = append(v.Data, 0)
		v.Valid_.Append(false)
		return
	}
	v.Data = append(v.Data, val.F)
	v.Valid_.Append(true)
}

func (v *FloatVector) Clone() Vector {
	return &FloatVector{Data: append([]float64(nil), v.Data...), Valid_: v.Valid_.Clone()}
}

type BoolVector struct {
	Data  []bool
	Valid_ *Bitmap
}

func newBoolVector(capacity int) *BoolVector {
	return &BoolVector{Data: make([]bool, 0, capacity), Valid_: NewBitmap(capacity)}
}

func (v *BoolVector) Type() schema.ColumnType { return schema.Boolean }
func (v *BoolVector) Len() int                { return len(v.Data) }
func (v *BoolVector) Valid(i int) bool        { return v.Valid_.IsValid(i) }
func (v *BoolVector) Bitmap() *Bitmap         { return v.Valid_ }
func (v *BoolVector) Truncate(n int)          { v.Data = v.Data[:n]; v.Valid_.Truncate(n) }
func (v *BoolVector) Reset()                  { v.Data = v.Data[:0]; v.Valid_.Reset() }

func (v *BoolVector) Value(i int) value.Value {
	if !v.Valid_.IsValid(i) {
		return value.Null()
	}
	return value.Bool(v.Data[i])
}

func (v *BoolVector) AppendValue(val value.Value) {
	if val.IsNull() {
		v.Data = append(v.Data, false)
		v.Valid_.Append(false)
		return
	}
	v.Data = append(v.Data, val.B)
	v.Valid_.Append(true)
}

func (v *BoolVector) Clone() Vector {
	return &BoolVector{Data: append([]bool(nil), v.Data...), Valid_: v.Valid_.Clone()}
}

type StringVector struct {
	Data  []string
	Valid_ *Bitmap
}

func newStringVector(capacity int) *StringVector {
	return &StringVector{Data: make([]string, 0, capacity), Valid_: NewBitmap(capacity)}
}

func (v *StringVector) Type() schema.ColumnType { return schema.Varchar }
func (v *StringVector) Len() int                { return len(v.Data) }
func (v *StringVector) Valid(i int) bool        { return v.Valid_.IsValid(i) }
func (v *StringVector) Bitmap() *Bitmap         { return v.Valid_ }
func (v *StringVector) Truncate(n int)          { v.Data = v.Data[:n]; v.Valid_.Truncate(n) }
func (v *StringVector) Reset()                  { v.Data = v.Data[:0]; v.Valid_.Reset() }

func (v *StringVector) Value(i int) value.Value {
	if !v.Valid_.IsValid(i) {
		return value.Null()
	}
	return value.Varchar(v.Data[i])
}

func (v *StringVector) AppendValue(val value.Value) {
	if val.IsNull() {
		v.Data = append(v.Data, "")
		v.Valid_.Append(false)
		return
	}
	v.Data = append(v.Data, val.S)
	v.Valid_.Append(true)
}

func (v *StringVector) Clone() Vector {
	return &StringVector{Data: append([]string(nil), v.Data...), Valid_: v.Valid_.Clone()}
}

// NullVector backs a column whose declared type is schema.Null: every
// slot is NULL by construction, so only a logical length is tracked.
type NullVector struct {
	n int
}

func newNullVector(int) *NullVector           { return &NullVector{} }
func (v *NullVector) Type() schema.ColumnType { return schema.Null }
func (v *NullVector) Len() int                { return v.n }
func (v *NullVector) Valid(int) bool          { return false }
func (v *NullVector) Value(int) value.Value   { return value.Null() }
func (v *NullVector) AppendValue(value.Value) { v.n++ }
func (v *NullVector) Truncate(n int)          { v.n = n }
func (v *NullVector) Reset()                  { v.n = 0 }
func (v *NullVector) Clone() Vector           { return &NullVector{n: v.n} }

// newVector allocates an empty Vector of the given type with capacity
// hint cap.
func newVector(t schema.ColumnType, cap int) Vector {
	switch t {
	case schema.Integer:
		return newIntVector(cap)
	case schema.Float:
		return newFloatVector(cap)
	case schema.Boolean:
		return newBoolVector(cap)
	case schema.Varchar:
		return newStringVector(cap)
	default:
		return newNullVector(cap)
	}
}
