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
	"testing"

	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/value"
)

func intBatch(n int, start int64) *Batch {
	b := NewBatch([]schema.ColumnType{schema.Integer}, n)
	for i := 0; i < n; i++ {
		b.AppendRow([]value.Value{value.Int(start + int64(i))})
	}
	return b
}

func TestLimitZeroFinishesImmediately(t *testing.T) {
	zero := int64(0)
	l := &Limit{Limit: &zero}
	in := intBatch(3, 0)
	out := NewBatch([]schema.ColumnType{schema.Integer}, 4)
	r := l.Execute(in, out)
	if r != Finished {
		t.Fatalf("LIMIT 0 should finish immediately, got %v", r)
	}
	if !out.IsEmpty() {
		t.Fatal("LIMIT 0 should emit no rows")
	}
}

func TestLimitOffsetExceedsInputDropsBatch(t *testing.T) {
	l := &Limit{Offset: 10}
	in := intBatch(3, 0)
	out := NewBatch([]schema.ColumnType{schema.Integer}, 4)
	r := l.Execute(in, out)
	if r != NeedMoreInput {
		t.Fatalf("offset not yet exhausted should request more input, got %v", r)
	}
	if !out.IsEmpty() {
		t.Fatal("entire batch should be consumed by the offset")
	}
}

func TestLimitOffsetThenLimitOrdering(t *testing.T) {
	five := int64(2)
	l := &Limit{Limit: &five, Offset: 1}
	in := intBatch(5, 0) // rows 0,1,2,3,4
	out := NewBatch([]schema.ColumnType{schema.Integer}, 8)
	l.Execute(in, out)

	if out.SelectedCount() != 2 {
		t.Fatalf("SelectedCount() = %d, want 2 (offset 1, limit 2)", out.SelectedCount())
	}
	if !out.Value(0, 0).Equals(value.Int(1)) || !out.Value(0, 1).Equals(value.Int(2)) {
		t.Fatalf("expected rows [1,2], got [%s,%s]", out.Value(0, 0), out.Value(0, 1))
	}
}

func TestLimitAcrossMultipleBatches(t *testing.T) {
	three := int64(3)
	l := &Limit{Limit: &three}

	out1 := NewBatch([]schema.ColumnType{schema.Integer}, 8)
	r1 := l.Execute(intBatch(2, 0), out1)
	if r1 != NeedMoreInput || out1.SelectedCount() != 2 {
		t.Fatalf("first batch: result=%v selected=%d", r1, out1.SelectedCount())
	}

	out2 := NewBatch([]schema.ColumnType{schema.Integer}, 8)
	r2 := l.Execute(intBatch(5, 2), out2)
	if r2 != Finished {
		t.Fatalf("second batch should finish once LIMIT is reached, got %v", r2)
	}
	if out2.SelectedCount() != 1 {
		t.Fatalf("second batch should contribute exactly 1 more row, got %d", out2.SelectedCount())
	}
}

func TestLimitResetAllowsRerun(t *testing.T) {
	one := int64(1)
	l := &Limit{Limit: &one}
	out := NewBatch([]schema.ColumnType{schema.Integer}, 8)
	l.Execute(intBatch(3, 0), out)
	l.Reset()

	out2 := NewBatch([]schema.ColumnType{schema.Integer}, 8)
	r := l.Execute(intBatch(3, 0), out2)
	if r != Finished || out2.SelectedCount() != 1 {
		t.Fatalf("after Reset, Limit should behave as fresh: result=%v selected=%d", r, out2.SelectedCount())
	}
}
