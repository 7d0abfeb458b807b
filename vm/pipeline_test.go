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

	"github.com/SnellerInc/flatql/expr"
	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/value"
)

// totalRows sums SelectedCount across every batch a pipeline run produced.
func totalRows(batches []*Batch) int {
	n := 0
	for _, b := range batches {
		n += b.SelectedCount()
	}
	return n
}

func TestPipelineScanFilterProjection(t *testing.T) {
	path := writeCSV(t, []string{"Alice,30", "Bob,85", "Carol,90"})
	sch := ppl()

	ten := int64(10)
	scan := &Scan{Path: path, Schema: sch, MaxRows: &ten}
	filter := &Filter{Expr: expr.Comparison{
		Op:    expr.Ge,
		Left:  expr.ColumnRef{Index: 1, Typ: schema.Integer},
		Right: expr.Literal{Val: value.Int(80)},
	}}
	proj := NewProjection([]expr.Node{expr.ColumnRef{Index: 0, Typ: schema.Varchar}})

	p := NewPipeline(
		[]Operator{scan, filter, proj},
		[][]schema.ColumnType{sch.ColumnTypes(), sch.ColumnTypes(), {schema.Varchar}},
		NewPool(),
	)
	results := p.Execute()
	if totalRows(results) != 2 {
		t.Fatalf("expected 2 rows (age >= 80), got %d", totalRows(results))
	}
	names := map[string]bool{}
	for _, b := range results {
		for j := 0; j < b.SelectedCount(); j++ {
			names[b.Value(0, j).S] = true
		}
	}
	if !names["Bob"] || !names["Carol"] {
		t.Fatalf("expected Bob and Carol in result, got %v", names)
	}
}

func TestPipelineScanLimit(t *testing.T) {
	path := writeCSV(t, []string{"A,1", "B,2", "C,3", "D,4", "E,5"})
	sch := ppl()

	ten := int64(10)
	two := int64(2)
	scan := &Scan{Path: path, Schema: sch, MaxRows: &ten}
	limit := &Limit{Limit: &two}

	p := NewPipeline(
		[]Operator{scan, limit},
		[][]schema.ColumnType{sch.ColumnTypes(), sch.ColumnTypes()},
		NewPool(),
	)
	results := p.Execute()
	if totalRows(results) != 2 {
		t.Fatalf("expected exactly 2 rows under LIMIT 2, got %d", totalRows(results))
	}
}

func TestPipelineScanFilterAggregate(t *testing.T) {
	path := writeCSV(t, []string{"A,10", "B,90", "C,95", "D,5"})
	sch := ppl()

	ten := int64(10)
	scan := &Scan{Path: path, Schema: sch, MaxRows: &ten}
	filter := &Filter{Expr: expr.Comparison{
		Op:    expr.Ge,
		Left:  expr.ColumnRef{Index: 1, Typ: schema.Integer},
		Right: expr.Literal{Val: value.Int(80)},
	}}
	agg := &Aggregate{Aggs: []AggSpec{{Kind: CountStar}}}

	p := NewPipeline(
		[]Operator{scan, filter, agg},
		[][]schema.ColumnType{sch.ColumnTypes(), sch.ColumnTypes(), {schema.Integer}},
		NewPool(),
	)
	results := p.Execute()
	if len(results) != 1 || results[0].Count != 1 {
		t.Fatalf("aggregate pipeline should produce exactly one row, got %d batches", len(results))
	}
	if !results[0].Value(0, 0).Equals(value.Int(2)) {
		t.Errorf("COUNT(*) with filter = %s, want 2", results[0].Value(0, 0))
	}
}

func TestPipelineResetAllowsRerun(t *testing.T) {
	path := writeCSV(t, []string{"A,1", "B,2"})
	sch := ppl()
	ten := int64(10)
	scan := &Scan{Path: path, Schema: sch, MaxRows: &ten}

	p := NewPipeline([]Operator{scan}, [][]schema.ColumnType{sch.ColumnTypes()}, NewPool())
	first := p.Execute()
	p.Reset()
	second := p.Execute()
	if totalRows(first) != totalRows(second) {
		t.Fatalf("Reset should allow an identical rerun: first=%d second=%d", totalRows(first), totalRows(second))
	}
}
