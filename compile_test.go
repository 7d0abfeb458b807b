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

package flatql

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SnellerInc/flatql/expr"
	"github.com/SnellerInc/flatql/plan"
	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/value"
	"github.com/SnellerInc/flatql/vm"
)

// pplCSV writes the end-to-end fixture shared across these scenarios:
// a name/age/score table, one blank line and one record with an empty
// score field thrown in to exercise the scanner's tolerance for both.
func pplCSV(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ppl.csv")
	content := "name,age,score\n" +
		"Alice,30,72.5\n" +
		"Bob,85,91.0\n" +
		"Carol,90,88.25\n" +
		"\n" +
		"Dan,40,65.0\n" +
		"Eve,81,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func pplCSVSchema() schema.Schema {
	return schema.Schema{
		{Name: "name", Type: schema.Varchar, Index: 0},
		{Name: "age", Type: schema.Integer, Index: 1},
		{Name: "score", Type: schema.Float, Index: 2},
	}
}

func totalSelected(batches []*vm.Batch) int {
	n := 0
	for _, b := range batches {
		n += b.SelectedCount()
	}
	return n
}

func TestCompileAndRunPlainSelect(t *testing.T) {
	path := pplCSV(t)
	sch := pplCSVSchema()
	q := Compile(&plan.BoundQuery{Path: path, Schema: sch, Projected: sch})
	results := q.Run()
	if got := totalSelected(results); got != 5 {
		t.Fatalf("plain select should return all 5 data rows, got %d", got)
	}
	if q.ID.String() == "" {
		t.Error("Compile should assign a non-empty query ID")
	}
}

func TestCompileAndRunFilteredProjection(t *testing.T) {
	path := pplCSV(t)
	sch := pplCSVSchema()
	where := expr.Comparison{Op: expr.Ge, Left: expr.ColumnRef{Name: "age", Index: 1, Typ: schema.Integer}, Right: expr.Literal{Val: value.Int(80)}}
	q := Compile(&plan.BoundQuery{
		Path:      path,
		Schema:    sch,
		Projected: []schema.Column{sch[0]},
		Where:     where,
	})
	results := q.Run()
	names := map[string]bool{}
	for _, b := range results {
		for j := 0; j < b.SelectedCount(); j++ {
			names[b.Value(0, j).S] = true
		}
	}
	want := map[string]bool{"Bob": true, "Carol": true, "Eve": true}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for n := range want {
		if !names[n] {
			t.Errorf("missing expected name %q in result", n)
		}
	}
}

func TestCompileAndRunLimitOffset(t *testing.T) {
	path := pplCSV(t)
	sch := pplCSVSchema()
	limit, offset := int64(2), int64(1)
	q := Compile(&plan.BoundQuery{
		Path:      path,
		Schema:    sch,
		Projected: sch,
		Limit:     &limit,
		Offset:    &offset,
	})
	results := q.Run()
	if got := totalSelected(results); got != 2 {
		t.Fatalf("LIMIT 2 OFFSET 1 should return 2 rows, got %d", got)
	}
}

func TestCompileAndRunAggregateCountStar(t *testing.T) {
	path := pplCSV(t)
	sch := pplCSVSchema()
	where := expr.Comparison{Op: expr.Ge, Left: expr.ColumnRef{Name: "age", Index: 1, Typ: schema.Integer}, Right: expr.Literal{Val: value.Int(80)}}
	q := Compile(&plan.BoundQuery{
		Path:       path,
		Schema:     sch,
		Where:      where,
		Aggregates: []plan.AggExpr{{Kind: plan.CountStar}},
	})
	results := q.Run()
	if len(results) != 1 || results[0].Count != 1 {
		t.Fatalf("COUNT(*) should produce exactly one result row, got %d batches", len(results))
	}
	if !results[0].Value(0, 0).Equals(value.Int(3)) {
		t.Errorf("COUNT(*) WHERE age >= 80 = %s, want 3", results[0].Value(0, 0))
	}
}

func TestCompileAndRunAggregateCountColumnSkipsNull(t *testing.T) {
	path := pplCSV(t)
	sch := pplCSVSchema()
	q := Compile(&plan.BoundQuery{
		Path:       path,
		Schema:     sch,
		Aggregates: []plan.AggExpr{{Kind: plan.CountColumn, Column: sch[2]}}, // score, has one empty field
	})
	results := q.Run()
	if !results[0].Value(0, 0).Equals(value.Int(4)) {
		t.Errorf("COUNT(score) = %s, want 4 (Eve's blank score excluded)", results[0].Value(0, 0))
	}
}

func TestCompileAndRunNotNotFilterLimit(t *testing.T) {
	path := pplCSV(t)
	sch := pplCSVSchema()
	pred := expr.Comparison{Op: expr.Ge, Left: expr.ColumnRef{Name: "score", Index: 2, Typ: schema.Float}, Right: expr.Literal{Val: value.Float(80.0)}}
	where := expr.Not{Expr: expr.Not{Expr: pred}}
	one := int64(1)
	q := Compile(&plan.BoundQuery{
		Path:      path,
		Schema:    sch,
		Projected: []schema.Column{sch[0]},
		Where:     where,
		Limit:     &one,
	})

	get := findGetForTest(q.Logical)
	if get == nil || get.MaxRows == nil || *get.MaxRows != 10 {
		t.Fatalf("limit pushdown should set Get.MaxRows=10 for LIMIT 1 behind a Filter, got %v", get)
	}

	results := q.Run()
	if got := totalSelected(results); got != 1 {
		t.Fatalf("LIMIT 1 should yield exactly 1 row, got %d", got)
	}
}

func TestQueryRunIsRepeatable(t *testing.T) {
	path := pplCSV(t)
	sch := pplCSVSchema()
	q := Compile(&plan.BoundQuery{Path: path, Schema: sch, Projected: sch})
	first := totalSelected(q.Run())
	second := totalSelected(q.Run())
	if first != second {
		t.Fatalf("repeated Run calls against an unchanged file should agree: %d vs %d", first, second)
	}
}

func findGetForTest(op plan.LogicalOp) *plan.Get {
	for op != nil {
		if g, ok := op.(*plan.Get); ok {
			return g
		}
		op = op.Child()
	}
	return nil
}
