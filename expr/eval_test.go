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

package expr

import (
	"testing"

	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/value"
)

// sliceRow adapts a plain []value.Value to Row for evaluation tests.
type sliceRow []value.Value

func (r sliceRow) Value(col int) value.Value { return r[col] }

func TestEvalColumnRefAndLiteral(t *testing.T) {
	row := sliceRow{value.Int(30), value.Varchar("Alice")}
	age := col("age", 0, schema.Integer)
	if got := Eval(age, row); !got.Equals(value.Int(30)) {
		t.Errorf("Eval(age) = %#v", got)
	}
	if got := Eval(lit(value.Bool(true)), row); !got.Equals(value.Bool(true)) {
		t.Errorf("Eval(literal true) = %#v", got)
	}
}

func TestEvalComparisonWidening(t *testing.T) {
	row := sliceRow{}
	// Integer vs Float widens to float64.
	c := Comparison{Op: Gt, Left: lit(value.Int(3)), Right: lit(value.Float(2.5))}
	if got := Eval(c, row); !got.Equals(value.Bool(true)) {
		t.Errorf("3 > 2.5 should be true, got %#v", got)
	}
	eq := Comparison{Op: Eq, Left: lit(value.Int(2)), Right: lit(value.Float(2.0))}
	if got := Eval(eq, row); !got.Equals(value.Bool(true)) {
		t.Errorf("2 = 2.0 should be true, got %#v", got)
	}
}

func TestEvalComparisonNullIsFalse(t *testing.T) {
	row := sliceRow{}
	c := Comparison{Op: Eq, Left: lit(value.Null()), Right: lit(value.Int(1))}
	if got := Eval(c, row); !got.Equals(value.Bool(false)) {
		t.Errorf("NULL = 1 should evaluate false at runtime, got %#v", got)
	}
}

func TestEvalVarcharLexicographic(t *testing.T) {
	row := sliceRow{}
	c := Comparison{Op: Lt, Left: lit(value.Varchar("Alice")), Right: lit(value.Varchar("Bob"))}
	if got := Eval(c, row); !got.Equals(value.Bool(true)) {
		t.Errorf("\"Alice\" < \"Bob\" should be true, got %#v", got)
	}
}

func TestEvalBooleanOnlyEqNe(t *testing.T) {
	row := sliceRow{}
	gt := Comparison{Op: Gt, Left: lit(value.Bool(true)), Right: lit(value.Bool(false))}
	if got := Eval(gt, row); !got.Equals(value.Bool(false)) {
		t.Errorf("Boolean > is not defined and should evaluate false, got %#v", got)
	}
	eq := Comparison{Op: Eq, Left: lit(value.Bool(true)), Right: lit(value.Bool(true))}
	if got := Eval(eq, row); !got.Equals(value.Bool(true)) {
		t.Errorf("true = true should be true, got %#v", got)
	}
}

func TestEvalLogicalAndOr(t *testing.T) {
	row := sliceRow{}
	and := Logical{Op: And, Left: lit(value.Bool(true)), Right: lit(value.Bool(false))}
	if got := Eval(and, row); !got.Equals(value.Bool(false)) {
		t.Errorf("true AND false should be false, got %#v", got)
	}
	or := Logical{Op: Or, Left: lit(value.Bool(false)), Right: lit(value.Bool(true))}
	if got := Eval(or, row); !got.Equals(value.Bool(true)) {
		t.Errorf("false OR true should be true, got %#v", got)
	}
}

func TestEvalNot(t *testing.T) {
	row := sliceRow{}
	n := Not{Expr: lit(value.Bool(false))}
	if got := Eval(n, row); !got.Equals(value.Bool(true)) {
		t.Errorf("NOT false should be true, got %#v", got)
	}
}

func TestCopyProducesEqualButIndependentTree(t *testing.T) {
	age := col("age", 0, schema.Integer)
	original := Logical{
		Op:   And,
		Left: Comparison{Op: Gt, Left: age, Right: lit(value.Int(10))},
		Right: Not{Expr: Comparison{Op: Eq, Left: age, Right: lit(value.Int(0))}},
	}
	cp := Copy(original)
	if !cp.Equals(original) {
		t.Fatalf("Copy() should be Equals to the original: got %s, want %s", cp, original)
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	age := col("age", 0, schema.Integer)
	tree := Logical{
		Op:   And,
		Left: Comparison{Op: Gt, Left: age, Right: lit(value.Int(10))},
		Right: Not{Expr: lit(value.Bool(true))},
	}
	var count int
	Walk(WalkFunc(func(Node) { count++ }), tree)
	// tree, Comparison, age, lit(10), Not, lit(true) = 6 nodes.
	if count != 6 {
		t.Errorf("Walk visited %d nodes, want 6", count)
	}
}
