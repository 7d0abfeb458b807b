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

import "github.com/SnellerInc/flatql/value"

// Row is the minimal read interface Eval needs from whatever holds one
// physical row's worth of column data. Package vm satisfies it with an
// unexported adapter that reads one physical row of a Batch.
type Row interface {
	Value(col int) value.Value
}

// Eval interprets n against row and returns its value. This is the
// filter operator's hot loop, so it is written as a plain recursive
// type switch rather than a compiled or specialized form.
//
// A NULL operand to any comparison yields false rather than NULL,
// collapsing the SQL three-valued logic this engine would otherwise
// need down to two-valued Boolean results, matching §4.5 of the
// query engine's design notes. AND/OR are strict: a non-Boolean
// child (which cannot occur in a binder-validated tree, but is
// handled defensively) evaluates as false.
func Eval(n Node, row Row) value.Value {
	switch e := n.(type) {
	case ColumnRef:
		return row.Value(e.Index)
	case Literal:
		return e.Val
	case Not:
		if b, ok := asBool(Eval(e.Expr, row)); ok {
			return value.Bool(!b)
		}
		return value.Bool(false)
	case Logical:
		return evalLogical(e, row)
	case Comparison:
		return evalComparison(e, row)
	default:
		return value.Null()
	}
}

func asBool(v value.Value) (bool, bool) {
	if v.Kind != value.KBoolean {
		return false, false
	}
	return v.B, true
}

func evalLogical(n Logical, row Row) value.Value {
	lb, lok := asBool(Eval(n.Left, row))
	if !lok {
		lb = false
	}
	rb, rok := asBool(Eval(n.Right, row))
	if !rok {
		rb = false
	}
	switch n.Op {
	case And:
		return value.Bool(lb && rb)
	default:
		return value.Bool(lb || rb)
	}
}

func evalComparison(n Comparison, row Row) value.Value {
	l := Eval(n.Left, row)
	r := Eval(n.Right, row)
	if l.IsNull() || r.IsNull() {
		return value.Bool(false)
	}
	if l.Kind == value.KBoolean || r.Kind == value.KBoolean {
		if l.Kind != r.Kind {
			return value.Bool(false)
		}
		switch n.Op {
		case Eq:
			return value.Bool(l.B == r.B)
		case Ne:
			return value.Bool(l.B != r.B)
		default:
			return value.Bool(false)
		}
	}
	if l.Kind == value.KVarchar || r.Kind == value.KVarchar {
		if l.Kind != r.Kind {
			return value.Bool(false)
		}
		return value.Bool(compareOrdered(n.Op, cmpString(l.S, r.S)))
	}
	// remaining combinations are Integer/Float, possibly mixed;
	// widen both sides to float64 for the comparison.
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return value.Bool(false)
	}
	return value.Bool(compareOrdered(n.Op, cmpFloat64(lf, rf)))
}

func asFloat(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.KInteger:
		return float64(v.I), true
	case value.KFloat:
		return v.F, true
	default:
		return 0, false
	}
}
