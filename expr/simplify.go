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

// simplifyRewriter applies boolean-algebra identities and constant
// folding bottom-up. Rewrite is called post-order (children already
// simplified by Rewrite's recursion), so a single traversal reaches a
// fixed point for the identities in this file.
type simplifyRewriter struct{}

func (simplifyRewriter) Walk(Node) Rewriter { return simplifyRewriter{} }

func (simplifyRewriter) Rewrite(n Node) Node {
	switch e := n.(type) {
	case Not:
		return simplifyNot(e)
	case Logical:
		return simplifyLogical(e)
	case Comparison:
		return simplifyComparison(e)
	default:
		return n
	}
}

func boolLiteral(b bool) Node { return Literal{Val: value.Bool(b)} }

func asBoolLiteral(n Node) (bool, bool) {
	lit, ok := n.(Literal)
	if !ok || lit.Val.Kind != value.KBoolean {
		return false, false
	}
	return lit.Val.B, true
}

func simplifyNot(n Not) Node {
	// NOT NOT x -> x
	if inner, ok := n.Expr.(Not); ok {
		return inner.Expr
	}
	if b, ok := asBoolLiteral(n.Expr); ok {
		return boolLiteral(!b)
	}
	return n
}

func simplifyLogical(n Logical) Node {
	lb, lok := asBoolLiteral(n.Left)
	rb, rok := asBoolLiteral(n.Right)
	switch n.Op {
	case And:
		switch {
		case lok && !lb: // false AND x -> false
			return boolLiteral(false)
		case lok && lb: // true AND x -> x
			return n.Right
		case rok && !rb: // x AND false -> false
			return boolLiteral(false)
		case rok && rb: // x AND true -> x
			return n.Left
		}
	case Or:
		switch {
		case lok && lb: // true OR x -> true
			return boolLiteral(true)
		case lok && !lb: // false OR x -> x
			return n.Right
		case rok && rb: // x OR true -> true
			return boolLiteral(true)
		case rok && !rb: // x OR false -> x
			return n.Left
		}
	}
	return n
}

func simplifyComparison(n Comparison) Node {
	ll, lok := n.Left.(Literal)
	rl, rok := n.Right.(Literal)
	if !lok || !rok {
		return n
	}
	if v, ok := foldComparison(n.Op, ll.Val, rl.Val); ok {
		return boolLiteral(v)
	}
	return n
}

// foldComparison evaluates a comparison of two literals at plan time.
// It returns ok=false for combinations left unfolded by design: mixed
// Integer/Float operands, non-equality comparisons between Booleans
// or NULLs, and any comparison between a NULL and a non-NULL operand.
func foldComparison(op CompareOp, l, r value.Value) (bool, bool) {
	if l.Kind == value.KNull && r.Kind == value.KNull {
		// NULL = NULL folds to false; every other operator
		// between two NULLs is left to the runtime interpreter.
		if op == Eq {
			return false, true
		}
		return false, false
	}
	if l.IsNull() != r.IsNull() {
		return false, false
	}
	if l.Kind != r.Kind {
		return false, false
	}
	switch l.Kind {
	case value.KInteger:
		return compareOrdered(op, cmpInt64(l.I, r.I)), true
	case value.KFloat:
		return compareOrdered(op, cmpFloat64(l.F, r.F)), true
	case value.KVarchar:
		return compareOrdered(op, cmpString(l.S, r.S)), true
	case value.KBoolean:
		switch op {
		case Eq:
			return l.B == r.B, true
		case Ne:
			return l.B != r.B, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareOrdered(op CompareOp, c int) bool {
	switch op {
	case Eq:
		return c == 0
	case Ne:
		return c != 0
	case Gt:
		return c > 0
	case Ge:
		return c >= 0
	case Lt:
		return c < 0
	case Le:
		return c <= 0
	default:
		return false
	}
}

// Simplify applies boolean-algebra identities and literal-comparison
// constant folding to n until a single post-order pass reaches a fixed
// point, and returns the resulting tree. Simplify is idempotent:
// Simplify(Simplify(e)) produces a tree Equals to Simplify(e).
func Simplify(n Node) Node {
	return Rewrite(simplifyRewriter{}, n)
}
