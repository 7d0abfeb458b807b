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
	"fmt"

	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/value"
)

// Node is the common interface satisfied by every node in a bound
// expression tree. The binder (out of scope here) is responsible for
// producing trees that already satisfy the type-compatibility
// invariants described by Type; this package never rejects a tree, it
// only evaluates or rewrites one.
type Node interface {
	fmt.Stringer

	// Equals reports whether n and o are structurally identical.
	Equals(o Node) bool

	// Type reports the static type the node evaluates to.
	Type() schema.ColumnType

	// walk is the unexported half of Walk; leaves implement it as
	// a no-op since they have no children to visit.
	walk(Visitor)
}

// nonleaf is satisfied by Node variants that own children; Rewrite uses
// it to know which nodes need their children rewritten first.
type nonleaf interface {
	rewrite(r Rewriter) Node
}

// Visitor is implemented by callers of Walk. Visit is invoked for each
// node encountered; if the returned Visitor w is non-nil, Walk visits
// each child of node with w, followed by a call to w.Visit(nil).
type Visitor interface {
	Visit(Node) Visitor
}

// WalkFunc adapts a plain function to the Visitor interface: it is
// invoked for every node and always continues into children.
type WalkFunc func(Node)

func (f WalkFunc) Visit(n Node) Visitor {
	if n != nil {
		f(n)
	}
	return f
}

// Walk traverses n in depth-first order, calling v.Visit for n and,
// if the returned Visitor is non-nil, recursively for each child.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	w := v.Visit(n)
	if w != nil {
		n.walk(w)
		w.Visit(nil)
	}
}

// Rewriter is implemented by callers of Rewrite. Rewrite is applied to
// nodes in depth-first (post-order) order: children are rewritten
// first, then the node itself is passed to Rewrite.
type Rewriter interface {
	// Rewrite returns the replacement for n (commonly n itself).
	Rewrite(n Node) Node

	// Walk returns the Rewriter used for n's children. If it
	// returns nil, n's children are left untouched.
	Walk(n Node) Rewriter
}

// Rewrite recursively applies r to n in depth-first order and returns
// the (possibly new) resulting tree.
func Rewrite(r Rewriter, n Node) Node {
	if n == nil {
		return nil
	}
	if nl, ok := n.(nonleaf); ok {
		if rc := r.Walk(n); rc != nil {
			n = nl.rewrite(rc)
		}
	}
	return r.Rewrite(n)
}

// LogicOp is the operator of a Logical node.
type LogicOp int

const (
	And LogicOp = iota
	Or
)

func (op LogicOp) String() string {
	if op == And {
		return "AND"
	}
	return "OR"
}

// CompareOp is the operator of a Comparison node.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Gt
	Ge
	Lt
	Le
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	default:
		return "?"
	}
}

// ColumnRef names one column by its position in the schema visible to
// the node holding this reference. Index starts as the source file's
// physical column position and is rewritten by projection pushdown
// (see the rules package) to the pruned scan's contiguous position.
type ColumnRef struct {
	Name  string
	Index int
	Typ   schema.ColumnType
}

func (c ColumnRef) String() string        { return c.Name }
func (c ColumnRef) Type() schema.ColumnType { return c.Typ }
func (c ColumnRef) walk(Visitor)          {}

func (c ColumnRef) Equals(o Node) bool {
	oc, ok := o.(ColumnRef)
	return ok && oc.Index == c.Index && oc.Typ == c.Typ
}

// Literal is a constant value with its static type carried alongside
// (Val.ColumnType() for anything but NULL; a NULL literal has no
// meaningful static type on its own so Type reports schema.Null).
type Literal struct {
	Val value.Value
}

func (l Literal) String() string          { return l.Val.String() }
func (l Literal) Type() schema.ColumnType { return l.Val.ColumnType() }
func (l Literal) walk(Visitor)            {}

func (l Literal) Equals(o Node) bool {
	ol, ok := o.(Literal)
	return ok && ol.Val.Equals(l.Val)
}

// Logical is the binary AND/OR connective. Both operands and the
// result are Boolean.
type Logical struct {
	Op          LogicOp
	Left, Right Node
}

func (n Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n Logical) Type() schema.ColumnType { return schema.Boolean }

func (n Logical) walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n Logical) rewrite(r Rewriter) Node {
	n.Left = Rewrite(r, n.Left)
	n.Right = Rewrite(r, n.Right)
	return n
}

func (n Logical) Equals(o Node) bool {
	on, ok := o.(Logical)
	return ok && on.Op == n.Op && on.Left.Equals(n.Left) && on.Right.Equals(n.Right)
}

// Not is the unary logical negation. Its operand and result are
// Boolean.
type Not struct {
	Expr Node
}

func (n Not) String() string          { return fmt.Sprintf("(NOT %s)", n.Expr) }
func (n Not) Type() schema.ColumnType { return schema.Boolean }
func (n Not) walk(v Visitor)          { Walk(v, n.Expr) }

func (n Not) rewrite(r Rewriter) Node {
	n.Expr = Rewrite(r, n.Expr)
	return n
}

func (n Not) Equals(o Node) bool {
	on, ok := o.(Not)
	return ok && on.Expr.Equals(n.Expr)
}

// Comparison is one of the six binary comparison operators. Its
// result is always Boolean; the binder guarantees Left and Right are
// either the same type or one of {Integer, Float} paired with the
// other.
type Comparison struct {
	Op          CompareOp
	Left, Right Node
}

func (n Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n Comparison) Type() schema.ColumnType { return schema.Boolean }

func (n Comparison) walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n Comparison) rewrite(r Rewriter) Node {
	n.Left = Rewrite(r, n.Left)
	n.Right = Rewrite(r, n.Right)
	return n
}

func (n Comparison) Equals(o Node) bool {
	on, ok := o.(Comparison)
	return ok && on.Op == n.Op && on.Left.Equals(n.Left) && on.Right.Equals(n.Right)
}
