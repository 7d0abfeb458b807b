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

package rules

import (
	"github.com/SnellerInc/flatql/expr"
	"github.com/SnellerInc/flatql/plan"
	"github.com/SnellerInc/flatql/schema"
)

// pushdownProjection prunes the Get below root to only the columns
// still referenced above it, then renumbers every ColumnRef and
// Count{column} above the Get so its index becomes the pruned Get's
// new contiguous position. The Get itself keeps each retained
// Column's original Index: that's the link the scanner uses to find
// a column's physical field, while everything above the Get now sees
// a contiguous column layout.
func pushdownProjection(root plan.LogicalOp) plan.LogicalOp {
	get := findGet(root)
	if get == nil {
		return root
	}

	required := collectRequired(root)

	pruned := make(schema.Schema, 0, len(get.Columns))
	for _, c := range get.Columns {
		if required[c.Index] {
			pruned = append(pruned, c)
		}
	}
	get.Columns = pruned

	remap := make(map[int]int, len(pruned))
	for newPos, c := range pruned {
		remap[c.Index] = newPos
	}
	remapRefs(root, remap)

	return root
}

func findGet(op plan.LogicalOp) *plan.Get {
	for op != nil {
		if g, ok := op.(*plan.Get); ok {
			return g
		}
		op = op.Child()
	}
	return nil
}

// collectRequired walks every node above the Get and collects the
// original column indices referenced by ColumnRefs in Filter/
// Projection expressions and by Count{column} in Aggregate. Get
// itself contributes no references.
func collectRequired(root plan.LogicalOp) map[int]bool {
	required := make(map[int]bool)
	mark := expr.WalkFunc(func(n expr.Node) {
		if ref, ok := n.(expr.ColumnRef); ok {
			required[ref.Index] = true
		}
	})

	for op := root; op != nil; op = op.Child() {
		switch o := op.(type) {
		case *plan.Filter:
			expr.Walk(mark, o.Expr)
		case *plan.Projection:
			for _, e := range o.Exprs {
				expr.Walk(mark, e)
			}
		case *plan.Aggregate:
			for _, a := range o.Aggs {
				if a.Kind == plan.CountColumn {
					required[a.Column.Index] = true
				}
			}
		}
	}
	return required
}

// remapRewriter rewrites a ColumnRef's Index through remap, leaving
// anything not found (there shouldn't be any, since remap was built
// from exactly the required set) untouched.
type remapRewriter struct {
	remap map[int]int
}

func (r remapRewriter) Walk(expr.Node) expr.Rewriter { return r }

func (r remapRewriter) Rewrite(n expr.Node) expr.Node {
	ref, ok := n.(expr.ColumnRef)
	if !ok {
		return n
	}
	if np, found := r.remap[ref.Index]; found {
		ref.Index = np
	}
	return ref
}

func remapRefs(root plan.LogicalOp, remap map[int]int) {
	rw := remapRewriter{remap: remap}
	for op := root; op != nil; op = op.Child() {
		switch o := op.(type) {
		case *plan.Filter:
			o.Expr = expr.Rewrite(rw, o.Expr)
		case *plan.Projection:
			for i, e := range o.Exprs {
				o.Exprs[i] = expr.Rewrite(rw, e)
			}
		case *plan.Aggregate:
			for i, a := range o.Aggs {
				if a.Kind != plan.CountColumn {
					continue
				}
				if np, found := remap[a.Column.Index]; found {
					o.Aggs[i].Column.Index = np
				}
			}
		}
	}
}
