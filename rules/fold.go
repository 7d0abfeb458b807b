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
	"github.com/SnellerInc/flatql/value"
)

// fold recurses to the leaf first, then simplifies every Filter's
// expression on the way back up. A Filter whose simplified condition
// is the literal true is removed from the tree (its child replaces
// it); a Filter that folds to false is kept, since the executor
// already handles "matches nothing" correctly.
func fold(op plan.LogicalOp) plan.LogicalOp {
	if child := op.Child(); child != nil {
		op.SetChild(fold(child))
	}

	f, ok := op.(*plan.Filter)
	if !ok {
		return op
	}

	f.Expr = expr.Simplify(f.Expr)
	if isTrueLiteral(f.Expr) {
		return f.Input
	}
	return f
}

func isTrueLiteral(n expr.Node) bool {
	lit, ok := n.(expr.Literal)
	return ok && lit.Val.Kind == value.KBoolean && lit.Val.B
}
