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

// Package rules applies the optimizer's three ordered rewrite passes
// to a logical plan tree: expression simplification with dead-filter
// elimination, projection pushdown with column-index remapping, and
// limit pushdown with a selectivity-aware row budget.
package rules

import "github.com/SnellerInc/flatql/plan"

// Optimize rewrites root through all three passes, in order, and
// returns the resulting tree. The passes modify the given nodes in
// place (child links, Filter predicates, the Get's column list and row
// budget) instead of building copies, so the tree passed in is changed;
// the returned root differs from root when fold drops a Filter at the
// top of the tree.
func Optimize(root plan.LogicalOp) plan.LogicalOp {
	root = fold(root)
	root = pushdownProjection(root)
	root = pushdownLimit(root)
	return root
}
