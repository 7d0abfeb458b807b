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

import "github.com/SnellerInc/flatql/plan"

// limitFactor is the heuristic multiplier applied to (limit+offset)
// when any Filter sits between the Limit and its Get, compensating
// for unknown filter selectivity. It is a fixed constant here; a
// deployment that wants it configurable or adaptive can thread it
// through Optimize's signature.
const limitFactor = 10

// pushdownLimit installs a row budget on the Get beneath root when
// root is a Limit over a "simple scan chain": zero or more Filters
// and Projections above a single Get, with no Aggregate and no
// nested Limit anywhere in between. Either of those blocks pushdown
// because it invalidates the row-count upper bound.
func pushdownLimit(root plan.LogicalOp) plan.LogicalOp {
	lim, ok := root.(*plan.Limit)
	if !ok || lim.Limit == nil {
		return root
	}

	var get *plan.Get
	hasFilter := false
	for op := lim.Input; op != nil; op = op.Child() {
		switch o := op.(type) {
		case *plan.Get:
			get = o
		case *plan.Filter:
			hasFilter = true
		case *plan.Projection:
			// projections don't affect row count; keep scanning
		default:
			// Aggregate or a nested Limit: bail out, no pushdown
			return root
		}
	}
	if get == nil {
		return root
	}

	var offset int64
	if lim.Offset != nil {
		offset = *lim.Offset
	}
	factor := int64(1)
	if hasFilter {
		factor = limitFactor
	}
	maxRows := saturatingMul(*lim.Limit+offset, factor)
	get.MaxRows = &maxRows

	return root
}

const maxInt64 = int64(1<<63 - 1)

func saturatingMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > maxInt64/b {
		return maxInt64
	}
	return a * b
}
