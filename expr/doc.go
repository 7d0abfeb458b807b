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

// Package expr implements the bound expression tree consumed by the
// planner and evaluated per-row by the filter operator: column
// references, literals, the logical connectives AND/OR/NOT, and the six
// comparison operators.
//
// Each node type satisfies the Node interface. The critical entry
// points for this package are Walk, Rewrite, Simplify, and Eval: Walk
// and Rewrite allow a caller to examine or transform a tree, Simplify
// performs boolean-algebra rewrites and constant folding, and Eval
// interprets a tree against one row for the filter operator's hot loop.
package expr
