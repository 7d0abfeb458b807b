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

package vm

import (
	"github.com/SnellerInc/flatql/expr"
	"github.com/SnellerInc/flatql/value"
)

// Projection materializes a (possibly reordered) subset of columns,
// reading through any selection vector the input carries and
// producing output with none: projection is always the point where
// prior filtering gets baked into physical rows.
type Projection struct {
	Exprs []expr.Node
}

// NewProjection builds a Projection operator for the given expression
// list, in the order they should appear in the output.
func NewProjection(exprs []expr.Node) *Projection {
	return &Projection{Exprs: exprs}
}

func (p *Projection) Execute(input, output *Batch) Result {
	r := input.SelectedCount()
	for i, e := range p.Exprs {
		ref, ok := e.(expr.ColumnRef)
		col := output.Columns[i]
		for j := 0; j < r; j++ {
			if !ok {
				// Reserved for future computed projections; not
				// reachable after projection pushdown today.
				col.AppendValue(value.Null())
				continue
			}
			col.AppendValue(input.Value(ref.Index, j))
		}
	}
	output.Count = r
	output.Selection = nil
	return NeedMoreInput
}

func (p *Projection) Reset() {}
