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

// Filter evaluates a bound predicate against each physical row of its
// input and attaches a selection vector naming the rows that passed.
// Filter always scans physical rows and ignores any selection the input
// already carries; the selection it attaches replaces it. A lowered plan
// has at most one Filter, directly above the Scan, and Scan batches
// carry no selection.
type Filter struct {
	Expr expr.Node
}

func (f *Filter) Execute(input, output *Batch) Result {
	sel := make([]uint16, 0, input.Count)
	for r := 0; r < input.Count; r++ {
		v := expr.Eval(f.Expr, rowView{b: input, r: r})
		if v.Kind == value.KBoolean && v.B {
			sel = append(sel, uint16(r))
		}
	}
	output.Columns = input.Columns
	output.Count = input.Count
	output.Capacity = input.Capacity
	output.Selection = sel
	return NeedMoreInput
}

func (f *Filter) Reset() {}
