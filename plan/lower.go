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

package plan

import (
	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/vm"
)

// Lower walks an optimized logical plan tree post-order (child built
// before parent) and returns the corresponding ordered physical
// operator list, along with each operator's output column types
// (indexed the same way), which the executor uses to preallocate
// per-stage scratch batches.
func Lower(root LogicalOp) ([]vm.Operator, [][]schema.ColumnType) {
	var ops []vm.Operator
	var schemas [][]schema.ColumnType

	var walk func(op LogicalOp) []schema.ColumnType
	walk = func(op LogicalOp) []schema.ColumnType {
		var inTypes []schema.ColumnType
		if child := op.Child(); child != nil {
			inTypes = walk(child)
		}

		switch o := op.(type) {
		case *Get:
			outTypes := o.Columns.ColumnTypes()
			ops = append(ops, &vm.Scan{Path: o.Path, Schema: o.Columns, MaxRows: o.MaxRows})
			schemas = append(schemas, outTypes)
			return outTypes

		case *Filter:
			ops = append(ops, &vm.Filter{Expr: o.Expr})
			schemas = append(schemas, inTypes)
			return inTypes

		case *Projection:
			outTypes := make([]schema.ColumnType, len(o.Exprs))
			for i, e := range o.Exprs {
				outTypes[i] = e.Type()
			}
			ops = append(ops, vm.NewProjection(o.Exprs))
			schemas = append(schemas, outTypes)
			return outTypes

		case *Limit:
			var offset int64
			if o.Offset != nil {
				offset = *o.Offset
			}
			ops = append(ops, &vm.Limit{Limit: o.Limit, Offset: offset})
			schemas = append(schemas, inTypes)
			return inTypes

		case *Aggregate:
			specs := make([]vm.AggSpec, len(o.Aggs))
			outTypes := make([]schema.ColumnType, len(o.Aggs))
			for i, a := range o.Aggs {
				switch a.Kind {
				case CountStar:
					specs[i] = vm.AggSpec{Kind: vm.CountStar}
				case CountColumn:
					specs[i] = vm.AggSpec{Kind: vm.CountColumn, ColumnIndex: a.Column.Index}
				}
				outTypes[i] = schema.Integer
			}
			ops = append(ops, &vm.Aggregate{Aggs: specs})
			schemas = append(schemas, outTypes)
			return outTypes
		}

		return inTypes
	}

	walk(root)
	return ops, schemas
}
