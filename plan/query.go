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
	"github.com/SnellerInc/flatql/expr"
	"github.com/SnellerInc/flatql/schema"
)

// AggKind is the variant of a bound aggregate expression.
type AggKind int

const (
	CountStar AggKind = iota
	CountColumn
)

// AggExpr is one bound aggregate. Column is only meaningful for
// CountColumn.
type AggExpr struct {
	Kind   AggKind
	Column schema.Column
}

// BoundQuery is the contract this package consumes from the binder:
// a resolved file path and schema, the columns the query selects (in
// output order, possibly repeating), an optional bound predicate, an
// optional limit/offset, and the query's aggregate list (non-empty
// only for an aggregate query).
type BoundQuery struct {
	Path       string
	Schema     schema.Schema
	Projected  []schema.Column
	Where      expr.Node
	Limit      *int64
	Offset     *int64
	Aggregates []AggExpr
}
