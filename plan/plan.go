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

// Package plan builds the logical plan tree for a bound query and
// lowers an optimized tree into an ordered physical operator list.
package plan

import (
	"fmt"

	"github.com/SnellerInc/flatql/expr"
	"github.com/SnellerInc/flatql/schema"
)

// LogicalOp is a node in the logical plan tree. Get is the only
// variant with no child; every other variant wraps exactly one.
// Child/SetChild are exported because the optimizer rewrites the
// tree from a separate package.
type LogicalOp interface {
	fmt.Stringer
	Child() LogicalOp
	SetChild(LogicalOp)
}

// Get is the leaf: it names the source file and the schema entries
// the scanner should produce. MaxRows is set only by the optimizer's
// limit-pushdown pass, never by Build.
type Get struct {
	Path    string
	Columns schema.Schema
	MaxRows *int64
}

func (g *Get) Child() LogicalOp   { return nil }
func (g *Get) SetChild(LogicalOp) {}
func (g *Get) String() string     { return fmt.Sprintf("GET %s", g.Path) }

// Filter keeps only the rows for which Expr evaluates true.
type Filter struct {
	Expr  expr.Node
	Input LogicalOp
}

func (f *Filter) Child() LogicalOp     { return f.Input }
func (f *Filter) SetChild(c LogicalOp) { f.Input = c }
func (f *Filter) String() string       { return "FILTER " + f.Expr.String() }

// Projection materializes the ordered list of expressions (currently
// always ColumnRefs; computed projections are reserved for a future
// select-list extension).
type Projection struct {
	Exprs []expr.Node
	Input LogicalOp
}

func (p *Projection) Child() LogicalOp     { return p.Input }
func (p *Projection) SetChild(c LogicalOp) { p.Input = c }

func (p *Projection) String() string {
	s := "PROJECT "
	for i, e := range p.Exprs {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s
}

// Limit applies OFFSET then LIMIT to its input.
type Limit struct {
	Limit  *int64
	Offset *int64
	Input  LogicalOp
}

func (l *Limit) Child() LogicalOp     { return l.Input }
func (l *Limit) SetChild(c LogicalOp) { l.Input = c }
func (l *Limit) String() string       { return fmt.Sprintf("LIMIT %v OFFSET %v", l.Limit, l.Offset) }

// Aggregate computes an ungrouped aggregate over its (already
// filtered) input, producing exactly one output row.
type Aggregate struct {
	Aggs  []AggExpr
	Input LogicalOp
}

func (a *Aggregate) Child() LogicalOp     { return a.Input }
func (a *Aggregate) SetChild(c LogicalOp) { a.Input = c }
func (a *Aggregate) String() string       { return fmt.Sprintf("AGGREGATE %v", a.Aggs) }

// Build deterministically constructs a logical plan tree from a bound
// query. Ordering, leaf to root:
//
//  1. Get(path, schema)
//  2. Filter, if a WHERE is bound
//  3. Aggregate (skipping Projection) if the query has aggregates,
//     else Projection lifting the selected columns to ColumnRefs
//  4. Limit, if a limit or offset is bound
//
// Putting Aggregate above Filter and below Limit gives standard SQL
// semantics for "COUNT(*) FROM t WHERE p LIMIT k". Projection is
// skipped for aggregate queries because Aggregate alone determines
// the output shape.
func Build(q *BoundQuery) LogicalOp {
	var op LogicalOp = &Get{Path: q.Path, Columns: q.Schema}

	if q.Where != nil {
		op = &Filter{Expr: q.Where, Input: op}
	}

	if len(q.Aggregates) > 0 {
		op = &Aggregate{Aggs: q.Aggregates, Input: op}
	} else {
		exprs := make([]expr.Node, len(q.Projected))
		for i, c := range q.Projected {
			exprs[i] = expr.ColumnRef{Name: c.Name, Index: c.Index, Typ: c.Type}
		}
		op = &Projection{Exprs: exprs, Input: op}
	}

	if q.Limit != nil || q.Offset != nil {
		op = &Limit{Limit: q.Limit, Offset: q.Offset, Input: op}
	}

	return op
}
