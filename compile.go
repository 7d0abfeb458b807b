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

package flatql

import (
	"github.com/google/uuid"

	"github.com/SnellerInc/flatql/plan"
	"github.com/SnellerInc/flatql/rules"
	"github.com/SnellerInc/flatql/vm"
)

// Query is a compiled, ready-to-run plan: an ordered physical operator
// list plus the per-operator schemas the pipeline needs to preallocate
// scratch batches. ID is assigned once at Compile time and is stable
// across repeated Run calls, so log lines from a long-lived query (one
// Compile, many Runs against a changing file) can be correlated.
type Query struct {
	ID       uuid.UUID
	Logical  plan.LogicalOp
	pipeline *vm.Pipeline
}

// Compile turns a bound query into a runnable Query: it builds the
// logical plan (plan.Build), rewrites it through the optimizer's three
// passes (rules.Optimize), lowers the result into physical operators
// (plan.Lower), and assembles a pipeline around them with a fresh
// buffer pool.
//
// The returned Query's Logical field retains the post-optimization
// tree, which callers may String() for diagnostics (EXPLAIN-style
// output is otherwise out of scope here).
func Compile(q *plan.BoundQuery) *Query {
	logical := plan.Build(q)
	logical = rules.Optimize(logical)
	ops, schemas := plan.Lower(logical)

	id := uuid.New()
	if vm.Errorf != nil {
		vm.Errorf("flatql: compiled query %s: %s", id, logical)
	}

	return &Query{
		ID:       id,
		Logical:  logical,
		pipeline: vm.NewPipeline(ops, schemas, vm.NewPool()),
	}
}

// Run drives the compiled query to completion and returns every
// non-empty result batch, in the order the pipeline produced them.
// Run may be called more than once on the same Query; each call
// resets operator state first, so repeated runs against a file that
// has since changed on disk observe the new contents.
func (q *Query) Run() []*vm.Batch {
	q.pipeline.Reset()
	batches := q.pipeline.Execute()
	if vm.Errorf != nil {
		vm.Errorf("flatql: query %s produced %d batch(es)", q.ID, len(batches))
	}
	return batches
}
