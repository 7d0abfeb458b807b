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

import "github.com/SnellerInc/flatql/schema"

// Pipeline drives one query's ordered operator list to completion,
// threading batches through operator 0..N-1 each iteration and
// collecting every non-empty final-operator output.
type Pipeline struct {
	Ops     []Operator
	Schemas [][]schema.ColumnType
	Pool    *Pool
}

// NewPipeline builds a Pipeline over ops, one output schema per
// operator (schemas[i] is ops[i]'s output column types), sharing pool
// for scratch batch reuse.
func NewPipeline(ops []Operator, schemas [][]schema.ColumnType, pool *Pool) *Pipeline {
	if pool == nil {
		pool = NewPool()
	}
	return &Pipeline{Ops: ops, Schemas: schemas, Pool: pool}
}

// Execute runs the pipeline to completion and returns every non-empty
// batch the final operator produced, in the order produced.
//
// The loop drives one extra "empty source" pass after the scanner is
// exhausted so an Aggregate operator (which only emits on an
// empty-input call) gets the chance to produce its row.
func (p *Pipeline) Execute() []*Batch {
	var results []*Batch
	sourceFinished := false

	for {
		scratches := make([]*Batch, len(p.Ops))
		for i, t := range p.Schemas {
			scratches[i] = p.Pool.Get(t, StandardCapacity)
		}

		r0 := p.Ops[0].Execute(nil, scratches[0])

		if scratches[0].IsEmpty() && sourceFinished {
			for _, s := range scratches {
				p.Pool.Put(s)
			}
			break
		}
		if scratches[0].IsEmpty() {
			sourceFinished = true
		}

		for i := 1; i < len(p.Ops); i++ {
			p.Ops[i].Execute(scratches[i-1], scratches[i])
		}

		last := scratches[len(scratches)-1]
		if !last.IsEmpty() {
			results = append(results, last.Clone())
		}

		for _, s := range scratches {
			p.Pool.Put(s)
		}

		if r0 == Finished && sourceFinished {
			break
		}
	}

	return results
}

// Reset clears every operator's per-execution state so the pipeline
// can be driven again from the start.
func (p *Pipeline) Reset() {
	for _, op := range p.Ops {
		op.Reset()
	}
}
