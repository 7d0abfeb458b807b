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

import "github.com/SnellerInc/flatql/value"

// AggKind is the variant of a bound aggregate expression.
type AggKind int

const (
	CountStar AggKind = iota
	CountColumn
)

// AggSpec is one aggregate this operator accumulates. ColumnIndex is
// meaningful only for CountColumn.
type AggSpec struct {
	Kind        AggKind
	ColumnIndex int
}

// Aggregate computes an ungrouped aggregate over the entire (already
// filtered) input: a fixed-length counter per AggSpec, emitted as a
// single output row once the upstream source is exhausted.
type Aggregate struct {
	Aggs []AggSpec

	counters   []int64
	hasEmitted bool
	finished   bool
}

func (a *Aggregate) ensure() {
	if a.counters == nil {
		a.counters = make([]int64, len(a.Aggs))
	}
}

func (a *Aggregate) Execute(input, output *Batch) Result {
	a.ensure()
	if a.finished {
		output.Reset()
		return Finished
	}
	if a.hasEmitted {
		output.Reset()
		a.finished = true
		return Finished
	}
	if input.IsEmpty() {
		for i := range a.Aggs {
			output.Columns[i].AppendValue(value.Int(a.counters[i]))
		}
		output.Count = 1
		output.Selection = nil
		a.hasEmitted = true
		a.finished = true
		return Finished
	}

	n := input.SelectedCount()
	for i, spec := range a.Aggs {
		switch spec.Kind {
		case CountStar:
			a.counters[i] += int64(n)
		case CountColumn:
			a.counters[i] += int64(countValidColumn(input, spec.ColumnIndex))
		}
	}
	output.Reset()
	return NeedMoreInput
}

// countValidColumn is the selection-vector-aware popcount COUNT(col)
// needs: it tests validity at exactly the selected physical rows,
// rather than over an arbitrary prefix of physical slots unrelated to
// which rows were actually selected when a selection vector is
// present.
func countValidColumn(b *Batch, col int) int {
	v := b.Columns[col]
	bv, ok := v.(interface{ Bitmap() *Bitmap })
	if !ok {
		// NullVector: every slot is NULL by construction.
		return 0
	}
	if b.Selection != nil {
		return bv.Bitmap().CountValidAt(b.Selection)
	}
	return bv.Bitmap().CountValid(b.Count)
}

func (a *Aggregate) Reset() {
	a.counters = nil
	a.hasEmitted = false
	a.finished = false
}
