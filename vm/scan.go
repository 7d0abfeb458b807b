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
	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/xsv"
)

// parallelThreshold is the max_rows ceiling below which Scan prefers
// the single-threaded path: for small scans the worker fan-out setup
// isn't worth it.
const parallelThreshold = 5000

// Scan is the leaf physical operator: it produces batches of parsed
// rows from a delimited file, choosing between a single-threaded and
// a byte-range-parallel strategy on its first Execute call.
type Scan struct {
	Path    string
	Schema  schema.Schema
	MaxRows *int64

	started  bool
	parallel bool
	produced int64

	single *xsv.Scanner
	ch     <-chan xsv.RowSink
}

func (s *Scan) hasLimit() bool { return s.MaxRows != nil }

func (s *Scan) maxRows() int64 {
	if s.MaxRows == nil {
		return 0
	}
	return *s.MaxRows
}

func (s *Scan) start() {
	s.started = true
	gzip := xsv.IsGzip(s.Path)
	if !gzip && s.hasLimit() && s.maxRows() < parallelThreshold {
		sc, err := xsv.Open(s.Path, s.Schema)
		if err != nil {
			errorf("vm: scan open %s: %v", s.Path, err)
			return
		}
		s.single = sc
		return
	}
	if gzip {
		sc, err := xsv.OpenGzip(s.Path, s.Schema)
		if err != nil {
			errorf("vm: scan open %s: %v", s.Path, err)
			return
		}
		s.single = sc
		return
	}
	types := s.Schema.ColumnTypes()
	newSink := func() xsv.RowSink { return NewBatch(types, StandardCapacity) }
	ch, err := xsv.ScanParallel(s.Path, s.Schema, s.maxRows(), s.hasLimit(), newSink)
	if err != nil {
		errorf("vm: scan open %s: %v", s.Path, err)
		return
	}
	s.parallel = true
	s.ch = ch
}

// Execute populates output with up to one standard batch of parsed
// rows and reports Finished once the source is exhausted.
func (s *Scan) Execute(_, output *Batch) Result {
	if !s.started {
		s.start()
	}
	if s.parallel {
		b, ok := <-s.ch
		if !ok {
			return Finished
		}
		output.CopyFrom(b.(*Batch))
		return NeedMoreInput
	}
	if s.single == nil {
		return Finished
	}
	done := s.single.Fill(output, s.maxRows(), s.hasLimit(), &s.produced)
	if done {
		s.single.Close()
		s.single = nil
		return Finished
	}
	return NeedMoreInput
}

// Reset drops any per-execution scanner state so Scan can be driven
// again from the start of the file.
func (s *Scan) Reset() {
	if s.single != nil {
		s.single.Close()
	}
	s.started = false
	s.parallel = false
	s.produced = 0
	s.single = nil
	s.ch = nil
}
