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

package xsv

import (
	"bufio"
	"io"
	"os"
	"sync/atomic"

	"github.com/SnellerInc/flatql/schema"
)

const maxLineSize = 16 * 1024 * 1024

// Scanner reads one file sequentially on the calling goroutine. It is
// used for scans small enough that worker fan-out isn't worth the
// setup cost (see the threshold in vm.Scan), and for gzip-compressed
// input, which can only ever be read single-threaded.
type Scanner struct {
	f   *os.File
	sc  *bufio.Scanner
	sch schema.Schema
	gz  io.Closer
}

// Open opens path, skips its header line, and returns a Scanner ready
// to read data rows described by sch.
func Open(path string, sch schema.Schema) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	sc.Scan() // discard the header line; io.EOF on an empty file is fine
	return &Scanner{f: f, sc: sc, sch: sch}, nil
}

// Close releases the underlying file handle (and gzip reader, if any).
func (s *Scanner) Close() error {
	if s.gz != nil {
		s.gz.Close()
	}
	return s.f.Close()
}

// Fill reads rows into sink until sink reports Full, until produced
// reaches maxRows (when hasLimit), or until end-of-file. It returns
// done=true when there is nothing more this Scanner can contribute;
// a read failure is treated the same as clean end-of-file, per the
// engine's error-handling contract for scanner I/O.
func (s *Scanner) Fill(sink RowSink, maxRows int64, hasLimit bool, produced *int64) (done bool) {
	for !sink.Full() {
		if hasLimit && atomic.LoadInt64(produced) >= maxRows {
			return true
		}
		if !s.sc.Scan() {
			return true
		}
		line := s.sc.Text()
		if blank(line) {
			continue
		}
		sink.AppendRow(parseRow(line, s.sch))
		atomic.AddInt64(produced, 1)
	}
	return false
}
