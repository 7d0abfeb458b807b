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
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/SnellerInc/flatql/ints"
	"github.com/SnellerInc/flatql/schema"
)

// parallelThreshold is the file size at or above which ScanParallel fans
// out to more than one worker.
const parallelThreshold = 1 << 20 // 1 MB

// ScanParallel partitions path into byte ranges and reads them
// concurrently, sending completed sinks on the returned channel. The
// channel closes once every worker has finished. maxRows/hasLimit, if
// hasLimit is true, wire a shared atomic counter that lets all
// workers stop early once enough rows have been produced in total.
func ScanParallel(path string, sch schema.Schema, maxRows int64, hasLimit bool, newSink NewSinkFunc) (<-chan RowSink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	f.Close()

	size := info.Size()
	n := 1
	if size >= parallelThreshold {
		n = ints.Max(1, runtime.GOMAXPROCS(0))
	}
	ranges := splitRanges(size, n)
	// Len is a cheap total-coverage sanity check: splitRanges must
	// produce ranges that partition the file exactly once, with no
	// gap or overlap. Clone first since Intervals is meant for
	// sets that may need normalizing and Len should not be the
	// thing that decides to mutate the partition.
	if covered := ints.Intervals(ranges).Clone().Len(); covered != int(size) {
		errorf("xsv: range split covers %d bytes, want %d", covered, size)
	}

	var counter *int64
	if hasLimit {
		counter = new(int64)
	}

	q := newUnboundedQueue()
	out := make(chan RowSink)
	go func() {
		for {
			v, ok := q.recv()
			if !ok {
				close(out)
				return
			}
			out <- v
		}
	}()

	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r ints.Interval) {
			defer wg.Done()
			scanWorker(path, sch, i == 0, r, maxRows, hasLimit, counter, newSink, q)
		}(i, r)
	}
	go func() {
		wg.Wait()
		q.closeQueue()
	}()

	return out, nil
}

func splitRanges(size int64, n int) []ints.Interval {
	if n < 1 {
		n = 1
	}
	out := make([]ints.Interval, 0, n)
	step := size / int64(n)
	start := int64(0)
	for i := 0; i < n; i++ {
		end := start + step
		if i == n-1 || end > size {
			end = size
		}
		out = append(out, ints.Interval{Start: int(start), End: int(end)})
		start = end
	}
	return out
}

// readLine reads one line (trimming its terminator) along with the
// number of raw bytes consumed, so callers can track their position
// within a byte range.
func readLine(br *bufio.Reader) (line string, n int, err error) {
	raw, err := br.ReadString('\n')
	n = len(raw)
	line = raw
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
	}
	return line, n, err
}

// scanWorker implements the per-worker protocol: seek to the range
// start, discard a leading partial line (or the header, for the
// first worker), then read and parse rows until the shared counter
// trips, the range is exhausted, or the file ends.
func scanWorker(path string, sch schema.Schema, first bool, r ints.Interval, maxRows int64, hasLimit bool, counter *int64, newSink NewSinkFunc, q *unboundedQueue) {
	f, err := os.Open(path)
	if err != nil {
		errorf("xsv: worker open %s: %v", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Seek(int64(r.Start), 0); err != nil {
		errorf("xsv: worker seek %s: %v", path, err)
		return
	}
	br := bufio.NewReaderSize(f, 64*1024)
	pos := int64(r.Start)

	// Discard the header (first worker) or the line holding the range
	// start, which the previous worker reads as its final row (every
	// other worker); both cases are "skip exactly one line".
	_, n, _ := readLine(br)
	pos += int64(n)

	sink := newSink()
	for {
		// A line belongs to this worker when it starts at or before
		// r.End.
		if pos > int64(r.End) {
			break
		}
		if hasLimit && atomic.LoadInt64(counter) >= maxRows {
			break
		}
		line, n, err := readLine(br)
		pos += int64(n)
		if n > 0 && !blank(line) {
			sink.AppendRow(parseRow(line, sch))
			if hasLimit {
				atomic.AddInt64(counter, 1)
			}
			if sink.Full() {
				q.send(sink)
				sink = newSink()
			}
		}
		if err != nil {
			break
		}
	}
	q.send(sink)
}
