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
	"strings"

	"github.com/SnellerInc/flatql/schema"
	"github.com/klauspost/compress/gzip"
)

// IsGzip reports whether path names a gzip-compressed source, which
// forces the single-threaded scan path: a gzip stream has no byte
// offsets a worker can seek to independently.
func IsGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// OpenGzip opens a gzip-compressed CSV file and skips its header
// line, mirroring Open but decompressing on the fly with
// klauspost/compress's gzip reader.
func OpenGzip(path string, sch schema.Schema) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	sc.Scan() // discard header line
	return &Scanner{f: f, sc: sc, sch: sch, gz: zr}, nil
}
