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

// Package xsv chops a delimited text file into rows: a single-threaded
// Scanner for small scans, and ScanParallel for byte-range-partitioned
// concurrent scans of larger files. Neither depends on package vm;
// callers hand in a RowSink (satisfied by *vm.Batch) so batches can be
// built without an import cycle.
package xsv
