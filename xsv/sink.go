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

import "github.com/SnellerInc/flatql/value"

// RowSink receives parsed rows as a scanner reads them. *vm.Batch
// satisfies this interface structurally, which is what lets this
// package build batches without importing vm.
type RowSink interface {
	AppendRow(vals []value.Value)
	Full() bool
}

// NewSinkFunc constructs a fresh, empty RowSink. ScanParallel calls
// this once per worker batch.
type NewSinkFunc func() RowSink
