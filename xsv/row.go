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
	"strings"

	"github.com/SnellerInc/flatql/schema"
	"github.com/SnellerInc/flatql/value"
)

// blank reports whether line has no non-whitespace content.
func blank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// splitRow performs the engine's deliberately simple comma split: no
// quoting is interpreted here, since that is the binder's concern
// during type inference, not the scanner's.
func splitRow(line string) []string {
	return strings.Split(line, ",")
}

// parseRow builds one row of values, ordered to match sch, from a raw
// CSV line. Each column's Index names its position in the physical
// file record; a short record (fewer fields than the widest column
// index needs) yields Null for the missing cells.
func parseRow(line string, sch schema.Schema) []value.Value {
	fields := splitRow(line)
	vals := make([]value.Value, len(sch))
	for i, col := range sch {
		field := ""
		if col.Index < len(fields) {
			field = fields[col.Index]
		}
		vals[i] = value.Parse(field, col.Type)
	}
	return vals
}
