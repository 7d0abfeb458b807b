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

// Package schema describes the shape of a single delimited-file table:
// column names, their inferred types, and the 0-based position each
// column occupies in the source file.
package schema

// ColumnType is the inferred type of a column.
type ColumnType int

const (
	// Null is used only for columns whose sample rows were all
	// empty/NULL during type inference.
	Null ColumnType = iota
	Integer
	Float
	Boolean
	Varchar
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Boolean:
		return "BOOLEAN"
	case Varchar:
		return "VARCHAR"
	default:
		return "NULL"
	}
}

// Column is one schema entry: a name, its type, and Index, the 0-based
// position of the column in the source file's schema. Index is set once
// by the binder and is preserved by the optimizer's projection pushdown
// so the scanner can always find a column's physical field regardless
// of how operators above it have pruned or reordered their view of it.
type Column struct {
	Name  string
	Type  ColumnType
	Index int
}

// Schema is an ordered list of columns.
type Schema []Column

// ColumnTypes returns the types of the schema's columns, in order.
func (s Schema) ColumnTypes() []ColumnType {
	out := make([]ColumnType, len(s))
	for i, c := range s {
		out[i] = c.Type
	}
	return out
}

// Find returns the column named name, if present.
func (s Schema) Find(name string) (Column, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
