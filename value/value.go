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

// Package value implements the runtime tagged-union value that flows
// through expression evaluation and column vectors: Integer, Float,
// Boolean, Varchar, and Null.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SnellerInc/flatql/schema"
)

// Kind tags which field of a Value is meaningful.
type Kind uint8

const (
	KNull Kind = iota
	KInteger
	KFloat
	KBoolean
	KVarchar
)

// Value is a small tagged union. It is passed by value throughout the
// engine rather than boxed behind an interface, since per-row expression
// evaluation is the hottest loop in the system.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	B    bool
	S    string
}

func Null() Value            { return Value{Kind: KNull} }
func Int(i int64) Value      { return Value{Kind: KInteger, I: i} }
func Float(f float64) Value  { return Value{Kind: KFloat, F: f} }
func Bool(b bool) Value      { return Value{Kind: KBoolean, B: b} }
func Varchar(s string) Value { return Value{Kind: KVarchar, S: s} }

// IsNull reports whether v is the NULL value.
func (v Value) IsNull() bool { return v.Kind == KNull }

// ColumnType returns the schema.ColumnType that corresponds to v's Kind.
func (v Value) ColumnType() schema.ColumnType {
	switch v.Kind {
	case KInteger:
		return schema.Integer
	case KFloat:
		return schema.Float
	case KBoolean:
		return schema.Boolean
	case KVarchar:
		return schema.Varchar
	default:
		return schema.Null
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KInteger:
		return strconv.FormatInt(v.I, 10)
	case KFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case KBoolean:
		if v.B {
			return "true"
		}
		return "false"
	case KVarchar:
		return v.S
	default:
		return "NULL"
	}
}

// GoString aids debugging (e.g. %#v in test failures).
func (v Value) GoString() string {
	return fmt.Sprintf("value.Value{%s: %s}", v.ColumnType(), v.String())
}

// Equals reports whether v and o have the same kind and value. Two NULLs
// are considered equal for this purpose (this is a structural equality
// check used by expression/plan comparison, not SQL three-valued logic).
func (v Value) Equals(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KInteger:
		return v.I == o.I
	case KFloat:
		return v.F == o.F
	case KBoolean:
		return v.B == o.B
	case KVarchar:
		return v.S == o.S
	default:
		return true
	}
}

// Parse converts one trimmed CSV field into a Value according to the
// column's declared type (see §4.9 of the query engine's design notes):
// an empty or case-insensitive "null" field is always NULL; otherwise the
// field is parsed per-type, and a parse failure also yields NULL rather
// than an error.
func Parse(field string, ct schema.ColumnType) Value {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return Null()
	}
	switch ct {
	case schema.Integer:
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return Null()
		}
		return Int(i)
	case schema.Float:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Null()
		}
		return Float(f)
	case schema.Boolean:
		switch {
		case strings.EqualFold(trimmed, "true"):
			return Bool(true)
		case strings.EqualFold(trimmed, "false"):
			return Bool(false)
		default:
			return Null()
		}
	case schema.Varchar:
		return Varchar(trimmed)
	default:
		return Null()
	}
}
