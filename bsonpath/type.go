// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bsonpath

// Type is the variant discriminant of a Value. It is finer-grained than
// CanonicalType: Int32, Int64, Double and Decimal are distinct Types that
// all share the Numeric canonical type.
type Type int

const (
	Missing Type = iota
	Null
	Undefined
	Bool
	Int32
	Int64
	Double
	Decimal
	String
	Symbol
	Object
	Array
	Binary
	Regex
	MinKey
	MaxKey
	OID
	DateTime
	Timestamp
	DBRef
	JSCode
	JSCodeWScope
)

func (t Type) String() string {
	switch t {
	case Missing:
		return "missing"
	case Null:
		return "null"
	case Undefined:
		return "undefined"
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Double:
		return "double"
	case Decimal:
		return "decimal"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Object:
		return "object"
	case Array:
		return "array"
	case Binary:
		return "binary"
	case Regex:
		return "regex"
	case MinKey:
		return "minKey"
	case MaxKey:
		return "maxKey"
	case OID:
		return "oid"
	case DateTime:
		return "date"
	case Timestamp:
		return "timestamp"
	case DBRef:
		return "dbRef"
	case JSCode:
		return "jsCode"
	case JSCodeWScope:
		return "jsCodeWScope"
	default:
		return "unknown"
	}
}

// CanonicalType is the coarser ordering class used for cross-type
// comparisons. Several Types collapse into one CanonicalType: the four
// numeric widths, String/Symbol, and Null/Undefined/Missing.
type CanonicalType int

const (
	CanonicalMinKey CanonicalType = iota
	CanonicalNullish
	CanonicalNumeric
	CanonicalStringLike
	CanonicalObject
	CanonicalArray
	CanonicalBinary
	CanonicalOID
	CanonicalBool
	CanonicalDate
	CanonicalTimestamp
	CanonicalRegex
	CanonicalDBRef
	CanonicalJSCode
	CanonicalJSCodeWScope
	CanonicalMaxKey
)

// Canonicalize maps a Type to its CanonicalType, the ordering used by
// every cross-type comparison in the comparison predicates (spec.md
// section 3.1/4.2). Keeping this as a single table, rather than scattered
// switches, is what makes the total ordering invariant easy to audit.
func Canonicalize(t Type) CanonicalType {
	switch t {
	case MinKey:
		return CanonicalMinKey
	case Null, Undefined, Missing:
		return CanonicalNullish
	case Int32, Int64, Double, Decimal:
		return CanonicalNumeric
	case String, Symbol:
		return CanonicalStringLike
	case Object:
		return CanonicalObject
	case Array:
		return CanonicalArray
	case Binary:
		return CanonicalBinary
	case OID:
		return CanonicalOID
	case Bool:
		return CanonicalBool
	case DateTime:
		return CanonicalDate
	case Timestamp:
		return CanonicalTimestamp
	case Regex:
		return CanonicalRegex
	case DBRef:
		return CanonicalDBRef
	case JSCode:
		return CanonicalJSCode
	case JSCodeWScope:
		return CanonicalJSCodeWScope
	case MaxKey:
		return CanonicalMaxKey
	default:
		return CanonicalMaxKey
	}
}
