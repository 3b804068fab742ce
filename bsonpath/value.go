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

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/spf13/cast"
)

// BinData is the (subtype, bytes) pair backing a Binary value.
type BinData struct {
	Subtype byte
	Data    []byte
}

// RegexLiteral is a literal regex *value* as it can appear in a document,
// distinct from the Regex match *predicate* in package matcher.
type RegexLiteral struct {
	Pattern string
	Flags   string
}

// DBRefValue is a minimal DBRef representation: present in the type
// enumeration for ordering purposes only (spec.md section 3.1).
type DBRefValue struct {
	Collection string
	ID         Value
}

// TimestampValue is a MongoDB-style replication timestamp: (seconds,
// ordinal) pair, present for ordering only.
type TimestampValue struct {
	Seconds uint32
	Ordinal uint32
}

// JSCodeWScopeValue pairs JavaScript source with a variable scope
// document, present for ordering only.
type JSCodeWScopeValue struct {
	Code  string
	Scope *Document
}

// Value is a tagged union over the document type set. Exactly one
// variant is active at a time, discriminated by Typ; which fields are
// meaningful depends on Typ (see the accessor methods below).
type Value struct {
	Typ Type

	boolVal   bool
	i32       int32
	i64       int64
	f64       float64
	dec       *big.Float
	str       string
	oid       [12]byte
	bin       BinData
	arr       []Value
	obj       *Document
	regex     RegexLiteral
	dbref     DBRefValue
	ts        TimestampValue
	date      time.Time
	codeScope JSCodeWScopeValue
}

// MissingValue is the canonical "field not present" sentinel.
var MissingValue = Value{Typ: Missing}

// NullValue is the BSON null literal.
var NullValue = Value{Typ: Null}

// UndefinedValue is the BSON undefined literal.
var UndefinedValue = Value{Typ: Undefined}

// MinKeyValue sorts strictly below every other value.
var MinKeyValue = Value{Typ: MinKey}

// MaxKeyValue sorts strictly above every other value.
var MaxKeyValue = Value{Typ: MaxKey}

func NewBool(b bool) Value       { return Value{Typ: Bool, boolVal: b} }
func NewInt32(i int32) Value     { return Value{Typ: Int32, i32: i} }
func NewInt64(i int64) Value     { return Value{Typ: Int64, i64: i} }
func NewDouble(f float64) Value  { return Value{Typ: Double, f64: f} }
func NewString(s string) Value   { return Value{Typ: String, str: s} }
func NewSymbol(s string) Value   { return Value{Typ: Symbol, str: s} }
func NewObject(d *Document) Value {
	if d == nil {
		d = NewDocument()
	}
	return Value{Typ: Object, obj: d}
}
func NewArray(vs ...Value) Value { return Value{Typ: Array, arr: vs} }
func NewBinary(subtype byte, data []byte) Value {
	return Value{Typ: Binary, bin: BinData{Subtype: subtype, Data: data}}
}
func NewRegexLiteral(pattern, flags string) Value {
	return Value{Typ: Regex, regex: RegexLiteral{Pattern: pattern, Flags: flags}}
}
func NewOID(b [12]byte) Value     { return Value{Typ: OID, oid: b} }
func NewDateTime(t time.Time) Value { return Value{Typ: DateTime, date: t} }
func NewTimestamp(seconds, ordinal uint32) Value {
	return Value{Typ: Timestamp, ts: TimestampValue{Seconds: seconds, Ordinal: ordinal}}
}
func NewDBRef(collection string, id Value) Value {
	return Value{Typ: DBRef, dbref: DBRefValue{Collection: collection, ID: id}}
}
func NewJSCode(code string) Value { return Value{Typ: JSCode, str: code} }
func NewJSCodeWScope(code string, scope *Document) Value {
	return Value{Typ: JSCodeWScope, codeScope: JSCodeWScopeValue{Code: code, Scope: scope}}
}

// NewDecimal builds a Decimal value from a base-10 string, preserving
// the precision math/big.Float affords. There is no ecosystem decimal128
// type among the retrieved examples, so this is one of the few spots
// that leans on the standard library rather than a third-party type;
// see DESIGN.md for the full justification.
func NewDecimal(s string) (Value, error) {
	f, _, err := big.ParseFloat(s, 10, 128, big.ToNearestEven)
	if err != nil {
		return Value{}, ErrBadValue.New(fmt.Sprintf("invalid decimal literal %q: %v", s, err))
	}
	return Value{Typ: Decimal, dec: f}, nil
}

// Missing reports whether this Value represents an absent field.
func (v Value) Missing() bool { return v.Typ == Missing }

// Nullish reports whether this Value is Null, Undefined, or Missing: the
// three types that are conflated for EQ/LTE/GTE purposes.
func (v Value) Nullish() bool {
	return v.Typ == Null || v.Typ == Undefined || v.Typ == Missing
}

// Numeric reports whether this Value is one of the four numeric widths.
func (v Value) Numeric() bool {
	switch v.Typ {
	case Int32, Int64, Double, Decimal:
		return true
	default:
		return false
	}
}

// Bool returns the boolean payload; only meaningful when Typ == Bool.
func (v Value) Bool() bool { return v.boolVal }

// StringValue returns the string/symbol/JSCode payload.
func (v Value) StringValue() string { return v.str }

// Regex returns the (pattern, flags) payload of a Regex value.
func (v Value) Regex() RegexLiteral { return v.regex }

// Array returns the element slice of an Array value.
func (v Value) Array() []Value { return v.arr }

// Object returns the Document payload of an Object value.
func (v Value) Object() *Document { return v.obj }

// Binary returns the (subtype, bytes) payload of a Binary value.
func (v Value) Binary() BinData { return v.bin }

// OID returns the object-id payload.
func (v Value) OID() [12]byte { return v.oid }

// DateTime returns the date payload.
func (v Value) DateTime() time.Time { return v.date }

// Timestamp returns the timestamp payload.
func (v Value) Timestamp() TimestampValue { return v.ts }

// DBRef returns the DBRef payload.
func (v Value) DBRef() DBRefValue { return v.dbref }

// JSCodeWScope returns the code-with-scope payload.
func (v Value) JSCodeWScope() JSCodeWScopeValue { return v.codeScope }

// AsFloat64 converts any numeric variant to a float64, used by NaN
// detection and cross-width comparison. Non-numeric values yield 0.
func (v Value) AsFloat64() float64 {
	switch v.Typ {
	case Int32:
		return float64(v.i32)
	case Int64:
		return float64(v.i64)
	case Double:
		return v.f64
	case Decimal:
		if v.dec == nil {
			return 0
		}
		f, _ := v.dec.Float64()
		return f
	default:
		return 0
	}
}

// IsNaN reports whether a numeric value is NaN. Decimal NaN is folded
// into the same check as Double NaN (spec.md section 9 open question:
// "NaN across all numeric widths uniformly").
func (v Value) IsNaN() bool {
	if !v.Numeric() {
		return false
	}
	return math.IsNaN(v.AsFloat64())
}

// CoerceToLong truncates any numeric value toward zero into an int64,
// built on github.com/spf13/cast for the actual numeric-to-numeric
// conversion plumbing (spec.md section 3.1 "numeric coercion").
func (v Value) CoerceToLong() int64 {
	switch v.Typ {
	case Int32:
		return int64(v.i32)
	case Int64:
		return v.i64
	case Double:
		return int64(v.f64)
	case Decimal:
		i, _ := cast.ToInt64E(v.AsFloat64())
		return i
	default:
		i, _ := cast.ToInt64E(v.str)
		return i
	}
}

// CoerceToDouble widens any numeric value to float64.
func (v Value) CoerceToDouble() float64 { return v.AsFloat64() }

// CoerceToString renders a value as a string for diagnostic purposes,
// using cast.ToString for the scalar cases.
func (v Value) CoerceToString() string {
	switch v.Typ {
	case String, Symbol, JSCode:
		return v.str
	case Int32:
		return cast.ToString(v.i32)
	case Int64:
		return cast.ToString(v.i64)
	case Double:
		return cast.ToString(v.f64)
	case Decimal:
		if v.dec == nil {
			return "0"
		}
		return v.dec.Text('g', 34)
	case Bool:
		return cast.ToString(v.boolVal)
	case Null, Undefined, Missing:
		return "null"
	default:
		return v.Typ.String()
	}
}

// DebugString renders a short human-readable form of the value for
// predicate debug strings; format is not a stable wire contract.
func (v Value) DebugString() string {
	switch v.Typ {
	case Missing:
		return "MISSING"
	case Null, Undefined:
		return "null"
	case String, Symbol:
		return fmt.Sprintf("%q", v.str)
	case Regex:
		return fmt.Sprintf("/%s/%s", v.regex.Pattern, v.regex.Flags)
	case Array:
		out := "["
		for i, e := range v.arr {
			if i > 0 {
				out += ", "
			}
			out += e.DebugString()
		}
		return out + "]"
	case Object:
		out := "{"
		for i, f := range v.Object().Fields() {
			if i > 0 {
				out += ", "
			}
			out += f.Name + ": " + f.Value.DebugString()
		}
		return out + "}"
	default:
		return v.CoerceToString()
	}
}
