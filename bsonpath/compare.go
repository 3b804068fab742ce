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
	"bytes"
	"math"
	"strings"
)

// Compare returns <0, 0, or >0 comparing a and b under the canonical
// type ordering (spec.md section 3.1), using collator for string-like
// comparisons. Compare assumes a and b have the same CanonicalType;
// cross-canonical-type comparisons belong to the comparison predicate's
// own dispatch (spec.md section 4.2), not here.
func Compare(a, b Value, collator Collator) int {
	switch Canonicalize(a.Typ) {
	case CanonicalMinKey, CanonicalMaxKey, CanonicalNullish:
		return 0
	case CanonicalNumeric:
		return compareNumeric(a, b)
	case CanonicalStringLike:
		return CompareCollatedStrings(collator, a.str, b.str)
	case CanonicalBool:
		if a.boolVal == b.boolVal {
			return 0
		}
		if !a.boolVal {
			return -1
		}
		return 1
	case CanonicalObject:
		return compareObject(a.Object(), b.Object(), collator)
	case CanonicalArray:
		return compareArray(a.arr, b.arr, collator)
	case CanonicalBinary:
		return compareBinary(a.bin, b.bin)
	case CanonicalOID:
		return bytes.Compare(a.oid[:], b.oid[:])
	case CanonicalDate:
		if a.date.Before(b.date) {
			return -1
		}
		if a.date.After(b.date) {
			return 1
		}
		return 0
	case CanonicalTimestamp:
		if a.ts.Seconds != b.ts.Seconds {
			return int(a.ts.Seconds) - int(b.ts.Seconds)
		}
		return int(a.ts.Ordinal) - int(b.ts.Ordinal)
	case CanonicalRegex:
		if c := strings.Compare(a.regex.Pattern, b.regex.Pattern); c != 0 {
			return c
		}
		return strings.Compare(a.regex.Flags, b.regex.Flags)
	case CanonicalDBRef:
		if c := strings.Compare(a.dbref.Collection, b.dbref.Collection); c != 0 {
			return c
		}
		return Compare(a.dbref.ID, b.dbref.ID, collator)
	case CanonicalJSCode:
		return strings.Compare(a.str, b.str)
	case CanonicalJSCodeWScope:
		return strings.Compare(a.codeScope.Code, b.codeScope.Code)
	default:
		return 0
	}
}

// compareNumeric compares across int32/int64/double/decimal widths by
// value, not by representation: 5 (Int32) and 5.0 (Double) compare
// equal, matching spec.md's "cross-width comparisons are value-correct."
// The Comparison predicate intercepts NaN before ever calling Compare
// for $eq/$lt/$lte/$gt/$gte, but callers that sort or binary-search a
// set of values (In's equality set) need a total order regardless, so
// NaN is defined here to equal only itself and sort below every other
// number.
func compareNumeric(a, b Value) int {
	af, bf := a.AsFloat64(), b.AsFloat64()
	aNaN, bNaN := math.IsNaN(af), math.IsNaN(bf)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

func compareArray(a, b []Value, collator Collator) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ct := Canonicalize(a[i].Typ)
		if ct != Canonicalize(b[i].Typ) {
			return int(ct) - int(Canonicalize(b[i].Typ))
		}
		if c := Compare(a[i], b[i], collator); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareObject(a, b *Document, collator Collator) int {
	af, bf := a.Fields(), b.Fields()
	for i := 0; i < len(af) && i < len(bf); i++ {
		if c := strings.Compare(af[i].Name, bf[i].Name); c != 0 {
			return c
		}
		ct := Canonicalize(af[i].Value.Typ)
		if ct != Canonicalize(bf[i].Value.Typ) {
			return int(ct) - int(Canonicalize(bf[i].Value.Typ))
		}
		if c := Compare(af[i].Value, bf[i].Value, collator); c != 0 {
			return c
		}
	}
	return len(af) - len(bf)
}

func compareBinary(a, b BinData) int {
	if len(a.Data) != len(b.Data) {
		return len(a.Data) - len(b.Data)
	}
	if a.Subtype != b.Subtype {
		return int(a.Subtype) - int(b.Subtype)
	}
	return bytes.Compare(a.Data, b.Data)
}

// CompareCrossType orders a and b when they may belong to different
// CanonicalTypes, used by In-set binary search and by the sorted
// equality vector: unlike Compare, it is safe to call on any pair.
func CompareCrossType(a, b Value, collator Collator) int {
	ca, cb := Canonicalize(a.Typ), Canonicalize(b.Typ)
	if ca != cb {
		return int(ca) - int(cb)
	}
	return Compare(a, b, collator)
}
