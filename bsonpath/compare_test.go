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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalTypeOrderIsTotal(t *testing.T) {
	ordered := []Value{
		MinKeyValue,
		NullValue,
		NewInt32(5),
		NewString("x"),
		NewObject(NewDocument()),
		NewArray(),
		NewBinary(0, nil),
		NewOID([12]byte{}),
		NewBool(true),
		NewTimestamp(1, 1),
		NewRegexLiteral("a", ""),
		NewDBRef("c", NewInt32(1)),
		NewJSCode("x"),
		NewJSCodeWScope("x", NewDocument()),
		MaxKeyValue,
	}
	for i := 0; i < len(ordered)-1; i++ {
		require.Less(t, int(Canonicalize(ordered[i].Typ)), int(Canonicalize(ordered[i+1].Typ)))
	}
}

func TestCompareCrossTypeNullishConflation(t *testing.T) {
	require.Equal(t, 0, CompareCrossType(NullValue, UndefinedValue, nil))
	require.Equal(t, 0, CompareCrossType(NullValue, MissingValue, nil))
}

func TestCompareNumericCrossWidth(t *testing.T) {
	require.Equal(t, 0, CompareCrossType(NewInt32(5), NewDouble(5.0), nil))
	require.True(t, CompareCrossType(NewInt32(4), NewDouble(5.0), nil) < 0)
}

func TestCompareNumericNaNOrdersConsistently(t *testing.T) {
	nan := NewDouble(math.NaN())
	require.Equal(t, 0, CompareCrossType(nan, NewDouble(math.NaN()), nil))
	require.NotEqual(t, 0, CompareCrossType(nan, NewInt32(5), nil))
}

type reverseCollator struct{}

func (reverseCollator) CompareStrings(a, b string) int {
	// Reverses ordinary ordering, just enough to prove Compare actually
	// consults the collator rather than always falling back to bytes.
	if a == b {
		return 0
	}
	if a < b {
		return 1
	}
	return -1
}
func (reverseCollator) Identity() string { return "reverse" }

func TestCompareUsesCollatorForStrings(t *testing.T) {
	require.True(t, Compare(NewString("a"), NewString("b"), nil) < 0)
	require.True(t, Compare(NewString("a"), NewString("b"), reverseCollator{}) > 0)
}

func TestIdenticalCollators(t *testing.T) {
	require.True(t, IdenticalCollators(nil, nil))
	require.False(t, IdenticalCollators(nil, reverseCollator{}))
	require.True(t, IdenticalCollators(reverseCollator{}, reverseCollator{}))
}

func TestCompareArraysLexicographic(t *testing.T) {
	a := NewArray(NewInt32(1), NewInt32(2))
	b := NewArray(NewInt32(1), NewInt32(3))
	require.True(t, Compare(a, b, nil) < 0)

	shorter := NewArray(NewInt32(1))
	require.True(t, Compare(shorter, a, nil) < 0)
}

func TestCompareObjectsByFieldOrder(t *testing.T) {
	a := NewObject(NewDocument(Field{Name: "a", Value: NewInt32(1)}))
	b := NewObject(NewDocument(Field{Name: "a", Value: NewInt32(2)}))
	require.True(t, Compare(a, b, nil) < 0)
}
