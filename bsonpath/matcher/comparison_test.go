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

package matcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonmatch/matchengine/bsonpath"
)

func TestComparisonCrossWidthNumericEquality(t *testing.T) {
	c := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NewInt32(5))
	require.True(t, c.MatchesSingleValue(bsonpath.NewDouble(5.0)))
	require.False(t, c.MatchesSingleValue(bsonpath.NewDouble(5.1)))
}

func TestComparisonNullUndefinedMissingConflateUnderEq(t *testing.T) {
	c := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NullValue)
	require.True(t, c.MatchesSingleValue(bsonpath.UndefinedValue))
	require.True(t, c.MatchesSingleValue(bsonpath.MissingValue))
	require.True(t, c.MatchesSingleValue(bsonpath.NullValue))
}

func TestComparisonNullNeverOrdersUnderLt(t *testing.T) {
	c := NewComparison(bsonpath.NewFieldRef("a"), LT, bsonpath.NullValue)
	require.False(t, c.MatchesSingleValue(bsonpath.NullValue))
	require.False(t, c.MatchesSingleValue(bsonpath.MissingValue))
}

func TestComparisonNaNOnlyEqualsNaN(t *testing.T) {
	c := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NewDouble(math.NaN()))
	require.True(t, c.MatchesSingleValue(bsonpath.NewDouble(math.NaN())))
	require.False(t, c.MatchesSingleValue(bsonpath.NewInt32(5)))

	gt := NewComparison(bsonpath.NewFieldRef("a"), GT, bsonpath.NewDouble(math.NaN()))
	require.False(t, gt.MatchesSingleValue(bsonpath.NewInt32(5)))
	require.False(t, gt.MatchesSingleValue(bsonpath.NewDouble(math.NaN())))
}

func TestComparisonCrossCanonicalTypeNeverEquals(t *testing.T) {
	c := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NewInt32(5))
	require.False(t, c.MatchesSingleValue(bsonpath.NewString("5")))
}

func TestComparisonMinMaxKeyOrdering(t *testing.T) {
	lt := NewComparison(bsonpath.NewFieldRef("a"), GT, bsonpath.MinKeyValue)
	require.True(t, lt.MatchesSingleValue(bsonpath.NewInt32(-1000)))
	require.False(t, lt.MatchesSingleValue(bsonpath.MinKeyValue))

	eq := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.MaxKeyValue)
	require.True(t, eq.MatchesSingleValue(bsonpath.MaxKeyValue))
	require.False(t, eq.MatchesSingleValue(bsonpath.NewInt32(1000)))
}

func TestComparisonEquivalent(t *testing.T) {
	a := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NewInt32(5))
	b := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NewDouble(5))
	require.True(t, a.Equivalent(b))

	c := NewComparison(bsonpath.NewFieldRef("a"), LT, bsonpath.NewInt32(5))
	require.False(t, a.Equivalent(c))
}
