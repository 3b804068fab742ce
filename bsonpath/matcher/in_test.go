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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonmatch/matchengine/bsonpath"
)

func TestInMatchesAnyEqualityOperand(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), []bsonpath.Value{
		bsonpath.NewInt32(1), bsonpath.NewInt32(2), bsonpath.NewInt32(3),
	}, nil)
	require.NoError(t, err)
	require.True(t, in.MatchesSingleValue(bsonpath.NewInt32(2)))
	require.True(t, in.MatchesSingleValue(bsonpath.NewDouble(3.0)))
	require.False(t, in.MatchesSingleValue(bsonpath.NewInt32(4)))
}

func TestInMatchesRegexOperand(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), nil, [][2]string{{"^foo", ""}})
	require.NoError(t, err)
	require.True(t, in.MatchesSingleValue(bsonpath.NewString("foobar")))
	require.False(t, in.MatchesSingleValue(bsonpath.NewString("barfoo")))
}

func TestInNullMatchesMissingAndUndefined(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), []bsonpath.Value{bsonpath.NullValue}, nil)
	require.NoError(t, err)
	require.True(t, in.MatchesSingleValue(bsonpath.MissingValue))
	require.True(t, in.MatchesSingleValue(bsonpath.UndefinedValue))
}

func TestInOptimizeSingleEqualityCollapsesToComparison(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), []bsonpath.Value{bsonpath.NewInt32(7)}, nil)
	require.NoError(t, err)
	opt := in.Optimize()
	cmp, ok := opt.(*Comparison)
	require.True(t, ok)
	require.Equal(t, EQ, cmp.op)
}

func TestInOptimizeSingleRegexCollapsesToRegex(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), nil, [][2]string{{"^x", ""}})
	require.NoError(t, err)
	opt := in.Optimize()
	_, ok := opt.(*Regex)
	require.True(t, ok)
}

func TestInOptimizeLeavesMultiOperandAlone(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), []bsonpath.Value{bsonpath.NewInt32(1), bsonpath.NewInt32(2)}, nil)
	require.NoError(t, err)
	require.Same(t, in, in.Optimize())
}

func TestInDeduplicatesEqualityOperands(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), []bsonpath.Value{
		bsonpath.NewInt32(1), bsonpath.NewInt32(1), bsonpath.NewDouble(1.0),
	}, nil)
	require.NoError(t, err)
	require.Len(t, in.sorted, 1)
}

func TestInSetCollatorRebuildsSortedSet(t *testing.T) {
	in, err := NewIn(bsonpath.NewFieldRef("a"), []bsonpath.Value{
		bsonpath.NewString("b"), bsonpath.NewString("a"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "a", in.sorted[0].StringValue())

	in.SetCollator(reverseCollator{})
	require.Equal(t, "b", in.sorted[0].StringValue())
}

type reverseCollator struct{}

func (reverseCollator) CompareStrings(a, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return 1
	}
	return -1
}
func (reverseCollator) Identity() string { return "reverse" }
