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

func TestBitTestAllSetFromPositions(t *testing.T) {
	// 0b1010 = bits 1 and 3 set.
	b := NewBitTestFromPositions(bsonpath.NewFieldRef("a"), AllSet, []uint32{1, 3})
	require.True(t, b.MatchesSingleValue(bsonpath.NewInt32(0b1010)))
	require.False(t, b.MatchesSingleValue(bsonpath.NewInt32(0b0010)))
}

func TestBitTestAnyClear(t *testing.T) {
	b := NewBitTestFromPositions(bsonpath.NewFieldRef("a"), AnyClear, []uint32{0, 1})
	require.True(t, b.MatchesSingleValue(bsonpath.NewInt32(0b01)))
	require.False(t, b.MatchesSingleValue(bsonpath.NewInt32(0b11)))
}

func TestBitTestFromMask(t *testing.T) {
	b := NewBitTestFromMask(bsonpath.NewFieldRef("a"), AllSet, 0b0110)
	require.True(t, b.MatchesSingleValue(bsonpath.NewInt32(0b1110)))
	require.False(t, b.MatchesSingleValue(bsonpath.NewInt32(0b0100)))
}

func TestBitTestHighPositionIsSignBit(t *testing.T) {
	b := NewBitTestFromPositions(bsonpath.NewFieldRef("a"), AnySet, []uint32{100})
	require.True(t, b.MatchesSingleValue(bsonpath.NewInt64(-1)))
	require.False(t, b.MatchesSingleValue(bsonpath.NewInt64(5)))
}

func TestBitTestRejectsNaNAndFractional(t *testing.T) {
	b := NewBitTestFromPositions(bsonpath.NewFieldRef("a"), AllSet, []uint32{0})
	require.False(t, b.MatchesSingleValue(bsonpath.NewDouble(math.NaN())))
	require.False(t, b.MatchesSingleValue(bsonpath.NewDouble(1.5)))
	require.False(t, b.MatchesSingleValue(bsonpath.NewString("x")))
}

func TestBitTestFromBuffer(t *testing.T) {
	// byte 0 = 0b00000101: bits 0 and 2 set.
	b := NewBitTestFromBuffer(bsonpath.NewFieldRef("a"), AllSet, []byte{0b00000101})
	require.True(t, b.MatchesSingleValue(bsonpath.NewBinary(0, []byte{0b00000101})))
	require.False(t, b.MatchesSingleValue(bsonpath.NewBinary(0, []byte{0b00000001})))
}

func TestBitTestBufferOutOfRangeIsClear(t *testing.T) {
	b := NewBitTestFromPositions(bsonpath.NewFieldRef("a"), AnySet, []uint32{100})
	require.False(t, b.MatchesSingleValue(bsonpath.NewBinary(0, []byte{0xFF})))
}
