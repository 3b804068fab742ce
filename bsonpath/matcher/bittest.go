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
	"fmt"
	"math"

	"github.com/bsonmatch/matchengine/bsonpath"
)

// BitTestOp selects which of the four $bits* operators a BitTest
// predicate evaluates.
type BitTestOp int

const (
	AllSet BitTestOp = iota
	AllClear
	AnySet
	AnyClear
)

// BitTest is $bitsAllSet / $bitsAllClear / $bitsAnySet / $bitsAnyClear.
// It operates on integer-valued numerics (bit position 0 is the least
// significant bit; requesting a position past bit 63 is equivalent to
// testing the value's sign bit, since a two's-complement integer's
// representation repeats its sign bit indefinitely above its width)
// and on Binary values (position 0 is the least significant bit of the
// first byte; positions past the end of the buffer are always clear).
// Any other value type never matches.
type BitTest struct {
	path      *bsonpath.FieldRef
	op        BitTestOp
	positions []uint32
}

var _ LeafPredicate = (*BitTest)(nil)

// NewBitTestFromPositions builds a BitTest from an explicit list of bit
// positions to check.
func NewBitTestFromPositions(path *bsonpath.FieldRef, op BitTestOp, positions []uint32) *BitTest {
	return &BitTest{path: path, op: op, positions: append([]uint32(nil), positions...)}
}

// NewBitTestFromMask builds a BitTest from a 64-bit mask, one position
// per set bit.
func NewBitTestFromMask(path *bsonpath.FieldRef, op BitTestOp, mask uint64) *BitTest {
	var positions []uint32
	for i := uint32(0); i < 64; i++ {
		if mask&(1<<i) != 0 {
			positions = append(positions, i)
		}
	}
	return &BitTest{path: path, op: op, positions: positions}
}

// NewBitTestFromBuffer builds a BitTest from a raw little-endian byte
// buffer, one position per set bit across the whole buffer.
func NewBitTestFromBuffer(path *bsonpath.FieldRef, op BitTestOp, buf []byte) *BitTest {
	var positions []uint32
	for i, b := range buf {
		for bit := 0; bit < 8; bit++ {
			if b&(1<<bit) != 0 {
				positions = append(positions, uint32(i*8+bit))
			}
		}
	}
	return &BitTest{path: path, op: op, positions: positions}
}

func (b *BitTest) Path() *bsonpath.FieldRef { return b.path }

func (b *BitTest) SetCollator(bsonpath.Collator) {}

func (b *BitTest) MatchesSingleValue(v bsonpath.Value) bool {
	var allSet, anySet bool
	switch {
	case v.Numeric():
		val, ok := integralInt64(v)
		if !ok {
			return false
		}
		allSet, anySet = true, false
		for _, p := range b.positions {
			set := bitSetForInt64(val, p)
			if set {
				anySet = true
			} else {
				allSet = false
			}
		}
		if len(b.positions) == 0 {
			allSet = true
		}
	case v.Typ == bsonpath.Binary:
		data := v.Binary().Data
		allSet, anySet = true, false
		for _, p := range b.positions {
			set := bitSetForBuffer(data, p)
			if set {
				anySet = true
			} else {
				allSet = false
			}
		}
		if len(b.positions) == 0 {
			allSet = true
		}
	default:
		return false
	}

	switch b.op {
	case AllSet:
		return allSet
	case AllClear:
		return !anySet
	case AnySet:
		return anySet
	case AnyClear:
		return !allSet
	default:
		panic(bsonpath.ErrUnreachable.New(fmt.Sprintf("bit test op %v", b.op)))
	}
}

// integralInt64 converts a numeric Value to an int64 for bit testing.
// NaN and any value with a fractional part or magnitude outside
// int64's range never participates in a bit test.
func integralInt64(v bsonpath.Value) (int64, bool) {
	switch v.Typ {
	case bsonpath.Int32:
		return v.CoerceToLong(), true
	case bsonpath.Int64:
		return v.CoerceToLong(), true
	case bsonpath.Double, bsonpath.Decimal:
		f := v.AsFloat64()
		if math.IsNaN(f) || math.Trunc(f) != f {
			return 0, false
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

func bitSetForInt64(val int64, p uint32) bool {
	if p < 64 {
		return (val>>p)&1 == 1
	}
	return val < 0
}

func bitSetForBuffer(data []byte, p uint32) bool {
	byteIdx := int(p / 8)
	if byteIdx >= len(data) {
		return false
	}
	return data[byteIdx]&(1<<(p%8)) != 0
}

func (b *BitTest) Equivalent(other LeafPredicate) bool {
	o, ok := other.(*BitTest)
	if !ok || o.path.String() != b.path.String() || o.op != b.op || len(o.positions) != len(b.positions) {
		return false
	}
	for i := range b.positions {
		if o.positions[i] != b.positions[i] {
			return false
		}
	}
	return true
}

func (b *BitTest) Optimize() LeafPredicate { return b }

func (b *BitTest) DebugString() string {
	return fmt.Sprintf("%s bittest(%d) %v", b.path.String(), b.op, b.positions)
}

func (b *BitTest) Serialize() bsonpath.Value {
	name := map[BitTestOp]string{
		AllSet:   "$bitsAllSet",
		AllClear: "$bitsAllClear",
		AnySet:   "$bitsAnySet",
		AnyClear: "$bitsAnyClear",
	}[b.op]
	positions := make([]bsonpath.Value, len(b.positions))
	for i, p := range b.positions {
		positions[i] = bsonpath.NewInt32(int32(p))
	}
	inner := bsonpath.NewDocument(bsonpath.Field{Name: name, Value: bsonpath.NewArray(positions...)})
	return bsonpath.NewObject(bsonpath.NewDocument(
		bsonpath.Field{Name: b.path.String(), Value: bsonpath.NewObject(inner)},
	))
}
