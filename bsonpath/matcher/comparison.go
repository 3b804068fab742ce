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

	"github.com/bsonmatch/matchengine/bsonpath"
)

// ComparisonOp is the kind of relational test a Comparison predicate
// performs.
type ComparisonOp int

const (
	EQ ComparisonOp = iota
	LT
	LTE
	GT
	GTE
)

func (op ComparisonOp) String() string {
	switch op {
	case EQ:
		return "$eq"
	case LT:
		return "$lt"
	case LTE:
		return "$lte"
	case GT:
		return "$gt"
	case GTE:
		return "$gte"
	default:
		return "$unknown"
	}
}

// Comparison is a single relational leaf predicate: field <op> rhs.
//
// Equality treats Null, Undefined, and Missing as indistinguishable
// (spec.md section 4.2's canonical-type conflation), matches NaN to
// itself and to no other numeric value, and never matches across
// unrelated canonical types except through that Null/Undefined/Missing
// conflation.
type Comparison struct {
	path     *bsonpath.FieldRef
	op       ComparisonOp
	rhs      bsonpath.Value
	collator bsonpath.Collator
}

var _ LeafPredicate = (*Comparison)(nil)

// NewComparison builds a Comparison predicate. rhs is the right-hand
// operand the path's values are tested against.
func NewComparison(path *bsonpath.FieldRef, op ComparisonOp, rhs bsonpath.Value) *Comparison {
	return &Comparison{path: path, op: op, rhs: rhs}
}

func (c *Comparison) Path() *bsonpath.FieldRef { return c.path }

func (c *Comparison) SetCollator(col bsonpath.Collator) { c.collator = col }

// MatchesSingleValue implements the canonical-type comparison rules:
// same canonical type compares by value; Null/Undefined/Missing all
// compare equal to one another under EQ/LTE/GTE but never under
// LT/GT; a MinKey or MaxKey operand is below or above every other
// value under LT/LTE/GT/GTE and EQ only to itself; NaN never satisfies LT/LTE/
// GT/GTE and only satisfies EQ against another NaN; every other
// cross-canonical-type pairing fails every operator.
func (c *Comparison) MatchesSingleValue(v bsonpath.Value) bool {
	lct := bsonpath.Canonicalize(v.Typ)
	rct := bsonpath.Canonicalize(c.rhs.Typ)

	if lct != rct {
		// Null, Undefined, and Missing all collapse to the same
		// canonical bucket already (spec.md section 3.1), so a
		// mismatch here means a genuinely different type: the only
		// remaining special case is a MinKey/MaxKey operand, which sorts
		// below/above everything else; any other pairing fails.
		switch c.op {
		case EQ:
			return false
		case LT, LTE:
			return rct == bsonpath.CanonicalMaxKey
		case GT, GTE:
			return rct == bsonpath.CanonicalMinKey
		default:
			panic(bsonpath.ErrUnreachable.New(fmt.Sprintf("comparison op %v", c.op)))
		}
	}

	if lct == bsonpath.CanonicalNullish || lct == bsonpath.CanonicalMinKey || lct == bsonpath.CanonicalMaxKey {
		// Within the same bucket these have no further internal order:
		// they're either all EQ to each other or not comparable at all.
		switch c.op {
		case EQ, LTE, GTE:
			return true
		default:
			return false
		}
	}

	if v.Numeric() && c.rhs.Numeric() && (v.IsNaN() || c.rhs.IsNaN()) {
		if c.op == EQ {
			return v.IsNaN() && c.rhs.IsNaN()
		}
		return false
	}

	cmp := bsonpath.Compare(v, c.rhs, c.collator)
	switch c.op {
	case EQ:
		return cmp == 0
	case LT:
		return cmp < 0
	case LTE:
		return cmp <= 0
	case GT:
		return cmp > 0
	case GTE:
		return cmp >= 0
	default:
		panic(bsonpath.ErrUnreachable.New(fmt.Sprintf("comparison op %v", c.op)))
	}
}

func (c *Comparison) Equivalent(other LeafPredicate) bool {
	o, ok := other.(*Comparison)
	if !ok {
		return false
	}
	return o.path.String() == c.path.String() &&
		o.op == c.op &&
		bsonpath.CompareCrossType(o.rhs, c.rhs, nil) == 0
}

// Optimize returns the predicate unchanged: there is no rewrite of a
// bare comparison that simplifies it further.
func (c *Comparison) Optimize() LeafPredicate { return c }

func (c *Comparison) DebugString() string {
	return fmt.Sprintf("%s %s %s", c.path.String(), c.op, c.rhs.DebugString())
}

func (c *Comparison) Serialize() bsonpath.Value {
	inner := bsonpath.NewDocument(bsonpath.Field{Name: c.op.String(), Value: c.rhs})
	return bsonpath.NewObject(bsonpath.NewDocument(
		bsonpath.Field{Name: c.path.String(), Value: bsonpath.NewObject(inner)},
	))
}
