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
	"sort"
	"strings"

	"github.com/bsonmatch/matchengine/bsonpath"
)

// In is $in: a value matches if it equals one of a fixed set of
// equality operands or matches one of a fixed set of regexes.
//
// Internally it keeps three views of the operands it was built from,
// mirroring how a document-matcher implementation typically separates
// them: the original operand list in construction order (for Serialize
// and DebugString, which echo operands back as given), a deduplicated
// sorted slice of the non-regex operands (for O(log n) membership
// testing, for Equivalent, and for the optimizer's
// single-equality-collapse rule), and the regex sub-matchers list
// separately, since a regex literal never participates in the sorted
// equality comparison.
type In struct {
	path     *bsonpath.FieldRef
	original []bsonpath.Value
	sorted   []bsonpath.Value
	regexes  []*Regex

	hasNull       bool
	hasEmptyArray bool

	collator bsonpath.Collator
}

var _ LeafPredicate = (*In)(nil)

// NewIn builds an In predicate from a list of equality operands (a
// Regex or Undefined value among them is rejected with ErrBadValue;
// regexes go in regexOperands) plus an optional list of (pattern,
// flags) regex operands.
func NewIn(path *bsonpath.FieldRef, equalities []bsonpath.Value, regexOperands [][2]string) (*In, error) {
	for _, v := range equalities {
		if v.Typ == bsonpath.Regex || v.Typ == bsonpath.Undefined {
			return nil, bsonpath.ErrBadValue.New("$in equality operand cannot be " + v.Typ.String())
		}
	}
	in := &In{path: path, original: append([]bsonpath.Value(nil), equalities...)}

	for _, re := range regexOperands {
		r, err := NewRegex(path, re[0], re[1])
		if err != nil {
			return nil, err
		}
		in.regexes = append(in.regexes, r)
	}

	in.rebuild()
	return in, nil
}

// rebuild recomputes the sorted equality slice (and the hasNull/
// hasEmptyArray flags) from original under the current collator. It
// must run whenever the collator changes, since collation affects the
// sort order of string-like operands.
func (in *In) rebuild() {
	in.sorted = append([]bsonpath.Value(nil), in.original...)
	sort.SliceStable(in.sorted, func(i, j int) bool {
		return bsonpath.CompareCrossType(in.sorted[i], in.sorted[j], in.collator) < 0
	})
	in.sorted = dedupeSorted(in.sorted, in.collator)

	in.hasNull = false
	in.hasEmptyArray = false
	for _, v := range in.original {
		if v.Nullish() {
			in.hasNull = true
		}
		if v.Typ == bsonpath.Array && len(v.Array()) == 0 {
			in.hasEmptyArray = true
		}
	}
}

func dedupeSorted(vs []bsonpath.Value, collator bsonpath.Collator) []bsonpath.Value {
	if len(vs) == 0 {
		return vs
	}
	out := vs[:1]
	for _, v := range vs[1:] {
		if bsonpath.CompareCrossType(out[len(out)-1], v, collator) != 0 {
			out = append(out, v)
		}
	}
	return out
}

func (in *In) Path() *bsonpath.FieldRef { return in.path }

func (in *In) SetCollator(c bsonpath.Collator) {
	in.collator = c
	for _, r := range in.regexes {
		r.SetCollator(c)
	}
	in.rebuild()
}

func (in *In) MatchesSingleValue(v bsonpath.Value) bool {
	i := sort.Search(len(in.sorted), func(i int) bool {
		return bsonpath.CompareCrossType(in.sorted[i], v, in.collator) >= 0
	})
	if i < len(in.sorted) && bsonpath.CompareCrossType(in.sorted[i], v, in.collator) == 0 {
		return true
	}

	for _, r := range in.regexes {
		if r.MatchesSingleValue(v) {
			return true
		}
	}
	return false
}

func (in *In) Equivalent(other LeafPredicate) bool {
	o, ok := other.(*In)
	if !ok || o.path.String() != in.path.String() {
		return false
	}
	if len(o.sorted) != len(in.sorted) || len(o.regexes) != len(in.regexes) {
		return false
	}
	for i := range in.sorted {
		if bsonpath.CompareCrossType(o.sorted[i], in.sorted[i], nil) != 0 {
			return false
		}
	}
	for i := range in.regexes {
		if !in.regexes[i].Equivalent(o.regexes[i]) {
			return false
		}
	}
	return true
}

// Optimize rewrites a single-regex In with no equality operands into a
// bare Regex predicate, and a single-equality In with no regexes into a
// bare Comparison(EQ) predicate, matching the rewrites a query planner
// applies after parsing an $in clause with exactly one operand.
func (in *In) Optimize() LeafPredicate {
	if len(in.sorted) == 0 && len(in.regexes) == 1 {
		return in.regexes[0]
	}
	if len(in.sorted) == 1 && len(in.regexes) == 0 {
		return NewComparison(in.path, EQ, in.sorted[0])
	}
	return in
}

func (in *In) DebugString() string {
	var parts []string
	for _, v := range in.original {
		parts = append(parts, v.DebugString())
	}
	for _, r := range in.regexes {
		parts = append(parts, "/"+r.pattern+"/"+r.flags)
	}
	return in.path.String() + " $in [" + strings.Join(parts, ", ") + "]"
}

func (in *In) Serialize() bsonpath.Value {
	operands := append([]bsonpath.Value(nil), in.original...)
	for _, r := range in.regexes {
		operands = append(operands, bsonpath.NewRegexLiteral(r.pattern, r.flags))
	}
	inner := bsonpath.NewDocument(bsonpath.Field{Name: "$in", Value: bsonpath.NewArray(operands...)})
	return bsonpath.NewObject(bsonpath.NewDocument(
		bsonpath.Field{Name: in.path.String(), Value: bsonpath.NewObject(inner)},
	))
}
