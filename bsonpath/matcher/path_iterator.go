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

// Package matcher implements leaf match-expressions and the path
// traversal they run against, mirroring the structure (if not the
// storage format) of a document-database matcher subsystem: a single
// dotted path may implicitly fan out across arrays, and a predicate is
// satisfied as soon as any one of the values the path names is a match.
package matcher

import (
	"strconv"

	"github.com/bsonmatch/matchengine/bsonpath"
)

// Context is one value a PathIterator emits, paired with the array
// offset it was found at (if any). Offset is only meaningful when
// HasOffset is true; an explicit numeric-index match never sets it,
// and neither does a scalar leaf.
type Context struct {
	Value     bsonpath.Value
	Offset    string
	HasOffset bool
}

// PathIterator walks a FieldRef against a root value, yielding every
// value the path implicitly names. A dotted path with no arrays along
// it yields exactly one Context; an array encountered along the way
// fans out into one Context per element (plus, for a traversed leaf
// array, a final Context for the array itself), subject to Policy.
//
// Results are computed eagerly at construction time rather than through
// an incremental BEGIN/IN_ARRAY/DONE state machine: the emitted
// sequence and each Context's offset are what the matcher's invariants
// are phrased over, and an eager slice reproduces them with far less
// risk of an off-by-one in the recursive-descent bookkeeping than a
// hand-rolled resumable generator would. See DESIGN.md.
type PathIterator struct {
	emissions []Context
	pos       int
}

// NewPathIterator builds an iterator over path against root under policy.
func NewPathIterator(policy Policy, path *bsonpath.FieldRef, root bsonpath.Value) *PathIterator {
	return &PathIterator{emissions: collect(policy, path, root)}
}

// More reports whether Next has another Context to return.
func (it *PathIterator) More() bool { return it.pos < len(it.emissions) }

// Next returns the next Context and advances the cursor. Next panics if
// called when More is false, mirroring slice-index-out-of-range
// behavior rather than silently returning a zero value.
func (it *PathIterator) Next() Context {
	c := it.emissions[it.pos]
	it.pos++
	return c
}

// collect resolves path against root and returns every Context the
// spec's traversal rules produce, in emission order.
func collect(policy Policy, path *bsonpath.FieldRef, root bsonpath.Value) []Context {
	cur, k := resolvePrefix(path, root)

	if cur.Typ != bsonpath.Array {
		if k < path.NumParts() {
			// cur is a scalar (or other non-object, non-array) value
			// but the path still has components left to descend
			// through — e.g. {a: 4} against "a.b". There is nothing
			// further to resolve, so the path names nothing, the same
			// as a field that was never present.
			return []Context{{Value: bsonpath.MissingValue}}
		}
		return []Context{{Value: cur}}
	}

	hasMore := k < path.NumParts()
	arr := cur.Array()

	if hasMore {
		switch policy.NonLeafArray {
		case NonLeafNoTraversal:
			return nil
		case NonLeafMatchSubpath:
			return []Context{{Value: cur}}
		}
	} else if policy.LeafArray == LeafNoTraversal {
		return []Context{{Value: cur}}
	}

	var rest *bsonpath.FieldRef
	if hasMore {
		rest = path.Suffix(k)
	}

	var out []Context
	for i, e := range arr {
		idx := strconv.Itoa(i)

		if !hasMore {
			out = append(out, Context{Value: e, Offset: idx, HasOffset: true})
			continue
		}

		if e.Typ == bsonpath.Object {
			for _, c := range collect(policy, rest, e) {
				c.Offset = idx
				c.HasOffset = true
				out = append(out, c)
			}
			continue
		}

		if rest.IsNumeric(0) && rest.GetPart(0) == idx {
			if rest.NumParts() == 1 {
				out = append(out, Context{Value: e})
				continue
			}
			out = append(out, collect(policy, rest.Suffix(1), e)...)
			continue
		}

		// Non-object element, no matching explicit index, and path
		// components remain: a dead end that contributes nothing
		// (spec.md section 9 open question on partial-match arrays).
	}

	if !hasMore {
		out = append(out, Context{Value: cur})
	}

	return out
}

// resolvePrefix descends root through object fields named by path's
// leading components, stopping as soon as it hits an array, a
// non-object value with components still unconsumed, or the end of the
// path. It returns the value it stopped on and the number of
// components consumed to reach it.
func resolvePrefix(path *bsonpath.FieldRef, root bsonpath.Value) (bsonpath.Value, int) {
	cur := root
	k := 0
	for k < path.NumParts() {
		if cur.Typ == bsonpath.Array {
			break
		}
		if cur.Typ != bsonpath.Object {
			break
		}
		next, ok := cur.Object().Get(path.GetPart(k))
		if ok {
			cur = next
		} else {
			cur = bsonpath.MissingValue
		}
		k++
	}
	return cur, k
}
