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

import "github.com/bsonmatch/matchengine/bsonpath"

// LeafPredicate is the common interface every leaf match-expression in
// this package implements: a single-value test bound to a path, plus
// the bookkeeping the dispatcher and query planner need around it.
type LeafPredicate interface {
	// Path returns the field path this predicate is bound to.
	Path() *bsonpath.FieldRef

	// MatchesSingleValue reports whether v, taken on its own (not as
	// part of a document), satisfies the predicate.
	MatchesSingleValue(v bsonpath.Value) bool

	// SetCollator rebinds the predicate's string-comparison policy.
	// Predicates that pre-sort or pre-index their operands (In) must
	// redo that work when the collator changes.
	SetCollator(c bsonpath.Collator)

	// Equivalent reports whether other is a structurally identical
	// predicate: same kind, same path, same operand(s).
	Equivalent(other LeafPredicate) bool

	// Optimize returns a possibly-rewritten but semantically identical
	// predicate, e.g. a single-element In collapsing to an Equality.
	Optimize() LeafPredicate

	// DebugString renders a short, human-readable form for logging.
	DebugString() string

	// Serialize renders the predicate as a document-shaped Value
	// (mirroring the {field: {$op: operand}} form it would parse from),
	// used for persistence and cross-process transport.
	Serialize() bsonpath.Value
}

// EvalDocument runs pred against doc by constructing the path's
// PathIterator under policy and returning true on the first emitted
// value pred.MatchesSingleValue accepts, short-circuiting the rest.
//
// A path-level special case is handled here rather than inside
// individual predicates: an iterator that produces zero emissions (the
// normal missing-field case already yields one Missing emission from
// resolvePrefix, but a dead-ending array traversal can yield none at
// all — spec.md section 9's NestedPartialMatchArray question) is
// treated as though the path resolved to a single implicit Missing
// value, so EQ(Null) and $exists:false agree with a document where the
// field were simply absent.
func EvalDocument(policy Policy, pred LeafPredicate, doc *bsonpath.Document) bool {
	root := bsonpath.NewObject(doc)
	it := NewPathIterator(policy, pred.Path(), root)

	if !it.More() {
		return pred.MatchesSingleValue(bsonpath.MissingValue)
	}

	for it.More() {
		ctx := it.Next()
		if pred.MatchesSingleValue(ctx.Value) {
			return true
		}
	}
	return false
}
