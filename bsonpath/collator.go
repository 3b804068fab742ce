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

import "strings"

// Collator is the opaque string-comparison policy leaf predicates may be
// bound to (case folding, locale ordering, etc.). The collation factory
// that produces concrete Collators is an external collaborator; this
// package only specifies the contract it must satisfy.
type Collator interface {
	// CompareStrings returns <0, 0, or >0 per the usual comparator
	// convention.
	CompareStrings(a, b string) int

	// Identity is an opaque token two Collators compare equal under: it
	// exists only so IdenticalCollators can tell "the same collation
	// policy" apart from "two different policies that happen to agree
	// on some inputs" without collators needing to implement equality
	// themselves.
	Identity() string
}

// simpleCollator performs plain byte-wise string comparison, the same
// comparison CompareCollatedStrings applies for a nil collator. Nothing
// in this package returns it; nil call sites use strings.Compare directly.
type simpleCollator struct{}

func (simpleCollator) CompareStrings(a, b string) int { return strings.Compare(a, b) }
func (simpleCollator) Identity() string               { return "" }

// CompareCollatedStrings compares two strings under c, or with plain
// byte comparison if c is nil (spec.md section 3: "Absent collator =
// simple byte comparison").
func CompareCollatedStrings(c Collator, a, b string) int {
	if c == nil {
		return strings.Compare(a, b)
	}
	return c.CompareStrings(a, b)
}

// IdenticalCollators reports whether two Collators compare "equal" via
// the identity predicate described in spec.md section 3.1: two nils are
// identical, a nil and a non-nil are not, and two non-nils are identical
// iff they report the same Identity().
func IdenticalCollators(a, b Collator) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Identity() == b.Identity()
}
