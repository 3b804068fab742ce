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

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrBadValue reports a malformed predicate construction, e.g. Mod
	// with a zero divisor, or an In equality set containing a regex
	// literal or Undefined. NewComparison takes its operand as given and
	// does not reject Undefined.
	ErrBadValue = errors.NewKind("bad value: %s")

	// ErrRegexCompile reports that the regex engine rejected a pattern
	// or flag string.
	ErrRegexCompile = errors.NewKind("invalid regular expression: %s")

	// ErrUnreachable marks a code path that the ordering invariants
	// declare impossible. Hitting it is a programmer error, not a
	// runtime condition callers should handle.
	ErrUnreachable = errors.NewKind("unreachable: %s")
)
