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
	"regexp"

	"github.com/bsonmatch/matchengine/bsonpath"
	"github.com/bsonmatch/matchengine/bsonpath/matcher/internal/regexutil"
)

// Regex is a $regex leaf predicate. It matches string values whose
// contents the compiled pattern finds anywhere (partial match, not
// full-string anchoring), and matches a literal Regex-typed value only
// when its (pattern, flags) pair is identical to this predicate's.
type Regex struct {
	path    *bsonpath.FieldRef
	pattern string
	flags   string
	re      *regexp.Regexp
}

var _ LeafPredicate = (*Regex)(nil)

// NewRegex compiles pattern/flags and builds a Regex predicate.
func NewRegex(path *bsonpath.FieldRef, pattern, flags string) (*Regex, error) {
	re, err := regexutil.Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return &Regex{path: path, pattern: pattern, flags: flags, re: re}, nil
}

func (r *Regex) Path() *bsonpath.FieldRef { return r.path }

// Regex matching is never collation-sensitive.
func (r *Regex) SetCollator(bsonpath.Collator) {}

func (r *Regex) MatchesSingleValue(v bsonpath.Value) bool {
	switch v.Typ {
	case bsonpath.String, bsonpath.Symbol:
		return r.re.MatchString(v.StringValue())
	case bsonpath.Regex:
		lit := v.Regex()
		return lit.Pattern == r.pattern && lit.Flags == r.flags
	default:
		return false
	}
}

func (r *Regex) Equivalent(other LeafPredicate) bool {
	o, ok := other.(*Regex)
	return ok && o.path.String() == r.path.String() && o.pattern == r.pattern && o.flags == r.flags
}

func (r *Regex) Optimize() LeafPredicate { return r }

func (r *Regex) DebugString() string {
	return fmt.Sprintf("%s $regex /%s/%s", r.path.String(), r.pattern, r.flags)
}

func (r *Regex) Serialize() bsonpath.Value {
	return bsonpath.NewObject(bsonpath.NewDocument(
		bsonpath.Field{Name: r.path.String(), Value: bsonpath.NewRegexLiteral(r.pattern, r.flags)},
	))
}
