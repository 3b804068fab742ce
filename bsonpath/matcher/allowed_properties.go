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
	"regexp"
	"sort"
	"strings"

	"github.com/bsonmatch/matchengine/bsonpath"
)

// PatternProperty pairs a compiled field-name pattern with the
// predicate every field whose name matches it must satisfy.
type PatternProperty struct {
	Pattern   *regexp.Regexp
	Predicate LeafPredicate
}

// AllowedProperties is a JSON-schema-style field router: it routes each
// field of an object value to whichever of patternProperties,
// properties, or otherwise applies, and is satisfied only if every
// field's routing succeeds.
//
// Routing, per field name, in priority order:
//  1. every patternProperties entry whose Pattern matches the name —
//     all of their predicates must accept the field's value;
//  2. if no pattern matched and the name is a member of properties —
//     the field is accepted unconditionally, with no child check:
//     properties is a plain name set, not a map of predicates;
//  3. otherwise — the fallback predicate, if any, must accept; a nil
//     fallback accepts unconditionally (matching JSON Schema's default
//     "additionalProperties: true").
//
// A non-object value vacuously satisfies AllowedProperties: the
// properties/patternProperties keywords only constrain object
// instances.
type AllowedProperties struct {
	path              *bsonpath.FieldRef
	patternProperties []PatternProperty
	properties        map[string]struct{}
	otherwise         LeafPredicate
	namePlaceholder   string
}

var _ LeafPredicate = (*AllowedProperties)(nil)

// NewAllowedProperties builds an AllowedProperties predicate. otherwise
// may be nil. namePlaceholder is the variable name patternProperties'
// and otherwise's child expressions were parsed against (e.g. "i" in
// "{$_internalSchemaAllowedProperties: {namePlaceholder: 'i', ...}}"),
// carried through for Serialize and Equivalent only — it plays no role
// in matching and does not appear in DebugString.
func NewAllowedProperties(path *bsonpath.FieldRef, patternProperties []PatternProperty, properties []string, otherwise LeafPredicate, namePlaceholder string) *AllowedProperties {
	props := make(map[string]struct{}, len(properties))
	for _, name := range properties {
		props[name] = struct{}{}
	}
	return &AllowedProperties{
		path:              path,
		patternProperties: append([]PatternProperty(nil), patternProperties...),
		properties:        props,
		otherwise:         otherwise,
		namePlaceholder:   namePlaceholder,
	}
}

func (a *AllowedProperties) Path() *bsonpath.FieldRef { return a.path }

func (a *AllowedProperties) SetCollator(c bsonpath.Collator) {
	for _, pp := range a.patternProperties {
		pp.Predicate.SetCollator(c)
	}
	if a.otherwise != nil {
		a.otherwise.SetCollator(c)
	}
}

func (a *AllowedProperties) MatchesSingleValue(v bsonpath.Value) bool {
	if v.Typ != bsonpath.Object {
		return true
	}
	for _, f := range v.Object().Fields() {
		if !a.fieldMatches(f.Name, f.Value) {
			return false
		}
	}
	return true
}

func (a *AllowedProperties) fieldMatches(name string, value bsonpath.Value) bool {
	matchedAny := false
	for _, pp := range a.patternProperties {
		if pp.Pattern.MatchString(name) {
			matchedAny = true
			if !pp.Predicate.MatchesSingleValue(value) {
				return false
			}
		}
	}
	if matchedAny {
		return true
	}

	if _, ok := a.properties[name]; ok {
		return true
	}

	if a.otherwise == nil {
		return true
	}
	return a.otherwise.MatchesSingleValue(value)
}

func (a *AllowedProperties) Equivalent(other LeafPredicate) bool {
	o, ok := other.(*AllowedProperties)
	if !ok || o.path.String() != a.path.String() || o.namePlaceholder != a.namePlaceholder {
		return false
	}
	if !patternPropertiesEquivalent(a.patternProperties, o.patternProperties) {
		return false
	}
	if len(o.properties) != len(a.properties) {
		return false
	}
	for name := range a.properties {
		if _, ok := o.properties[name]; !ok {
			return false
		}
	}
	switch {
	case a.otherwise == nil && o.otherwise == nil:
	case a.otherwise == nil || o.otherwise == nil:
		return false
	case !a.otherwise.Equivalent(o.otherwise):
		return false
	}
	return true
}

// patternPropertiesEquivalent compares two patternProperties lists as
// order-independent multisets: each entry in a must pair with a
// distinct, not-yet-consumed entry in b with the same regex source and
// an equivalent child predicate.
func patternPropertiesEquivalent(a, b []PatternProperty) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, pp := range a {
		matched := false
		for i, bp := range b {
			if used[i] {
				continue
			}
			if pp.Pattern.String() == bp.Pattern.String() && pp.Predicate.Equivalent(bp.Predicate) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func (a *AllowedProperties) Optimize() LeafPredicate { return a }

func (a *AllowedProperties) DebugString() string {
	names := make([]string, 0, len(a.properties))
	for k := range a.properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return a.path.String() + " $_internalSchemaAllowedProperties properties=[" + strings.Join(names, ", ") + "]"
}

func (a *AllowedProperties) Serialize() bsonpath.Value {
	names := make([]string, 0, len(a.properties))
	for k := range a.properties {
		names = append(names, k)
	}
	sort.Strings(names)

	nameVals := make([]bsonpath.Value, len(names))
	for i, n := range names {
		nameVals[i] = bsonpath.NewString(n)
	}

	patternFields := make([]bsonpath.Value, len(a.patternProperties))
	for i, pp := range a.patternProperties {
		patternFields[i] = bsonpath.NewObject(bsonpath.NewDocument(
			bsonpath.Field{Name: "regex", Value: bsonpath.NewString(pp.Pattern.String())},
			bsonpath.Field{Name: "expression", Value: pp.Predicate.Serialize()},
		))
	}

	otherwise := bsonpath.NullValue
	if a.otherwise != nil {
		otherwise = a.otherwise.Serialize()
	}

	inner := bsonpath.NewDocument(
		bsonpath.Field{Name: "namePlaceholder", Value: bsonpath.NewString(a.namePlaceholder)},
		bsonpath.Field{Name: "properties", Value: bsonpath.NewArray(nameVals...)},
		bsonpath.Field{Name: "patternProperties", Value: bsonpath.NewArray(patternFields...)},
		bsonpath.Field{Name: "otherwise", Value: otherwise},
	)
	return bsonpath.NewObject(bsonpath.NewDocument(
		bsonpath.Field{Name: a.path.String(), Value: bsonpath.NewObject(bsonpath.NewDocument(
			bsonpath.Field{Name: "$_internalSchemaAllowedProperties", Value: bsonpath.NewObject(inner)},
		))},
	))
}
