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
)

var bitTestOpsByName = map[string]BitTestOp{
	"$bitsAllSet":   AllSet,
	"$bitsAllClear": AllClear,
	"$bitsAnySet":   AnySet,
	"$bitsAnyClear": AnyClear,
}

// Deserialize parses a bsonpath.Value produced by some LeafPredicate's
// Serialize back into a live predicate. It only understands the shapes
// this package's own Serialize implementations produce — a path-keyed
// single-field object wrapping either a bare regex literal or a single
// operator/operand pair — so it round-trips this package's own output,
// not an arbitrary document-language parser.
func Deserialize(v bsonpath.Value) (LeafPredicate, error) {
	if v.Typ != bsonpath.Object || v.Object().Len() != 1 {
		return nil, bsonpath.ErrBadValue.New(fmt.Sprintf("serialized predicate must be a single-field object, got %s", v.DebugString()))
	}
	field := v.Object().Fields()[0]
	return deserializeInner(bsonpath.NewFieldRef(field.Name), field.Value)
}

func deserializeInner(path *bsonpath.FieldRef, inner bsonpath.Value) (LeafPredicate, error) {
	if inner.Typ == bsonpath.Regex {
		lit := inner.Regex()
		return NewRegex(path, lit.Pattern, lit.Flags)
	}
	if inner.Typ != bsonpath.Object || inner.Object().Len() != 1 {
		return nil, bsonpath.ErrBadValue.New(fmt.Sprintf("serialized predicate operand must be a regex or a single-field object, got %s", inner.DebugString()))
	}
	opField := inner.Object().Fields()[0]
	operand := opField.Value

	switch opField.Name {
	case "$eq":
		return NewComparison(path, EQ, operand), nil
	case "$lt":
		return NewComparison(path, LT, operand), nil
	case "$lte":
		return NewComparison(path, LTE, operand), nil
	case "$gt":
		return NewComparison(path, GT, operand), nil
	case "$gte":
		return NewComparison(path, GTE, operand), nil
	case "$exists":
		return NewExists(path, operand.Bool()), nil
	case "$mod":
		elems := operand.Array()
		if len(elems) != 2 {
			return nil, bsonpath.ErrBadValue.New("$mod operand must have exactly 2 elements")
		}
		return NewMod(path, elems[0].CoerceToLong(), elems[1].CoerceToLong())
	case "$in":
		var equalities []bsonpath.Value
		var regexOperands [][2]string
		for _, e := range operand.Array() {
			if e.Typ == bsonpath.Regex {
				lit := e.Regex()
				regexOperands = append(regexOperands, [2]string{lit.Pattern, lit.Flags})
				continue
			}
			equalities = append(equalities, e)
		}
		return NewIn(path, equalities, regexOperands)
	case "$bitsAllSet", "$bitsAllClear", "$bitsAnySet", "$bitsAnyClear":
		op, ok := bitTestOpsByName[opField.Name]
		if !ok {
			return nil, bsonpath.ErrUnreachable.New(fmt.Sprintf("bit test operator %q missing from bitTestOpsByName", opField.Name))
		}
		var positions []uint32
		for _, e := range operand.Array() {
			positions = append(positions, uint32(e.CoerceToLong()))
		}
		return NewBitTestFromPositions(path, op, positions), nil
	case "$_internalSchemaAllowedProperties":
		return deserializeAllowedProperties(path, operand)
	default:
		return nil, bsonpath.ErrBadValue.New(fmt.Sprintf("unknown serialized predicate operator %q", opField.Name))
	}
}

func deserializeAllowedProperties(path *bsonpath.FieldRef, operand bsonpath.Value) (LeafPredicate, error) {
	if operand.Typ != bsonpath.Object {
		return nil, bsonpath.ErrBadValue.New("$_internalSchemaAllowedProperties operand must be an object")
	}
	doc := operand.Object()

	var namePlaceholder string
	if v, ok := doc.Get("namePlaceholder"); ok {
		namePlaceholder = v.StringValue()
	}

	var properties []string
	if v, ok := doc.Get("properties"); ok {
		for _, e := range v.Array() {
			properties = append(properties, e.StringValue())
		}
	}

	var patternProperties []PatternProperty
	if v, ok := doc.Get("patternProperties"); ok {
		for _, e := range v.Array() {
			if e.Typ != bsonpath.Object {
				return nil, bsonpath.ErrBadValue.New("patternProperties entry must be an object")
			}
			regexRaw, _ := e.Object().Get("regex")
			exprRaw, _ := e.Object().Get("expression")
			re, err := regexp.Compile(regexRaw.StringValue())
			if err != nil {
				return nil, bsonpath.ErrBadValue.New(fmt.Sprintf("invalid patternProperties regex %q: %v", regexRaw.StringValue(), err))
			}
			child, err := Deserialize(exprRaw)
			if err != nil {
				return nil, err
			}
			patternProperties = append(patternProperties, PatternProperty{Pattern: re, Predicate: child})
		}
	}

	var otherwise LeafPredicate
	if v, ok := doc.Get("otherwise"); ok && v.Typ != bsonpath.Null {
		child, err := Deserialize(v)
		if err != nil {
			return nil, err
		}
		otherwise = child
	}

	return NewAllowedProperties(path, patternProperties, properties, otherwise, namePlaceholder), nil
}
