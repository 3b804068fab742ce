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

package cache

import "github.com/bsonmatch/matchengine/bsonpath"

// regexPatternKey and regexFlagsKey mark a YAML-decoded map as standing
// in for a bsonpath Regex literal rather than an ordinary nested object,
// since yaml.v2 has no notion of our Value union. Only toRaw ever
// produces a map with exactly these two keys, so fromRaw's check is
// unambiguous for anything this package itself wrote.
const (
	regexPatternKey = "$__regexPattern"
	regexFlagsKey   = "$__regexFlags"
)

// toRaw flattens a bsonpath.Value produced by some LeafPredicate's
// Serialize into the bool/int64/float64/string/map/slice shapes
// yaml.v2 knows how to marshal. It only needs to round-trip what
// Serialize ever emits, not the full Value union.
func toRaw(v bsonpath.Value) interface{} {
	switch v.Typ {
	case bsonpath.Null:
		return nil
	case bsonpath.Bool:
		return v.Bool()
	case bsonpath.Int32, bsonpath.Int64:
		return v.CoerceToLong()
	case bsonpath.Double:
		return v.AsFloat64()
	case bsonpath.String, bsonpath.Symbol:
		return v.StringValue()
	case bsonpath.Regex:
		lit := v.Regex()
		return map[string]interface{}{regexPatternKey: lit.Pattern, regexFlagsKey: lit.Flags}
	case bsonpath.Object:
		out := make(map[string]interface{}, v.Object().Len())
		for _, f := range v.Object().Fields() {
			out[f.Name] = toRaw(f.Value)
		}
		return out
	case bsonpath.Array:
		out := make([]interface{}, len(v.Array()))
		for i, e := range v.Array() {
			out[i] = toRaw(e)
		}
		return out
	default:
		return v.CoerceToString()
	}
}

// fromRaw is toRaw's inverse, reconstructing a bsonpath.Value from the
// generic shapes yaml.v2 decodes bytes into.
func fromRaw(raw interface{}) bsonpath.Value {
	switch v := raw.(type) {
	case nil:
		return bsonpath.NullValue
	case bool:
		return bsonpath.NewBool(v)
	case int:
		return bsonpath.NewInt64(int64(v))
	case int64:
		return bsonpath.NewInt64(v)
	case float64:
		return bsonpath.NewDouble(v)
	case string:
		return bsonpath.NewString(v)
	case map[interface{}]interface{}:
		if pattern, ok := v[regexPatternKey]; ok {
			flags, _ := v[regexFlagsKey].(string)
			p, _ := pattern.(string)
			return bsonpath.NewRegexLiteral(p, flags)
		}
		doc := bsonpath.NewDocument()
		for k, val := range v {
			name, _ := k.(string)
			doc.Set(name, fromRaw(val))
		}
		return bsonpath.NewObject(doc)
	case map[string]interface{}:
		if pattern, ok := v[regexPatternKey]; ok {
			flags, _ := v[regexFlagsKey].(string)
			p, _ := pattern.(string)
			return bsonpath.NewRegexLiteral(p, flags)
		}
		doc := bsonpath.NewDocument()
		for name, val := range v {
			doc.Set(name, fromRaw(val))
		}
		return bsonpath.NewObject(doc)
	case []interface{}:
		vals := make([]bsonpath.Value, len(v))
		for i, e := range v {
			vals[i] = fromRaw(e)
		}
		return bsonpath.NewArray(vals...)
	default:
		return bsonpath.NullValue
	}
}
