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

// Package fixtures loads declarative YAML test cases: a document plus
// a list of (path, predicate, expected) cases, the same role the
// teacher's enginetest query tables play for SQL queries, just stored
// as data files instead of Go literals so large example-driven suites
// don't bloat _test.go files.
package fixtures

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/bsonmatch/matchengine/bsonpath"
)

// RawValue is the YAML-decoded shape of a document or scalar value
// before it is converted into a bsonpath.Value: YAML's decoder already
// gives us map[interface{}]interface{}/[]interface{}/scalars, and
// Convert walks that shape into the tagged union.
type RawValue interface{}

// Case is one fixture scenario: a document, a dotted path, and the
// operator/operand pair a leaf predicate should be built from, plus
// the expected match result.
type Case struct {
	Name     string                 `yaml:"name"`
	Document map[string]interface{} `yaml:"document"`
	Path     string                 `yaml:"path"`
	Op       string                 `yaml:"op"`
	Operand  RawValue               `yaml:"operand"`
	Expected bool                   `yaml:"expected"`
}

// File is the top-level shape of a fixture YAML file: a named suite of
// Cases.
type File struct {
	Suite string `yaml:"suite"`
	Cases []Case `yaml:"cases"`
}

// Load reads and parses a fixture file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixtures: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Convert walks a YAML-decoded value into a bsonpath.Value. Maps become
// Object, slices become Array, and scalars map onto the closest bsonpath
// numeric/string/bool type; YAML has no notion of most of bsonpath's
// richer types (Binary, OID, Regex, ...), so fixtures exercising those
// build Values directly in Go rather than through this path.
func Convert(raw RawValue) bsonpath.Value {
	if raw == nil {
		return bsonpath.NullValue
	}
	switch v := raw.(type) {
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
		keys := make([]string, 0, len(v))
		byKey := make(map[string]interface{}, len(v))
		for k, val := range v {
			name := fmt.Sprintf("%v", k)
			keys = append(keys, name)
			byKey[name] = val
		}
		sort.Strings(keys)
		doc := bsonpath.NewDocument()
		for _, name := range keys {
			doc.Set(name, Convert(byKey[name]))
		}
		return bsonpath.NewObject(doc)
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := bsonpath.NewDocument()
		for _, name := range keys {
			doc.Set(name, Convert(v[name]))
		}
		return bsonpath.NewObject(doc)
	case []interface{}:
		vals := make([]bsonpath.Value, len(v))
		for i, e := range v {
			vals[i] = Convert(e)
		}
		return bsonpath.NewArray(vals...)
	default:
		return bsonpath.NewString(fmt.Sprintf("%v", v))
	}
}

// ConvertDocument is Convert specialized to a whole-document map, the
// shape Case.Document decodes into.
func ConvertDocument(m map[string]interface{}) *bsonpath.Document {
	return Convert(m).Object()
}
