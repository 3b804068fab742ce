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

	"github.com/bsonmatch/matchengine/bsonpath"
)

// Mod is field % divisor == remainder, applied only to numeric values;
// any non-numeric value fails to match.
type Mod struct {
	path      *bsonpath.FieldRef
	divisor   int64
	remainder int64
}

var _ LeafPredicate = (*Mod)(nil)

// NewMod builds a Mod predicate. divisor must be non-zero; a zero
// divisor is a construction-time error, not a runtime non-match.
func NewMod(path *bsonpath.FieldRef, divisor, remainder int64) (*Mod, error) {
	if divisor == 0 {
		return nil, bsonpath.ErrBadValue.New("mod divisor must not be zero")
	}
	return &Mod{path: path, divisor: divisor, remainder: remainder}, nil
}

func (m *Mod) Path() *bsonpath.FieldRef { return m.path }

func (m *Mod) SetCollator(bsonpath.Collator) {}

func (m *Mod) MatchesSingleValue(v bsonpath.Value) bool {
	if !v.Numeric() || v.IsNaN() {
		return false
	}
	return v.CoerceToLong()%m.divisor == m.remainder
}

func (m *Mod) Equivalent(other LeafPredicate) bool {
	o, ok := other.(*Mod)
	return ok && o.path.String() == m.path.String() && o.divisor == m.divisor && o.remainder == m.remainder
}

func (m *Mod) Optimize() LeafPredicate { return m }

func (m *Mod) DebugString() string {
	return fmt.Sprintf("%s $mod [%d, %d]", m.path.String(), m.divisor, m.remainder)
}

func (m *Mod) Serialize() bsonpath.Value {
	inner := bsonpath.NewDocument(bsonpath.Field{
		Name:  "$mod",
		Value: bsonpath.NewArray(bsonpath.NewInt64(m.divisor), bsonpath.NewInt64(m.remainder)),
	})
	return bsonpath.NewObject(bsonpath.NewDocument(
		bsonpath.Field{Name: m.path.String(), Value: bsonpath.NewObject(inner)},
	))
}
