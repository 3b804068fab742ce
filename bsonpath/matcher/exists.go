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

// Exists is $exists: bool. Present is true for $exists:true, false for
// $exists:false.
type Exists struct {
	path    *bsonpath.FieldRef
	present bool
}

var _ LeafPredicate = (*Exists)(nil)

func NewExists(path *bsonpath.FieldRef, present bool) *Exists {
	return &Exists{path: path, present: present}
}

func (e *Exists) Path() *bsonpath.FieldRef { return e.path }

func (e *Exists) SetCollator(bsonpath.Collator) {}

func (e *Exists) MatchesSingleValue(v bsonpath.Value) bool {
	return !v.Missing() == e.present
}

func (e *Exists) Equivalent(other LeafPredicate) bool {
	o, ok := other.(*Exists)
	return ok && o.path.String() == e.path.String() && o.present == e.present
}

func (e *Exists) Optimize() LeafPredicate { return e }

func (e *Exists) DebugString() string {
	return fmt.Sprintf("%s $exists %v", e.path.String(), e.present)
}

func (e *Exists) Serialize() bsonpath.Value {
	inner := bsonpath.NewDocument(bsonpath.Field{Name: "$exists", Value: bsonpath.NewBool(e.present)})
	return bsonpath.NewObject(bsonpath.NewDocument(
		bsonpath.Field{Name: e.path.String(), Value: bsonpath.NewObject(inner)},
	))
}
