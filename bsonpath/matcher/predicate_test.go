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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonmatch/matchengine/bsonpath"
)

func TestEvalDocumentShortCircuitsOnFirstMatch(t *testing.T) {
	doc := bsonpath.NewDocument(bsonpath.Field{Name: "a", Value: bsonpath.NewArray(
		bsonpath.NewInt32(1), bsonpath.NewInt32(9), bsonpath.NewInt32(9),
	)})
	pred := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NewInt32(9))
	require.True(t, EvalDocument(DefaultPolicy(), pred, doc))
}

func TestEvalDocumentMissingFieldMatchesEqNull(t *testing.T) {
	doc := bsonpath.NewDocument(bsonpath.Field{Name: "x", Value: bsonpath.NewInt32(1)})
	pred := NewComparison(bsonpath.NewFieldRef("a"), EQ, bsonpath.NullValue)
	require.True(t, EvalDocument(DefaultPolicy(), pred, doc))
}

func TestEvalDocumentDeadEndArrayTreatedAsMissing(t *testing.T) {
	doc := bsonpath.NewDocument(bsonpath.Field{Name: "a", Value: bsonpath.NewArray(bsonpath.NewInt32(4))})
	pred := NewExists(bsonpath.NewFieldRef("a.b"), false)
	require.True(t, EvalDocument(DefaultPolicy(), pred, doc))
}
