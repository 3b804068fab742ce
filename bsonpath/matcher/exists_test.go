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

func TestExistsTruePresent(t *testing.T) {
	e := NewExists(bsonpath.NewFieldRef("a"), true)
	require.True(t, e.MatchesSingleValue(bsonpath.NewInt32(1)))
	require.True(t, e.MatchesSingleValue(bsonpath.NullValue))
	require.False(t, e.MatchesSingleValue(bsonpath.MissingValue))
}

func TestExistsFalseAbsent(t *testing.T) {
	e := NewExists(bsonpath.NewFieldRef("a"), false)
	require.True(t, e.MatchesSingleValue(bsonpath.MissingValue))
	require.False(t, e.MatchesSingleValue(bsonpath.NullValue))
}
