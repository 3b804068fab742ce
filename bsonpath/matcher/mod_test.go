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

func TestModMatchesRemainder(t *testing.T) {
	m, err := NewMod(bsonpath.NewFieldRef("a"), 4, 2)
	require.NoError(t, err)
	require.True(t, m.MatchesSingleValue(bsonpath.NewInt32(10)))
	require.False(t, m.MatchesSingleValue(bsonpath.NewInt32(9)))
}

func TestModRejectsZeroDivisor(t *testing.T) {
	_, err := NewMod(bsonpath.NewFieldRef("a"), 0, 1)
	require.Error(t, err)
}

func TestModNeverMatchesNonNumeric(t *testing.T) {
	m, err := NewMod(bsonpath.NewFieldRef("a"), 4, 2)
	require.NoError(t, err)
	require.False(t, m.MatchesSingleValue(bsonpath.NewString("10")))
}
