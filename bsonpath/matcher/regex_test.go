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

func TestRegexPartialMatch(t *testing.T) {
	r, err := NewRegex(bsonpath.NewFieldRef("a"), "oo", "")
	require.NoError(t, err)
	require.True(t, r.MatchesSingleValue(bsonpath.NewString("foobar")))
	require.False(t, r.MatchesSingleValue(bsonpath.NewString("abc")))
}

func TestRegexCaseInsensitiveFlag(t *testing.T) {
	r, err := NewRegex(bsonpath.NewFieldRef("a"), "^FOO", "i")
	require.NoError(t, err)
	require.True(t, r.MatchesSingleValue(bsonpath.NewString("foobar")))
}

func TestRegexRejectsNulByte(t *testing.T) {
	_, err := NewRegex(bsonpath.NewFieldRef("a"), "a\x00b", "")
	require.Error(t, err)
}

func TestRegexMatchesIdenticalLiteralOnly(t *testing.T) {
	r, err := NewRegex(bsonpath.NewFieldRef("a"), "^foo", "i")
	require.NoError(t, err)
	require.True(t, r.MatchesSingleValue(bsonpath.NewRegexLiteral("^foo", "i")))
	require.False(t, r.MatchesSingleValue(bsonpath.NewRegexLiteral("^foo", "")))
}

func TestRegexExtendedFlagIgnoresWhitespace(t *testing.T) {
	r, err := NewRegex(bsonpath.NewFieldRef("a"), "f o  o # comment\nbar", "x")
	require.NoError(t, err)
	require.True(t, r.MatchesSingleValue(bsonpath.NewString("xxfoobarxx")))
}
