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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsonmatch/matchengine/bsonpath"
	"github.com/bsonmatch/matchengine/bsonpath/matcher"
)

func TestCacheInMemoryOptimizeIsStable(t *testing.T) {
	c := New()
	build := func() matcher.LeafPredicate {
		in, err := matcher.NewIn(bsonpath.NewFieldRef("a"), []bsonpath.Value{bsonpath.NewInt32(1)}, nil)
		require.NoError(t, err)
		return in
	}

	first := c.Optimize(build())
	second := c.Optimize(build())

	// A single-equality $in with no regexes collapses into a bare
	// Comparison; both calls must observe the same collapsed form.
	require.Equal(t, first.DebugString(), second.DebugString())
	_, isComparison := first.(*matcher.Comparison)
	require.True(t, isComparison)
}

// A predicate not equivalent to what's cached under a colliding
// fingerprint must still get its own, correct Optimize() result — the
// hot tier's revalidation must never hand back the wrong entry.
func TestCacheInMemoryRevalidatesOnFingerprintCollision(t *testing.T) {
	c := New()
	a := matcher.NewComparison(bsonpath.NewFieldRef("a"), matcher.EQ, bsonpath.NewInt32(1))
	b := matcher.NewComparison(bsonpath.NewFieldRef("a"), matcher.EQ, bsonpath.NewInt32(2))

	// Plant a's entry under b's fingerprint to force the collision.
	fp, err := Fingerprint(b)
	require.NoError(t, err)
	c.hot[fp] = entry{source: a, optimized: a.Optimize()}
	got := c.Optimize(b)

	require.Equal(t, b.DebugString(), got.DebugString())
	require.NotEqual(t, a.DebugString(), got.DebugString())
}

func TestCacheDiskRoundTripSurvivesReopen(t *testing.T) {
	path := t.TempDir() + "/cache.db"

	build := func() matcher.LeafPredicate {
		in, err := matcher.NewIn(bsonpath.NewFieldRef("a"), nil, [][2]string{{"^foo", "i"}})
		require.NoError(t, err)
		return in
	}

	c1, err := Open(path)
	require.NoError(t, err)
	first := c1.Optimize(build())
	require.NoError(t, c1.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()
	second := c2.Optimize(build())

	// second is a freshly Deserialize'd object from the bolt file, not
	// the same instance as first, so compare behavior rather than identity.
	require.Equal(t, first.DebugString(), second.DebugString())
	require.True(t, second.MatchesSingleValue(bsonpath.NewString("xxfooxx")))
	require.False(t, second.MatchesSingleValue(bsonpath.NewString("bar")))
}

// Same collision guarantee as the in-memory tier, but forced through a
// cold reopen so the check actually exercises lookupDisk's
// Deserialize+Equivalent revalidation rather than the hot map.
func TestCacheDiskRevalidatesOnFingerprintCollision(t *testing.T) {
	path := t.TempDir() + "/cache.db"

	a := matcher.NewComparison(bsonpath.NewFieldRef("a"), matcher.EQ, bsonpath.NewInt32(1))
	b := matcher.NewComparison(bsonpath.NewFieldRef("a"), matcher.EQ, bsonpath.NewInt32(2))

	c1, err := Open(path)
	require.NoError(t, err)
	// Store a's record under b's fingerprint to force the collision.
	fp, err := Fingerprint(b)
	require.NoError(t, err)
	c1.storeDisk(fp, a, a.Optimize())
	require.NoError(t, c1.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()
	got := c2.Optimize(b)

	require.Equal(t, b.DebugString(), got.DebugString())
}
