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

// Package cache memoizes LeafPredicate.Optimize() by a structural
// fingerprint of the predicate, so a query plan that reuses the same
// leaf expression across many sub-documents pays the rewrite cost once.
// It is a pure optimization: a cache miss, a disabled cache, and a cold
// process all produce exactly the same Optimize() result, just slower.
package cache

import (
	"fmt"
	"sync"

	"github.com/boltdb/bolt"
	"github.com/mitchellh/hashstructure"
	"gopkg.in/yaml.v2"

	"github.com/bsonmatch/matchengine/bsonpath/matcher"
)

// diskRecord is what's persisted per fingerprint: both the source
// predicate's serialized form (to revalidate a fingerprint hit the same
// way the in-memory tier does) and the optimized result, so a disk hit
// never has to recompute Optimize.
type diskRecord struct {
	Source    interface{} `yaml:"source"`
	Optimized interface{} `yaml:"optimized"`
}

var bucketName = []byte("bsonpath_optimize_fingerprints")

func fingerprintKey(fp uint64) []byte {
	return []byte(fmt.Sprintf("%d", fp))
}

// Fingerprint computes a stable hash over pred's serialized form,
// flattened by toRaw first because hashstructure ignores a Value's
// unexported fields. Predicates with identical serialized forms produce
// the same fingerprint; Equivalent predicates whose forms differ (e.g.
// an Int32 versus a Double operand) do not, and distinct predicates may
// collide, but either only costs a cache miss, never a wrong answer,
// since a fingerprint hit is always re-validated against the input
// predicate (spec.md's cache layer never trusts a hash alone — see
// Cache.Optimize).
func Fingerprint(pred matcher.LeafPredicate) (uint64, error) {
	return hashstructure.Hash(toRaw(pred.Serialize()), nil)
}

// entry is what an in-memory cache slot holds: the predicate the
// fingerprint was computed from (for revalidation) and its optimized
// form.
type entry struct {
	source    matcher.LeafPredicate
	optimized matcher.LeafPredicate
}

// Cache is an in-memory, optionally bolt-backed LeafPredicate.Optimize
// memoizer. The zero value is a valid in-memory-only cache.
type Cache struct {
	mu  sync.Mutex
	hot map[uint64]entry

	db *bolt.DB
}

// New returns an in-memory-only Cache.
func New() *Cache {
	return &Cache{hot: make(map[uint64]entry)}
}

// Open returns a Cache additionally backed by a bolt database at path,
// used so a long-running process's optimize cache survives a restart.
// The caller owns closing the returned Cache via Close.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{hot: make(map[uint64]entry), db: db}, nil
}

// Close releases the bolt database, if any.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Optimize returns pred.Optimize(), using a cached result when pred's
// fingerprint has been seen before and still names an Equivalent
// predicate (fingerprint collisions fall back to recomputing).
func (c *Cache) Optimize(pred matcher.LeafPredicate) matcher.LeafPredicate {
	if c == nil {
		return pred.Optimize()
	}
	fp, err := Fingerprint(pred)
	if err != nil {
		return pred.Optimize()
	}

	c.mu.Lock()
	if c.hot == nil {
		c.hot = make(map[uint64]entry)
	}
	if e, ok := c.hot[fp]; ok && e.source.Equivalent(pred) {
		c.mu.Unlock()
		return e.optimized
	}
	c.mu.Unlock()

	if c.db != nil {
		if hit, ok := c.lookupDisk(fp, pred); ok {
			c.mu.Lock()
			c.hot[fp] = entry{source: pred, optimized: hit}
			c.mu.Unlock()
			return hit
		}
	}

	optimized := pred.Optimize()

	c.mu.Lock()
	c.hot[fp] = entry{source: pred, optimized: optimized}
	c.mu.Unlock()

	if c.db != nil {
		c.storeDisk(fp, pred, optimized)
	}

	return optimized
}

// lookupDisk decodes the (source, optimized) pair stored under fp, if
// any, deserializes the source back into a live predicate, and
// revalidates it against pred via Equivalent exactly as the in-memory
// tier does against a fingerprint collision — a stale or colliding disk
// entry just falls back to recomputing Optimize, never returns a wrong
// answer.
func (c *Cache) lookupDisk(fp uint64, pred matcher.LeafPredicate) (matcher.LeafPredicate, bool) {
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(fingerprintKey(fp)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, false
	}

	var rec diskRecord
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}

	source, err := matcher.Deserialize(fromRaw(rec.Source))
	if err != nil || !source.Equivalent(pred) {
		return nil, false
	}

	optimized, err := matcher.Deserialize(fromRaw(rec.Optimized))
	if err != nil {
		return nil, false
	}
	return optimized, true
}

func (c *Cache) storeDisk(fp uint64, source, optimized matcher.LeafPredicate) {
	rec := diskRecord{Source: toRaw(source.Serialize()), Optimized: toRaw(optimized.Serialize())}
	raw, err := yaml.Marshal(rec)
	if err != nil {
		return
	}
	_ = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(fingerprintKey(fp), raw)
	})
}
