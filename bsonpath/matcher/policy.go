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

// NonLeafArrayBehavior controls traversal when an array is encountered
// with path components still remaining after it.
type NonLeafArrayBehavior int

const (
	NonLeafTraverse NonLeafArrayBehavior = iota
	NonLeafNoTraversal
	NonLeafMatchSubpath
)

// LeafArrayBehavior controls traversal when an array is the final value
// named by the path (no components remain).
type LeafArrayBehavior int

const (
	LeafTraverse LeafArrayBehavior = iota
	LeafNoTraversal
)

// Policy bundles the two traversal behaviors a PathIterator applies.
// The zero value is the default: Traverse for both.
type Policy struct {
	NonLeafArray NonLeafArrayBehavior
	LeafArray    LeafArrayBehavior
}

// DefaultPolicy returns the default policy (Traverse, Traverse).
func DefaultPolicy() Policy {
	return Policy{NonLeafArray: NonLeafTraverse, LeafArray: LeafTraverse}
}
