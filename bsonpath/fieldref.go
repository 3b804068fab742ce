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

package bsonpath

import "strings"

// FieldRef is a parsed dotted path, e.g. "a.b.0.c", split once at
// construction into ordered components. Components are not validated:
// an empty path or an empty segment ("a..b") yields an empty-string
// component.
type FieldRef struct {
	parts   []string
	numeric []bool
}

// NewFieldRef parses a dotted path into a FieldRef. Each component's
// "is this a pure numeric offset" classification is precomputed so
// PathIterator's array-offset matching never re-scans a component.
func NewFieldRef(path string) *FieldRef {
	parts := strings.Split(path, ".")
	nums := make([]bool, len(parts))
	for i, p := range parts {
		nums[i] = isAllDigits(p)
	}
	return &FieldRef{parts: parts, numeric: nums}
}

// fieldRefFromParts builds a FieldRef directly from already-split
// components, used internally when slicing a suffix of another path.
func fieldRefFromParts(parts []string) *FieldRef {
	nums := make([]bool, len(parts))
	for i, p := range parts {
		nums[i] = isAllDigits(p)
	}
	return &FieldRef{parts: parts, numeric: nums}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NumParts returns the number of path components.
func (f *FieldRef) NumParts() int { return len(f.parts) }

// GetPart returns the i-th component.
func (f *FieldRef) GetPart(i int) string { return f.parts[i] }

// IsNumeric reports whether the i-th component consists entirely of
// ASCII digits (spec.md section 3.2).
func (f *FieldRef) IsNumeric(i int) bool { return f.numeric[i] }

// DottedField renders components [start:] back into a dotted string.
func (f *FieldRef) DottedField(start int) string {
	if start >= len(f.parts) {
		return ""
	}
	return strings.Join(f.parts[start:], ".")
}

// Suffix returns the FieldRef over components [start:], used when a
// PathIterator descends into a sub-document and needs the remaining
// path as its own FieldRef.
func (f *FieldRef) Suffix(start int) *FieldRef {
	if start >= len(f.parts) {
		return fieldRefFromParts(nil)
	}
	return fieldRefFromParts(f.parts[start:])
}

// String renders the full dotted path.
func (f *FieldRef) String() string { return strings.Join(f.parts, ".") }
