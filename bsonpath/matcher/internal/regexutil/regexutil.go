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

// Package regexutil holds the flag-translation and validation logic
// shared by the Regex predicate and In's embedded regex list: neither
// may compile a pattern containing a NUL byte (it can never appear in
// a matched string), and both accept the same small set of inline
// flags.
package regexutil

import (
	"regexp"
	"strings"

	"github.com/bsonmatch/matchengine/bsonpath"
)

// Compile validates pattern and flags and returns a compiled regexp.
// Supported flags: i (case-insensitive), m (multiline: ^/$ match line
// boundaries), s (dot matches newline), x (extended: whitespace and
// '#' comments in the pattern are ignored outside a character class).
// An unsupported flag or a pattern/flag string containing a NUL byte
// is rejected at construction time.
func Compile(pattern, flags string) (*regexp.Regexp, error) {
	if strings.ContainsRune(pattern, 0) || strings.ContainsRune(flags, 0) {
		return nil, bsonpath.ErrRegexCompile.New("pattern or flags contain a NUL byte")
	}

	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		case 'x':
			pattern = stripExtendedWhitespace(pattern)
		default:
			return nil, bsonpath.ErrRegexCompile.New("unsupported regex flag: " + string(f))
		}
	}

	full := pattern
	if inline.Len() > 0 {
		full = "(?" + inline.String() + ")" + pattern
	}

	re, err := regexp.Compile(full)
	if err != nil {
		return nil, bsonpath.ErrRegexCompile.New(err.Error())
	}
	return re, nil
}

// stripExtendedWhitespace implements the 'x' flag: unescaped whitespace
// and '#'-to-end-of-line comments are removed outside character
// classes, since Go's regexp engine has no native extended mode.
func stripExtendedWhitespace(pattern string) string {
	var out strings.Builder
	inClass := false
	escaped := false
	inComment := false
	for _, r := range pattern {
		if inComment {
			if r == '\n' {
				inComment = false
			}
			continue
		}
		if escaped {
			out.WriteRune('\\')
			out.WriteRune(r)
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '[':
			inClass = true
			out.WriteRune(r)
		case ']':
			inClass = false
			out.WriteRune(r)
		case '#':
			if !inClass {
				inComment = true
				continue
			}
			out.WriteRune(r)
		case ' ', '\t', '\n', '\r':
			if !inClass {
				continue
			}
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
