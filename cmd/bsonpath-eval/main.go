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

// Command bsonpath-eval evaluates a single leaf predicate against a
// YAML document and prints whether it matches. It exists to exercise
// the bsonpath/bsonpath-matcher API from outside a test binary, not as
// a general query tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/bsonmatch/matchengine/bsonpath"
	"github.com/bsonmatch/matchengine/bsonpath/cache"
	"github.com/bsonmatch/matchengine/bsonpath/fixtures"
	"github.com/bsonmatch/matchengine/bsonpath/matcher"
	"github.com/bsonmatch/matchengine/bsonpath/trace"
)

// parseOperand interprets the -operand flag as a float64 when it looks
// like a number, falling back to a string so plain text operands keep
// working.
func parseOperand(raw string) bsonpath.Value {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return bsonpath.NewDouble(f)
	}
	return bsonpath.NewString(raw)
}

func main() {
	docPath := flag.String("doc", "", "path to a YAML document")
	path := flag.String("path", "", "dotted field path")
	op := flag.String("op", "eq", "comparison operator: eq, lt, lte, gt, gte, exists")
	operand := flag.String("operand", "", "right-hand operand (string or number)")
	verbose := flag.Bool("v", false, "log evaluation tracing to stderr")
	cachePath := flag.String("cache", "", "path to a bolt-backed Optimize() fingerprint cache (in-memory only if unset)")
	flag.Parse()

	if *docPath == "" || *path == "" {
		fmt.Fprintln(os.Stderr, "usage: bsonpath-eval -doc <file.yaml> -path <field.path> -op <op> -operand <value>")
		os.Exit(2)
	}

	f, err := fixtures.Load(*docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bsonpath-eval: %v\n", err)
		os.Exit(1)
	}
	if len(f.Cases) == 0 || f.Cases[0].Document == nil {
		fmt.Fprintln(os.Stderr, "bsonpath-eval: fixture file has no document")
		os.Exit(1)
	}
	doc := fixtures.ConvertDocument(f.Cases[0].Document)

	fieldRef := bsonpath.NewFieldRef(*path)

	var pred matcher.LeafPredicate
	if *op == "exists" {
		pred = matcher.NewExists(fieldRef, *operand != "false")
	} else {
		opMap := map[string]matcher.ComparisonOp{
			"eq": matcher.EQ, "lt": matcher.LT, "lte": matcher.LTE,
			"gt": matcher.GT, "gte": matcher.GTE,
		}
		cop, ok := opMap[*op]
		if !ok {
			fmt.Fprintf(os.Stderr, "bsonpath-eval: unknown op %q\n", *op)
			os.Exit(2)
		}
		pred = matcher.NewComparison(fieldRef, cop, parseOperand(*operand))
	}

	var logger *logrus.Logger
	if *verbose {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
	}

	optimizeCache := cache.New()
	if *cachePath != "" {
		c, err := cache.Open(*cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bsonpath-eval: opening cache: %v\n", err)
			os.Exit(1)
		}
		defer c.Close()
		optimizeCache = c
	}
	pred = optimizeCache.Optimize(pred)

	result := trace.Evaluate(context.Background(), logger, matcher.DefaultPolicy(), pred, doc)
	fmt.Println(result)
	if !result {
		os.Exit(1)
	}
}
