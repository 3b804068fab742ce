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

// Package trace wraps leaf predicate evaluation in opentracing spans,
// the way the engine wraps query execution: every top-level Evaluate
// call gets its own correlation ID (a satori/go.uuid value) that shows
// up both in the span tags and in the accompanying log line, so a
// single call can be followed across both systems.
package trace

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"github.com/bsonmatch/matchengine/bsonpath"
	"github.com/bsonmatch/matchengine/bsonpath/matcher"
)

// Evaluate runs pred against doc under policy, wrapping the call in an
// opentracing span named "bsonpath.evaluate" tagged with the
// predicate's debug string and a fresh evaluation ID, and logging the
// result at debug level via logger (a nil logger disables logging).
func Evaluate(ctx context.Context, logger *logrus.Logger, policy matcher.Policy, pred matcher.LeafPredicate, doc *bsonpath.Document) bool {
	id, err := uuid.NewV4()
	evalID := ""
	if err == nil {
		evalID = id.String()
	}

	span, _ := opentracing.StartSpanFromContext(ctx, "bsonpath.evaluate")
	defer span.Finish()
	span.SetTag("predicate", pred.DebugString())
	span.SetTag("eval_id", evalID)

	result := matcher.EvalDocument(policy, pred, doc)

	span.SetTag("result", result)

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"eval_id":   evalID,
			"predicate": pred.DebugString(),
			"result":    result,
		}).Debug("bsonpath: leaf predicate evaluated")
	}

	return result
}
