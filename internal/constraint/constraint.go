/*******************************************************************************
* Copyright (C) 2026 the paramql Authors
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Package constraint maps one (column, operator, value) triple to a
// predicate fragment on the query builder runtime. It backs both the root
// entity's Plain/Jsonb references and, via the same Compile entry point,
// the aliased columns the join planner produces for Join/JoinJsonb
// references.
package constraint

import (
	"fmt"
	"strings"

	"github.com/fraunhofer-iese/paramql/internal/cerr"
	"github.com/fraunhofer-iese/paramql/internal/fieldref"
	"github.com/fraunhofer-iese/paramql/internal/queryrt"
)

// Compile appends the predicate fragment for one (column, op, value)
// triple to b. When jsonKey is non-empty, column is treated as a JSONB
// document column and the predicate targets `column ->> 'jsonKey'`.
// origKey is the original parameter key fragment, carried only so an
// InvalidConstraint error can name it.
//
// value is typically a string fresh off the query string, but may be any
// type a map/map_safe transformer produced (e.g. an int decoded from an
// opaque id) — comparison operators bind it as-is; operators that need to
// manipulate text (contains, starts_with, ends_with, in, search) coerce it
// to a string first.
func Compile(b queryrt.Builder, column string, jsonKey string, op fieldref.Op, value interface{}, origKey string) error {
	if jsonKey != "" {
		return compileJsonb(b, column, jsonKey, op, value, origKey)
	}
	return compilePlain(b, column, op, value, origKey)
}

func compilePlain(b queryrt.Builder, column string, op fieldref.Op, value interface{}, origKey string) error {
	switch op {
	case "eq":
		b.Where(column+" = ?", value)
	case "neq":
		b.Where(column+" <> ?", value)
	case "gt":
		b.Where(column+" > ?", value)
	case "gte":
		b.Where(column+" >= ?", value)
	case "lt":
		b.Where(column+" < ?", value)
	case "lte":
		b.Where(column+" <= ?", value)
	case "contains":
		b.Where(column+" ILIKE ?", "%"+str(value)+"%")
	case "starts_with":
		b.Where(column+" ILIKE ?", str(value)+"%")
	case "ends_with":
		b.Where(column+" ILIKE ?", "%"+str(value))
	case "true":
		b.Where(column + " = TRUE")
	case "false":
		b.Where(column + " = FALSE")
	case "nil":
		if isTruthy(value) {
			b.Where(column + " IS NULL")
		} else {
			b.Where(column + " IS NOT NULL")
		}
	case "in":
		args := splitIn(str(value))
		if len(args) == 0 {
			b.Where("1 = 0")
			return nil
		}
		ph := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
		anyArgs := make([]interface{}, len(args))
		for i, a := range args {
			anyArgs[i] = a
		}
		b.Where(column+" IN ("+ph+")", anyArgs...)
	case "search":
		b.Where(column+" @@ to_tsquery('simple', ?)", searchQuery(str(value)))
	default:
		return &cerr.InvalidConstraint{Key: origKey}
	}
	return nil
}

func compileJsonb(b queryrt.Builder, column string, jsonKey string, op fieldref.Op, value interface{}, origKey string) error {
	col := column + "->>'" + jsonKey + "'"
	switch op {
	case "eq":
		b.Where(col+" = ?", value)
	case "contains":
		b.Where(col+" ILIKE ?", "%"+str(value)+"%")
	case "starts_with":
		b.Where(col+" ILIKE ?", str(value)+"%")
	case "ends_with":
		b.Where(col+" ILIKE ?", "%"+str(value))
	default:
		// JSONB columns accept only eq (which binds its value as given,
		// string or not) and the three ILIKE operators; neq and every
		// other operator are rejected rather than silently widening the
		// operator set.
		return &cerr.InvalidConstraint{Key: origKey}
	}
	return nil
}

// searchQuery turns a whitespace-separated value into a to_tsquery
// argument: tokens get ":*" appended and are joined with " & ".
// "bear cat" -> "bear:* & cat:*".
func searchQuery(value string) string {
	fields := strings.Fields(value)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, f+":*")
	}
	return strings.Join(tokens, " & ")
}

// splitIn tokenizes an `in` operator's value on commas. No trimming, no
// further type coercion.
func splitIn(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func isTruthy(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return v == "true"
	case bool:
		return v
	default:
		return false
	}
}

func str(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
