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

// Package sqlbuilder is a tiny, ORM-less SQL builder that implements
// internal/queryrt.Builder with deterministic, parameter-numbered output.
// It focuses on explicit, predictable SQL generation with PostgreSQL
// placeholders ($1, $2, ...) and accumulated args.
//
// Goals:
// - Readable builder API (Where/Join/OrderBy/Limit)
// - Deterministic SQL output (stable clause ordering, renumbered placeholders)
// - Safe argument handling via placeholders, never string interpolation
// - No runtime reflection, no magic, easy to unit test
package sqlbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fraunhofer-iese/paramql/internal/queryrt"
)

// Select builds a SELECT statement against one root table with a fluent,
// mutating API. It is intentionally minimal and explicit.
type Select struct {
	table   string
	joins   []string
	wheres  []string
	orderBy []string
	limit   *int
	offset  *int
	args    []interface{}
}

// Factory produces fresh Select builders scoped to a table name.
type Factory struct{}

// New implements queryrt.Factory.
func (Factory) New(table string) queryrt.Builder {
	return &Select{table: table}
}

var _ queryrt.Factory = Factory{}
var _ queryrt.Builder = (*Select)(nil)

// NewSelect creates a new Select scoped to the given root table.
func NewSelect(table string) *Select {
	return &Select{table: table}
}

// Where AND-composes a predicate fragment. "?" placeholders in predicate
// are renumbered to the next free $n positions as args are appended, so
// callers never need to know how many placeholders precede theirs.
func (b *Select) Where(predicate string, args ...interface{}) {
	b.wheres = append(b.wheres, b.renumber(predicate, len(args)))
	b.args = append(b.args, args...)
}

// Join appends a complete join expression verbatim.
func (b *Select) Join(joinExpr string) {
	b.joins = append(b.joins, joinExpr)
}

// OrderBy appends an ORDER BY expression.
func (b *Select) OrderBy(expr string) {
	b.orderBy = append(b.orderBy, expr)
}

// Limit sets the LIMIT clause.
func (b *Select) Limit(n int) {
	b.limit = &n
}

// Offset sets the OFFSET clause. Not part of queryrt.Builder (the core
// never emits OFFSET; start/-start compile to WHERE id <op> ?), kept for
// callers that want straightforward page-N pagination on top of the core.
func (b *Select) Offset(n int) {
	b.offset = &n
}

// WhereID adds a `WHERE id <op> ?` predicate, used by start/-start.
func (b *Select) WhereID(op string, value interface{}) {
	b.Where(fmt.Sprintf("id %s ?", op), value)
}

// Args returns the accumulated argument values in placeholder order.
func (b *Select) Args() []interface{} { return append([]interface{}(nil), b.args...) }

// Build assembles the final SQL string with $n placeholders.
func (b *Select) Build() (string, []interface{}) {
	if b.table == "" {
		panic("sqlbuilder: table must be set before Build()")
	}

	var sb strings.Builder
	sb.Grow(256)

	sb.WriteString("SELECT * FROM ")
	sb.WriteString(b.table)

	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	if len(b.wheres) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.wheres, " AND "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit != nil {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", *b.limit))
	}

	if b.offset != nil {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", *b.offset))
	}

	return sb.String(), append([]interface{}(nil), b.args...)
}

// renumber rewrites each "?" in predicate to "$n", counting up from the
// builder's current argument count so placeholders stay globally ordered
// no matter which component contributed the fragment.
func (b *Select) renumber(predicate string, wantPlaceholders int) string {
	if !strings.Contains(predicate, "?") {
		return predicate
	}
	start := len(b.args) + 1
	var sb strings.Builder
	n := 0
	for _, r := range predicate {
		if r == '?' {
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(start + n))
			n++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
