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

// Package goquadapter implements internal/queryrt.Builder on top of
// github.com/doug-martin/goqu/v9, demonstrating that the compiler is
// runtime-agnostic: swapping Options.Builder from internal/sqlbuilder to
// this package changes nothing about which predicates get compiled, only
// how the final statement is assembled and quoted.
//
// goqu owns WHERE-expression composition, identifier quoting, and
// PostgreSQL "$n" placeholder numbering (Prepared(true)); join clauses
// arrive pre-rendered from internal/joinplan as a single opaque string (the
// same shared contract internal/sqlbuilder consumes), so they are spliced
// into goqu's rendered FROM clause rather than built through goqu's typed
// InnerJoin/LeftJoin helpers.
package goquadapter

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/fraunhofer-iese/paramql/internal/queryrt"
)

const dialectName = "postgres"

// Select accumulates one SELECT statement's fragments, delegating WHERE
// composition and final rendering to a goqu dataset.
type Select struct {
	table   string
	joins   []string
	wheres  []goqu.Expression
	orderBy []string
	limit   *uint
}

// Factory produces fresh goqu-backed Select builders scoped to a table.
type Factory struct{}

// New implements queryrt.Factory.
func (Factory) New(table string) queryrt.Builder {
	return &Select{table: table}
}

var _ queryrt.Factory = Factory{}
var _ queryrt.Builder = (*Select)(nil)

// Where AND-composes a predicate fragment as a goqu literal expression;
// goqu renumbers its "?" placeholders to the dialect's own convention at
// ToSQL time.
func (b *Select) Where(predicate string, args ...interface{}) {
	b.wheres = append(b.wheres, goqu.L(predicate, args...))
}

// Join appends a complete join expression verbatim; see the package doc
// for why this bypasses goqu's typed join builders.
func (b *Select) Join(joinExpr string) {
	b.joins = append(b.joins, joinExpr)
}

// OrderBy appends an ORDER BY expression.
func (b *Select) OrderBy(expr string) {
	b.orderBy = append(b.orderBy, expr)
}

// Limit sets the LIMIT clause.
func (b *Select) Limit(n int) {
	u := uint(n)
	b.limit = &u
}

// WhereID adds a `WHERE id <op> ?` predicate, used by start/-start.
func (b *Select) WhereID(op string, value interface{}) {
	b.Where(fmt.Sprintf("id %s ?", op), value)
}

// Build renders the accumulated fragments via goqu's postgres dialect,
// with join clauses spliced in right after the FROM table. LIMIT is
// appended inline rather than through the prepared dataset, so the
// returned args hold only predicate values.
func (b *Select) Build() (string, []interface{}) {
	d := goqu.Dialect(dialectName)
	ds := d.From(goqu.T(b.table)).Prepared(true)

	if len(b.wheres) > 0 {
		ds = ds.Where(b.wheres...)
	}
	for _, o := range b.orderBy {
		ds = ds.OrderByAppend(goqu.L(o))
	}

	sql, args, err := ds.ToSQL()
	if err != nil {
		panic("goquadapter: " + err.Error())
	}
	if len(b.joins) > 0 {
		sql = spliceJoins(sql, b.table, b.joins)
	}
	if b.limit != nil {
		sql += fmt.Sprintf(" LIMIT %d", *b.limit)
	}
	return sql, args
}

// spliceJoins inserts pre-rendered join clauses immediately after the
// quoted root table identifier in goqu's rendered FROM clause.
func spliceJoins(sql, table string, joins []string) string {
	marker := `"` + table + `"`
	idx := strings.Index(sql, marker)
	if idx < 0 {
		return sql
	}
	at := idx + len(marker)
	return sql[:at] + " " + strings.Join(joins, " ") + sql[at:]
}
