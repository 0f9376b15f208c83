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

// Package queryrt pins the interface the core needs from the query-builder
// runtime: the only collaborator the compiler is granted write access to.
// Nothing in this package knows how to execute SQL; it only knows how to
// accumulate fragments.
//
// Two runtimes implement Builder in this module: internal/sqlbuilder (a
// deterministic reference adapter) and internal/goquadapter (a goqu-backed
// adapter). Either can back compile(); the core's components work against
// this interface only, and the root package imports internal/sqlbuilder
// solely as the default when Options.Builder is nil.
package queryrt

// Builder accumulates the fragments of one SELECT statement. Every method
// except Build mutates the receiver and returns nothing: composition order
// never changes the meaning of the compiled result, so the core never needs
// a method's return value to decide what to call next.
type Builder interface {
	// Where AND-composes a predicate fragment. Use "?" as the bound
	// parameter placeholder; the runtime renumbers placeholders to its
	// dialect's convention at Build time.
	Where(predicate string, args ...interface{})

	// Join appends a complete join expression, e.g.
	// "INNER JOIN current_version cv ON cv.asset_id = asset.id".
	Join(joinExpr string)

	// OrderBy appends an ORDER BY expression, e.g. "age DESC".
	OrderBy(expr string)

	// Limit sets the LIMIT clause.
	Limit(n int)

	// WhereID adds a `WHERE id <op> ?` predicate for simple cursor-style
	// pagination, where op is one of ">" or "<".
	WhereID(op string, value interface{})

	// Build renders the accumulated fragments into SQL text and its bound
	// argument list, in placeholder order.
	Build() (string, []interface{})
}

// Factory produces a fresh Builder scoped to one root entity/table.
type Factory interface {
	New(table string) Builder
}
