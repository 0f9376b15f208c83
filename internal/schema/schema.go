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

// Package schema pins the collaborator interface the core consumes for
// association lookup: the ability to resolve an association by name. The
// core never reflects on a real ORM model; it only needs a table name and
// an alias-friendly join condition per association.
package schema

// Association describes one joinable relation from the root entity.
type Association struct {
	// Name is the identifier callers write in a parameter key, e.g.
	// "current_version" in "current_version:status[eq]".
	Name string
	// Table is the SQL table (or view) the association joins against.
	Table string
	// On is the join condition, with %s substituted for the alias this
	// association is given at compile time, e.g.
	// "%[1]s.asset_id = assets.id".
	On string
}

// Entity describes the root table a compiled query targets, plus the
// associations reachable from it. Only associations present here can ever
// be joined, but the join whitelist is enforced independently and may be
// a strict subset of what Entity exposes.
type Entity struct {
	Table        string
	Associations map[string]Association
}

// Lookup returns the named association, if the entity declares it.
func (e Entity) Lookup(name string) (Association, bool) {
	a, ok := e.Associations[name]
	return a, ok
}

// New builds an Entity for table, indexing the given associations by name.
func New(table string, associations ...Association) Entity {
	byName := make(map[string]Association, len(associations))
	for _, a := range associations {
		byName[a.Name] = a
	}
	return Entity{Table: table, Associations: byName}
}
