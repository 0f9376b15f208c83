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

// Package joinplan groups Join/JoinJsonb field references by association,
// enforces the caller-supplied whitelist, deduplicates the emitted join
// clause per association, and compiles each reference's predicate against
// the joined alias.
package joinplan

import (
	"fmt"
	"sort"

	"github.com/fraunhofer-iese/paramql/internal/cerr"
	"github.com/fraunhofer-iese/paramql/internal/constraint"
	"github.com/fraunhofer-iese/paramql/internal/fieldref"
	"github.com/fraunhofer-iese/paramql/internal/queryrt"
	"github.com/fraunhofer-iese/paramql/internal/schema"
)

// Param pairs a parsed Join/JoinJsonb reference with the value its
// parameter key was bound to (a string, or whatever a Map/MapSafe
// transformer produced).
type Param struct {
	Ref   fieldref.Ref
	Value interface{}
}

// Apply groups params by association, validates every association against
// whitelist, and — only if every reference validates — emits one join
// clause per association plus one AND-composed predicate per reference.
//
// No partial join is emitted: validation runs to completion before any
// mutation of b, so a single disallowed association fails the whole call
// with no predicate compiled for any association, not just the offending
// one.
func Apply(b queryrt.Builder, entity schema.Entity, whitelist []string, params []Param) error {
	allowed := make(map[string]struct{}, len(whitelist))
	for _, w := range whitelist {
		allowed[w] = struct{}{}
	}

	groups := map[string][]Param{}
	var order []string
	for _, p := range params {
		if !p.Ref.IsJoined() {
			continue
		}
		if _, ok := groups[p.Ref.Assoc]; !ok {
			order = append(order, p.Ref.Assoc)
		}
		groups[p.Ref.Assoc] = append(groups[p.Ref.Assoc], p)
	}
	if len(groups) == 0 {
		return nil
	}

	// Validate every group before emitting anything, so a single
	// disallowed association never leaves a partial join behind.
	sort.Strings(order)
	for _, assoc := range order {
		if _, ok := allowed[assoc]; !ok {
			return &cerr.JoinNotAllowed{Assoc: assoc}
		}
		if _, ok := entity.Lookup(assoc); !ok {
			return &cerr.JoinNotAllowed{Assoc: assoc}
		}
	}

	for _, assoc := range order {
		assocDef, _ := entity.Lookup(assoc)
		alias := assoc
		b.Join(fmt.Sprintf("INNER JOIN %s %s ON %s", assocDef.Table, alias, fmt.Sprintf(assocDef.On, alias)))

		for _, p := range groups[assoc] {
			column := alias + "." + p.Ref.Field
			if err := constraint.Compile(b, column, p.Ref.Key, p.Ref.Op, p.Value, p.Ref.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
