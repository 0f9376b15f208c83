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

// Package paramql compiles HTTP-style query-string parameters into
// relational database queries against a declared entity schema.
//
// The public surface is five functions: Compile (the assembler),
// DecodeQueryString, Map and MapSafe, and Filter — designed so a
// caller can pipe a raw query string through Filter (staple on
// access-control predicates) and MapSafe (decode opaque ids) before
// handing the result to Compile, with every stage accepting either a raw
// query string or an already-decoded parameter mapping.
package paramql

import (
	"fmt"
	"sort"

	"github.com/fraunhofer-iese/paramql/internal/constraint"
	"github.com/fraunhofer-iese/paramql/internal/fieldref"
	"github.com/fraunhofer-iese/paramql/internal/joinplan"
	"github.com/fraunhofer-iese/paramql/internal/page"
	"github.com/fraunhofer-iese/paramql/internal/qstring"
	"github.com/fraunhofer-iese/paramql/internal/queryrt"
	"github.com/fraunhofer-iese/paramql/internal/schema"
	"github.com/fraunhofer-iese/paramql/internal/sqlbuilder"
	"github.com/fraunhofer-iese/paramql/internal/valuemap"
)

// Re-exported collaborator types, so callers never need to import an
// internal package to use the public API.
type (
	// Entity describes the root table a compiled query targets and the
	// associations reachable from it.
	Entity = schema.Entity
	// Association describes one joinable relation from the root entity.
	Association = schema.Association
	// Builder is the query-builder runtime collaborator interface: the
	// only thing the core knows how to mutate.
	Builder = queryrt.Builder
	// Factory produces a fresh Builder scoped to one root table.
	Factory = queryrt.Factory
	// Spec is a mapper spec for Map/MapSafe: exact and pattern field-name
	// transformers.
	Spec = valuemap.Spec
	// Transformer rewrites one parameter value for Map/MapSafe.
	Transformer = valuemap.Transformer
)

// NewEntity builds an Entity for table, indexing the given associations by
// name.
var NewEntity = schema.New

// NewMapperSpec builds an empty mapper Spec ready for Field/Pattern calls.
var NewMapperSpec = valuemap.NewSpec

// Identity is the fallback transformer: returns its input unchanged.
var Identity = valuemap.Identity

// CompiledQuery is the opaque result of Compile: SQL text with "$n"
// placeholders (PostgreSQL convention) and its bound arguments in
// placeholder order.
type CompiledQuery struct {
	SQL  string
	Args []interface{}
}

// Options carries the per-call configuration Compile needs beyond the
// parameter mapping and entity: the join whitelist and, optionally, which
// query-builder runtime to compile against. Builder
// defaults to the package's deterministic reference adapter
// (internal/sqlbuilder) when nil.
type Options struct {
	Joins   []string
	Builder Factory
}

// Compile is the query assembler: it validates every parameter key,
// composes the root WHERE predicate, applies joins, and appends
// ordering/limit/offset, returning either the compiled query or the first
// validation error encountered. No query object is ever returned on error.
func Compile(paramsOrQueryString interface{}, entity Entity, opts Options) (*CompiledQuery, error) {
	params := normalize(paramsOrQueryString)

	factory := opts.Builder
	if factory == nil {
		factory = sqlbuilder.Factory{}
	}
	b := factory.New(entity.Table)
	b.Where("TRUE")

	var joinParams []joinplan.Param
	for _, key := range sortedKeys(params) {
		ref := fieldref.Parse(key)
		switch ref.Kind {
		case fieldref.Plain:
			if err := constraint.Compile(b, ref.Field, "", ref.Op, params[key], key); err != nil {
				return nil, err
			}
		case fieldref.Jsonb:
			if err := constraint.Compile(b, ref.Field, ref.Key, ref.Op, params[key], key); err != nil {
				return nil, err
			}
		case fieldref.Join, fieldref.JoinJsonb:
			joinParams = append(joinParams, joinplan.Param{Ref: ref, Value: params[key]})
		default:
			// None: a reserved control key or an unrecognized key.
			// Control keys are handled below by page.Apply; anything
			// else is silently ignored rather than rejected.
		}
	}

	if err := joinplan.Apply(b, entity, opts.Joins, joinParams); err != nil {
		return nil, err
	}

	if err := page.Apply(b, controlParams(params)); err != nil {
		return nil, err
	}

	sql, args := b.Build()
	return &CompiledQuery{SQL: sql, Args: args}, nil
}

// DecodeQueryString splits and percent-decodes a raw URL query string into
// a key->value mapping.
func DecodeQueryString(s string) map[string]string {
	return qstring.Decode(s)
}

// Map unconditionally applies the mapper's transformers to every parameter
// pair. Transformer errors/panics propagate to the caller unmodified.
func Map(paramsOrQueryString interface{}, spec *Spec) (map[string]interface{}, error) {
	return valuemap.Map(normalize(paramsOrQueryString), spec)
}

// MapSafe is the lawful variant of Map: empty values routed to an
// explicitly-registered transformer are dropped without invoking it,
// panics are caught and converted to a *TransformationFailed, and any
// failure discards the whole walk rather than returning a partial mapping.
func MapSafe(paramsOrQueryString interface{}, spec *Spec) (map[string]interface{}, error) {
	return valuemap.MapSafe(normalize(paramsOrQueryString), spec)
}

// Filter shallow-merges additional into paramsOrQueryString, right-biased:
// a key present in both is taken from additional. Used to staple
// access-control predicates onto a caller-supplied parameter mapping
// before MapSafe/Compile see it.
func Filter(paramsOrQueryString interface{}, additional interface{}) map[string]interface{} {
	base := normalize(paramsOrQueryString)
	extra := normalize(additional)
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// normalize accepts a raw query string, a map[string]string (as returned
// by DecodeQueryString), or an already-mapped map[string]interface{} (as
// returned by Map/MapSafe), and produces the canonical working type every
// core component operates on.
func normalize(in interface{}) map[string]interface{} {
	switch v := in.(type) {
	case nil:
		return map[string]interface{}{}
	case string:
		decoded := qstring.Decode(v)
		out := make(map[string]interface{}, len(decoded))
		for k, val := range decoded {
			out[k] = val
		}
		return out
	case map[string]string:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	case map[string]interface{}:
		return v
	default:
		return map[string]interface{}{}
	}
}

// controlParams extracts the reserved control keys from the normalized
// mapping as plain strings, for page.Apply.
func controlParams(params map[string]interface{}) map[string]string {
	out := map[string]string{}
	for _, key := range []string{"sort", "limit", "start", "-start"} {
		if v, ok := params[key]; ok {
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

func sortedKeys(params map[string]interface{}) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
