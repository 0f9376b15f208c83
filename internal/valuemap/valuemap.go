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

// Package valuemap implements the map/map_safe value-transformation
// pipeline: walking a parameter mapping, resolving each pair's logical
// field name, and applying a caller-supplied transformer before the pair
// reaches the query compiler.
package valuemap

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fraunhofer-iese/paramql/internal/cerr"
	"github.com/fraunhofer-iese/paramql/internal/fieldref"
)

// Transformer rewrites one parameter value. A bare successful return is
// `(newValue, nil)`; a failure is `(nil, err)`. This collapses the three
// callback shapes a transformer can take (bare value / (ok, v) /
// (error, reason)) into the idiomatic Go (value, error) pair.
type Transformer func(value interface{}) (interface{}, error)

// Identity returns its input unchanged. Used as the fallback when no
// exact or pattern mapper matches a field, and distinguished internally
// from an explicitly-registered transformer so map_safe's empty-value
// skip only triggers for fields a caller actually mapped.
func Identity(value interface{}) (interface{}, error) { return value, nil }

// patternEntry pairs a compiled regular expression with its transformer,
// scanned in registration order on an exact-match miss.
type patternEntry struct {
	pattern     *regexp.Regexp
	transformer Transformer
}

// Spec is a mapper spec: exact field-name transformers plus an ordered
// list of regex-pattern transformers, tried in that order on a lookup.
type Spec struct {
	exact    map[string]Transformer
	patterns []patternEntry
}

// NewSpec builds an empty mapper spec.
func NewSpec() *Spec {
	return &Spec{exact: map[string]Transformer{}}
}

// Field registers an exact-match transformer for a logical field name.
func (s *Spec) Field(name string, t Transformer) *Spec {
	s.exact[name] = t
	return s
}

// Pattern registers a transformer for any logical field name matching re,
// consulted in registration order after every exact match misses.
func (s *Spec) Pattern(re *regexp.Regexp, t Transformer) *Spec {
	s.patterns = append(s.patterns, patternEntry{pattern: re, transformer: t})
	return s
}

// find implements findMapper: exact match first, then patterns in
// insertion order, then Identity.
func (s *Spec) find(field string) (t Transformer, custom bool) {
	if s == nil {
		return Identity, false
	}
	if t, ok := s.exact[field]; ok {
		return t, true
	}
	for _, p := range s.patterns {
		if p.pattern.MatchString(field) {
			return p.transformer, true
		}
	}
	return Identity, false
}

// logicalField resolves a parameter key to the field name a mapper spec
// is registered under: Plain/Jsonb and Join/JoinJsonb both resolve to
// their (non-association) field name; everything else resolves to the
// key with any leading "-" stripped.
func logicalField(key string) string {
	ref := fieldref.Parse(key)
	switch ref.Kind {
	case fieldref.Plain, fieldref.Jsonb, fieldref.Join, fieldref.JoinJsonb:
		return ref.Field
	default:
		return strings.TrimPrefix(key, "-")
	}
}

// Map unconditionally applies the resolved transformer to every pair and
// records the result under the original key. Transformer panics and
// errors propagate to the caller unmodified — Map is the one entry point
// that does not catch them.
func Map(params map[string]interface{}, spec *Spec) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(params))
	for key, value := range params {
		t, _ := spec.find(logicalField(key))
		newValue, err := t(value)
		if err != nil {
			return nil, err
		}
		out[key] = newValue
	}
	return out, nil
}

// MapSafe is the lawful variant: empty values routed to an explicitly
// registered (non-identity) transformer are dropped without invoking it,
// panics raised by a transformer are caught and converted to an error, and
// any failure short-circuits the whole walk so the partially-built mapping
// is never observable by the caller.
func MapSafe(params map[string]interface{}, spec *Spec) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(params))
	for key, value := range params {
		t, custom := spec.find(logicalField(key))
		if custom && isEmpty(value) {
			continue
		}
		newValue, err := invokeCatchingPanics(t, value)
		if err != nil {
			return nil, &cerr.TransformationFailed{Reason: err.Error()}
		}
		out[key] = newValue
	}
	return out, nil
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func invokeCatchingPanics(t Transformer, value interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return t(value)
}
