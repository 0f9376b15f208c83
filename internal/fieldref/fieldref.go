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

// Package fieldref decodes a single parameter key into the field-reference
// algebra: a plain column, a JSONB-subscripted column, a joined column, a
// joined JSONB-subscripted column, or "not a filter key" (None).
//
// Parsing is structural only. It never consults a schema and never fails:
// an unrecognized key is simply a None reference, left for the caller to
// route elsewhere.
package fieldref

import (
	"regexp"
)

// Kind discriminates the five shapes a parameter key can take.
type Kind int

const (
	// None marks a key that is not a filter reference: a reserved control
	// key (sort, limit, start, -start) or anything unrecognized.
	None Kind = iota
	Plain
	Jsonb
	Join
	JoinJsonb
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Jsonb:
		return "jsonb"
	case Join:
		return "join"
	case JoinJsonb:
		return "join_jsonb"
	default:
		return "none"
	}
}

// Op is one of the fixed operator tokens spec'd for the constraint
// compiler. It is opaque to this package: fieldref does not validate that
// an Op is one of the known tokens, only that the grammar positions one.
type Op string

// Ref is the parsed, tagged variant produced for one parameter key.
//
// Only the fields relevant to Kind are populated; callers should switch on
// Kind before reading Assoc/Field/Key. Raw preserves the original key
// string, both for diagnostics and so None references can still be passed
// through unmodified by the assembler.
type Ref struct {
	Kind  Kind
	Assoc string
	Field string
	Key   string
	Op    Op
	Raw   string
}

var (
	// Rule 1 must be tried before rule 3 (jsonb), otherwise "a:b.c[eq]"
	// would be misread as a Jsonb reference on a field literally named
	// "a:b". Each identifier is one-or-more word characters, anchored at
	// both ends so trailing/leading garbage never partially matches.
	reJoinJsonb = regexp.MustCompile(`^(\w+):(\w+)\.(\w+)\[(\w+)\]$`)
	reJoin      = regexp.MustCompile(`^(\w+):(\w+)\[(\w+)\]$`)
	reJsonb     = regexp.MustCompile(`^(\w+)\.(\w+)\[(\w+)\]$`)
	rePlain     = regexp.MustCompile(`^(\w+)\[(\w+)\]$`)
)

// Parse decodes a single parameter key into its field-reference shape.
// Matching never fails: a key that matches none of the four filter shapes
// becomes a None reference, which the assembler is free to ignore as a
// filter but must still be able to pass through as a control/unknown key.
func Parse(key string) Ref {
	if m := reJoinJsonb.FindStringSubmatch(key); m != nil {
		return Ref{Kind: JoinJsonb, Assoc: m[1], Field: m[2], Key: m[3], Op: Op(m[4]), Raw: key}
	}
	if m := reJoin.FindStringSubmatch(key); m != nil {
		return Ref{Kind: Join, Assoc: m[1], Field: m[2], Op: Op(m[3]), Raw: key}
	}
	if m := reJsonb.FindStringSubmatch(key); m != nil {
		return Ref{Kind: Jsonb, Field: m[1], Key: m[2], Op: Op(m[3]), Raw: key}
	}
	if m := rePlain.FindStringSubmatch(key); m != nil {
		return Ref{Kind: Plain, Field: m[1], Op: Op(m[2]), Raw: key}
	}
	return Ref{Kind: None, Raw: key}
}

// String reconstructs the parameter key a Ref was parsed from. For the
// four filter shapes this is a true inverse of Parse (the round-trip
// property the core's tests assert); for None it returns Raw verbatim.
func (r Ref) String() string {
	switch r.Kind {
	case JoinJsonb:
		return r.Assoc + ":" + r.Field + "." + r.Key + "[" + string(r.Op) + "]"
	case Join:
		return r.Assoc + ":" + r.Field + "[" + string(r.Op) + "]"
	case Jsonb:
		return r.Field + "." + r.Key + "[" + string(r.Op) + "]"
	case Plain:
		return r.Field + "[" + string(r.Op) + "]"
	default:
		return r.Raw
	}
}

// IsFilter reports whether a reference participates in WHERE-clause
// compilation (anything but None).
func (r Ref) IsFilter() bool {
	return r.Kind != None
}

// IsJoined reports whether a reference targets an associated entity rather
// than the root entity.
func (r Ref) IsJoined() bool {
	return r.Kind == Join || r.Kind == JoinJsonb
}
