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

// Package qstring decodes a raw HTTP query string into a flat string->string
// mapping. It does not interpret keys at all; interpretation is
// internal/fieldref's job.
package qstring

import (
	"net/url"
	"strings"
)

// Decode splits a raw query string on "&", splits each segment on the
// first "=", and percent-decodes both sides ("+" is treated as space, per
// application/x-www-form-urlencoded, the same convention url.ParseQuery
// uses). A leading "?" is stripped if present. Repeated keys: last one
// wins, since the core never treats a key as multi-valued.
//
// Decode never returns an error: a segment that fails to percent-decode is
// kept verbatim rather than rejecting the whole string, since a single
// malformed parameter should not take down compilation of the rest.
func Decode(raw string) map[string]string {
	raw = strings.TrimPrefix(raw, "?")
	out := map[string]string{}
	if raw == "" {
		return out
	}
	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		dk, err := url.QueryUnescape(key)
		if err != nil {
			dk = key
		}
		dv, err := url.QueryUnescape(value)
		if err != nil {
			dv = value
		}
		out[dk] = dv
	}
	return out
}
