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

// Package page compiles the sort, limit, and start/-start control
// parameters into ORDER BY, LIMIT, and WHERE id <op> fragments.
package page

import (
	"strconv"
	"strings"

	"github.com/fraunhofer-iese/paramql/internal/cerr"
	"github.com/fraunhofer-iese/paramql/internal/queryrt"
)

const defaultLimit = 10

// Apply reads the sort/limit/start/-start control keys out of params and
// appends the corresponding ORDER BY, LIMIT, and WHERE id <op> ? fragments
// to b.
func Apply(b queryrt.Builder, params map[string]string) error {
	applySort(b, params["sort"])

	if err := applyLimit(b, params); err != nil {
		return err
	}

	return applyStart(b, params)
}

func applySort(b queryrt.Builder, sort string) {
	if sort == "" {
		b.OrderBy("id ASC")
		return
	}
	if strings.HasPrefix(sort, "-") {
		b.OrderBy(strings.TrimPrefix(sort, "-") + " DESC")
		return
	}
	b.OrderBy(sort + " ASC")
}

func applyLimit(b queryrt.Builder, params map[string]string) error {
	raw, ok := params["limit"]
	if !ok || raw == "" {
		b.Limit(defaultLimit)
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return cerr.Assemblyf("invalid limit: %q", raw)
	}
	b.Limit(n)
	return nil
}

func applyStart(b queryrt.Builder, params map[string]string) error {
	_, hasStart := params["start"]
	_, hasNegStart := params["-start"]
	if hasStart && hasNegStart {
		// Letting the first-seen key silently win would hide a caller
		// mistake; report it instead.
		return cerr.Assemblyf("start and -start are mutually exclusive")
	}
	if hasStart {
		b.WhereID(">", params["start"])
		return nil
	}
	if hasNegStart {
		b.WhereID("<", params["-start"])
		return nil
	}
	return nil
}
