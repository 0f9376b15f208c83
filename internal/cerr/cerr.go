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

// Package cerr holds the compiler's error taxonomy so that
// internal/constraint, internal/joinplan, internal/valuemap, and the root
// package can all produce and recognize the same error values without an
// import cycle back to the public API.
package cerr

import "fmt"

// InvalidConstraint is returned when an operator is unknown for a field
// reference's shape (e.g. "search" on a Jsonb field).
type InvalidConstraint struct {
	Key string
}

func (e *InvalidConstraint) Error() string {
	return "Invalid constraint: " + e.Key
}

// JoinNotAllowed is returned when a Join/JoinJsonb reference names an
// association outside the caller-supplied whitelist.
type JoinNotAllowed struct {
	Assoc string
}

func (e *JoinNotAllowed) Error() string {
	return "Join not allowed: " + e.Assoc
}

// TransformationFailed is returned by MapSafe (never by Map, which
// re-raises the transformer's own error) when a transformer reports
// failure.
type TransformationFailed struct {
	Reason string
}

func (e *TransformationFailed) Error() string {
	return fmt.Sprintf("transformation_failed: %s", e.Reason)
}

// Assembly is the generic assembler error, used for control parameters
// that fail to parse (e.g. a non-integer limit).
type Assembly struct {
	Msg string
}

func (e *Assembly) Error() string { return e.Msg }

// Assemblyf builds an Assembly error with a formatted message.
func Assemblyf(format string, args ...interface{}) error {
	return &Assembly{Msg: fmt.Sprintf(format, args...)}
}
