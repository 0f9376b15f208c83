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

package paramql

import "github.com/fraunhofer-iese/paramql/internal/cerr"

// The compiler's error taxonomy. All four are exported as concrete pointer
// types so callers can distinguish them with errors.As,
// e.g.:
//
//	var jna *paramql.JoinNotAllowed
//	if errors.As(err, &jna) { ... }
type (
	// InvalidConstraint is returned when an operator is unknown for a
	// field reference's shape.
	InvalidConstraint = cerr.InvalidConstraint
	// JoinNotAllowed is returned when a join reference names an
	// association outside the whitelist passed in Options.
	JoinNotAllowed = cerr.JoinNotAllowed
	// TransformationFailed is returned by MapSafe when a transformer
	// reports failure.
	TransformationFailed = cerr.TransformationFailed
	// AssemblyError is the generic assembler error for malformed control
	// parameters (e.g. a non-integer limit, or both start and -start).
	AssemblyError = cerr.Assembly
)
