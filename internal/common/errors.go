// Licensed to SolID under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. SolID licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package common

import "fmt"

// Kind classifies a failure: callers branch on the kind, never on the
// message text.
type Kind int

const (
	// KindFormat covers malformed input: wrong component count, unknown
	// version/purpose, bad base64, wrong body length, wrong PASERK prefix.
	KindFormat Kind = iota + 1
	// KindArgument covers wrong key/nonce/signature length caught at
	// construction or at the API boundary.
	KindArgument
	// KindAuthentication covers the failed tag and password checks of
	// package paserk. The rendered message never distinguishes sub-causes.
	// The token engines (v2, v3, v4) report their MAC, signature and
	// footer failures as plain errors instead, not as this kind.
	KindAuthentication
	// KindInternal covers failures of the random source or other
	// collaborators the core cannot recover from.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindArgument:
		return "argument"
	case KindAuthentication:
		return "authentication"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the token codec, by package paserk
// and by the facade's own argument and version checks. Errors raised inside
// the v2, v3 and v4 engines are plain errors and reach the caller unchanged.
// Op names the failing operation (e.g. "paseto.decrypt_local"); Err is the
// wrapped cause, introspectable with errors.Unwrap/errors.As but never
// rendered for an AuthenticationError.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindAuthentication {
		// Uniform message: an attacker must not learn which check failed.
		return "paseto: authentication failed"
	}
	if e.Err == nil {
		return fmt.Sprintf("paseto: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("paseto: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error of the given kind.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// FormatErr builds a KindFormat error.
func FormatErr(op string, err error) *Error { return NewError(KindFormat, op, err) }

// ArgumentErr builds a KindArgument error.
func ArgumentErr(op string, err error) *Error { return NewError(KindArgument, op, err) }

// AuthErr builds a KindAuthentication error.
func AuthErr(op string, err error) *Error { return NewError(KindAuthentication, op, err) }

// InternalErr builds a KindInternal error.
func InternalErr(op string, err error) *Error { return NewError(KindInternal, op, err) }
