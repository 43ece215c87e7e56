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

// Package paseto implements the PASETO v2/v3/v4 token format and the
// PASERK v4 key-serialization extension on top of the per-version
// primitive packages (v2, v3, v4) and the key-wrapping package (paserk).
package paseto

import "go.paseto.dev/paseto/internal/common"

// Kind classifies a failure the way every exported operation reports it:
// callers branch on the kind, never on the message text.
type Kind = common.Kind

const (
	KindFormat         = common.KindFormat
	KindArgument       = common.KindArgument
	KindAuthentication = common.KindAuthentication
	KindInternal       = common.KindInternal
)

// Error is the error type returned by the facade's own checks, the token
// codec and the PASERK operations. Failures inside the v2, v3 and v4 engines
// (MAC, signature, footer or body errors) are returned as plain errors, not
// as *Error.
type Error = common.Error

func formatErr(op string, err error) *Error   { return common.FormatErr(op, err) }
func argumentErr(op string, err error) *Error { return common.ArgumentErr(op, err) }
func authErr(op string, err error) *Error     { return common.AuthErr(op, err) }
func internalErr(op string, err error) *Error { return common.InternalErr(op, err) }
