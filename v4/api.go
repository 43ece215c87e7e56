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

// Package v4 implements the PASETO v4 local and public primitives.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version4.md
package v4

const (
	// KeyLength is the requested encryption key size.
	KeyLength = 32
)

const (
	nonceLength             = 32
	macLength               = 32
	encryptionKDFLength     = 56 // Ek (32 bytes) || n2 (24 bytes)
	authenticationKeyLength = 32

	// v4LocalPrefix is the wire header for v4 symmetric encryption tokens.
	v4LocalPrefix = "v4.local."
	// PublicPrefix is the wire header for v4 signature tokens.
	PublicPrefix = "v4.public."
)

// LocalKey represents a key for symmetric encryption (local).
type LocalKey [KeyLength]byte
