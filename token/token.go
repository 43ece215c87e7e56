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

// Package token implements the version/purpose-tagged PASETO wire format:
// splitting a token string into its header, payload and optional footer,
// and serializing them back. It never touches cryptographic material; the
// version engines (v2, v3, v4) own the payload's internal layout.
package token

import (
	"encoding/base64"
	"fmt"
	"strings"

	"go.paseto.dev/paseto/internal/common"
)

// Version is the PASETO protocol version tag.
type Version string

const (
	V2 Version = "v2"
	V3 Version = "v3"
	V4 Version = "v4"
)

// Purpose is the PASETO token purpose tag.
type Purpose string

const (
	Local  Purpose = "local"
	Public Purpose = "public"
)

// Header identifies a token's version and purpose. Its wire form is
// "v<n>.<purpose>." with the trailing dot; PAE drops the dot.
type Header struct {
	Version Version
	Purpose Purpose
}

// String returns the wire form of the header, including the trailing dot.
func (h Header) String() string {
	return string(h.Version) + "." + string(h.Purpose) + "."
}

// PAE returns the header's contribution to pre-authentication encoding,
// which omits the trailing dot.
func (h Header) PAE() []byte {
	s := h.String()
	return []byte(s[:len(s)-1])
}

var headerVersions = map[Version]bool{V2: true, V3: true, V4: true}
var headerPurposes = map[Purpose]bool{Local: true, Public: true}

// Token is a parsed PASETO string: a header, a raw (still version-specific)
// payload, and an optional footer.
type Token struct {
	Header  Header
	Payload []byte
	Footer  []byte // nil if the token carries no footer
}

// tokenState walks spec §4.4.6's lifecycle: Parsed → VersionChecked →
// PurposeChecked → PayloadSplit. Any failed transition returns immediately;
// Parse never exposes a partially-built Token.
type tokenState int

const (
	stateParsed tokenState = iota
	stateVersionChecked
	statePurposeChecked
	statePayloadSplit
)

// Parse splits a token string into its Header, Payload and Footer. It does
// not verify or decrypt the payload — that is the matching version engine's
// job, dispatched on the parsed Header so a caller can never be tricked into
// running the wrong engine over the wrong version's bytes.
func Parse(s string) (*Token, error) {
	state := stateParsed
	fail := func(err error) (*Token, error) {
		return nil, common.FormatErr(fmt.Sprintf("token.parse@%d", state), err)
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 && len(parts) != 4 {
		return fail(fmt.Errorf("expected 3 or 4 dot-separated components, got %d", len(parts)))
	}

	version := Version(parts[0])
	if !headerVersions[version] {
		return fail(fmt.Errorf("unknown version %q", parts[0]))
	}
	state = stateVersionChecked

	purpose := Purpose(parts[1])
	if !headerPurposes[purpose] {
		return fail(fmt.Errorf("unknown purpose %q", parts[1]))
	}
	state = statePurposeChecked

	payload, err := decodeBase64(parts[2])
	if err != nil {
		return fail(fmt.Errorf("invalid payload encoding: %w", err))
	}

	var footer []byte
	if len(parts) == 4 {
		footer, err = decodeBase64(parts[3])
		if err != nil {
			return fail(fmt.Errorf("invalid footer encoding: %w", err))
		}
	}
	state = statePayloadSplit

	return &Token{
		Header:  Header{Version: version, Purpose: purpose},
		Payload: payload,
		Footer:  footer,
	}, nil
}

// Serialize renders a Token back to its wire string. An empty footer is
// omitted entirely rather than encoded as an empty trailing component.
func Serialize(t *Token) string {
	var sb strings.Builder
	sb.WriteString(t.Header.String())
	sb.WriteString(base64.RawURLEncoding.EncodeToString(t.Payload))
	if len(t.Footer) > 0 {
		sb.WriteByte('.')
		sb.WriteString(base64.RawURLEncoding.EncodeToString(t.Footer))
	}
	return sb.String()
}

// decodeBase64 accepts URL-safe base64 with or without trailing '=' padding
// and rejects any other alphabet, matching spec §4.5.
func decodeBase64(s string) ([]byte, error) {
	trimmed := strings.TrimRight(s, "=")
	return base64.RawURLEncoding.DecodeString(trimmed)
}
