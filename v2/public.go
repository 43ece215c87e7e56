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

package v2

import (
	"bytes"
	"crypto/ed25519"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"go.paseto.dev/paseto/internal/common"
)

// Sign a message (m) with the private key (sk).
// PASETO v2 public signature primitive. Unlike v3/v4, v2 has no implicit
// assertion input.
func Sign(m []byte, sk ed25519.PrivateKey, f []byte) (string, error) {
	if len(sk) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("paseto: invalid private key length, it must be %d bytes long", ed25519.PrivateKeySize)
	}

	preAuth, err := common.PreAuthenticationEncoding([]byte(PublicPrefix), m, f)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	sig := ed25519.Sign(sk, preAuth)

	body := make([]byte, 0, len(m)+signatureSize)
	body = append(body, m...)
	body = append(body, sig...)

	tokenLen := base64.RawURLEncoding.EncodedLen(len(body))
	footerLen := 0
	if len(f) > 0 {
		footerLen = base64.RawURLEncoding.EncodedLen(len(f)) + 1
		tokenLen += footerLen
	}

	final := make([]byte, len(PublicPrefix)+tokenLen)
	off := copy(final, PublicPrefix)
	base64.RawURLEncoding.Encode(final[off:], body)

	if len(f) > 0 {
		final[len(final)-footerLen] = '.'
		base64.RawURLEncoding.Encode(final[len(final)-footerLen+1:], f)
	}

	// No error
	return string(final), nil
}

// Verify a PASETO v2 signature.
func Verify(t string, pk ed25519.PublicKey, f []byte) ([]byte, error) {
	if len(pk) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("paseto: invalid public key length, it must be %d bytes long", ed25519.PublicKeySize)
	}

	rawToken := []byte(t)
	if !bytes.HasPrefix(rawToken, []byte(PublicPrefix)) {
		return nil, errors.New("paseto: invalid token")
	}
	rawToken = rawToken[len(PublicPrefix):]

	if len(f) > 0 {
		footerIdx := bytes.IndexByte(rawToken, '.')
		if footerIdx <= 0 {
			return nil, errors.New("paseto: invalid token, footer is missing but expected")
		}
		footer := make([]byte, base64.RawURLEncoding.DecodedLen(len(rawToken[footerIdx+1:])))
		if _, err := base64.RawURLEncoding.Decode(footer, rawToken[footerIdx+1:]); err != nil {
			return nil, fmt.Errorf("paseto: invalid token, footer has invalid encoding: %w", err)
		}
		if subtle.ConstantTimeCompare(f, footer) == 0 {
			return nil, errors.New("paseto: invalid token, footer mismatch")
		}
		rawToken = rawToken[:footerIdx]
	}

	raw := make([]byte, base64.RawURLEncoding.DecodedLen(len(rawToken)))
	n, err := base64.RawURLEncoding.Decode(raw, rawToken)
	if err != nil {
		return nil, fmt.Errorf("paseto: invalid token body: %w", err)
	}
	raw = raw[:n]
	if len(raw) < signatureSize {
		return nil, errors.New("paseto: invalid token body length")
	}

	m := raw[:len(raw)-signatureSize]
	sig := raw[len(raw)-signatureSize:]

	preAuth, err := common.PreAuthenticationEncoding([]byte(PublicPrefix), m, f)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	if !ed25519.Verify(pk, preAuth, sig) {
		return nil, errors.New("paseto: invalid token signature")
	}

	// No error
	return m, nil
}
