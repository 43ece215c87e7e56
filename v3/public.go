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

package v3

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"go.paseto.dev/paseto/internal/common"
)

// appendFixed appends the big-endian bytes of v to dst, left-padded with
// zeroes to exactly size bytes.
func appendFixed(dst []byte, v *big.Int, size int) []byte {
	raw := v.Bytes()
	for i := 0; i < size-len(raw); i++ {
		dst = append(dst, 0)
	}
	return append(dst, raw...)
}

// Sign a message (m) with the private key (sk).
// PASETO v3 public signature primitive.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version3.md#sign
func Sign(m []byte, sk *ecdsa.PrivateKey, f, i []byte) (string, error) {
	// Check arguments
	if sk == nil {
		return "", errors.New("paseto: unable to sign with a nil private key")
	}

	// Compress public key point
	pk := elliptic.MarshalCompressed(elliptic.P384(), sk.X, sk.Y)

	// Compute protected content
	m2, err := common.PreAuthenticationEncoding(pk, []byte(PublicPrefix), m, f, i)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	// Compute SHA-384 digest
	digest := sha512.Sum384(m2)

	// Sign the digest. ECDSA P-384 signatures are randomized; the spec
	// allows either RFC 6979 deterministic nonces or standard randomized
	// signing, so we use the standard library's implementation directly.
	r, s, err := ecdsa.Sign(rand.Reader, sk, digest[:])
	if err != nil {
		return "", fmt.Errorf("paseto: unable to sign pre-authentication content: %w", err)
	}

	// Prepare content. r and s are fixed-width, left-padded with zeroes
	// to kdfOutputLength bytes each, per the P-384 signature encoding.
	body := make([]byte, 0, len(m)+signatureSize)
	body = append(body, m...)
	body = appendFixed(body, r, kdfOutputLength)
	body = appendFixed(body, s, kdfOutputLength)

	// Encode body as RawURLBase64
	tokenLen := base64.RawURLEncoding.EncodedLen(len(body))
	footerLen := base64.RawURLEncoding.EncodedLen(len(f)) + 1
	if len(f) > 0 {
		tokenLen += base64.RawURLEncoding.EncodedLen(len(f)) + 1
	}

	final := make([]byte, 10+tokenLen)
	copy(final, PublicPrefix)
	base64.RawURLEncoding.Encode(final[10:], body)

	// Assemble final token
	if len(f) > 0 {
		final[10+tokenLen-footerLen] = '.'
		// Encode footer as RawURLBase64
		base64.RawURLEncoding.Encode(final[10+tokenLen-footerLen+1:], f)
	}

	// No error
	return string(final), nil
}

// Verify PASETO v3 signature.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version3.md#verify
func Verify(t string, pub *ecdsa.PublicKey, f, i []byte) ([]byte, error) {
	// Check arguments
	if pub == nil {
		return nil, errors.New("paseto: public key is nil")
	}

	rawToken := []byte(t)

	// Check token header
	if !bytes.HasPrefix(rawToken, []byte(PublicPrefix)) {
		return nil, errors.New("paseto: invalid token")
	}

	// Trim prefix
	rawToken = rawToken[len(PublicPrefix):]

	// Check footer usage
	if len(f) > 0 {
		// Split the footer and the body
		footerIdx := bytes.Index(rawToken, []byte("."))
		if footerIdx == 0 {
			return nil, errors.New("paseto: invalid token, footer is missing but expected")
		}

		// Decode footer
		footer := make([]byte, base64.RawURLEncoding.DecodedLen(len(rawToken[footerIdx+1:])))
		if _, err := base64.RawURLEncoding.Decode(footer, rawToken[footerIdx+1:]); err != nil {
			return nil, fmt.Errorf("paseto: invalid token, footer has invalid encoding: %w", err)
		}

		// Compare footer
		if subtle.ConstantTimeCompare(f, footer) == 0 {
			return nil, errors.New("paseto: invalid token, footer mismatch")
		}

		// Continue without footer
		rawToken = rawToken[:footerIdx]
	}

	// Decode token
	raw := make([]byte, base64.RawURLEncoding.DecodedLen(len(rawToken)))
	if _, err := base64.RawURLEncoding.Decode(raw, rawToken); err != nil {
		return nil, fmt.Errorf("paseto: invalid token body: %w", err)
	}

	// Extract components
	m := raw[:len(raw)-signatureSize]
	sig := raw[len(raw)-signatureSize:]

	// Compress public key point
	pk := elliptic.MarshalCompressed(elliptic.P384(), pub.X, pub.Y)

	// Compute protected content
	m2, err := common.PreAuthenticationEncoding(pk, []byte(PublicPrefix), m, f, i)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	// Compute SHA-384 digest
	digest := sha512.Sum384(m2)

	// Split signature
	r := big.NewInt(0).SetBytes(sig[:kdfOutputLength])
	s := big.NewInt(0).SetBytes(sig[kdfOutputLength:])

	// Check signature
	if !ecdsa.Verify(pub, digest[:], r, s) {
		return nil, errors.New("paseto: invalid token signature")
	}

	// No error
	return m, nil
}
