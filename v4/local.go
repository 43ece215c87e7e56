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

package v4

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"

	"go.paseto.dev/paseto/internal/common"
)

// GenerateLocalKey generates a key for local encryption.
func GenerateLocalKey(r io.Reader) (*LocalKey, error) {
	var key LocalKey
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return nil, fmt.Errorf("paseto: unable to generate a random key: %w", err)
	}

	// No error
	return &key, nil
}

// LocalKeyFromSeed creates a local key from given input data.
func LocalKeyFromSeed(seed []byte) (*LocalKey, error) {
	if len(seed) < KeyLength {
		return nil, fmt.Errorf("paseto: invalid seed length, it must be %d bytes long at least", KeyLength)
	}

	var key LocalKey
	copy(key[:], seed[:KeyLength])

	// No error
	return &key, nil
}

// Encrypt implements the PASETO v4 symmetric encryption primitive.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version4.md#encrypt
func Encrypt(r io.Reader, key *LocalKey, m, f, i []byte) (string, error) {
	// Check arguments
	if key == nil {
		return "", errors.New("paseto: key is nil")
	}

	// Create random seed
	var n [nonceLength]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return "", fmt.Errorf("paseto: unable to generate random seed: %w", err)
	}

	// Derive keys from seed and secret key
	ek, n2, ak, err := kdf(key, n[:])
	if err != nil {
		return "", fmt.Errorf("paseto: unable to derive keys from seed: %w", err)
	}

	// Prepare XChaCha20 stream cipher (24-byte nonce => XChaCha)
	ciph, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to initialize XChaCha20 cipher: %w", err)
	}

	// Encrypt the payload
	c := make([]byte, len(m))
	ciph.XORKeyStream(c, m)

	// Compute MAC
	t, err := mac(ak, v4LocalPrefix, n[:], c, f, i)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to compute MAC: %w", err)
	}

	// Serialize final token
	// h || base64url(n || c || t)
	body := make([]byte, 0, nonceLength+len(c)+macLength)
	body = append(body, n[:]...)
	body = append(body, c...)
	body = append(body, t...)

	tokenLen := base64.RawURLEncoding.EncodedLen(len(body))
	footerLen := 0
	if len(f) > 0 {
		footerLen = base64.RawURLEncoding.EncodedLen(len(f)) + 1
		tokenLen += footerLen
	}

	final := make([]byte, len(v4LocalPrefix)+tokenLen)
	off := copy(final, v4LocalPrefix)
	base64.RawURLEncoding.Encode(final[off:], body)

	if len(f) > 0 {
		final[len(final)-footerLen] = '.'
		base64.RawURLEncoding.Encode(final[len(final)-footerLen+1:], f)
	}

	// No error
	return string(final), nil
}

// Decrypt implements the PASETO v4 symmetric decryption primitive.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version4.md#decrypt
func Decrypt(key *LocalKey, token string, f, i []byte) ([]byte, error) {
	// Check arguments
	if key == nil {
		return nil, errors.New("paseto: key is nil")
	}
	if token == "" {
		return nil, errors.New("paseto: token is blank")
	}

	rawToken := []byte(token)

	// Check token header
	if !bytes.HasPrefix(rawToken, []byte(v4LocalPrefix)) {
		return nil, errors.New("paseto: invalid token")
	}

	// Trim prefix
	rawToken = rawToken[len(v4LocalPrefix):]

	// Check footer usage
	if len(f) > 0 {
		footerIdx := bytes.IndexByte(rawToken, '.')
		if footerIdx <= 0 {
			return nil, errors.New("paseto: invalid token, footer is missing but expected")
		}

		footer := make([]byte, base64.RawURLEncoding.DecodedLen(len(rawToken[footerIdx+1:])))
		if _, err := base64.RawURLEncoding.Decode(footer, rawToken[footerIdx+1:]); err != nil {
			return nil, fmt.Errorf("paseto: invalid token, footer has invalid encoding: %w", err)
		}
		if !common.SecureCompare(f, footer) {
			return nil, errors.New("paseto: invalid token, footer mismatch")
		}
		rawToken = rawToken[:footerIdx]
	}

	// Decode token
	raw := make([]byte, base64.RawURLEncoding.DecodedLen(len(rawToken)))
	n2, err := base64.RawURLEncoding.Decode(raw, rawToken)
	if err != nil {
		return nil, fmt.Errorf("paseto: invalid token body: %w", err)
	}
	raw = raw[:n2]
	if len(raw) < nonceLength+macLength {
		return nil, errors.New("paseto: invalid token body length")
	}

	// Extract components
	n := raw[:nonceLength]
	t := raw[len(raw)-macLength:]
	c := raw[nonceLength : len(raw)-macLength]

	// Derive keys from seed and secret key
	ek, cipherNonce, ak, err := kdf(key, n)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to derive keys from seed: %w", err)
	}

	// Compute MAC
	t2, err := mac(ak, v4LocalPrefix, n, c, f, i)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to compute MAC: %w", err)
	}

	// Time-constant compare MAC
	if !common.SecureCompare(t, t2) {
		return nil, errors.New("paseto: invalid pre-authentication header")
	}

	// Prepare XChaCha20 stream cipher
	ciph, err := chacha20.NewUnauthenticatedCipher(ek, cipherNonce)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to initialize XChaCha20 cipher: %w", err)
	}

	// Decrypt the payload
	m := make([]byte, len(c))
	ciph.XORKeyStream(m, c)

	// No error
	return m, nil
}
