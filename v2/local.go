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
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

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

// Encrypt implements the PASETO v2 symmetric encryption primitive and
// returns the resulting token string. The nonce is a synthetic,
// message-derived value: 24 bytes of fresh randomness are mixed with the
// message through keyed BLAKE2b so that nonce reuse can never occur for
// two distinct messages under the same random draw, matching the
// published v2 protocol.
func Encrypt(r io.Reader, key *LocalKey, m, f []byte) (string, error) {
	if key == nil {
		return "", errors.New("paseto: key is nil")
	}

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return "", fmt.Errorf("paseto: unable to prepare XChaCha20-Poly1305: %w", err)
	}

	// Draw 24 bytes of randomness, then fold the message into it with
	// keyed BLAKE2b to get the actual nonce.
	var seed [nonceLength]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return "", fmt.Errorf("paseto: unable to generate random seed: %w", err)
	}

	h, err := blake2b.New(nonceLength, seed[:])
	if err != nil {
		return "", fmt.Errorf("paseto: unable to initialize nonce kdf: %w", err)
	}
	h.Write(m)
	n := h.Sum(nil)

	preAuth, err := common.PreAuthenticationEncoding([]byte(LocalPrefix), n, f)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	c := aead.Seal(nil, n, m, preAuth)

	body := append(append([]byte{}, n...), c...)

	tokenLen := base64.RawURLEncoding.EncodedLen(len(body))
	footerLen := 0
	if len(f) > 0 {
		footerLen = base64.RawURLEncoding.EncodedLen(len(f)) + 1
		tokenLen += footerLen
	}

	final := make([]byte, len(LocalPrefix)+tokenLen)
	off := copy(final, LocalPrefix)
	base64.RawURLEncoding.Encode(final[off:], body)

	if len(f) > 0 {
		final[len(final)-footerLen] = '.'
		base64.RawURLEncoding.Encode(final[len(final)-footerLen+1:], f)
	}

	// No error
	return string(final), nil
}

// Decrypt implements the PASETO v2 symmetric decryption primitive.
func Decrypt(key *LocalKey, token string, f []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.New("paseto: key is nil")
	}
	if token == "" {
		return nil, errors.New("paseto: token is blank")
	}

	rawToken := []byte(token)
	if !bytes.HasPrefix(rawToken, []byte(LocalPrefix)) {
		return nil, errors.New("paseto: invalid token")
	}
	rawToken = rawToken[len(LocalPrefix):]

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
	n2, err := base64.RawURLEncoding.Decode(raw, rawToken)
	if err != nil {
		return nil, fmt.Errorf("paseto: invalid token body: %w", err)
	}
	raw = raw[:n2]
	if len(raw) < nonceLength+macLength {
		return nil, errors.New("paseto: invalid token body length")
	}

	n := raw[:nonceLength]
	c := raw[nonceLength:]

	preAuth, err := common.PreAuthenticationEncoding([]byte(LocalPrefix), n, f)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to prepare XChaCha20-Poly1305: %w", err)
	}

	m, err := aead.Open(nil, n, c, preAuth)
	if err != nil {
		return nil, errors.New("paseto: invalid pre-authentication header")
	}

	// No error
	return m, nil
}
