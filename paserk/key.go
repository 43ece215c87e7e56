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

// Package paserk implements the PASERK v4 key-serialization extension:
// the k4.local / k4.secret / k4.public key formats, their identifiers,
// and the PIE, password and seal wrapping constructions.
// https://github.com/paseto-standard/paserk
package paserk

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"go.paseto.dev/paseto/internal/common"
)

const (
	// LocalKeySize is the byte length of a k4.local body.
	LocalKeySize = 32
	// SecretKeySize is the byte length of a k4.secret body: seed (32) ‖ public (32).
	SecretKeySize = ed25519.PrivateKeySize
	// PublicKeySize is the byte length of a k4.public body.
	PublicKeySize = ed25519.PublicKeySize
)

const (
	localHeader  = "k4.local."
	secretHeader = "k4.secret."
	publicHeader = "k4.public."
)

// LocalKey is a PASETO v4 symmetric key.
type LocalKey [LocalKeySize]byte

// SecretKey is an Ed25519 private key in PASERK's seed ‖ public wire
// order. This is the order the published k4.secret test vectors use; an
// earlier internal draft disagreed on byte order and is not followed.
type SecretKey [SecretKeySize]byte

// PublicKey is an Ed25519 public key.
type PublicKey [PublicKeySize]byte

// Seed returns the 32-byte Ed25519 seed embedded in the secret key.
func (s SecretKey) Seed() []byte { return s[:32] }

// Public returns the 32-byte Ed25519 public key embedded in the secret key.
func (s SecretKey) Public() PublicKey {
	var pk PublicKey
	copy(pk[:], s[32:])
	return pk
}

// Ed25519 returns the standard library representation of the key.
func (s SecretKey) Ed25519() ed25519.PrivateKey { return ed25519.PrivateKey(s[:]) }

// Ed25519 returns the standard library representation of the key.
func (p PublicKey) Ed25519() ed25519.PublicKey { return ed25519.PublicKey(p[:]) }

// SecretKeyFromEd25519 builds a SecretKey from a standard library key,
// deriving the public half if the seed alone was provided.
func SecretKeyFromEd25519(sk ed25519.PrivateKey) (SecretKey, error) {
	var out SecretKey
	switch len(sk) {
	case ed25519.SeedSize:
		full := ed25519.NewKeyFromSeed(sk)
		copy(out[:], full)
	case ed25519.PrivateKeySize:
		copy(out[:], sk)
	default:
		return SecretKey{}, fmt.Errorf("paserk: invalid ed25519 key length %d", len(sk))
	}
	return out, nil
}

// EncodeLocal serializes a local key as k4.local.<b64url(body)>.
func EncodeLocal(k LocalKey) string {
	return localHeader + base64.RawURLEncoding.EncodeToString(k[:])
}

// DecodeLocal parses a k4.local string.
func DecodeLocal(s string) (LocalKey, error) {
	body, err := trimHeader(s, localHeader)
	if err != nil {
		return LocalKey{}, err
	}
	if len(body) != LocalKeySize {
		return LocalKey{}, common.FormatErr("paserk.decode_local", fmt.Errorf("invalid body length %d", len(body)))
	}
	var k LocalKey
	copy(k[:], body)
	return k, nil
}

// EncodeSecret serializes an Ed25519 private key as k4.secret.<b64url(seed||public)>.
func EncodeSecret(k SecretKey) string {
	return secretHeader + base64.RawURLEncoding.EncodeToString(k[:])
}

// DecodeSecret parses a k4.secret string.
func DecodeSecret(s string) (SecretKey, error) {
	body, err := trimHeader(s, secretHeader)
	if err != nil {
		return SecretKey{}, err
	}
	if len(body) != SecretKeySize {
		return SecretKey{}, common.FormatErr("paserk.decode_secret", fmt.Errorf("invalid body length %d", len(body)))
	}
	var k SecretKey
	copy(k[:], body)
	return k, nil
}

// EncodePublic serializes an Ed25519 public key as k4.public.<b64url(body)>.
func EncodePublic(k PublicKey) string {
	return publicHeader + base64.RawURLEncoding.EncodeToString(k[:])
}

// DecodePublic parses a k4.public string.
func DecodePublic(s string) (PublicKey, error) {
	body, err := trimHeader(s, publicHeader)
	if err != nil {
		return PublicKey{}, err
	}
	if len(body) != PublicKeySize {
		return PublicKey{}, common.FormatErr("paserk.decode_public", fmt.Errorf("invalid body length %d", len(body)))
	}
	var k PublicKey
	copy(k[:], body)
	return k, nil
}

// PublicFromSecret derives k4.public from a k4.secret string, matching the
// published PASERK derivation vector byte-for-byte.
func PublicFromSecret(s string) (string, error) {
	sk, err := DecodeSecret(s)
	if err != nil {
		return "", err
	}
	return EncodePublic(sk.Public()), nil
}

func trimHeader(s, header string) ([]byte, error) {
	if len(s) < len(header) || s[:len(header)] != header {
		return nil, common.FormatErr("paserk.decode", fmt.Errorf("missing %q prefix", header))
	}
	body, err := base64.RawURLEncoding.DecodeString(s[len(header):])
	if err != nil {
		return nil, common.FormatErr("paserk.decode", fmt.Errorf("invalid base64 body: %w", err))
	}
	return body, nil
}

// Dispose zeroes the key material in place.
func (k *LocalKey) Dispose()  { common.Zero(k[:]) }
func (k *SecretKey) Dispose() { common.Zero(k[:]) }
