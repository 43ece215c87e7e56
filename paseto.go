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

package paseto

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"fmt"
	"io"

	"go.paseto.dev/paseto/internal/common"
	"go.paseto.dev/paseto/paserk"
	"go.paseto.dev/paseto/token"
	"go.paseto.dev/paseto/v2"
	"go.paseto.dev/paseto/v3"
	"go.paseto.dev/paseto/v4"
)

// Version re-exports the token package's version tag so callers never need
// to import token directly for the common case.
type Version = token.Version

const (
	V2 = token.V2
	V3 = token.V3
	V4 = token.V4
)

// LocalKey is a version-tagged symmetric key. Exactly one of the version
// fields is populated, selected by Version.
type LocalKey struct {
	Version Version

	v2 *v2.LocalKey
	v3 *v3.LocalKey
	v4 *v4.LocalKey
}

// GenerateLocalKey creates a fresh symmetric key for the given version.
func GenerateLocalKey(r io.Reader, version Version) (*LocalKey, error) {
	switch version {
	case V2:
		k, err := v2.GenerateLocalKey(r)
		if err != nil {
			return nil, internalErr("paseto.generate_local_key", err)
		}
		return &LocalKey{Version: V2, v2: k}, nil
	case V3:
		k, err := v3.GenerateLocalKey(r)
		if err != nil {
			return nil, internalErr("paseto.generate_local_key", err)
		}
		return &LocalKey{Version: V3, v3: k}, nil
	case V4:
		k, err := v4.GenerateLocalKey(r)
		if err != nil {
			return nil, internalErr("paseto.generate_local_key", err)
		}
		return &LocalKey{Version: V4, v4: k}, nil
	default:
		return nil, argumentErr("paseto.generate_local_key", fmt.Errorf("unsupported version %q", version))
	}
}

// NewLocalKey builds a version-tagged symmetric key from raw bytes. Every
// local key is 32 bytes regardless of which PASETO version uses it.
func NewLocalKey(version Version, b []byte) (*LocalKey, error) {
	if len(b) != v4.KeyLength {
		return nil, argumentErr("paseto.new_local_key", fmt.Errorf("invalid local key length %d", len(b)))
	}
	switch version {
	case V2:
		var k v2.LocalKey
		copy(k[:], b)
		return &LocalKey{Version: V2, v2: &k}, nil
	case V3:
		var k v3.LocalKey
		copy(k[:], b)
		return &LocalKey{Version: V3, v3: &k}, nil
	case V4:
		var k v4.LocalKey
		copy(k[:], b)
		return &LocalKey{Version: V4, v4: &k}, nil
	default:
		return nil, argumentErr("paseto.new_local_key", fmt.Errorf("unsupported version %q", version))
	}
}

// Dispose zeroes the key material in place.
func (k *LocalKey) Dispose() {
	if k == nil {
		return
	}
	switch k.Version {
	case V2:
		if k.v2 != nil {
			common.Zero(k.v2[:])
		}
	case V3:
		if k.v3 != nil {
			common.Zero(k.v3[:])
		}
	case V4:
		if k.v4 != nil {
			common.Zero(k.v4[:])
		}
	}
}

// SecretKey is a version-tagged signing key. v2 and v4 share the Ed25519
// primitive; v3 uses ECDSA P-384.
type SecretKey struct {
	Version Version

	v2or4 ed25519.PrivateKey
	v3    *ecdsa.PrivateKey
}

// NewEd25519SecretKey builds a v2 or v4 signing key from a standard library
// Ed25519 private key. version must be V2 or V4.
func NewEd25519SecretKey(version Version, sk ed25519.PrivateKey) (*SecretKey, error) {
	if version != V2 && version != V4 {
		return nil, argumentErr("paseto.new_secret_key", fmt.Errorf("ed25519 keys are only valid for v2 or v4, got %q", version))
	}
	if len(sk) != ed25519.PrivateKeySize {
		return nil, argumentErr("paseto.new_secret_key", fmt.Errorf("invalid ed25519 key length %d", len(sk)))
	}
	return &SecretKey{Version: version, v2or4: sk}, nil
}

// NewECDSASecretKey builds a v3 signing key from a standard library P-384 key.
func NewECDSASecretKey(sk *ecdsa.PrivateKey) (*SecretKey, error) {
	if sk == nil {
		return nil, argumentErr("paseto.new_secret_key", fmt.Errorf("key is nil"))
	}
	return &SecretKey{Version: V3, v3: sk}, nil
}

// PublicKey is a version-tagged verification key, paired with SecretKey.
type PublicKey struct {
	Version Version

	v2or4 ed25519.PublicKey
	v3    *ecdsa.PublicKey
}

// Public derives the verification key matching this signing key.
func (sk *SecretKey) Public() *PublicKey {
	switch sk.Version {
	case V3:
		return &PublicKey{Version: V3, v3: &sk.v3.PublicKey}
	default:
		pub := sk.v2or4.Public().(ed25519.PublicKey)
		return &PublicKey{Version: sk.Version, v2or4: pub}
	}
}

// NewEd25519PublicKey builds a v2 or v4 verification key.
func NewEd25519PublicKey(version Version, pk ed25519.PublicKey) (*PublicKey, error) {
	if version != V2 && version != V4 {
		return nil, argumentErr("paseto.new_public_key", fmt.Errorf("ed25519 keys are only valid for v2 or v4, got %q", version))
	}
	if len(pk) != ed25519.PublicKeySize {
		return nil, argumentErr("paseto.new_public_key", fmt.Errorf("invalid ed25519 key length %d", len(pk)))
	}
	return &PublicKey{Version: version, v2or4: pk}, nil
}

// NewECDSAPublicKey builds a v3 verification key.
func NewECDSAPublicKey(pk *ecdsa.PublicKey) (*PublicKey, error) {
	if pk == nil {
		return nil, argumentErr("paseto.new_public_key", fmt.Errorf("key is nil"))
	}
	return &PublicKey{Version: V3, v3: pk}, nil
}

// EncryptLocal encrypts content into a local token under key, binding footer
// (carried unencrypted) and implicit (never transmitted). v2 has no implicit
// assertion slot; passing a non-empty implicit for a v2 key is an argument
// error rather than a silently-ignored one.
func EncryptLocal(r io.Reader, key *LocalKey, content, footer, implicit []byte) (string, error) {
	if key == nil {
		return "", argumentErr("paseto.encrypt_local", fmt.Errorf("key is nil"))
	}
	switch key.Version {
	case V2:
		if len(implicit) > 0 {
			return "", argumentErr("paseto.encrypt_local", fmt.Errorf("v2 does not support implicit assertions"))
		}
		return v2.Encrypt(r, key.v2, content, footer)
	case V3:
		return v3.Encrypt(r, key.v3, content, footer, implicit)
	case V4:
		return v4.Encrypt(r, key.v4, content, footer, implicit)
	default:
		return "", argumentErr("paseto.encrypt_local", fmt.Errorf("unsupported version %q", key.Version))
	}
}

// DecryptLocal parses tok, confirms it is a local token of exactly key's
// version, and decrypts it. A v3.local token can never be decrypted as
// v4.local: the version check below runs before any version engine sees the
// token bytes.
func DecryptLocal(key *LocalKey, tok string, footer, implicit []byte) ([]byte, error) {
	if key == nil {
		return nil, argumentErr("paseto.decrypt_local", fmt.Errorf("key is nil"))
	}
	parsed, err := token.Parse(tok)
	if err != nil {
		return nil, err
	}
	if parsed.Header.Purpose != token.Local {
		return nil, formatErr("paseto.decrypt_local", fmt.Errorf("not a local token"))
	}
	if parsed.Header.Version != key.Version {
		return nil, formatErr("paseto.decrypt_local", fmt.Errorf("token version %s does not match key version %s", parsed.Header.Version, key.Version))
	}

	switch key.Version {
	case V2:
		if len(implicit) > 0 {
			return nil, argumentErr("paseto.decrypt_local", fmt.Errorf("v2 does not support implicit assertions"))
		}
		return v2.Decrypt(key.v2, tok, footer)
	case V3:
		return v3.Decrypt(key.v3, tok, footer, implicit)
	case V4:
		return v4.Decrypt(key.v4, tok, footer, implicit)
	default:
		return nil, argumentErr("paseto.decrypt_local", fmt.Errorf("unsupported version %q", key.Version))
	}
}

// SignPublic signs content into a public token under sk.
func SignPublic(sk *SecretKey, content, footer, implicit []byte) (string, error) {
	if sk == nil {
		return "", argumentErr("paseto.sign_public", fmt.Errorf("key is nil"))
	}
	switch sk.Version {
	case V2:
		if len(implicit) > 0 {
			return "", argumentErr("paseto.sign_public", fmt.Errorf("v2 does not support implicit assertions"))
		}
		return v2.Sign(content, sk.v2or4, footer)
	case V3:
		return v3.Sign(content, sk.v3, footer, implicit)
	case V4:
		return v4.Sign(content, sk.v2or4, footer, implicit)
	default:
		return "", argumentErr("paseto.sign_public", fmt.Errorf("unsupported version %q", sk.Version))
	}
}

// VerifyPublic parses tok, confirms it is a public token of exactly pk's
// version, and verifies it.
func VerifyPublic(pk *PublicKey, tok string, footer, implicit []byte) ([]byte, error) {
	if pk == nil {
		return nil, argumentErr("paseto.verify_public", fmt.Errorf("key is nil"))
	}
	parsed, err := token.Parse(tok)
	if err != nil {
		return nil, err
	}
	if parsed.Header.Purpose != token.Public {
		return nil, formatErr("paseto.verify_public", fmt.Errorf("not a public token"))
	}
	if parsed.Header.Version != pk.Version {
		return nil, formatErr("paseto.verify_public", fmt.Errorf("token version %s does not match key version %s", parsed.Header.Version, pk.Version))
	}

	switch pk.Version {
	case V2:
		if len(implicit) > 0 {
			return nil, argumentErr("paseto.verify_public", fmt.Errorf("v2 does not support implicit assertions"))
		}
		return v2.Verify(tok, pk.v2or4, footer)
	case V3:
		return v3.Verify(tok, pk.v3, footer, implicit)
	case V4:
		return v4.Verify(tok, pk.v2or4, footer, implicit)
	default:
		return nil, argumentErr("paseto.verify_public", fmt.Errorf("unsupported version %q", pk.Version))
	}
}

// The remaining operations are thin pass-throughs to package paserk: the
// cross-version-confusion risk that justifies a facade for encrypt/decrypt
// and sign/verify does not apply here, since every PASERK wire form is
// already self-tagged (k4.local., k4.secret-wrap.pie., ...) and paserk's
// decoders reject a mismatched prefix outright.

// ParserkEncodeLocal serializes a local key as k4.local.
func ParserkEncodeLocal(k paserk.LocalKey) string { return paserk.EncodeLocal(k) }

// ParserkDecodeLocal parses a k4.local string.
func ParserkDecodeLocal(s string) (paserk.LocalKey, error) { return paserk.DecodeLocal(s) }

// ParserkEncodeSecret serializes an Ed25519 private key as k4.secret.
func ParserkEncodeSecret(k paserk.SecretKey) string { return paserk.EncodeSecret(k) }

// ParserkDecodeSecret parses a k4.secret string.
func ParserkDecodeSecret(s string) (paserk.SecretKey, error) { return paserk.DecodeSecret(s) }

// ParserkEncodePublic serializes an Ed25519 public key as k4.public.
func ParserkEncodePublic(k paserk.PublicKey) string { return paserk.EncodePublic(k) }

// ParserkDecodePublic parses a k4.public string.
func ParserkDecodePublic(s string) (paserk.PublicKey, error) { return paserk.DecodePublic(s) }

// WrapPIE wraps a target key under wrapper using the PASERK PIE construction.
func WrapPIE(r io.Reader, wrapper *paserk.LocalKey, target paserk.LocalKey) (string, error) {
	return paserk.WrapLocal(r, wrapper, target)
}

// UnwrapPIE reverses WrapPIE.
func UnwrapPIE(s string, wrapper *paserk.LocalKey) (paserk.LocalKey, error) {
	return paserk.UnwrapLocal(s, wrapper)
}

// WrapSecretPIE wraps an Ed25519 secret key under wrapper.
func WrapSecretPIE(r io.Reader, wrapper *paserk.LocalKey, target paserk.SecretKey) (string, error) {
	return paserk.WrapSecret(r, wrapper, target)
}

// UnwrapSecretPIE reverses WrapSecretPIE.
func UnwrapSecretPIE(s string, wrapper *paserk.LocalKey) (paserk.SecretKey, error) {
	return paserk.UnwrapSecret(s, wrapper)
}

// WrapPassword wraps a target key under a password using Argon2id.
func WrapPassword(r io.Reader, password []byte, target paserk.LocalKey, params paserk.PasswordParams) (string, error) {
	return paserk.WrapLocalPassword(r, password, target, params)
}

// UnwrapPassword reverses WrapPassword.
func UnwrapPassword(s string, password []byte) (paserk.LocalKey, error) {
	return paserk.UnwrapLocalPassword(s, password)
}

// Seal wraps a local key for a single recipient's Ed25519 public key.
func Seal(r io.Reader, recipient paserk.PublicKey, target paserk.LocalKey) (string, error) {
	return paserk.Seal(r, recipient, target)
}

// Unseal reverses Seal using the recipient's Ed25519 secret key.
func Unseal(s string, recipient paserk.SecretKey) (paserk.LocalKey, error) {
	return paserk.Unseal(s, recipient)
}
