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

package paserk

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"

	"go.paseto.dev/paseto/internal/common"
)

// PasswordParams controls the Argon2id cost of a password wrap. Memory is
// expressed in bytes, matching the wire-embedded field and the published
// PASERK vectors (libsodium's crypto_pwhash memlimit convention) rather
// than golang.org/x/crypto/argon2's KiB unit; pwWrap/pwUnwrap convert.
type PasswordParams struct {
	Memory      uint32 // bytes
	Time        uint32
	Parallelism uint32
}

// DefaultPasswordParams matches the published k4.local-pw / k4.secret-pw
// test vectors: 64 MiB memory, 2 passes, single-threaded.
func DefaultPasswordParams() PasswordParams {
	return PasswordParams{Memory: 64 * 1024 * 1024, Time: 2, Parallelism: 1}
}

const (
	pwSaltSize  = 16
	pwNonceSize = 24
	pwTagSize   = 32

	pwLocalHeader  = "k4.local-pw."
	pwSecretHeader = "k4.secret-pw."

	pwEncryptionDomain     = 0xFF
	pwAuthenticationDomain = 0xFE
)

func pwKDF(kp, nonce []byte) (ek, ak []byte, err error) {
	encKDF, err := blake2b.New(LocalKeySize, kp)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to initialize encryption kdf: %w", err)
	}
	encKDF.Write([]byte{pwEncryptionDomain})
	encKDF.Write(nonce)
	ek = encKDF.Sum(nil)

	authKDF, err := blake2b.New(LocalKeySize, kp)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to initialize authentication kdf: %w", err)
	}
	authKDF.Write([]byte{pwAuthenticationDomain})
	authKDF.Write(nonce)
	ak = authKDF.Sum(nil)

	return ek, ak, nil
}

func pwTag(ak []byte, header string, salt []byte, mem, t, p uint32, nonce, edk []byte) ([]byte, error) {
	mac, err := blake2b.New(pwTagSize, ak)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize tag kdf: %w", err)
	}
	mac.Write([]byte(header))
	mac.Write(salt)
	writeBE32(mac, mem)
	writeBE32(mac, t)
	writeBE32(mac, p)
	mac.Write(nonce)
	mac.Write(edk)
	return mac.Sum(nil), nil
}

func writeBE32(w io.Writer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.Write(b[:]) //nolint:errcheck // hash.Hash.Write never errors
}

// WrapLocalPassword wraps a k4.local target key under a password using
// Argon2id, producing a k4.local-pw. string.
func WrapLocalPassword(r io.Reader, password []byte, target LocalKey, params PasswordParams) (string, error) {
	return pwWrap(r, password, target[:], pwLocalHeader, params)
}

// UnwrapLocalPassword reverses WrapLocalPassword.
func UnwrapLocalPassword(s string, password []byte) (LocalKey, error) {
	raw, err := pwUnwrap(s, password, pwLocalHeader, LocalKeySize)
	if err != nil {
		return LocalKey{}, err
	}
	var out LocalKey
	copy(out[:], raw)
	return out, nil
}

// WrapSecretPassword wraps a k4.secret target key under a password,
// producing a k4.secret-pw. string.
func WrapSecretPassword(r io.Reader, password []byte, target SecretKey, params PasswordParams) (string, error) {
	return pwWrap(r, password, target[:], pwSecretHeader, params)
}

// UnwrapSecretPassword reverses WrapSecretPassword.
func UnwrapSecretPassword(s string, password []byte) (SecretKey, error) {
	raw, err := pwUnwrap(s, password, pwSecretHeader, SecretKeySize)
	if err != nil {
		return SecretKey{}, err
	}
	var out SecretKey
	copy(out[:], raw)
	return out, nil
}

func pwWrap(r io.Reader, password, target []byte, header string, params PasswordParams) (string, error) {
	if len(password) == 0 {
		return "", common.ArgumentErr("paserk.wrap_pw", fmt.Errorf("password must not be empty"))
	}

	var salt [pwSaltSize]byte
	if _, err := io.ReadFull(r, salt[:]); err != nil {
		return "", common.InternalErr("paserk.wrap_pw", fmt.Errorf("unable to generate random salt: %w", err))
	}
	var nonce [pwNonceSize]byte
	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return "", common.InternalErr("paserk.wrap_pw", fmt.Errorf("unable to generate random nonce: %w", err))
	}

	kp := argon2.IDKey(password, salt[:], params.Time, params.Memory/1024, uint8(params.Parallelism), LocalKeySize)
	ek, ak, err := pwKDF(kp, nonce[:])
	if err != nil {
		return "", common.InternalErr("paserk.wrap_pw", err)
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce[:])
	if err != nil {
		return "", common.InternalErr("paserk.wrap_pw", fmt.Errorf("unable to initialize XChaCha20 cipher: %w", err))
	}
	edk := make([]byte, len(target))
	ciph.XORKeyStream(edk, target)

	tag, err := pwTag(ak, header, salt[:], params.Memory, params.Time, params.Parallelism, nonce[:], edk)
	if err != nil {
		return "", common.InternalErr("paserk.wrap_pw", err)
	}

	body := make([]byte, 0, pwSaltSize+12+pwNonceSize+len(edk)+pwTagSize)
	body = append(body, salt[:]...)
	body = appendBE32(body, params.Memory)
	body = appendBE32(body, params.Time)
	body = appendBE32(body, params.Parallelism)
	body = append(body, nonce[:]...)
	body = append(body, edk...)
	body = append(body, tag...)

	return header + base64.RawURLEncoding.EncodeToString(body), nil
}

func pwUnwrap(s string, password []byte, header string, targetSize int) ([]byte, error) {
	if len(password) == 0 {
		return nil, common.ArgumentErr("paserk.unwrap_pw", fmt.Errorf("password must not be empty"))
	}

	body, err := trimHeader(s, header)
	if err != nil {
		return nil, err
	}
	wantLen := pwSaltSize + 12 + pwNonceSize + targetSize + pwTagSize
	if len(body) != wantLen {
		return nil, common.FormatErr("paserk.unwrap_pw", fmt.Errorf("invalid body length %d", len(body)))
	}

	salt := body[:pwSaltSize]
	off := pwSaltSize
	mem := binary.BigEndian.Uint32(body[off:])
	off += 4
	t := binary.BigEndian.Uint32(body[off:])
	off += 4
	p := binary.BigEndian.Uint32(body[off:])
	off += 4
	nonce := body[off : off+pwNonceSize]
	off += pwNonceSize
	edk := body[off : off+targetSize]
	off += targetSize
	tag := body[off:]

	kp := argon2.IDKey(password, salt, t, mem/1024, uint8(p), LocalKeySize)
	ek, ak, err := pwKDF(kp, nonce)
	if err != nil {
		return nil, common.InternalErr("paserk.unwrap_pw", err)
	}

	tag2, err := pwTag(ak, header, salt, mem, t, p, nonce, edk)
	if err != nil {
		return nil, common.InternalErr("paserk.unwrap_pw", err)
	}
	if !common.SecureCompare(tag, tag2) {
		return nil, common.AuthErr("paserk.unwrap_pw", fmt.Errorf("tag mismatch"))
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce)
	if err != nil {
		return nil, common.InternalErr("paserk.unwrap_pw", fmt.Errorf("unable to initialize XChaCha20 cipher: %w", err))
	}
	out := make([]byte, len(edk))
	ciph.XORKeyStream(out, edk)

	return out, nil
}

func appendBE32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}
