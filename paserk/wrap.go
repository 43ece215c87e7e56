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
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"

	"go.paseto.dev/paseto/internal/common"
)

const (
	wrapNonceSize    = 32
	wrapTagSize      = 32
	wrapKDFLength    = 56 // Ek (32) || n2 (24)
	wrapLocalHeader  = "k4.local-wrap.pie."
	wrapSecretHeader = "k4.secret-wrap.pie."

	pieEncryptionDomain     = 0x80
	pieAuthenticationDomain = 0x81
)

// pieKDF derives Ek, n2 and Ak from the wrapping key and a fresh nonce,
// following the same domain-separated BLAKE2b construction as the v4
// token engine.
func pieKDF(kw *LocalKey, n []byte) (ek, n2, ak []byte, err error) {
	encKDF, err := blake2b.New(wrapKDFLength, kw[:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to initialize encryption kdf: %w", err)
	}
	encKDF.Write([]byte{pieEncryptionDomain})
	encKDF.Write(n)
	tmp := encKDF.Sum(nil)
	ek, n2 = tmp[:LocalKeySize], tmp[LocalKeySize:]

	authKDF, err := blake2b.New(LocalKeySize, kw[:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to initialize authentication kdf: %w", err)
	}
	authKDF.Write([]byte{pieAuthenticationDomain})
	authKDF.Write(n)
	ak = authKDF.Sum(nil)

	return ek, n2, ak, nil
}

func pieTag(ak []byte, header string, n, c []byte) ([]byte, error) {
	mac, err := blake2b.New(wrapTagSize, ak)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize tag kdf: %w", err)
	}
	mac.Write([]byte(header))
	mac.Write(n)
	mac.Write(c)
	return mac.Sum(nil), nil
}

// WrapLocal wraps a k4.local target key under a wrapping key using the
// PIE construction, producing a k4.local-wrap.pie. string.
func WrapLocal(r io.Reader, wrapper *LocalKey, target LocalKey) (string, error) {
	body, err := pieWrap(r, wrapper, target[:], wrapLocalHeader)
	if err != nil {
		return "", err
	}
	return body, nil
}

// UnwrapLocal reverses WrapLocal.
func UnwrapLocal(s string, wrapper *LocalKey) (LocalKey, error) {
	raw, err := pieUnwrap(s, wrapper, wrapLocalHeader, LocalKeySize)
	if err != nil {
		return LocalKey{}, err
	}
	var out LocalKey
	copy(out[:], raw)
	return out, nil
}

// WrapSecret wraps a k4.secret target key under a wrapping key using the
// PIE construction, producing a k4.secret-wrap.pie. string.
func WrapSecret(r io.Reader, wrapper *LocalKey, target SecretKey) (string, error) {
	return pieWrap(r, wrapper, target[:], wrapSecretHeader)
}

// UnwrapSecret reverses WrapSecret.
func UnwrapSecret(s string, wrapper *LocalKey) (SecretKey, error) {
	raw, err := pieUnwrap(s, wrapper, wrapSecretHeader, SecretKeySize)
	if err != nil {
		return SecretKey{}, err
	}
	var out SecretKey
	copy(out[:], raw)
	return out, nil
}

func pieWrap(r io.Reader, wrapper *LocalKey, target []byte, header string) (string, error) {
	if wrapper == nil {
		return "", common.ArgumentErr("paserk.wrap_pie", fmt.Errorf("wrapper key is nil"))
	}

	var n [wrapNonceSize]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return "", common.InternalErr("paserk.wrap_pie", fmt.Errorf("unable to generate random nonce: %w", err))
	}

	ek, n2, ak, err := pieKDF(wrapper, n[:])
	if err != nil {
		return "", common.InternalErr("paserk.wrap_pie", err)
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return "", common.InternalErr("paserk.wrap_pie", fmt.Errorf("unable to initialize XChaCha20 cipher: %w", err))
	}
	c := make([]byte, len(target))
	ciph.XORKeyStream(c, target)

	t, err := pieTag(ak, header, n[:], c)
	if err != nil {
		return "", common.InternalErr("paserk.wrap_pie", err)
	}

	body := make([]byte, 0, wrapTagSize+wrapNonceSize+len(c))
	body = append(body, t...)
	body = append(body, n[:]...)
	body = append(body, c...)

	return header + base64.RawURLEncoding.EncodeToString(body), nil
}

func pieUnwrap(s string, wrapper *LocalKey, header string, targetSize int) ([]byte, error) {
	if wrapper == nil {
		return nil, common.ArgumentErr("paserk.unwrap_pie", fmt.Errorf("wrapper key is nil"))
	}

	body, err := trimHeader(s, header)
	if err != nil {
		return nil, err
	}
	if len(body) != wrapTagSize+wrapNonceSize+targetSize {
		return nil, common.FormatErr("paserk.unwrap_pie", fmt.Errorf("invalid body length %d", len(body)))
	}

	t := body[:wrapTagSize]
	n := body[wrapTagSize : wrapTagSize+wrapNonceSize]
	c := body[wrapTagSize+wrapNonceSize:]

	_, n2, ak, err := pieKDF(wrapper, n)
	if err != nil {
		return nil, common.InternalErr("paserk.unwrap_pie", err)
	}

	t2, err := pieTag(ak, header, n, c)
	if err != nil {
		return nil, common.InternalErr("paserk.unwrap_pie", err)
	}
	if !common.SecureCompare(t, t2) {
		return nil, common.AuthErr("paserk.unwrap_pie", fmt.Errorf("tag mismatch"))
	}

	ek, _, _, err := pieKDF(wrapper, n)
	if err != nil {
		return nil, common.InternalErr("paserk.unwrap_pie", err)
	}
	ciph, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return nil, common.InternalErr("paserk.unwrap_pie", fmt.Errorf("unable to initialize XChaCha20 cipher: %w", err))
	}
	out := make([]byte, len(c))
	ciph.XORKeyStream(out, c)

	return out, nil
}
