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
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/curve25519"

	"go.paseto.dev/paseto/internal/common"
)

const (
	sealHeader = "k4.seal."

	sealTagSize       = 32
	sealEphemeralSize = 32
	sealKDFLength     = 56 // Ek (32) || nonce (24)

	// Domain separation constants for the seal KDF. PASERK's published
	// vectors do not pin these (see the seal open question in the design
	// notes); 0x01/0x02 keep them distinct from the PIE wrap (0x80/0x81)
	// and password wrap (0xFF/0xFE) domains.
	sealEncryptionDomain     = 0x01
	sealAuthenticationDomain = 0x02
)

// ed25519SeedToX25519Scalar converts an Ed25519 seed into the clamped
// X25519 scalar derived from it, per RFC 8032 §5.1.5.
func ed25519SeedToX25519Scalar(seed []byte) [32]byte {
	h := sha512.Sum512(seed)
	h[0] &= 248
	h[31] &= 127
	h[31] |= 64
	var out [32]byte
	copy(out[:], h[:32])
	return out
}

// ed25519PubToX25519 converts an Ed25519 public key to its Montgomery
// (X25519) form by decompressing the Edwards point.
func ed25519PubToX25519(pub ed25519.PublicKey) ([32]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return [32]byte{}, fmt.Errorf("invalid ed25519 public key: %w", err)
	}
	var out [32]byte
	copy(out[:], p.BytesMontgomery())
	return out, nil
}

func sealKDF(xk, ephemeralXPub, recipientXPub []byte) (ek, nonce, ak []byte, err error) {
	encKDF, err := blake2b.New(sealKDFLength, xk)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to initialize encryption kdf: %w", err)
	}
	encKDF.Write([]byte{sealEncryptionDomain})
	encKDF.Write(ephemeralXPub)
	encKDF.Write(recipientXPub)
	tmp := encKDF.Sum(nil)
	ek, nonce = tmp[:LocalKeySize], tmp[LocalKeySize:]

	authKDF, err := blake2b.New(LocalKeySize, xk)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to initialize authentication kdf: %w", err)
	}
	authKDF.Write([]byte{sealAuthenticationDomain})
	authKDF.Write(ephemeralXPub)
	authKDF.Write(recipientXPub)
	ak = authKDF.Sum(nil)

	return ek, nonce, ak, nil
}

func sealTag(ak []byte, ephemeralEdPub, c []byte) ([]byte, error) {
	mac, err := blake2b.New(sealTagSize, ak)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize tag kdf: %w", err)
	}
	mac.Write([]byte(sealHeader))
	mac.Write(ephemeralEdPub)
	mac.Write(c)
	return mac.Sum(nil), nil
}

// Seal wraps a local key for a single recipient: only the holder of the
// Ed25519 secret key matching recipient can recover it. A fresh ephemeral
// Ed25519 keypair is generated for every call and converted to X25519 to
// perform the key agreement, so repeated calls for the same target never
// produce the same k4.seal. string.
func Seal(r io.Reader, recipient PublicKey, target LocalKey) (string, error) {
	recipientXPub, err := ed25519PubToX25519(recipient.Ed25519())
	if err != nil {
		return "", common.ArgumentErr("paserk.seal", err)
	}

	ephPub, ephSeed, err := ed25519.GenerateKey(r)
	if err != nil {
		return "", common.InternalErr("paserk.seal", fmt.Errorf("unable to generate ephemeral keypair: %w", err))
	}
	ephScalar := ed25519SeedToX25519Scalar(ephSeed.Seed())

	ephXPub, err := curve25519.X25519(ephScalar[:], curve25519.Basepoint)
	if err != nil {
		return "", common.InternalErr("paserk.seal", fmt.Errorf("unable to derive ephemeral x25519 public key: %w", err))
	}

	xk, err := curve25519.X25519(ephScalar[:], recipientXPub[:])
	if err != nil {
		return "", common.InternalErr("paserk.seal", fmt.Errorf("unable to compute x25519 agreement: %w", err))
	}

	ek, nonce, ak, err := sealKDF(xk, ephXPub, recipientXPub[:])
	if err != nil {
		return "", common.InternalErr("paserk.seal", err)
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce)
	if err != nil {
		return "", common.InternalErr("paserk.seal", fmt.Errorf("unable to initialize XChaCha20 cipher: %w", err))
	}
	c := make([]byte, LocalKeySize)
	ciph.XORKeyStream(c, target[:])

	tag, err := sealTag(ak, ephPub, c)
	if err != nil {
		return "", common.InternalErr("paserk.seal", err)
	}

	body := make([]byte, 0, sealTagSize+sealEphemeralSize+LocalKeySize)
	body = append(body, tag...)
	body = append(body, ephPub...)
	body = append(body, c...)

	return sealHeader + base64.RawURLEncoding.EncodeToString(body), nil
}

// Unseal reverses Seal using the recipient's Ed25519 secret key.
func Unseal(s string, recipient SecretKey) (LocalKey, error) {
	body, err := trimHeader(s, sealHeader)
	if err != nil {
		return LocalKey{}, err
	}
	if len(body) != sealTagSize+sealEphemeralSize+LocalKeySize {
		return LocalKey{}, common.FormatErr("paserk.unseal", fmt.Errorf("invalid body length %d", len(body)))
	}

	tag := body[:sealTagSize]
	ephPub := body[sealTagSize : sealTagSize+sealEphemeralSize]
	c := body[sealTagSize+sealEphemeralSize:]

	ephXPub, err := ed25519PubToX25519(ed25519.PublicKey(ephPub))
	if err != nil {
		return LocalKey{}, common.FormatErr("paserk.unseal", err)
	}
	recipientXPub, err := ed25519PubToX25519(recipient.Public().Ed25519())
	if err != nil {
		return LocalKey{}, common.ArgumentErr("paserk.unseal", err)
	}
	recipientScalar := ed25519SeedToX25519Scalar(recipient.Seed())

	xk, err := curve25519.X25519(recipientScalar[:], ephXPub[:])
	if err != nil {
		return LocalKey{}, common.InternalErr("paserk.unseal", fmt.Errorf("unable to compute x25519 agreement: %w", err))
	}

	ek, nonce, ak, err := sealKDF(xk, ephXPub[:], recipientXPub[:])
	if err != nil {
		return LocalKey{}, common.InternalErr("paserk.unseal", err)
	}

	tag2, err := sealTag(ak, ephPub, c)
	if err != nil {
		return LocalKey{}, common.InternalErr("paserk.unseal", err)
	}
	if !common.SecureCompare(tag, tag2) {
		return LocalKey{}, common.AuthErr("paserk.unseal", fmt.Errorf("tag mismatch"))
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce)
	if err != nil {
		return LocalKey{}, common.InternalErr("paserk.unseal", fmt.Errorf("unable to initialize XChaCha20 cipher: %w", err))
	}
	var out LocalKey
	ciph.XORKeyStream(out[:], c)

	return out, nil
}
