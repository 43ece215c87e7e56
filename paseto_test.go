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

package paseto_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.paseto.dev/paseto"
)

func Test_EncryptDecryptLocal_AllVersions(t *testing.T) {
	for _, version := range []paseto.Version{paseto.V2, paseto.V3, paseto.V4} {
		version := version
		t.Run(string(version), func(t *testing.T) {
			key, err := paseto.GenerateLocalKey(rand.Reader, version)
			require.NoError(t, err)

			var implicit []byte
			if version != paseto.V2 {
				implicit = []byte("implicit-assertion")
			}

			tok, err := paseto.EncryptLocal(rand.Reader, key, []byte("a secret message"), []byte("a footer"), implicit)
			require.NoError(t, err)

			got, err := paseto.DecryptLocal(key, tok, []byte("a footer"), implicit)
			require.NoError(t, err)
			assert.Equal(t, "a secret message", string(got))
		})
	}
}

func Test_DecryptLocal_RejectsCrossVersionToken(t *testing.T) {
	v4Key, err := paseto.GenerateLocalKey(rand.Reader, paseto.V4)
	require.NoError(t, err)
	tok, err := paseto.EncryptLocal(rand.Reader, v4Key, []byte("payload"), nil, nil)
	require.NoError(t, err)

	v3Key, err := paseto.GenerateLocalKey(rand.Reader, paseto.V3)
	require.NoError(t, err)

	_, err = paseto.DecryptLocal(v3Key, tok, nil, nil)
	require.Error(t, err)
	var pasetoErr *paseto.Error
	require.ErrorAs(t, err, &pasetoErr)
	assert.Equal(t, paseto.KindFormat, pasetoErr.Kind)
}

func Test_SignVerifyPublic_Ed25519Versions(t *testing.T) {
	for _, version := range []paseto.Version{paseto.V2, paseto.V4} {
		version := version
		t.Run(string(version), func(t *testing.T) {
			pub, priv, err := ed25519.GenerateKey(rand.Reader)
			require.NoError(t, err)

			sk, err := paseto.NewEd25519SecretKey(version, priv)
			require.NoError(t, err)
			pk, err := paseto.NewEd25519PublicKey(version, pub)
			require.NoError(t, err)

			var implicit []byte
			if version != paseto.V2 {
				implicit = []byte("assertion")
			}

			tok, err := paseto.SignPublic(sk, []byte("signed content"), []byte("footer"), implicit)
			require.NoError(t, err)

			got, err := paseto.VerifyPublic(pk, tok, []byte("footer"), implicit)
			require.NoError(t, err)
			assert.Equal(t, "signed content", string(got))
		})
	}
}

func Test_SignVerifyPublic_ECDSAv3(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	sk, err := paseto.NewECDSASecretKey(priv)
	require.NoError(t, err)
	pk, err := paseto.NewECDSAPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	tok, err := paseto.SignPublic(sk, []byte("v3 content"), nil, []byte("assertion"))
	require.NoError(t, err)

	got, err := paseto.VerifyPublic(pk, tok, nil, []byte("assertion"))
	require.NoError(t, err)
	assert.Equal(t, "v3 content", string(got))
}

func Test_VerifyPublic_RejectsCrossVersionToken(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sk, err := paseto.NewEd25519SecretKey(paseto.V4, priv)
	require.NoError(t, err)
	tok, err := paseto.SignPublic(sk, []byte("content"), nil, nil)
	require.NoError(t, err)

	pk, err := paseto.NewEd25519PublicKey(paseto.V2, pub)
	require.NoError(t, err)

	_, err = paseto.VerifyPublic(pk, tok, nil, nil)
	require.Error(t, err)
}

func Test_SecretKeyPublic_MatchesConstructedPublicKey(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sk, err := paseto.NewEd25519SecretKey(paseto.V4, priv)
	require.NoError(t, err)

	tok, err := paseto.SignPublic(sk, []byte("m"), nil, nil)
	require.NoError(t, err)

	_, err = paseto.VerifyPublic(sk.Public(), tok, nil, nil)
	require.NoError(t, err)

	otherPk, err := paseto.NewEd25519PublicKey(paseto.V4, pub)
	require.NoError(t, err)
	_, err = paseto.VerifyPublic(otherPk, tok, nil, nil)
	require.NoError(t, err)
}

func Test_LocalKeyDispose_ZeroesMaterial(t *testing.T) {
	key, err := paseto.GenerateLocalKey(rand.Reader, paseto.V4)
	require.NoError(t, err)
	tok, err := paseto.EncryptLocal(rand.Reader, key, []byte("before dispose"), nil, nil)
	require.NoError(t, err)
	_, err = paseto.DecryptLocal(key, tok, nil, nil)
	require.NoError(t, err)

	key.Dispose()

	_, err = paseto.DecryptLocal(key, tok, nil, nil)
	require.Error(t, err)
}
