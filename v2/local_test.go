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
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Paseto_Local_EncryptDecrypt(t *testing.T) {
	var keyRaw [32]byte
	_, err := rand.Read(keyRaw[:])
	assert.NoError(t, err)
	key, err := LocalKeyFromSeed(keyRaw[:])
	assert.NoError(t, err)

	m := []byte(`{"data":"this is a secret message","exp":"2022-01-01T00:00:00+00:00"}`)
	f := []byte(`{"kid":"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN"}`)

	token1, err := Encrypt(rand.Reader, key, m, f)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(token1, LocalPrefix))

	token2, err := Encrypt(rand.Reader, key, m, f)
	assert.NoError(t, err)

	// Synthetic nonces draw fresh randomness per call, so two encryptions
	// of the same message never collide.
	assert.NotEqual(t, token1, token2)

	p, err := Decrypt(key, token1, f)
	assert.NoError(t, err)
	assert.Equal(t, m, p)

	p2, err := Decrypt(key, token2, f)
	assert.NoError(t, err)
	assert.Equal(t, m, p2)
}

func Test_Paseto_Local_NoFooter(t *testing.T) {
	var keyRaw [32]byte
	key, err := LocalKeyFromSeed(keyRaw[:])
	assert.NoError(t, err)

	m := []byte("hello world")
	token, err := Encrypt(rand.Reader, key, m, nil)
	assert.NoError(t, err)
	assert.False(t, strings.Contains(strings.TrimPrefix(token, LocalPrefix), "."))

	p, err := Decrypt(key, token, nil)
	assert.NoError(t, err)
	assert.Equal(t, m, p)
}

func Test_Paseto_Local_Tamper(t *testing.T) {
	var keyRaw [32]byte
	_, err := rand.Read(keyRaw[:])
	assert.NoError(t, err)
	key, err := LocalKeyFromSeed(keyRaw[:])
	assert.NoError(t, err)

	m := []byte("this is a secret message")
	f := []byte(`{"kid":"1234567890"}`)

	token, err := Encrypt(rand.Reader, key, m, f)
	assert.NoError(t, err)

	t.Run("flip first byte of body", func(t *testing.T) {
		raw := []byte(token)
		raw[len(LocalPrefix)] ^= 0x01
		_, err := Decrypt(key, string(raw), f)
		assert.Error(t, err)
	})

	t.Run("wrong footer", func(t *testing.T) {
		_, err := Decrypt(key, token, []byte("wrong"))
		assert.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		var otherRaw [32]byte
		_, err := rand.Read(otherRaw[:])
		assert.NoError(t, err)
		other, err := LocalKeyFromSeed(otherRaw[:])
		assert.NoError(t, err)
		_, err = Decrypt(other, token, f)
		assert.Error(t, err)
	})

	t.Run("cross version prefix", func(t *testing.T) {
		wrong := "v4.local." + strings.TrimPrefix(token, LocalPrefix)
		_, err := Decrypt(key, wrong, f)
		assert.Error(t, err)
	})
}

func Test_Paseto_Local_DeterministicNonceSeed(t *testing.T) {
	var keyRaw [32]byte
	key, err := LocalKeyFromSeed(keyRaw[:])
	assert.NoError(t, err)

	m := []byte("deterministic content")
	seed := bytes.Repeat([]byte{0x7a}, 24)

	token1, err := Encrypt(bytes.NewReader(seed), key, m, nil)
	assert.NoError(t, err)

	token2, err := Encrypt(bytes.NewReader(seed), key, m, nil)
	assert.NoError(t, err)

	assert.Equal(t, token1, token2)
}
