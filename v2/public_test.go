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
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Paseto_Public_SignVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	assert.NoError(t, err)

	m := []byte(`{"data":"this is a signed message","exp":"2022-01-01T00:00:00+00:00"}`)
	f := []byte(`{"kid":"dYkISylxQeecEcHELfzF88UZrwbLolNiCdySi8CQpFZh"}`)

	token, err := Sign(m, priv, f)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, PublicPrefix))

	out, err := Verify(token, pub, f)
	assert.NoError(t, err)
	assert.Equal(t, m, out)
}

func Test_Paseto_Public_Tamper(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	assert.NoError(t, err)

	m := []byte("this is a signed message")
	f := []byte(`{"kid":"1234567890"}`)

	token, err := Sign(m, priv, f)
	assert.NoError(t, err)

	t.Run("flipped byte", func(t *testing.T) {
		raw := []byte(token)
		raw[len(PublicPrefix)] ^= 0x01
		_, err := Verify(string(raw), pub, f)
		assert.Error(t, err)
	})

	t.Run("wrong footer", func(t *testing.T) {
		_, err := Verify(token, pub, []byte("wrong"))
		assert.Error(t, err)
	})

	t.Run("wrong public key", func(t *testing.T) {
		other, _, err := ed25519.GenerateKey(nil)
		assert.NoError(t, err)
		_, err = Verify(token, other, f)
		assert.Error(t, err)
	})
}

func Test_Paseto_Public_InvalidKeySizes(t *testing.T) {
	_, err := Sign([]byte("m"), ed25519.PrivateKey(make([]byte, 10)), nil)
	assert.Error(t, err)

	_, err = Verify("v2.public.x", ed25519.PublicKey(make([]byte, 10)), nil)
	assert.Error(t, err)
}
