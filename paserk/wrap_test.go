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
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomLocalKey(t *testing.T) LocalKey {
	t.Helper()
	var k LocalKey
	_, err := rand.Read(k[:])
	require.NoError(t, err)
	return k
}

func Test_WrapUnwrapLocal_RoundTrip(t *testing.T) {
	wrapper := randomLocalKey(t)
	target := randomLocalKey(t)

	s, err := WrapLocal(rand.Reader, &wrapper, target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, wrapLocalHeader))

	got, err := UnwrapLocal(s, &wrapper)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func Test_WrapUnwrapLocal_FreshNonceEachCall(t *testing.T) {
	wrapper := randomLocalKey(t)
	target := randomLocalKey(t)

	s1, err := WrapLocal(rand.Reader, &wrapper, target)
	require.NoError(t, err)
	s2, err := WrapLocal(rand.Reader, &wrapper, target)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}

func Test_UnwrapLocal_WrongWrapperFails(t *testing.T) {
	wrapper := randomLocalKey(t)
	wrongWrapper := randomLocalKey(t)
	target := randomLocalKey(t)

	s, err := WrapLocal(rand.Reader, &wrapper, target)
	require.NoError(t, err)

	_, err = UnwrapLocal(s, &wrongWrapper)
	require.Error(t, err)
}

func Test_UnwrapLocal_TamperedBodyFails(t *testing.T) {
	wrapper := randomLocalKey(t)
	target := randomLocalKey(t)

	s, err := WrapLocal(rand.Reader, &wrapper, target)
	require.NoError(t, err)

	tampered := []byte(s)
	tampered[len(tampered)-1] ^= 0x01
	_, err = UnwrapLocal(string(tampered), &wrapper)
	require.Error(t, err)
}

func Test_WrapUnwrapSecret_RoundTrip(t *testing.T) {
	wrapper := randomLocalKey(t)
	var target SecretKey
	_, err := rand.Read(target[:])
	require.NoError(t, err)

	s, err := WrapSecret(rand.Reader, &wrapper, target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, wrapSecretHeader))

	got, err := UnwrapSecret(s, &wrapper)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func Test_WrapLocal_NilWrapperFails(t *testing.T) {
	target := randomLocalKey(t)
	_, err := WrapLocal(rand.Reader, nil, target)
	require.Error(t, err)
}
