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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Lid_DeterministicAndPrefixed(t *testing.T) {
	var k LocalKey
	for i := range k {
		k[i] = byte(i)
	}
	id1 := Lid(k)
	id2 := Lid(k)
	assert.Equal(t, id1, id2)
	assert.True(t, strings.HasPrefix(id1, lidHeader))

	k[0] ^= 0xFF
	id3 := Lid(k)
	assert.NotEqual(t, id1, id3)
}

func Test_Sid_DeterministicAndPrefixed(t *testing.T) {
	var k SecretKey
	for i := range k {
		k[i] = byte(i)
	}
	id1 := Sid(k)
	assert.Equal(t, id1, Sid(k))
	assert.True(t, strings.HasPrefix(id1, sidHeader))

	k[0] ^= 0xFF
	assert.NotEqual(t, id1, Sid(k))
}

func Test_Pid_DeterministicAndPrefixed(t *testing.T) {
	var k PublicKey
	for i := range k {
		k[i] = byte(i)
	}
	id1 := Pid(k)
	assert.Equal(t, id1, Pid(k))
	assert.True(t, strings.HasPrefix(id1, pidHeader))

	k[0] ^= 0xFF
	assert.NotEqual(t, id1, Pid(k))
}
