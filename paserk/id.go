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

	"golang.org/x/crypto/blake2b"
)

const idSize = 33

const (
	lidHeader = "k4.lid."
	sidHeader = "k4.sid."
	pidHeader = "k4.pid."
)

// identify hashes header||serialized with unkeyed BLAKE2b-33 and returns
// the wire-encoded identifier string.
func identify(header, serialized string) string {
	h, err := blake2b.New(idSize, nil)
	if err != nil {
		// idSize is a valid BLAKE2b output length (1..64); this cannot fail.
		panic(err)
	}
	h.Write([]byte(header))
	h.Write([]byte(serialized))
	return header + base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Lid returns the k4.lid identifier for a k4.local key.
func Lid(k LocalKey) string { return identify(lidHeader, EncodeLocal(k)) }

// Sid returns the k4.sid identifier for a k4.secret key.
func Sid(k SecretKey) string { return identify(sidHeader, EncodeSecret(k)) }

// Pid returns the k4.pid identifier for a k4.public key.
func Pid(k PublicKey) string { return identify(pidHeader, EncodePublic(k)) }
