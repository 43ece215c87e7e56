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

package common

import (
	"encoding/hex"
	"reflect"
	"testing"

	"golang.org/x/crypto/blake2b"
)

func TestPreAuthenticationEncoding(t *testing.T) {
	type args struct {
		pieces [][]byte
	}
	tests := []struct {
		name    string
		args    args
		want    []byte
		wantErr bool
	}{
		{
			name: "empty",
			args: args{
				pieces: nil,
			},
			wantErr: false,
			want:    []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "one",
			args: args{
				pieces: [][]byte{
					[]byte("test"),
				},
			},
			wantErr: false,
			want: []byte{
				0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Count
				0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Length
				't', 'e', 's', 't',
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PreAuthenticationEncoding(tt.args.pieces...)
			if (err != nil) != tt.wantErr {
				t.Errorf("PreAuthenticationEncoding() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PreAuthenticationEncoding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSecureCompare(t *testing.T) {
	type args struct {
		given  []byte
		actual []byte
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "not equal, same size",
			args: args{
				given:  []byte{0x01},
				actual: []byte{0x02},
			},
			want: false,
		},
		{
			name: "not equal, different size",
			args: args{
				given:  []byte{0x01, 0x02},
				actual: []byte{0x02},
			},
			want: false,
		},
		{
			name: "equal, different size",
			args: args{
				given:  []byte{0x00},
				actual: []byte{},
			},
			want: false,
		},
		{
			name: "equal, same size",
			args: args{
				given:  []byte{0x01},
				actual: []byte{0x01},
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecureCompare(tt.args.given, tt.args.actual); got != tt.want {
				t.Errorf("SecureCompare() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestBlake2b512Vectors pins golang.org/x/crypto/blake2b against the RFC
// 7693 test vectors the v2 and v4 engines and the paserk package build on.
func TestBlake2b512Vectors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{
			name: "empty",
			in:   nil,
			want: "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419" +
				"d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be2ce",
		},
		{
			name: "abc",
			in:   []byte("abc"),
			want: "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d1" +
				"7d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := blake2b.Sum512(tt.in)
			got := hex.EncodeToString(sum[:])
			if got != tt.want {
				t.Errorf("blake2b.Sum512(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("Zero() left non-zero byte at index %d: %#x", i, v)
		}
	}
}
