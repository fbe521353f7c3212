/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hash

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"dirpx.dev/guard/args"
)

var text = args.None[bool]()

func TestHash(t *testing.T) {
	ctx := context.Background()

	sum, err := Hash(ctx, "sha256", []byte("abc"), text)
	require.NoError(t, err)
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	sum, err = Hash(ctx, "md5", []byte(""), text)
	require.NoError(t, err)
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", sum)

	sum, err = Hash(ctx, "crc32b", []byte("The quick brown fox jumped over the lazy dog."), text)
	require.NoError(t, err)
	require.Equal(t, "82a34642", sum)

	raw, err := Hash(ctx, "sha1", []byte("abc"), args.Some(true))
	require.NoError(t, err)
	require.Len(t, raw, 20)

	_, err = Hash(ctx, "whirlpool9", []byte("abc"), text)
	require.EqualError(t, err, "hash:hash.hash: hash(): Argument #1 ($algo) must be a valid hashing algorithm")
	require.ErrorIs(t, err, Err)
}

func TestHashFile(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "f", []byte("abc"), 0o644))

	sum, err := HashFile(ctx, fs, "sha256", "f", text)
	require.NoError(t, err)
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	_, err = HashFile(ctx, fs, "sha256", "missing", text)
	require.ErrorIs(t, err, Err)
	require.ErrorContains(t, err, "No such file or directory")
}

func TestHashHmac(t *testing.T) {
	ctx := context.Background()
	mac, err := HashHmac(ctx, "sha256", []byte("The quick brown fox jumps over the lazy dog"), []byte("key"), text)
	require.NoError(t, err)
	require.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", mac)

	_, err = HashHmac(ctx, "crc32b", []byte("x"), []byte("key"), text)
	require.EqualError(t, err, "hash:hash.hash_hmac: hash_hmac(): Argument #1 ($algo) must be a valid cryptographic hashing algorithm")
}

func TestHashHkdf(t *testing.T) {
	ctx := context.Background()

	// RFC 5869 test case 1.
	ikm, _ := hex.DecodeString("0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	salt, _ := hex.DecodeString("000102030405060708090a0b0c")
	info, _ := hex.DecodeString("f0f1f2f3f4f5f6f7f8f9")
	okm, err := HashHkdf(ctx, "sha256", ikm, args.Some(42), args.Some(string(info)), args.Some(salt))
	require.NoError(t, err)
	require.Equal(t, "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865", hex.EncodeToString(okm))

	okm, err = HashHkdf(ctx, "sha256", ikm, args.None[int](), args.None[string](), args.None[[]byte]())
	require.NoError(t, err)
	require.Len(t, okm, 32)

	_, err = HashHkdf(ctx, "sha256", nil, args.None[int](), args.None[string](), args.None[[]byte]())
	require.ErrorContains(t, err, "Argument #2 ($key) cannot be empty")

	_, err = HashHkdf(ctx, "sha256", ikm, args.Some(255*32+1), args.None[string](), args.None[[]byte]())
	require.ErrorContains(t, err, "must be less than or equal to 8160")
}

func TestAlgos(t *testing.T) {
	require.Contains(t, Algos(), "crc32b")
	require.NotContains(t, HmacAlgos(), "crc32b")
	require.Contains(t, HmacAlgos(), "sha512/256")
}
