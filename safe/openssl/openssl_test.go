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

package openssl

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/guard/args"
)

func TestRandomPseudoBytes(t *testing.T) {
	ctx := context.Background()
	b, err := OpensslRandomPseudoBytes(ctx, 24)
	require.NoError(t, err)
	require.Len(t, b, 24)

	_, err = OpensslRandomPseudoBytes(ctx, 0)
	require.EqualError(t, err, "openssl:openssl.openssl_random_pseudo_bytes: openssl_random_pseudo_bytes(): Argument #1 ($length) must be greater than 0")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ctx := context.Background()
	key := []byte("correct horse battery staple")
	iv := []byte("0123456789abcdef")
	for _, c := range []string{"aes-128-cbc", "aes-256-cbc", "aes-192-ctr", "AES-256-ECB"} {
		t.Run(c, func(t *testing.T) {
			n, err := OpensslCipherIVLength(ctx, c)
			require.NoError(t, err)

			var opt args.Opt[[]byte]
			if n > 0 {
				opt = args.Some(iv[:n])
			}
			enc, err := OpensslEncrypt(ctx, []byte("attack at dawn"), c, key, args.None[int](), opt)
			require.NoError(t, err)

			dec, err := OpensslDecrypt(ctx, []byte(enc), c, key, args.None[int](), opt)
			require.NoError(t, err)
			require.Equal(t, "attack at dawn", string(dec))
		})
	}
}

func TestKnownVector(t *testing.T) {
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	plain, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172a")
	out, err := OpensslEncrypt(context.Background(), plain, "aes-128-ecb", key,
		args.Some(RawData|ZeroPadding), args.None[[]byte]())
	require.NoError(t, err)
	require.Equal(t, "3ad77bb40d7a3660a89ecaf32466ef97", hex.EncodeToString([]byte(out)))
}

func TestEmptyIVWarningIsNotFailure(t *testing.T) {
	out, err := OpensslEncrypt(context.Background(), []byte("x"), "aes-128-cbc", []byte("k"), args.None[int](), args.None[[]byte]())
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestFailures(t *testing.T) {
	ctx := context.Background()
	none := args.None[int]()
	noIV := args.None[[]byte]()

	_, err := OpensslEncrypt(ctx, []byte("x"), "rot13", []byte("k"), none, noIV)
	require.EqualError(t, err, "openssl:openssl.openssl_encrypt: openssl_encrypt(): Unknown cipher algorithm")

	_, err = OpensslDecrypt(ctx, []byte("%%%"), "aes-128-cbc", []byte("k"), none, noIV)
	require.ErrorContains(t, err, "Failed to base64 decode the input")

	enc, err := OpensslEncrypt(ctx, []byte("secret"), "aes-128-cbc", []byte("k1"), none, args.Some([]byte("0123456789abcdef")))
	require.NoError(t, err)
	_, err = OpensslDecrypt(ctx, []byte(enc), "aes-128-cbc", []byte("another key"), none, args.Some([]byte("0123456789abcdef")))
	if err != nil {
		require.ErrorIs(t, err, Err)
		require.ErrorContains(t, err, "bad decrypt")
	}

	_, err = OpensslEncrypt(ctx, []byte("short"), "aes-128-cbc", []byte("k"), args.Some(ZeroPadding), noIV)
	require.ErrorContains(t, err, "data not multiple of block length")
}

func TestDigest(t *testing.T) {
	ctx := context.Background()
	d, err := OpensslDigest(ctx, []byte("abc"), "SHA256", args.None[bool]())
	require.NoError(t, err)
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", d)

	_, err = OpensslDigest(ctx, []byte("abc"), "md4", args.None[bool]())
	require.ErrorIs(t, err, Err)
}
