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

// Package openssl provides error-returning symmetric encryption, digests
// and random bytes.
package openssl

import (
	"context"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/openssl"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Openssl)

// Options for OpensslEncrypt and OpensslDecrypt.
const (
	RawData     = rt.RawData
	ZeroPadding = rt.ZeroPadding
)

var (
	randomPseudoBytes = guard.Define(category.Openssl, "openssl.openssl_random_pseudo_bytes", sentinel.False())
	cipherIVLength    = guard.Define(category.Openssl, "openssl.openssl_cipher_iv_length", sentinel.False())
	encrypt           = guard.Define(category.Openssl, "openssl.openssl_encrypt", sentinel.False())
	decrypt           = guard.Define(category.Openssl, "openssl.openssl_decrypt", sentinel.False())
	digest            = guard.Define(category.Openssl, "openssl.openssl_digest", sentinel.False())
)

// OpensslRandomPseudoBytes returns length cryptographically secure bytes.
func OpensslRandomPseudoBytes(ctx context.Context, length int) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, randomPseudoBytes, rt.OpensslRandomPseudoBytes, []any{length})
}

// OpensslCipherIVLength returns the IV length cipher expects.
func OpensslCipherIVLength(ctx context.Context, cipher string) (int, error) {
	return guard.Invoke[int](ctx, cipherIVLength, rt.OpensslCipherIVLength, []any{cipher})
}

// OpensslEncrypt encrypts data with cipher. The passphrase is zero-padded
// or truncated to the key size. Without RawData the result is base64.
func OpensslEncrypt(ctx context.Context, data []byte, cipher string, passphrase []byte, options args.Opt[int], iv args.Opt[[]byte]) (string, error) {
	return guard.Invoke[string](ctx, encrypt, rt.OpensslEncrypt, []any{data, cipher, passphrase}, options, iv)
}

// OpensslDecrypt reverses OpensslEncrypt.
func OpensslDecrypt(ctx context.Context, data []byte, cipher string, passphrase []byte, options args.Opt[int], iv args.Opt[[]byte]) ([]byte, error) {
	s, err := guard.Invoke[string](ctx, decrypt, rt.OpensslDecrypt, []any{data, cipher, passphrase}, options, iv)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// OpensslDigest digests data with algo, hex encoded unless binary is set.
func OpensslDigest(ctx context.Context, data []byte, algo string, binary args.Opt[bool]) (string, error) {
	return guard.Invoke[string](ctx, digest, rt.OpensslDigest, []any{data, algo}, binary)
}
