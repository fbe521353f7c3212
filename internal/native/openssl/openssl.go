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

// Package openssl is the native crypto runtime: symmetric ciphers,
// digests and random bytes.
package openssl

import (
	"bytes"
	"context"
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	_ "crypto/md5"
	"crypto/rand"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/diag"
	"dirpx.dev/guard/internal/native"
)

// Option flags for Encrypt and Decrypt.
const (
	RawData     = 1
	ZeroPadding = 2
)

type mode int

const (
	modeCBC mode = iota
	modeCTR
	modeECB
)

type cipherSpec struct {
	keyLen int
	mode   mode
}

var ciphers = map[string]cipherSpec{
	"aes-128-cbc": {16, modeCBC},
	"aes-192-cbc": {24, modeCBC},
	"aes-256-cbc": {32, modeCBC},
	"aes-128-ctr": {16, modeCTR},
	"aes-192-ctr": {24, modeCTR},
	"aes-256-ctr": {32, modeCTR},
	"aes-128-ecb": {16, modeECB},
	"aes-256-ecb": {32, modeECB},
}

var digests = map[string]crypto.Hash{
	"md5":    crypto.MD5,
	"sha1":   crypto.SHA1,
	"sha224": crypto.SHA224,
	"sha256": crypto.SHA256,
	"sha384": crypto.SHA384,
	"sha512": crypto.SHA512,
}

func (c cipherSpec) ivLen() int {
	if c.mode == modeECB {
		return 0
	}
	return aes.BlockSize
}

// OpensslRandomPseudoBytes returns length random bytes. argv: length.
func OpensslRandomPseudoBytes(ctx context.Context, argv ...any) any {
	const fn = "openssl_random_pseudo_bytes"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	n, err := native.Int(fn, argv, 0, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if n < 1 {
		return native.Fail(ctx, "%s(): Argument #1 ($length) must be greater than 0", fn)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return native.Fail(ctx, "%s(): Error reading from source device", fn)
	}
	return b
}

// OpensslCipherIVLength returns the IV length of a cipher. argv: cipher_algo.
func OpensslCipherIVLength(ctx context.Context, argv ...any) any {
	const fn = "openssl_cipher_iv_length"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	spec, ok := ciphers[strings.ToLower(name)]
	if !ok {
		return native.Fail(ctx, "%s(): Unknown cipher algorithm", fn)
	}
	return spec.ivLen()
}

// OpensslEncrypt encrypts data. The result is base64 unless RawData is set.
// argv: data, cipher_algo, passphrase, options=0, iv="".
func OpensslEncrypt(ctx context.Context, argv ...any) any {
	const fn = "openssl_encrypt"
	in, ok := parse(ctx, fn, argv)
	if !ok {
		return false
	}
	data := in.data
	if in.spec.mode != modeCTR {
		if in.options&ZeroPadding == 0 {
			data = pad(data)
		} else if len(data)%aes.BlockSize != 0 {
			return native.Fail(ctx, "%s(): data not multiple of block length", fn)
		}
	}
	out := make([]byte, len(data))
	switch in.spec.mode {
	case modeCBC:
		cipher.NewCBCEncrypter(in.block, in.iv).CryptBlocks(out, data)
	case modeCTR:
		cipher.NewCTR(in.block, in.iv).XORKeyStream(out, data)
	case modeECB:
		for i := 0; i < len(data); i += aes.BlockSize {
			in.block.Encrypt(out[i:], data[i:])
		}
	}
	if in.options&RawData != 0 {
		return string(out)
	}
	return base64.StdEncoding.EncodeToString(out)
}

// OpensslDecrypt reverses OpensslEncrypt.
// argv: data, cipher_algo, passphrase, options=0, iv="".
func OpensslDecrypt(ctx context.Context, argv ...any) any {
	const fn = "openssl_decrypt"
	in, ok := parse(ctx, fn, argv)
	if !ok {
		return false
	}
	data := in.data
	if in.options&RawData == 0 {
		dec, err := base64.StdEncoding.DecodeString(string(data))
		if err != nil {
			return native.Fail(ctx, "%s(): Failed to base64 decode the input", fn)
		}
		data = dec
	}
	if in.spec.mode != modeCTR && len(data)%aes.BlockSize != 0 {
		return native.Fail(ctx, "%s(): bad decrypt", fn)
	}
	out := make([]byte, len(data))
	switch in.spec.mode {
	case modeCBC:
		cipher.NewCBCDecrypter(in.block, in.iv).CryptBlocks(out, data)
	case modeCTR:
		cipher.NewCTR(in.block, in.iv).XORKeyStream(out, data)
	case modeECB:
		for i := 0; i < len(data); i += aes.BlockSize {
			in.block.Decrypt(out[i:], data[i:])
		}
	}
	if in.spec.mode != modeCTR && in.options&ZeroPadding == 0 {
		var ok bool
		if out, ok = unpad(out); !ok {
			return native.Fail(ctx, "%s(): bad decrypt", fn)
		}
	}
	return string(out)
}

// OpensslDigest digests data. argv: data, digest_algo, binary=false.
func OpensslDigest(ctx context.Context, argv ...any) any {
	const fn = "openssl_digest"
	if err := args.Check(fn, argv, 2, 3); err != nil {
		return native.Bad(ctx, err)
	}
	data, err := native.Bytes(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	binary, err := native.Bool(fn, argv, 2, false)
	if err != nil {
		return native.Bad(ctx, err)
	}
	h, ok := digests[strings.ToLower(name)]
	if !ok || !h.Available() {
		return native.Fail(ctx, "%s(): Unknown digest algorithm", fn)
	}
	d := h.New()
	d.Write(data)
	if binary {
		return string(d.Sum(nil))
	}
	return hex.EncodeToString(d.Sum(nil))
}

type cipherInput struct {
	data    []byte
	spec    cipherSpec
	block   cipher.Block
	iv      []byte
	options int
}

func parse(ctx context.Context, fn string, argv []any) (cipherInput, bool) {
	var in cipherInput
	if err := args.Check(fn, argv, 3, 5); err != nil {
		native.Bad(ctx, err)
		return in, false
	}
	data, err := native.Bytes(fn, argv, 0)
	if err != nil {
		native.Bad(ctx, err)
		return in, false
	}
	name, err := native.String(fn, argv, 1)
	if err != nil {
		native.Bad(ctx, err)
		return in, false
	}
	pass, err := native.Bytes(fn, argv, 2)
	if err != nil {
		native.Bad(ctx, err)
		return in, false
	}
	options, err := native.Int(fn, argv, 3, 0)
	if err != nil {
		native.Bad(ctx, err)
		return in, false
	}
	iv, err := native.Bytes(fn, argv, 4)
	if err != nil {
		native.Bad(ctx, err)
		return in, false
	}

	spec, ok := ciphers[strings.ToLower(name)]
	if !ok {
		native.Fail(ctx, "%s(): Unknown cipher algorithm", fn)
		return in, false
	}
	key := make([]byte, spec.keyLen)
	copy(key, pass)
	block, err := aes.NewCipher(key)
	if err != nil {
		native.Fail(ctx, "%s(): %v", fn, err)
		return in, false
	}

	want := spec.ivLen()
	switch {
	case want > 0 && len(iv) == 0:
		diag.Warnf(ctx, "%s(): Using an empty Initialization Vector (iv) is potentially insecure and not recommended", fn)
	case len(iv) < want:
		diag.Warnf(ctx, "%s(): IV passed is only %d bytes long, cipher expects an IV of precisely %d bytes, padding with \\0", fn, len(iv), want)
	case len(iv) > want:
		diag.Warnf(ctx, "%s(): IV passed is %d bytes long which is longer than the %d expected by selected cipher, truncating", fn, len(iv), want)
	}
	fixed := make([]byte, want)
	copy(fixed, iv)

	return cipherInput{data: data, spec: spec, block: block, iv: fixed, options: options}, true
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
