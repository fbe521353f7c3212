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

// Package hash provides error-returning digests, HMAC and HKDF.
package hash

import (
	"context"

	"github.com/go-git/go-billy/v5"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/hash"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Hash)

var (
	hashSite = guard.Define(category.Hash, "hash.hash", sentinel.False())
	hashFile = guard.Define(category.Hash, "hash.hash_file", sentinel.False())
	hashHmac = guard.Define(category.Hash, "hash.hash_hmac", sentinel.False())
	hashHkdf = guard.Define(category.Hash, "hash.hash_hkdf", sentinel.False())
)

// Algos lists the supported algorithms.
func Algos() []string { return rt.Algos() }

// HmacAlgos lists the algorithms accepted by HashHmac and HashHkdf.
func HmacAlgos() []string { return rt.HmacAlgos() }

// Hash digests data with algo. The result is lowercase hex unless binary
// is set.
func Hash(ctx context.Context, algo string, data []byte, binary args.Opt[bool]) (string, error) {
	return guard.Invoke[string](ctx, hashSite, rt.Hash, []any{algo, data}, binary)
}

// HashFile digests the file name read from fs.
func HashFile(ctx context.Context, fs billy.Filesystem, algo, name string, binary args.Opt[bool]) (string, error) {
	r := &rt.Runtime{FS: fs}
	return guard.Invoke[string](ctx, hashFile, r.HashFile, []any{algo, name}, binary)
}

// HashHmac computes the HMAC of data under key.
func HashHmac(ctx context.Context, algo string, data, key []byte, binary args.Opt[bool]) (string, error) {
	return guard.Invoke[string](ctx, hashHmac, rt.HashHmac, []any{algo, data, key}, binary)
}

// HashHkdf derives length bytes from key. The result is raw binary.
func HashHkdf(ctx context.Context, algo string, key []byte, length args.Opt[int], info args.Opt[string], salt args.Opt[[]byte]) ([]byte, error) {
	s, err := guard.Invoke[string](ctx, hashHkdf, rt.HashHkdf, []any{algo, key}, length, info, salt)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
