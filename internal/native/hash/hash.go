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

// Package hash is the native digest runtime: message digests, HMAC and HKDF.
package hash

import (
	"context"
	"crypto/hkdf"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	stdhash "hash"
	"hash/adler32"
	"hash/crc32"
	"hash/fnv"
	"io"
	"sort"

	"github.com/go-git/go-billy/v5"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

type algorithm struct {
	new    func() stdhash.Hash
	crypto bool
}

var algorithms = map[string]algorithm{
	"md5":        {md5.New, true},
	"sha1":       {sha1.New, true},
	"sha224":     {sha256.New224, true},
	"sha256":     {sha256.New, true},
	"sha384":     {sha512.New384, true},
	"sha512/224": {sha512.New512_224, true},
	"sha512/256": {sha512.New512_256, true},
	"sha512":     {sha512.New, true},
	"adler32":    {func() stdhash.Hash { return adler32.New() }, false},
	"crc32b":     {func() stdhash.Hash { return crc32.NewIEEE() }, false},
	"crc32c":     {func() stdhash.Hash { return crc32.New(crc32.MakeTable(crc32.Castagnoli)) }, false},
	"fnv132":     {func() stdhash.Hash { return fnv.New32() }, false},
	"fnv1a32":    {func() stdhash.Hash { return fnv.New32a() }, false},
	"fnv164":     {func() stdhash.Hash { return fnv.New64() }, false},
	"fnv1a64":    {func() stdhash.Hash { return fnv.New64a() }, false},
}

// Algos returns the supported algorithm names in order.
func Algos() []string {
	out := make([]string, 0, len(algorithms))
	for name := range algorithms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HmacAlgos returns the algorithms usable with HMAC and HKDF.
func HmacAlgos() []string {
	var out []string
	for _, name := range Algos() {
		if algorithms[name].crypto {
			out = append(out, name)
		}
	}
	return out
}

// Hash digests data. argv: algo, data, binary=false.
func Hash(ctx context.Context, argv ...any) any {
	const fn = "hash"
	if err := args.Check(fn, argv, 2, 3); err != nil {
		return native.Bad(ctx, err)
	}
	alg, ok := lookup(ctx, fn, argv, false)
	if !ok {
		return false
	}
	data, err := native.Bytes(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	binary, err := native.Bool(fn, argv, 2, false)
	if err != nil {
		return native.Bad(ctx, err)
	}
	h := alg.new()
	h.Write(data)
	return render(h.Sum(nil), binary)
}

// HashHmac computes a keyed digest. argv: algo, data, key, binary=false.
func HashHmac(ctx context.Context, argv ...any) any {
	const fn = "hash_hmac"
	if err := args.Check(fn, argv, 3, 4); err != nil {
		return native.Bad(ctx, err)
	}
	alg, ok := lookup(ctx, fn, argv, true)
	if !ok {
		return false
	}
	data, err := native.Bytes(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	key, err := native.Bytes(fn, argv, 2)
	if err != nil {
		return native.Bad(ctx, err)
	}
	binary, err := native.Bool(fn, argv, 3, false)
	if err != nil {
		return native.Bad(ctx, err)
	}
	m := hmac.New(alg.new, key)
	m.Write(data)
	return render(m.Sum(nil), binary)
}

// HashHkdf derives a key. argv: algo, key, length=0, info="", salt="".
// A zero length selects the digest size.
func HashHkdf(ctx context.Context, argv ...any) any {
	const fn = "hash_hkdf"
	if err := args.Check(fn, argv, 2, 5); err != nil {
		return native.Bad(ctx, err)
	}
	alg, ok := lookup(ctx, fn, argv, true)
	if !ok {
		return false
	}
	key, err := native.Bytes(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if len(key) == 0 {
		return native.Fail(ctx, "%s(): Argument #2 ($key) cannot be empty", fn)
	}
	length, err := native.Int(fn, argv, 2, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	info, err := native.String(fn, argv, 3)
	if err != nil {
		return native.Bad(ctx, err)
	}
	salt, err := native.Bytes(fn, argv, 4)
	if err != nil {
		return native.Bad(ctx, err)
	}

	size := alg.new().Size()
	switch {
	case length < 0:
		return native.Fail(ctx, "%s(): Argument #3 ($length) must be greater than or equal to 0", fn)
	case length > 255*size:
		return native.Fail(ctx, "%s(): Argument #3 ($length) must be less than or equal to %d", fn, 255*size)
	case length == 0:
		length = size
	}
	out, err := hkdf.Key(alg.new, key, salt, info, length)
	if err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	return string(out)
}

// Runtime serves the digests that read files.
type Runtime struct {
	FS billy.Filesystem
}

// HashFile digests the contents of a file. argv: algo, filename, binary=false.
func (r *Runtime) HashFile(ctx context.Context, argv ...any) any {
	const fn = "hash_file"
	if err := args.Check(fn, argv, 2, 3); err != nil {
		return native.Bad(ctx, err)
	}
	alg, ok := lookup(ctx, fn, argv, false)
	if !ok {
		return false
	}
	name, err := native.String(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	binary, err := native.Bool(fn, argv, 2, false)
	if err != nil {
		return native.Bad(ctx, err)
	}
	f, err := r.FS.Open(name)
	if err != nil {
		return native.Fail(ctx, "%s(%s): Failed to open stream: %s", fn, name, native.Reason(err))
	}
	defer f.Close()
	h := alg.new()
	if _, err := io.Copy(h, f); err != nil {
		return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
	}
	return render(h.Sum(nil), binary)
}

func lookup(ctx context.Context, fn string, argv []any, cryptoOnly bool) (algorithm, bool) {
	name, err := native.String(fn, argv, 0)
	if err != nil {
		native.Bad(ctx, err)
		return algorithm{}, false
	}
	alg, ok := algorithms[name]
	switch {
	case !ok:
		native.Fail(ctx, "%s(): Argument #1 ($algo) must be a valid hashing algorithm", fn)
		return algorithm{}, false
	case cryptoOnly && !alg.crypto:
		native.Fail(ctx, "%s(): Argument #1 ($algo) must be a valid cryptographic hashing algorithm", fn)
		return algorithm{}, false
	}
	return alg, true
}

func render(sum []byte, binary bool) string {
	if binary {
		return string(sum)
	}
	return hex.EncodeToString(sum)
}
