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

// Package zlib provides error-returning compression functions.
package zlib

import (
	"context"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/zlib"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Zlib)

// Encodings accepted by the compression functions.
const (
	EncodingRaw     = rt.EncodingRaw
	EncodingDeflate = rt.EncodingDeflate
	EncodingGzip    = rt.EncodingGzip
)

var (
	gzcompress   = guard.Define(category.Zlib, "zlib.gzcompress", sentinel.False())
	gzencode     = guard.Define(category.Zlib, "zlib.gzencode", sentinel.False())
	gzdeflate    = guard.Define(category.Zlib, "zlib.gzdeflate", sentinel.False())
	gzuncompress = guard.Define(category.Zlib, "zlib.gzuncompress", sentinel.False())
	gzdecode     = guard.Define(category.Zlib, "zlib.gzdecode", sentinel.False())
	gzinflate    = guard.Define(category.Zlib, "zlib.gzinflate", sentinel.False())
)

// Gzcompress compresses data in the zlib format. level is -1..9.
func Gzcompress(ctx context.Context, data []byte, level, encoding args.Opt[int]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, gzcompress, rt.Gzcompress, []any{data}, level, encoding)
}

// Gzencode compresses data in the gzip format.
func Gzencode(ctx context.Context, data []byte, level, encoding args.Opt[int]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, gzencode, rt.Gzencode, []any{data}, level, encoding)
}

// Gzdeflate compresses data as a raw deflate stream.
func Gzdeflate(ctx context.Context, data []byte, level, encoding args.Opt[int]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, gzdeflate, rt.Gzdeflate, []any{data}, level, encoding)
}

// Gzuncompress inflates zlib data. maxLength bounds the output; 0 means unbounded.
func Gzuncompress(ctx context.Context, data []byte, maxLength args.Opt[int]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, gzuncompress, rt.Gzuncompress, []any{data}, maxLength)
}

// Gzdecode inflates gzip data.
func Gzdecode(ctx context.Context, data []byte, maxLength args.Opt[int]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, gzdecode, rt.Gzdecode, []any{data}, maxLength)
}

// Gzinflate inflates a raw deflate stream.
func Gzinflate(ctx context.Context, data []byte, maxLength args.Opt[int]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, gzinflate, rt.Gzinflate, []any{data}, maxLength)
}
