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

// Package zlib is the native compression runtime: deflate in its raw, zlib
// and gzip framings. Every function returns the resulting bytes or false.
package zlib

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Encodings select the framing around the deflate stream.
const (
	EncodingRaw     = -15
	EncodingDeflate = 15
	EncodingGzip    = 31
)

// Gzcompress compresses argv[0] with the zlib framing.
// argv: data, level=-1, encoding=EncodingDeflate.
func Gzcompress(ctx context.Context, argv ...any) any {
	return compress(ctx, "gzcompress", EncodingDeflate, argv)
}

// Gzencode compresses argv[0] with the gzip framing.
// argv: data, level=-1, encoding=EncodingGzip.
func Gzencode(ctx context.Context, argv ...any) any {
	return compress(ctx, "gzencode", EncodingGzip, argv)
}

// Gzdeflate compresses argv[0] without framing.
// argv: data, level=-1, encoding=EncodingRaw.
func Gzdeflate(ctx context.Context, argv ...any) any {
	return compress(ctx, "gzdeflate", EncodingRaw, argv)
}

// Gzuncompress inflates zlib-framed data. argv: data, max_length=0.
func Gzuncompress(ctx context.Context, argv ...any) any {
	return decompress(ctx, "gzuncompress", EncodingDeflate, argv)
}

// Gzdecode inflates gzip-framed data. argv: data, max_length=0.
func Gzdecode(ctx context.Context, argv ...any) any {
	return decompress(ctx, "gzdecode", EncodingGzip, argv)
}

// Gzinflate inflates raw deflate data. argv: data, max_length=0.
func Gzinflate(ctx context.Context, argv ...any) any {
	return decompress(ctx, "gzinflate", EncodingRaw, argv)
}

func compress(ctx context.Context, fn string, defEncoding int, argv []any) any {
	if err := args.Check(fn, argv, 1, 3); err != nil {
		return native.Bad(ctx, err)
	}
	data, err := native.Bytes(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	level, err := native.Int(fn, argv, 1, -1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if level < -1 || level > 9 {
		return native.Fail(ctx, "%s(): Argument #2 ($level) must be between -1 and 9", fn)
	}
	encoding, err := native.Int(fn, argv, 2, defEncoding)
	if err != nil {
		return native.Bad(ctx, err)
	}

	var buf bytes.Buffer
	var w io.WriteCloser
	switch encoding {
	case EncodingRaw:
		w, err = flate.NewWriter(&buf, level)
	case EncodingDeflate:
		w, err = zlib.NewWriterLevel(&buf, level)
	case EncodingGzip:
		w, err = gzip.NewWriterLevel(&buf, level)
	default:
		return native.Fail(ctx, "%s(): Argument #3 ($encoding) must be one of ZLIB_ENCODING_RAW, ZLIB_ENCODING_GZIP, or ZLIB_ENCODING_DEFLATE", fn)
	}
	if err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	if _, err := w.Write(data); err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	if err := w.Close(); err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	return buf.Bytes()
}

func decompress(ctx context.Context, fn string, encoding int, argv []any) any {
	if err := args.Check(fn, argv, 1, 2); err != nil {
		return native.Bad(ctx, err)
	}
	data, err := native.Bytes(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	maxLen, err := native.Int(fn, argv, 1, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if maxLen < 0 {
		return native.Fail(ctx, "%s(): Argument #2 ($max_length) must be greater than or equal to 0", fn)
	}

	var r io.ReadCloser
	src := bytes.NewReader(data)
	switch encoding {
	case EncodingRaw:
		r = flate.NewReader(src)
	case EncodingDeflate:
		r, err = zlib.NewReader(src)
	default:
		r, err = gzip.NewReader(src)
	}
	if err != nil {
		return native.Fail(ctx, "%s(): data error", fn)
	}
	defer r.Close()

	var rd io.Reader = r
	if maxLen > 0 {
		rd = io.LimitReader(r, int64(maxLen)+1)
	}
	out, err := io.ReadAll(rd)
	if err != nil {
		return native.Fail(ctx, "%s(): data error", fn)
	}
	if maxLen > 0 && len(out) > maxLen {
		return native.Fail(ctx, "%s(): insufficient memory", fn)
	}
	return out
}
