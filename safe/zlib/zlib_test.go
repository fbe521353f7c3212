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

package zlib

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"github.com/stretchr/testify/require"
)

var payload = bytes.Repeat([]byte("guarded payload "), 64)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		pack   func() ([]byte, error)
		unpack func([]byte) ([]byte, error)
	}{
		{"zlib",
			func() ([]byte, error) { return Gzcompress(ctx, payload, args.Some(9), args.None[int]()) },
			func(b []byte) ([]byte, error) { return Gzuncompress(ctx, b, args.None[int]()) }},
		{"gzip",
			func() ([]byte, error) { return Gzencode(ctx, payload, args.None[int](), args.None[int]()) },
			func(b []byte) ([]byte, error) { return Gzdecode(ctx, b, args.None[int]()) }},
		{"raw",
			func() ([]byte, error) { return Gzdeflate(ctx, payload, args.Some(1), args.None[int]()) },
			func(b []byte) ([]byte, error) { return Gzinflate(ctx, b, args.Some(len(payload))) }},
		{"gzip via gzcompress encoding",
			func() ([]byte, error) { return Gzcompress(ctx, payload, args.None[int](), args.Some(EncodingGzip)) },
			func(b []byte) ([]byte, error) { return Gzdecode(ctx, b, args.None[int]()) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			packed, err := tc.pack()
			require.NoError(t, err)
			require.Less(t, len(packed), len(payload))
			out, err := tc.unpack(packed)
			require.NoError(t, err)
			require.Equal(t, payload, out)
		})
	}
}

func TestCorruptInput(t *testing.T) {
	ctx := context.Background()
	for name, fn := range map[string]func(context.Context, []byte, args.Opt[int]) ([]byte, error){
		"gzuncompress": Gzuncompress,
		"gzdecode":     Gzdecode,
		"gzinflate":    Gzinflate,
	} {
		out, err := fn(ctx, []byte("definitely not compressed"), args.None[int]())
		require.Nil(t, out)
		require.ErrorIs(t, err, Err, name)
		var ge *guard.Error
		require.True(t, errors.As(err, &ge))
		require.Equal(t, name+"(): data error", ge.Message)
		require.Equal(t, "zlib."+name, string(ge.Operation))
	}
}

func TestMaxLength(t *testing.T) {
	ctx := context.Background()
	packed, err := Gzcompress(ctx, payload, args.None[int](), args.None[int]())
	require.NoError(t, err)

	_, err = Gzuncompress(ctx, packed, args.Some(10))
	require.EqualError(t, err, "zlib:zlib.gzuncompress: gzuncompress(): insufficient memory")

	_, err = Gzuncompress(ctx, packed, args.Some(-1))
	require.ErrorIs(t, err, Err)
}

func TestInvalidArguments(t *testing.T) {
	ctx := context.Background()
	_, err := Gzcompress(ctx, payload, args.Some(42), args.None[int]())
	require.EqualError(t, err, "zlib:zlib.gzcompress: gzcompress(): Argument #2 ($level) must be between -1 and 9")

	_, err = Gzdeflate(ctx, payload, args.None[int](), args.Some(7))
	require.ErrorIs(t, err, Err)
}
