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

package args

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpt(t *testing.T) {
	var unset Opt[int]
	_, ok := unset.Get()
	require.False(t, ok)
	require.False(t, unset.IsSet())
	require.Equal(t, 7, unset.Or(7))
	require.Equal(t, "<unset>", unset.String())
	require.Equal(t, unset, None[int]())

	set := Some(0)
	v, ok := set.Get()
	require.True(t, ok)
	require.Equal(t, 0, v, "an explicit zero is still supplied")
	require.Equal(t, 0, set.Or(7))
	require.Equal(t, "0", set.String())
}

// For N optional arguments, supplying the first K must forward exactly
// len(required)+K values, for every K in 0..N.
func TestForward_PrefixArity(t *testing.T) {
	required := []any{"data"}
	const n = 3
	for k := 0; k <= n; k++ {
		opts := make([]Value, n)
		for i := 0; i < n; i++ {
			if i < k {
				opts[i] = Some(i * 10)
			} else {
				opts[i] = None[int]()
			}
		}
		got := Forward(required, opts...)
		require.Len(t, got, len(required)+k, "k=%d", k)
		require.Equal(t, "data", got[0])
		for i := 0; i < k; i++ {
			require.Equal(t, i*10, got[1+i])
		}
	}
}

func TestForward_GapUsesPlaceholder(t *testing.T) {
	got := Forward([]any{"a"}, None[int](), Some("enc"), None[bool]())
	require.Equal(t, []any{"a", nil, "enc"}, got)

	got = Forward(nil, nil, Some(true))
	require.Equal(t, []any{nil, true}, got)
}

func TestForward_DoesNotAliasRequired(t *testing.T) {
	required := make([]any, 1, 8)
	required[0] = "x"
	got := Forward(required, Some(1))
	got[0] = "changed"
	require.Equal(t, "x", required[0])
}

func TestCheckAndArg(t *testing.T) {
	argv := []any{"path", nil, 3}

	require.NoError(t, Check("scandir", argv, 1, 3))
	err := Check("scandir", argv, 1, 2)
	require.EqualError(t, err, "scandir() expects at most 2 arguments, 3 given")
	require.EqualError(t, Check("chdir", nil, 1, 1), "chdir() expects exactly 1 arguments, 0 given")
	require.EqualError(t, Check("copy", []any{"a"}, 2, 3), "copy() expects at least 2 arguments, 1 given")

	s, err := Arg("scandir", argv, 0, "")
	require.NoError(t, err)
	require.Equal(t, "path", s)

	n, err := Arg("scandir", argv, 1, 42)
	require.NoError(t, err)
	require.Equal(t, 42, n, "nil placeholder yields the default")

	n, err = Arg("scandir", argv, 5, 9)
	require.NoError(t, err)
	require.Equal(t, 9, n)

	_, err = Arg("scandir", argv, 0, 0)
	require.EqualError(t, err, "scandir(): Argument #1 must be of type int, string given")

	require.True(t, Supplied(argv, 2))
	require.False(t, Supplied(argv, 1))
	require.False(t, Supplied(argv, 3))
}

func TestForward_SuppliedNilReadsAsPlaceholder(t *testing.T) {
	got := Forward([]any{"a"}, Some[any](nil))
	require.Equal(t, []any{"a", nil}, got, "a supplied nil still counts toward arity")
	require.False(t, Supplied(got, 1))

	n, err := Arg("fn", got, 1, 5)
	require.NoError(t, err)
	require.Equal(t, 5, n, "natives fall back to their default")
}
