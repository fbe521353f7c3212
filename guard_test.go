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

package guard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/catalog"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/diag"
	"dirpx.dev/guard/sentinel"
	"github.com/stretchr/testify/require"
)

// divide mimics a native returning false with a warning on invalid input.
func divide(ctx context.Context, argv ...any) any {
	s, _ := argv[0].(string)
	if s == "" {
		diag.Warnf(ctx, "Invalid argument supplied")
		return false
	}
	return "result"
}

var divideSite = Define(category.Internal, "guard_test.divide", sentinel.False())

func TestCall_Scenario(t *testing.T) {
	ctx := context.Background()

	_, err := Invoke[string](ctx, divideSite, divide, []any{""})
	require.Error(t, err)
	var ge *Error
	require.True(t, errors.As(err, &ge))
	require.Equal(t, "Invalid argument supplied", ge.Message)
	require.Equal(t, category.Internal, ge.Category)
	require.Equal(t, divideSite.Name, ge.Operation)

	v, err := Invoke[string](ctx, divideSite, divide, []any{"x"})
	require.NoError(t, err)
	require.Equal(t, "result", v)
}

func TestCall_SentinelAbsorbed(t *testing.T) {
	site := Define(category.Hash, "guard_test.minus_one", sentinel.MinusOne[int]())
	v, err := Call(context.Background(), site, func(context.Context) int { return -1 })
	require.Error(t, err)
	require.Zero(t, v)
	require.ErrorIs(t, err, Kind(category.Hash))
	require.Equal(t, UnknownError, err.(*Error).Message)
}

func TestCall_PassThrough(t *testing.T) {
	site := Define(category.Strings, "guard_test.pass", sentinel.False())
	for _, want := range []any{0, "", true, []byte{1, 2}, nil} {
		got, err := Call(context.Background(), site, func(context.Context) any { return want })
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestCall_NoStaleDiagnostics(t *testing.T) {
	ctx := context.Background()
	calls := 0
	fn := func(ctx context.Context, argv ...any) any {
		calls++
		switch calls {
		case 1:
			diag.Warnf(ctx, "D1")
			return false
		case 2:
			return "ok"
		default:
			return false
		}
	}

	_, err := Invoke[string](ctx, divideSite, fn, nil)
	require.EqualError(t, err, "internal:guard_test.divide: D1")

	v, err := Invoke[string](ctx, divideSite, fn, nil)
	require.NoError(t, err)
	require.Equal(t, "ok", v)

	_, err = Invoke[string](ctx, divideSite, fn, nil)
	require.Error(t, err)
	require.Equal(t, UnknownError, err.(*Error).Message)
}

func TestCall_IgnoresOuterSlot(t *testing.T) {
	ctx, outer := diag.Scope(context.Background())
	diag.Warnf(ctx, "left over")

	_, err := Call(ctx, divideSite, func(context.Context) any { return false })
	require.Equal(t, UnknownError, err.(*Error).Message)

	e, ok := outer.Last()
	require.True(t, ok)
	require.Equal(t, "left over", e.Message, "the caller's slot is shadowed, not consumed")
}

func TestInvoke_OptionalArity(t *testing.T) {
	site := Define(category.Zlib, "guard_test.arity", sentinel.False())
	var got []int
	native := func(ctx context.Context, argv ...any) any {
		got = append(got, len(argv))
		return "ok"
	}

	opts := []args.Value{args.None[int](), args.None[string](), args.None[bool]()}
	for k := 0; k <= len(opts); k++ {
		cur := make([]args.Value, len(opts))
		copy(cur, opts)
		if k > 0 {
			cur[0] = args.Some(9)
		}
		if k > 1 {
			cur[1] = args.Some("gzip")
		}
		if k > 2 {
			cur[2] = args.Some(true)
		}
		_, err := Invoke[string](context.Background(), site, native, []any{"data"}, cur...)
		require.NoError(t, err)
	}
	require.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestCall_Idempotent(t *testing.T) {
	for i := 0; i < 2; i++ {
		v, err := Invoke[string](context.Background(), divideSite, divide, []any{"x"})
		require.NoError(t, err)
		require.Equal(t, "result", v)
	}
}

func TestCallAs_UnexpectedType(t *testing.T) {
	_, err := CallAs[string](context.Background(), divideSite, func(context.Context) any { return 42 })
	require.EqualError(t, err, "internal:guard_test.divide: divide(): unexpected result of type int")

	v, err := CallAs[[]byte](context.Background(), divideSite, func(context.Context) any { return nil })
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestCallOut(t *testing.T) {
	site := Define(category.Exec, "guard_test.out", Primary[any, int](sentinel.False()))

	v, code, err := CallOut(context.Background(), site, func(context.Context) (any, int, bool) {
		return "last line", 0, true
	})
	require.NoError(t, err)
	require.Equal(t, "last line", v)
	require.Equal(t, 0, code)

	v, code, err = CallOut(context.Background(), site, func(ctx context.Context) (any, int, bool) {
		diag.Warnf(ctx, "Unable to fork")
		return false, 127, true
	})
	require.EqualError(t, err, "exec:guard_test.out: Unable to fork")
	require.Nil(t, v)
	require.Equal(t, 127, code, "aux output survives failure")

	unset := Define(category.Exec, "guard_test.out_unset", AuxUnset[string, int]())
	_, _, err = CallOut(context.Background(), unset, func(context.Context) (string, int, bool) {
		return "", 0, false
	})
	require.ErrorIs(t, err, Kind(category.Exec))
}

func TestCall_ConcurrentIsolation(t *testing.T) {
	site := Define(category.Posix, "guard_test.concurrent", sentinel.False())
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := fmt.Sprintf("failure %d", i)
			_, err := Call(context.Background(), site, func(ctx context.Context) any {
				diag.Warnf(ctx, "%s", want)
				return false
			})
			if err == nil || err.(*Error).Message != want {
				t.Errorf("goroutine %d: got %v", i, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestCall_LogsFailuresOnly(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := WithLogger(context.Background(), l)

	_, err := Invoke[string](ctx, divideSite, divide, []any{"x"})
	require.NoError(t, err)
	require.Zero(t, buf.Len())

	_, err = Invoke[string](ctx, divideSite, divide, []any{""})
	require.Error(t, err)
	require.Contains(t, buf.String(), "guarded call failed")
	require.Contains(t, buf.String(), "operation=guard_test.divide")
}

func TestDefine(t *testing.T) {
	e, ok := catalog.Lookup(divideSite.Name)
	require.True(t, ok)
	require.Equal(t, category.Internal, e.Category)
	require.Equal(t, "false", e.Sentinel)

	require.Panics(t, func() { Define(category.Category("X"), "guard_test.bad", sentinel.False()) })
	require.Panics(t, func() { Define(category.Zlib, "", sentinel.False()) })
}
