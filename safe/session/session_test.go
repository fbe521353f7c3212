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

package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
)

func lifecycle(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	noID := args.None[string]()

	m := NewManager(store, time.Minute)
	require.NoError(t, m.SessionStart(ctx, noID))
	require.True(t, m.Active())
	id := m.ID()
	require.Len(t, id, 32)

	m.Set("user", "ada")
	m.Set("visits", 3)
	enc, err := m.SessionEncode(ctx)
	require.NoError(t, err)
	require.Equal(t, `user|"ada"visits|3`, enc)
	require.NoError(t, m.SessionWriteClose(ctx))
	require.False(t, m.Active())

	resumed := NewManager(store, time.Minute)
	require.NoError(t, resumed.SessionStart(ctx, args.Some(id)))
	require.Equal(t, id, resumed.ID())
	v, ok := resumed.Get("user")
	require.True(t, ok)
	require.Equal(t, "ada", v)
	v, _ = resumed.Get("visits")
	require.Equal(t, float64(3), v)

	require.NoError(t, resumed.SessionRegenerateID(ctx, args.Some(true)))
	require.NotEqual(t, id, resumed.ID())
	require.NoError(t, resumed.SessionDestroy(ctx))

	stale := NewManager(store, time.Minute)
	require.NoError(t, stale.SessionStart(ctx, args.Some(id)))
	require.NotEqual(t, id, stale.ID(), "an unknown id is replaced")
	_, ok = stale.Get("user")
	require.False(t, ok)
}

func TestLifecycle_Memory(t *testing.T) {
	lifecycle(t, NewMemoryStore())
}

func TestLifecycle_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := DialRedis(context.Background(), RedisOptions{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	lifecycle(t, NewRedisStore(client, "guard:test:"+t.Name()+":"))
}

func TestFailures(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), 0)

	err := m.SessionDestroy(ctx)
	require.EqualError(t, err, "session:session.session_destroy: session_destroy(): Trying to destroy uninitialized session")
	require.ErrorIs(t, err, Err)

	_, err = m.SessionEncode(ctx)
	require.ErrorContains(t, err, "Cannot encode non-existent session")

	err = m.SessionRegenerateID(ctx, args.None[bool]())
	require.ErrorContains(t, err, "no active session")

	err = m.SessionWriteClose(ctx)
	require.EqualError(t, err, "session:session.session_write_close: "+guard.UnknownError)

	require.NoError(t, m.SessionStart(ctx, args.None[string]()))
	err = m.SessionStart(ctx, args.None[string]())
	require.ErrorContains(t, err, "a session is already active")
}

func TestDecode(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), 0)

	err := m.SessionDecode(ctx, `a|1`)
	require.ErrorContains(t, err, "no active session")

	require.NoError(t, m.SessionStart(ctx, args.None[string]()))
	require.NoError(t, m.SessionDecode(ctx, `a|1b|{"k":[true]}`))
	v, _ := m.Get("b")
	require.Equal(t, map[string]any{"k": []any{true}}, v)

	err = m.SessionDecode(ctx, `a|{`)
	require.EqualError(t, err, "session:session.session_decode: session_decode(): Failed to decode session object. Session has been destroyed")
}
