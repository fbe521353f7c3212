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

// Package session provides error-returning session lifecycle operations
// over in-memory or Redis storage.
package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/session"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Session)

// Store persists encoded session data.
type Store = rt.Store

// RedisOptions configures DialRedis.
type RedisOptions = rt.RedisOptions

var (
	sessionStart        = guard.Define(category.Session, "session.session_start", sentinel.False())
	sessionRegenerateID = guard.Define(category.Session, "session.session_regenerate_id", sentinel.False())
	sessionDestroy      = guard.Define(category.Session, "session.session_destroy", sentinel.False())
	sessionEncode       = guard.Define(category.Session, "session.session_encode", sentinel.False())
	sessionDecode       = guard.Define(category.Session, "session.session_decode", sentinel.False())
	sessionWriteClose   = guard.Define(category.Session, "session.session_write_close", sentinel.False())
)

// NewMemoryStore returns a process-local Store.
func NewMemoryStore() Store { return rt.NewMemoryStore() }

// NewRedisStore returns a Store keeping sessions under prefix in Redis.
func NewRedisStore(client *redis.Client, prefix string) Store {
	return rt.NewRedisStore(client, prefix)
}

// DialRedis connects to Redis and pings it.
func DialRedis(ctx context.Context, o RedisOptions) (*redis.Client, error) {
	return rt.DialRedis(ctx, o)
}

// Manager drives the session of one client.
type Manager struct {
	m *rt.Manager
}

// NewManager returns a Manager storing sessions in store for ttl.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{m: rt.NewManager(store, ttl)}
}

// ID returns the current session id.
func (m *Manager) ID() string { return m.m.ID() }

// Active reports whether a session is active.
func (m *Manager) Active() bool { return m.m.Status() == rt.StatusActive }

// Get reads a session variable.
func (m *Manager) Get(key string) (any, bool) { return m.m.Get(key) }

// Set writes a session variable of the active session.
func (m *Manager) Set(key string, v any) { m.m.Set(key, v) }

// SessionStart starts a session, resuming id when the store knows it.
func (m *Manager) SessionStart(ctx context.Context, id args.Opt[string]) error {
	_, err := guard.Invoke[bool](ctx, sessionStart, m.m.SessionStart, nil, id)
	return err
}

// SessionRegenerateID moves the active session to a fresh id.
func (m *Manager) SessionRegenerateID(ctx context.Context, deleteOld args.Opt[bool]) error {
	_, err := guard.Invoke[bool](ctx, sessionRegenerateID, m.m.SessionRegenerateID, nil, deleteOld)
	return err
}

// SessionDestroy deletes the stored session and ends it.
func (m *Manager) SessionDestroy(ctx context.Context) error {
	_, err := guard.Invoke[bool](ctx, sessionDestroy, m.m.SessionDestroy, nil)
	return err
}

// SessionEncode serializes the active session data.
func (m *Manager) SessionEncode(ctx context.Context) (string, error) {
	return guard.Invoke[string](ctx, sessionEncode, m.m.SessionEncode, nil)
}

// SessionDecode merges encoded data into the active session.
func (m *Manager) SessionDecode(ctx context.Context, data string) error {
	_, err := guard.Invoke[bool](ctx, sessionDecode, m.m.SessionDecode, []any{data})
	return err
}

// SessionWriteClose persists the active session and ends it.
func (m *Manager) SessionWriteClose(ctx context.Context) error {
	_, err := guard.Invoke[bool](ctx, sessionWriteClose, m.m.SessionWriteClose, nil)
	return err
}
