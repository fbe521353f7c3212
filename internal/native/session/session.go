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

// Package session is the native session runtime: one Manager per client
// holding the active session, backed by a Store.
//
// Session data is encoded as a sequence of name|value records where value
// is a JSON document.
package session

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Status values reported by Manager.Status.
const (
	StatusNone   = 1
	StatusActive = 2
)

// Manager holds the session state of one client.
type Manager struct {
	store Store
	ttl   time.Duration

	mu     sync.Mutex
	id     string
	active bool
	data   map[string]any
}

// NewManager returns a Manager without an active session.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// ID returns the current session id, which may outlive the session.
func (m *Manager) ID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

// Status returns StatusActive or StatusNone.
func (m *Manager) Status() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		return StatusActive
	}
	return StatusNone
}

// Get reads a session variable.
func (m *Manager) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Set writes a session variable. It is a no-op without an active session.
func (m *Manager) Set(key string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		m.data[key] = v
	}
}

// SessionStart starts or resumes a session. An unknown id is replaced by a
// fresh one. argv: id="".
func (m *Manager) SessionStart(ctx context.Context, argv ...any) any {
	const fn = "session_start"
	if err := args.Check(fn, argv, 0, 1); err != nil {
		return native.Bad(ctx, err)
	}
	id, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		return native.Fail(ctx, "%s(): Ignoring session_start() because a session is already active", fn)
	}
	if id == "" {
		id = m.id
	}

	data := map[string]any{}
	if id != "" {
		raw, err := m.store.Read(ctx, id)
		switch {
		case errors.Is(err, ErrNotFound):
			id = ""
		case err != nil:
			return native.Fail(ctx, "%s(): Failed to read session data: %s (%v)", fn, m.store.Name(), err)
		default:
			if data, err = decode(raw); err != nil {
				return native.Fail(ctx, "%s(): Failed to decode session object. Session has been destroyed", fn)
			}
		}
	}
	if id == "" {
		if id, err = newID(); err != nil {
			return native.Fail(ctx, "%s(): Failed to create session ID: %v", fn, err)
		}
	}
	m.id, m.data, m.active = id, data, true
	return true
}

// SessionRegenerateID moves the active session to a new id.
// argv: delete_old_session=false.
func (m *Manager) SessionRegenerateID(ctx context.Context, argv ...any) any {
	const fn = "session_regenerate_id"
	if err := args.Check(fn, argv, 0, 1); err != nil {
		return native.Bad(ctx, err)
	}
	deleteOld, err := native.Bool(fn, argv, 0, false)
	if err != nil {
		return native.Bad(ctx, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return native.Fail(ctx, "%s(): Session ID cannot be regenerated when there is no active session", fn)
	}
	old := m.id
	if deleteOld {
		if err := m.store.Destroy(ctx, old); err != nil {
			return native.Fail(ctx, "%s(): Session object destruction failed. ID: %s (path: %s)", fn, m.store.Name(), old)
		}
	} else if err := m.flush(ctx); err != nil {
		return native.Fail(ctx, "%s(): Failed to write session data: %s (%v)", fn, m.store.Name(), err)
	}
	id, err := newID()
	if err != nil {
		return native.Fail(ctx, "%s(): Failed to create new session ID: %v", fn, err)
	}
	m.id = id
	return true
}

// SessionDestroy removes the stored session and ends it.
func (m *Manager) SessionDestroy(ctx context.Context, argv ...any) any {
	const fn = "session_destroy"
	if err := args.Check(fn, argv, 0, 0); err != nil {
		return native.Bad(ctx, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return native.Fail(ctx, "%s(): Trying to destroy uninitialized session", fn)
	}
	if err := m.store.Destroy(ctx, m.id); err != nil {
		return native.Fail(ctx, "%s(): Session object destruction failed. ID: %s (path: %s)", fn, m.store.Name(), m.id)
	}
	m.active, m.data = false, nil
	return true
}

// SessionEncode serializes the active session data.
func (m *Manager) SessionEncode(ctx context.Context, argv ...any) any {
	const fn = "session_encode"
	if err := args.Check(fn, argv, 0, 0); err != nil {
		return native.Bad(ctx, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return native.Fail(ctx, "%s(): Cannot encode non-existent session", fn)
	}
	b, err := encode(m.data)
	if err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	return string(b)
}

// SessionDecode merges encoded data into the active session. argv: data.
func (m *Manager) SessionDecode(ctx context.Context, argv ...any) any {
	const fn = "session_decode"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	raw, err := native.Bytes(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return native.Fail(ctx, "%s(): Session data cannot be decoded when there is no active session", fn)
	}
	data, err := decode(raw)
	if err != nil {
		return native.Fail(ctx, "%s(): Failed to decode session object. Session has been destroyed", fn)
	}
	for k, v := range data {
		m.data[k] = v
	}
	return true
}

// SessionWriteClose persists the session and ends it. Without an active
// session it fails silently.
func (m *Manager) SessionWriteClose(ctx context.Context, argv ...any) any {
	const fn = "session_write_close"
	if err := args.Check(fn, argv, 0, 0); err != nil {
		return native.Bad(ctx, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return false
	}
	if err := m.flush(ctx); err != nil {
		return native.Fail(ctx, "%s(): Failed to write session data using user defined save handler. (session.save_path: %s, handler: %v)", fn, m.store.Name(), err)
	}
	m.active, m.data = false, nil
	return true
}

func (m *Manager) flush(ctx context.Context) error {
	b, err := encode(m.data)
	if err != nil {
		return err
	}
	return m.store.Write(ctx, m.id, b, m.ttl)
}

func newID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func encode(data map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		if strings.Contains(k, "|") {
			return nil, errors.New("session variable name cannot contain '|'")
		}
		v, err := json.Marshal(data[k])
		if err != nil {
			return nil, err
		}
		buf.WriteString(k)
		buf.WriteByte('|')
		buf.Write(v)
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (map[string]any, error) {
	out := map[string]any{}
	for len(raw) > 0 {
		i := bytes.IndexByte(raw, '|')
		if i <= 0 {
			return nil, errors.New("missing variable name")
		}
		key := string(raw[:i])
		dec := json.NewDecoder(bytes.NewReader(raw[i+1:]))
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		out[key] = v
		raw = raw[i+1+int(dec.InputOffset()):]
	}
	return out, nil
}
