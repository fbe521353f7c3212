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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by a Store that holds no data for an id.
var ErrNotFound = errors.New("session: not found")

// Store persists encoded session data by id.
type Store interface {
	Name() string
	Read(ctx context.Context, id string) ([]byte, error)
	Write(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Destroy(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memItem
	now   func() time.Time
}

type memItem struct {
	data    []byte
	expires time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), now: time.Now}
}

// Name implements Store.
func (s *MemoryStore) Name() string { return "memory" }

// Read implements Store.
func (s *MemoryStore) Read(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !it.expires.IsZero() && !s.now().Before(it.expires) {
		delete(s.items, id)
		return nil, ErrNotFound
	}
	return append([]byte(nil), it.data...), nil
}

// Write implements Store. A zero ttl never expires.
func (s *MemoryStore) Write(_ context.Context, id string, data []byte, ttl time.Duration) error {
	it := memItem{data: append([]byte(nil), data...)}
	if ttl > 0 {
		it.expires = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[id] = it
	s.mu.Unlock()
	return nil
}

// Destroy implements Store.
func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// RedisStore keeps sessions in Redis under prefix+id.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a RedisStore using client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "guard:sess:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// RedisOptions configures DialRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// DialRedis connects to Redis and verifies the connection with PING.
func DialRedis(ctx context.Context, o RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Name implements Store.
func (s *RedisStore) Name() string { return "redis" }

// Read implements Store.
func (s *RedisStore) Read(ctx context.Context, id string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

// Write implements Store.
func (s *RedisStore) Write(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+id, data, ttl).Err()
}

// Destroy implements Store.
func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}
