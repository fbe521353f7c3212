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

// Package shmop provides error-returning access to System V shared memory.
package shmop

import (
	"context"

	"dirpx.dev/guard"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/shmop"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Shmop)

// Segment is an attached shared memory segment.
type Segment = rt.Segment

// Access modes for ShmopOpen.
const (
	ModeRead      = "a"
	ModeReadWrite = "w"
	ModeCreate    = "c"
	ModeCreateNew = "n"
)

// Private is the key that always creates a new segment.
const Private = 0

var (
	shmopOpen   = guard.Define(category.Shmop, "shmop.shmop_open", sentinel.False())
	shmopRead   = guard.Define(category.Shmop, "shmop.shmop_read", sentinel.False())
	shmopWrite  = guard.Define(category.Shmop, "shmop.shmop_write", sentinel.False())
	shmopDelete = guard.Define(category.Shmop, "shmop.shmop_delete", sentinel.False())
	shmopClose  = guard.Define(category.Shmop, "shmop.shmop_close", sentinel.False())
)

// ShmopOpen opens or creates the segment key. perms and size are ignored
// for ModeRead and ModeReadWrite.
func ShmopOpen(ctx context.Context, key int, mode string, perms, size int) (*Segment, error) {
	return guard.Invoke[*Segment](ctx, shmopOpen, rt.ShmopOpen, []any{key, mode, perms, size})
}

// ShmopRead reads size bytes at offset. A zero size reads to the end.
func ShmopRead(ctx context.Context, s *Segment, offset, size int) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, shmopRead, rt.ShmopRead, []any{s, offset, size})
}

// ShmopWrite writes data at offset, truncated to the segment size, and
// returns the number of bytes written.
func ShmopWrite(ctx context.Context, s *Segment, data []byte, offset int) (int, error) {
	return guard.Invoke[int](ctx, shmopWrite, rt.ShmopWrite, []any{s, data, offset})
}

// ShmopDelete marks s for removal once every process detaches.
func ShmopDelete(ctx context.Context, s *Segment) error {
	_, err := guard.Invoke[bool](ctx, shmopDelete, rt.ShmopDelete, []any{s})
	return err
}

// ShmopClose detaches s.
func ShmopClose(ctx context.Context, s *Segment) error {
	_, err := guard.Invoke[bool](ctx, shmopClose, rt.ShmopClose, []any{s})
	return err
}
