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

// Package shmop is the native System V shared memory runtime.
package shmop

import (
	"context"
	"sync"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Segment is an attached shared memory segment.
type Segment struct {
	mu       sync.Mutex
	key      int
	id       int
	data     []byte
	readOnly bool
	closed   bool
}

// Key returns the System V key the segment was opened with.
func (s *Segment) Key() int { return s.key }

// Size returns the segment size in bytes.
func (s *Segment) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// ShmopOpen opens or creates a segment. mode is one of "a" (read-only),
// "w" (read-write), "c" (create or open) and "n" (create new).
// argv: key, mode, permissions, size.
func ShmopOpen(ctx context.Context, argv ...any) any {
	const fn = "shmop_open"
	if err := args.Check(fn, argv, 4, 4); err != nil {
		return native.Bad(ctx, err)
	}
	key, err := native.Int(fn, argv, 0, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	mode, err := native.String(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	perm, err := native.Int(fn, argv, 2, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	size, err := native.Int(fn, argv, 3, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}

	var create, exclusive, readOnly bool
	switch mode {
	case "a":
		readOnly = true
	case "w":
	case "c":
		create = true
	case "n":
		create, exclusive = true, true
	default:
		return native.Fail(ctx, "%s(): Argument #2 ($mode) must be a valid access mode", fn)
	}
	if create && size <= 0 {
		return native.Fail(ctx, "%s(): Argument #4 ($size) must be greater than 0 for the \"c\" and \"n\" access modes", fn)
	}
	if !create {
		size = 0
	}

	id, err := shmGet(key, size, perm, create, exclusive)
	if err != nil {
		return native.Fail(ctx, "%s(): Unable to attach or create shared memory segment \"%v\"", fn, err)
	}
	data, err := shmAttach(id, readOnly)
	if err != nil {
		return native.Fail(ctx, "%s(): Unable to attach to shared memory segment \"%v\"", fn, err)
	}
	return &Segment{key: key, id: id, data: data, readOnly: readOnly}
}

// ShmopRead copies size bytes starting at offset; a zero size reads to the
// end of the segment. argv: shmop, offset, size.
func ShmopRead(ctx context.Context, argv ...any) any {
	const fn = "shmop_read"
	if err := args.Check(fn, argv, 3, 3); err != nil {
		return native.Bad(ctx, err)
	}
	s, ok := segment(ctx, fn, argv)
	if !ok {
		return false
	}
	offset, err := native.Int(fn, argv, 1, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	size, err := native.Int(fn, argv, 2, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if offset < 0 || offset > len(s.data) {
		return native.Fail(ctx, "%s(): Argument #2 ($offset) must be between 0 and the segment size", fn)
	}
	if size < 0 || offset+size > len(s.data) {
		return native.Fail(ctx, "%s(): Argument #3 ($size) is out of range", fn)
	}
	if size == 0 {
		size = len(s.data) - offset
	}
	return append([]byte(nil), s.data[offset:offset+size]...)
}

// ShmopWrite copies data into the segment at offset and returns the number
// of bytes written. argv: shmop, data, offset.
func ShmopWrite(ctx context.Context, argv ...any) any {
	const fn = "shmop_write"
	if err := args.Check(fn, argv, 3, 3); err != nil {
		return native.Bad(ctx, err)
	}
	s, ok := segment(ctx, fn, argv)
	if !ok {
		return false
	}
	data, err := native.Bytes(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	offset, err := native.Int(fn, argv, 2, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return native.Fail(ctx, "%s(): Read-only segment cannot be written", fn)
	}
	if offset < 0 || offset > len(s.data) {
		return native.Fail(ctx, "%s(): Argument #3 ($offset) is out of range", fn)
	}
	return copy(s.data[offset:], data)
}

// ShmopDelete marks the segment for removal. argv: shmop.
func ShmopDelete(ctx context.Context, argv ...any) any {
	const fn = "shmop_delete"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	s, ok := segment(ctx, fn, argv)
	if !ok {
		return false
	}
	if err := shmRemove(s.id); err != nil {
		return native.Fail(ctx, "%s(): Can't mark segment for deletion (are you the owner?)", fn)
	}
	return true
}

// ShmopClose detaches the segment. argv: shmop.
func ShmopClose(ctx context.Context, argv ...any) any {
	const fn = "shmop_close"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	s, ok := segment(ctx, fn, argv)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := shmDetach(s.data); err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	s.data, s.closed = nil, true
	return true
}

func segment(ctx context.Context, fn string, argv []any) (*Segment, bool) {
	s, err := args.Arg[*Segment](fn, argv, 0, nil)
	if err != nil {
		native.Bad(ctx, err)
		return nil, false
	}
	if s == nil {
		native.Fail(ctx, "%s(): Argument #1 ($shmop) must be of type Shmop, null given", fn)
		return nil, false
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		native.Fail(ctx, "%s(): Shared memory segment has already been closed", fn)
		return nil, false
	}
	return s, true
}
