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

// Package dir is the native directory runtime: numbered directory handles
// over a billy.Filesystem.
package dir

import (
	"context"
	"sort"
	"sync"

	"github.com/go-git/go-billy/v5"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Sorting orders accepted by Scandir.
const (
	SortAscending  = 0
	SortDescending = 1
)

// Handle identifies an open directory.
type Handle int

type stream struct {
	entries []string
	pos     int
}

// Runtime owns the handle table of one filesystem.
type Runtime struct {
	FS billy.Filesystem

	mu      sync.Mutex
	next    Handle
	handles map[Handle]*stream
}

// New returns a Runtime over fs.
func New(fs billy.Filesystem) *Runtime {
	return &Runtime{FS: fs, handles: make(map[Handle]*stream)}
}

// Opendir opens a directory and returns its Handle. argv: directory.
func (r *Runtime) Opendir(ctx context.Context, argv ...any) any {
	const fn = "opendir"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	entries, ok := r.list(ctx, fn, name)
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.handles[r.next] = &stream{entries: entries}
	return r.next
}

// Next reads the next entry of h. eof reports an exhausted stream; valid is
// false when h is not an open handle.
func (r *Runtime) Next(ctx context.Context, h Handle) (name string, eof bool, valid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.handles[h]
	if !ok {
		native.Fail(ctx, "readdir(): %d is not a valid Directory resource", h)
		return "", false, false
	}
	if s.pos >= len(s.entries) {
		return "", true, true
	}
	name = s.entries[s.pos]
	s.pos++
	return name, false, true
}

// Rewinddir resets h to its first entry. argv: handle.
func (r *Runtime) Rewinddir(ctx context.Context, argv ...any) any {
	return r.withHandle(ctx, "rewinddir", argv, func(h Handle, s *stream) {
		s.pos = 0
	})
}

// Closedir releases h. argv: handle.
func (r *Runtime) Closedir(ctx context.Context, argv ...any) any {
	return r.withHandle(ctx, "closedir", argv, func(h Handle, _ *stream) {
		delete(r.handles, h)
	})
}

// Scandir lists a directory, dot entries included. argv: directory,
// sorting_order=SortAscending.
func (r *Runtime) Scandir(ctx context.Context, argv ...any) any {
	const fn = "scandir"
	if err := args.Check(fn, argv, 1, 2); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	order, err := native.Int(fn, argv, 1, SortAscending)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if order != SortAscending && order != SortDescending {
		return native.Fail(ctx, "%s(): Argument #2 ($sorting_order) must be SCANDIR_SORT_ASCENDING or SCANDIR_SORT_DESCENDING", fn)
	}
	entries, ok := r.list(ctx, fn, name)
	if !ok {
		return false
	}
	if order == SortDescending {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	return entries
}

// Len returns the number of open handles.
func (r *Runtime) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

func (r *Runtime) list(ctx context.Context, fn, name string) ([]string, bool) {
	fi, err := r.FS.Stat(name)
	if err != nil {
		native.Fail(ctx, "%s(%s): Failed to open directory: %s", fn, name, native.Reason(err))
		return nil, false
	}
	if !fi.IsDir() {
		native.Fail(ctx, "%s(%s): Failed to open directory: Not a directory", fn, name)
		return nil, false
	}
	infos, err := r.FS.ReadDir(name)
	if err != nil {
		native.Fail(ctx, "%s(%s): Failed to open directory: %s", fn, name, native.Reason(err))
		return nil, false
	}
	out := make([]string, 0, len(infos)+2)
	out = append(out, ".", "..")
	for _, fi := range infos {
		out = append(out, fi.Name())
	}
	sort.Strings(out)
	return out, true
}

func (r *Runtime) withHandle(ctx context.Context, fn string, argv []any, apply func(Handle, *stream)) any {
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	h, err := args.Arg(fn, argv, 0, Handle(0))
	if err != nil {
		return native.Bad(ctx, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.handles[h]
	if !ok {
		return native.Fail(ctx, "%s(): %d is not a valid Directory resource", fn, h)
	}
	apply(h, s)
	return true
}
