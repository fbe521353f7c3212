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

// Package dir provides error-returning directory handles and listings.
package dir

import (
	"context"

	"github.com/go-git/go-billy/v5"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/dir"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Dir)

// Sorting orders for Scandir.
const (
	SortAscending  = rt.SortAscending
	SortDescending = rt.SortDescending
)

// Handle identifies an open directory.
type Handle = rt.Handle

var (
	opendir   = guard.Define(category.Dir, "dir.opendir", sentinel.False())
	readdir   = guard.Define(category.Dir, "dir.readdir", guard.AuxUnset[string, bool]())
	rewinddir = guard.Define(category.Dir, "dir.rewinddir", sentinel.False())
	closedir  = guard.Define(category.Dir, "dir.closedir", sentinel.False())
	scandir   = guard.Define(category.Dir, "dir.scandir", sentinel.False())
)

// Dirs manages directory handles on one filesystem.
type Dirs struct {
	rt *rt.Runtime
}

// New returns a Dirs over fs.
func New(fs billy.Filesystem) *Dirs {
	return &Dirs{rt: rt.New(fs)}
}

// Opendir opens name for reading.
func (d *Dirs) Opendir(ctx context.Context, name string) (Handle, error) {
	return guard.Invoke[Handle](ctx, opendir, d.rt.Opendir, []any{name})
}

// Readdir returns the next entry of h. more is false once the directory is
// exhausted; this is not an error.
func (d *Dirs) Readdir(ctx context.Context, h Handle) (name string, more bool, err error) {
	name, eof, err := guard.CallOut(ctx, readdir, func(ctx context.Context) (string, bool, bool) {
		return d.rt.Next(ctx, h)
	})
	if err != nil {
		return "", false, err
	}
	return name, !eof, nil
}

// Rewinddir resets h to its first entry.
func (d *Dirs) Rewinddir(ctx context.Context, h Handle) error {
	_, err := guard.Invoke[bool](ctx, rewinddir, d.rt.Rewinddir, []any{h})
	return err
}

// Closedir releases h.
func (d *Dirs) Closedir(ctx context.Context, h Handle) error {
	_, err := guard.Invoke[bool](ctx, closedir, d.rt.Closedir, []any{h})
	return err
}

// Scandir lists name, including "." and "..".
func (d *Dirs) Scandir(ctx context.Context, name string, order args.Opt[int]) ([]string, error) {
	return guard.Invoke[[]string](ctx, scandir, d.rt.Scandir, []any{name}, order)
}

// Open returns the number of open handles.
func (d *Dirs) Open() int {
	return d.rt.Len()
}
