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

// Package filesystem provides error-returning file operations over a
// billy.Filesystem.
package filesystem

import (
	"context"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/filesystem"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Filesystem)

// FileAppend is the FilePutContents flag selecting append mode.
const FileAppend = rt.FileAppend

var (
	fileGetContents = guard.Define(category.Filesystem, "filesystem.file_get_contents", sentinel.False())
	filePutContents = guard.Define(category.Filesystem, "filesystem.file_put_contents", sentinel.False())
	filesize        = guard.Define(category.Filesystem, "filesystem.filesize", sentinel.False())
	copyFile        = guard.Define(category.Filesystem, "filesystem.copy", sentinel.False())
	rename          = guard.Define(category.Filesystem, "filesystem.rename", sentinel.False())
	unlink          = guard.Define(category.Filesystem, "filesystem.unlink", sentinel.False())
	mkdir           = guard.Define(category.Filesystem, "filesystem.mkdir", sentinel.False())
	rmdir           = guard.Define(category.Filesystem, "filesystem.rmdir", sentinel.False())
	tempnam         = guard.Define(category.Filesystem, "filesystem.tempnam", sentinel.False())
	realpath        = guard.Define(category.Filesystem, "filesystem.realpath", sentinel.False())
	touch           = guard.Define(category.Filesystem, "filesystem.touch", sentinel.False())
)

// FS runs guarded file operations against one filesystem.
type FS struct {
	rt *rt.Runtime
}

// New returns an FS over fs.
func New(fs billy.Filesystem) *FS {
	return &FS{rt: rt.New(fs)}
}

// OS returns an FS rooted at dir on the host filesystem.
func OS(dir string) *FS {
	return New(osfs.New(dir))
}

// Memory returns an FS over a fresh in-memory filesystem.
func Memory() *FS {
	return New(memfs.New())
}

// Billy returns the underlying filesystem.
func (f *FS) Billy() billy.Filesystem {
	return f.rt.FS
}

// FileGetContents reads name. A negative offset counts from the end.
func (f *FS) FileGetContents(ctx context.Context, name string, offset, length args.Opt[int]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, fileGetContents, f.rt.FileGetContents, []any{name}, offset, length)
}

// FilePutContents writes data to name and returns the number of bytes written.
func (f *FS) FilePutContents(ctx context.Context, name string, data []byte, flags args.Opt[int]) (int, error) {
	return guard.Invoke[int](ctx, filePutContents, f.rt.FilePutContents, []any{name, data}, flags)
}

// Filesize returns the size of name in bytes.
func (f *FS) Filesize(ctx context.Context, name string) (int64, error) {
	return guard.Invoke[int64](ctx, filesize, f.rt.Filesize, []any{name})
}

// Copy copies the regular file from to to.
func (f *FS) Copy(ctx context.Context, from, to string) error {
	_, err := guard.Invoke[bool](ctx, copyFile, f.rt.Copy, []any{from, to})
	return err
}

// Rename moves from to to.
func (f *FS) Rename(ctx context.Context, from, to string) error {
	_, err := guard.Invoke[bool](ctx, rename, f.rt.Rename, []any{from, to})
	return err
}

// Unlink removes the file name.
func (f *FS) Unlink(ctx context.Context, name string) error {
	_, err := guard.Invoke[bool](ctx, unlink, f.rt.Unlink, []any{name})
	return err
}

// Mkdir creates the directory name. Without recursive the parent must exist.
func (f *FS) Mkdir(ctx context.Context, name string, perm args.Opt[int], recursive args.Opt[bool]) error {
	_, err := guard.Invoke[bool](ctx, mkdir, f.rt.Mkdir, []any{name}, perm, recursive)
	return err
}

// Rmdir removes the empty directory name.
func (f *FS) Rmdir(ctx context.Context, name string) error {
	_, err := guard.Invoke[bool](ctx, rmdir, f.rt.Rmdir, []any{name})
	return err
}

// Tempnam creates a unique empty file in dir and returns its path.
func (f *FS) Tempnam(ctx context.Context, dir, prefix string) (string, error) {
	return guard.Invoke[string](ctx, tempnam, f.rt.Tempnam, []any{dir, prefix})
}

// Realpath returns the cleaned absolute form of an existing path.
func (f *FS) Realpath(ctx context.Context, name string) (string, error) {
	return guard.Invoke[string](ctx, realpath, f.rt.Realpath, []any{name})
}

// Touch creates name if needed and sets its times.
func (f *FS) Touch(ctx context.Context, name string, mtime, atime args.Opt[time.Time]) error {
	_, err := guard.Invoke[bool](ctx, touch, f.rt.Touch, []any{name}, mtime, atime)
	return err
}
