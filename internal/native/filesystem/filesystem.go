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

// Package filesystem is the native file runtime over a billy.Filesystem.
// Paths are slash-separated and relative to the filesystem root.
package filesystem

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// FileAppend makes FilePutContents append instead of truncate.
const FileAppend = 8

// Runtime binds the natives to one filesystem.
type Runtime struct {
	FS billy.Filesystem
}

// New returns a Runtime over fs.
func New(fs billy.Filesystem) *Runtime {
	return &Runtime{FS: fs}
}

// FileGetContents reads a file. argv: filename, offset=0, length=null.
// A negative offset counts from the end of the file.
func (r *Runtime) FileGetContents(ctx context.Context, argv ...any) any {
	const fn = "file_get_contents"
	if err := args.Check(fn, argv, 1, 3); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	offset, err := native.Int(fn, argv, 1, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	length, err := native.Int(fn, argv, 2, -1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if args.Supplied(argv, 2) && length < 0 {
		return native.Fail(ctx, "%s(): Argument #3 ($length) must be greater than or equal to 0", fn)
	}

	f, err := r.FS.Open(name)
	if err != nil {
		return native.Fail(ctx, "%s(%s): Failed to open stream: %s", fn, name, native.Reason(err))
	}
	defer f.Close()

	whence := io.SeekStart
	if offset < 0 {
		whence = io.SeekEnd
	}
	if offset != 0 {
		if _, err := f.Seek(int64(offset), whence); err != nil {
			return native.Fail(ctx, "%s(): Failed to seek to position %d in the stream", fn, offset)
		}
	}

	var src io.Reader = f
	if length >= 0 {
		src = io.LimitReader(f, int64(length))
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return native.Fail(ctx, "%s(): Read of %s failed: %s", fn, name, native.Reason(err))
	}
	return data
}

// FilePutContents writes data and returns the number of bytes written.
// argv: filename, data, flags=0.
func (r *Runtime) FilePutContents(ctx context.Context, argv ...any) any {
	const fn = "file_put_contents"
	if err := args.Check(fn, argv, 2, 3); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	data, err := native.Bytes(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	flags, err := native.Int(fn, argv, 2, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}

	mode := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if flags&FileAppend != 0 {
		mode = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := r.FS.OpenFile(name, mode, 0o666)
	if err != nil {
		return native.Fail(ctx, "%s(%s): Failed to open stream: %s", fn, name, native.Reason(err))
	}
	n, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return native.Fail(ctx, "%s(): Only %d of %d bytes written, possibly out of free disk space", fn, n, len(data))
	}
	return n
}

// Filesize returns the size of a file in bytes. argv: filename.
func (r *Runtime) Filesize(ctx context.Context, argv ...any) any {
	const fn = "filesize"
	name, ok := r.path(ctx, fn, argv)
	if !ok {
		return false
	}
	fi, err := r.FS.Stat(name)
	if err != nil {
		return native.Fail(ctx, "%s(): stat failed for %s", fn, name)
	}
	return fi.Size()
}

// Copy copies a regular file. argv: from, to.
func (r *Runtime) Copy(ctx context.Context, argv ...any) any {
	const fn = "copy"
	from, to, ok := r.pair(ctx, fn, argv)
	if !ok {
		return false
	}
	if fi, err := r.FS.Stat(from); err == nil && fi.IsDir() {
		return native.Fail(ctx, "%s(): The first argument to copy() function cannot be a directory", fn)
	}
	src, err := r.FS.Open(from)
	if err != nil {
		return native.Fail(ctx, "%s(%s): Failed to open stream: %s", fn, from, native.Reason(err))
	}
	defer src.Close()
	dst, err := r.FS.Create(to)
	if err != nil {
		return native.Fail(ctx, "%s(%s): Failed to open stream: %s", fn, to, native.Reason(err))
	}
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
	}
	return true
}

// Rename moves a file or directory. argv: from, to.
func (r *Runtime) Rename(ctx context.Context, argv ...any) any {
	const fn = "rename"
	from, to, ok := r.pair(ctx, fn, argv)
	if !ok {
		return false
	}
	if err := r.FS.Rename(from, to); err != nil {
		return native.Fail(ctx, "%s(%s,%s): %s", fn, from, to, native.Reason(err))
	}
	return true
}

// Unlink removes a file. argv: filename.
func (r *Runtime) Unlink(ctx context.Context, argv ...any) any {
	const fn = "unlink"
	name, ok := r.path(ctx, fn, argv)
	if !ok {
		return false
	}
	fi, err := r.FS.Lstat(name)
	if err != nil {
		return native.Fail(ctx, "%s(%s): %s", fn, name, native.Reason(err))
	}
	if fi.IsDir() {
		return native.Fail(ctx, "%s(%s): Is a directory", fn, name)
	}
	if err := r.FS.Remove(name); err != nil {
		return native.Fail(ctx, "%s(%s): %s", fn, name, native.Reason(err))
	}
	return true
}

// Mkdir creates a directory. argv: directory, permissions=0777, recursive=false.
func (r *Runtime) Mkdir(ctx context.Context, argv ...any) any {
	const fn = "mkdir"
	if err := args.Check(fn, argv, 1, 3); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	perm, err := native.Int(fn, argv, 1, 0o777)
	if err != nil {
		return native.Bad(ctx, err)
	}
	recursive, err := native.Bool(fn, argv, 2, false)
	if err != nil {
		return native.Bad(ctx, err)
	}

	if _, err := r.FS.Stat(name); err == nil {
		return native.Fail(ctx, "%s(): File exists", fn)
	}
	if !recursive {
		parent := path.Dir(path.Clean("/" + name))
		if parent != "/" {
			fi, err := r.FS.Stat(parent)
			if err != nil {
				return native.Fail(ctx, "%s(): No such file or directory", fn)
			}
			if !fi.IsDir() {
				return native.Fail(ctx, "%s(): Not a directory", fn)
			}
		}
	}
	if err := r.FS.MkdirAll(name, os.FileMode(perm)&os.ModePerm); err != nil {
		return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
	}
	return true
}

// Rmdir removes an empty directory. argv: directory.
func (r *Runtime) Rmdir(ctx context.Context, argv ...any) any {
	const fn = "rmdir"
	name, ok := r.path(ctx, fn, argv)
	if !ok {
		return false
	}
	fi, err := r.FS.Stat(name)
	if err != nil {
		return native.Fail(ctx, "%s(%s): %s", fn, name, native.Reason(err))
	}
	if !fi.IsDir() {
		return native.Fail(ctx, "%s(%s): Not a directory", fn, name)
	}
	entries, err := r.FS.ReadDir(name)
	if err != nil {
		return native.Fail(ctx, "%s(%s): %s", fn, name, native.Reason(err))
	}
	if len(entries) > 0 {
		return native.Fail(ctx, "%s(%s): Directory not empty", fn, name)
	}
	if err := r.FS.Remove(name); err != nil {
		return native.Fail(ctx, "%s(%s): %s", fn, name, native.Reason(err))
	}
	return true
}

// Tempnam creates a uniquely named empty file and returns its path.
// argv: directory, prefix.
func (r *Runtime) Tempnam(ctx context.Context, argv ...any) any {
	const fn = "tempnam"
	dir, prefix, ok := r.pair(ctx, fn, argv)
	if !ok {
		return false
	}
	if len(prefix) > 63 {
		prefix = prefix[:63]
	}
	if fi, err := r.FS.Stat(dir); err != nil || !fi.IsDir() {
		return native.Fail(ctx, "%s(): Directory %s does not exist", fn, dir)
	}
	f, err := util.TempFile(r.FS, dir, prefix)
	if err != nil {
		return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
	}
	return name
}

// Realpath returns the canonical path of an existing file. It fails
// silently when the path does not exist. argv: path.
func (r *Runtime) Realpath(ctx context.Context, argv ...any) any {
	const fn = "realpath"
	name, ok := r.path(ctx, fn, argv)
	if !ok {
		return false
	}
	clean := path.Clean("/" + name)
	if _, err := r.FS.Stat(clean); err != nil {
		return false
	}
	return clean
}

// Touch sets the access and modification times, creating the file if
// needed. argv: filename, mtime=null, atime=null.
func (r *Runtime) Touch(ctx context.Context, argv ...any) any {
	const fn = "touch"
	if err := args.Check(fn, argv, 1, 3); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	mtime, err := args.Arg(fn, argv, 1, time.Now())
	if err != nil {
		return native.Bad(ctx, err)
	}
	atime, err := args.Arg(fn, argv, 2, mtime)
	if err != nil {
		return native.Bad(ctx, err)
	}

	if _, err := r.FS.Stat(name); err != nil {
		f, err := r.FS.Create(name)
		if err != nil {
			return native.Fail(ctx, "%s(): Unable to create file %s because %s", fn, name, native.Reason(err))
		}
		if err := f.Close(); err != nil {
			return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
		}
	}
	if ch, ok := r.FS.(billy.Change); ok {
		if err := ch.Chtimes(name, atime, mtime); err != nil && !errors.Is(err, billy.ErrNotSupported) {
			return native.Fail(ctx, "%s(): Utime failed: %s", fn, native.Reason(err))
		}
	}
	return true
}

func (r *Runtime) path(ctx context.Context, fn string, argv []any) (string, bool) {
	if err := args.Check(fn, argv, 1, 1); err != nil {
		native.Bad(ctx, err)
		return "", false
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		native.Bad(ctx, err)
		return "", false
	}
	return name, true
}

func (r *Runtime) pair(ctx context.Context, fn string, argv []any) (string, string, bool) {
	if err := args.Check(fn, argv, 2, 2); err != nil {
		native.Bad(ctx, err)
		return "", "", false
	}
	a, err := native.String(fn, argv, 0)
	if err != nil {
		native.Bad(ctx, err)
		return "", "", false
	}
	b, err := native.String(fn, argv, 1)
	if err != nil {
		native.Bad(ctx, err)
		return "", "", false
	}
	return a, b, true
}
