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

// Package native holds helpers shared by the native runtime packages below
// it. Natives follow the guard.Native calling convention: they take an argv
// whose length is the call arity, report problems through diag and signal
// failure with a sentinel result.
package native

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/diag"
)

// Fail reports a warning and returns false.
func Fail(ctx context.Context, format string, a ...any) any {
	diag.Warnf(ctx, format, a...)
	return false
}

// Bad reports err as a warning and returns false.
func Bad(ctx context.Context, err error) any {
	diag.Warnf(ctx, "%s", err.Error())
	return false
}

// Bytes reads argv[i] as a byte slice; strings are converted.
func Bytes(fn string, argv []any, i int) ([]byte, error) {
	if i >= len(argv) || argv[i] == nil {
		return nil, nil
	}
	switch v := argv[i].(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%s(): Argument #%d must be of type string, %T given", fn, i+1, argv[i])
	}
}

// String reads argv[i] as a string; byte slices are converted.
func String(fn string, argv []any, i int) (string, error) {
	b, err := Bytes(fn, argv, i)
	return string(b), err
}

// Int reads argv[i] as an int, defaulting to def.
func Int(fn string, argv []any, i, def int) (int, error) {
	return args.Arg(fn, argv, i, def)
}

// Bool reads argv[i] as a bool, defaulting to def.
func Bool(fn string, argv []any, i int, def bool) (bool, error) {
	return args.Arg(fn, argv, i, def)
}

// Reason renders a filesystem error the way native diagnostics phrase it.
func Reason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrExist):
		return "File exists"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, fs.ErrClosed):
		return "Bad file descriptor"
	default:
		return err.Error()
	}
}
