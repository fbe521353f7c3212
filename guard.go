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

// Package guard turns sentinel-returning native operations into ordinary Go
// calls that return a value or a typed *Error.
//
// A native reports failure by returning a designated sentinel (false, nil,
// -1, an unset output) and optionally deposits a diagnostic message through
// the diag package. A guarded call runs the native exactly once against a
// fresh diagnostic slot, checks the sentinel and either passes the result
// through untouched or returns an *Error of the call site's category carrying
// the last diagnostic (or UnknownError).
//
//	var gzuncompress = guard.Define(category.Zlib, "zlib.gzuncompress", sentinel.False())
//
//	func Gzuncompress(ctx context.Context, data []byte, max args.Opt[int]) ([]byte, error) {
//		return guard.Invoke[[]byte](ctx, gzuncompress, native.Gzuncompress, []any{data}, max)
//	}
package guard

import (
	"context"
	"fmt"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/catalog"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/diag"
	"dirpx.dev/guard/opname"
	"dirpx.dev/guard/sentinel"
)

// Native is the calling convention of wrapped runtime operations: the
// native arity is len(argv), and failure is signalled by a sentinel result.
type Native func(ctx context.Context, argv ...any) any

// Site holds the static parameters of one guarded call site.
type Site[T any] struct {
	Name     opname.Name
	Category category.Category
	Sentinel sentinel.Rule[T]
}

// Define declares a call site and registers it in the catalog. It panics on
// an invalid category or operation name, so it belongs in package-level
// var blocks.
func Define[T any](c category.Category, name string, rule sentinel.Rule[T]) Site[T] {
	if err := category.Validate(c); err != nil {
		panic(fmt.Errorf("guard: define %q: %w", name, err))
	}
	n := opname.MustParse(name)
	catalog.Register(catalog.Entry{Name: n, Category: c, Sentinel: rule.String()})
	return Site[T]{Name: n, Category: c, Sentinel: rule}
}

// Call runs fn once and translates a sentinel result into an *Error.
//
// fn receives a context bound to a fresh diagnostic slot; whatever an
// earlier call left behind is never visible to it. On success the raw result
// is returned unchanged. On failure Call returns the zero T, never the
// sentinel itself.
func Call[T any](ctx context.Context, site Site[T], fn func(context.Context) T) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cctx, slot := diag.Scope(ctx)

	res := fn(cctx)
	if !site.Sentinel.Match(res) {
		return res, nil
	}

	msg := UnknownError
	if e, ok := slot.Take(); ok {
		msg = e.Message
	}
	err := &Error{Category: siteCategory(site.Category), Operation: site.Name, Message: msg}
	logFailure(ctx, err)

	var zero T
	return zero, err
}

// CallAs is Call for natives with a dynamic result. The pass-through value
// is narrowed to R; a nil result yields the zero R. A non-sentinel result of
// another type is reported as an *Error of the site's category.
func CallAs[R any](ctx context.Context, site Site[any], fn func(context.Context) any) (R, error) {
	var zero R
	raw, err := Call(ctx, site, fn)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	v, ok := raw.(R)
	if !ok {
		e := &Error{
			Category:  siteCategory(site.Category),
			Operation: site.Name,
			Message:   fmt.Sprintf("%s(): unexpected result of type %T", site.Name.Function(), raw),
		}
		logFailure(ctx, e)
		return zero, e
	}
	return v, nil
}

// Invoke calls fn with required followed by the supplied prefix of optional
// (see args.Forward) and narrows the result like CallAs.
func Invoke[R any](ctx context.Context, site Site[any], fn Native, required []any, optional ...args.Value) (R, error) {
	argv := args.Forward(required, optional...)
	return CallAs[R](ctx, site, func(ctx context.Context) any {
		return fn(ctx, argv...)
	})
}

func siteCategory(c category.Category) category.Category {
	if c == category.Empty {
		return category.Internal
	}
	return c
}
