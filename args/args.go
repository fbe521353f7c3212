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

// Package args models optional trailing arguments of native operations.
//
// Many natives distinguish "argument omitted" from "argument passed with its
// default value", or simply have a shorter native arity. Callers therefore
// describe each optional argument as an Opt, and Forward builds the shortest
// argument list that still carries every explicitly supplied value:
//
//	argv := args.Forward([]any{data}, level, encoding)
//	// level, encoding unset -> [data]
//	// level set             -> [data, level]
//	// encoding set only     -> [data, nil, encoding]
package args

import "fmt"

// Opt is an optional argument. The zero value means "not supplied".
//
// nil is the native "not given" placeholder, so Some of a nil value
// forwards the same argv as an unsupplied option in a gap: natives read it
// as their default. Pass a typed non-nil value to override a default.
type Opt[T any] struct {
	val T
	ok  bool
}

// Some returns a supplied optional argument.
func Some[T any](v T) Opt[T] { return Opt[T]{val: v, ok: true} }

// None returns an unsupplied optional argument. It equals the zero Opt.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the value and whether it was supplied.
func (o Opt[T]) Get() (T, bool) { return o.val, o.ok }

// IsSet reports whether the argument was supplied.
func (o Opt[T]) IsSet() bool { return o.ok }

// Or returns the supplied value or def.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.val
	}
	return def
}

// String renders the option for logs.
func (o Opt[T]) String() string {
	if !o.ok {
		return "<unset>"
	}
	return fmt.Sprint(o.val)
}

// Value is the type-erased view of an Opt that Forward consumes.
type Value interface {
	Forwarded() (any, bool)
}

// Forwarded implements Value.
func (o Opt[T]) Forwarded() (any, bool) { return o.val, o.ok }

// Forward returns required followed by the optional values up to and
// including the last supplied one. Unsupplied options that precede a
// supplied one are forwarded as nil, the native "not given" placeholder.
// A supplied nil still extends the arity but reads as not given.
// The returned slice never aliases required.
func Forward(required []any, optional ...Value) []any {
	last := -1
	for i, o := range optional {
		if o == nil {
			continue
		}
		if _, ok := o.Forwarded(); ok {
			last = i
		}
	}
	out := make([]any, 0, len(required)+last+1)
	out = append(out, required...)
	for i := 0; i <= last; i++ {
		if optional[i] == nil {
			out = append(out, nil)
			continue
		}
		if v, ok := optional[i].Forwarded(); ok {
			out = append(out, v)
		} else {
			out = append(out, nil)
		}
	}
	return out
}
