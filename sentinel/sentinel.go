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

// Package sentinel declares how a native operation signals failure through
// its return value.
//
// Native operations return either a regular value or a designated sentinel
// (false, nil, -1, ...). A Rule names that sentinel and decides, for one raw
// result, whether it is the failure signal.
package sentinel

import "reflect"

// Predicate reports whether a raw result is the failure sentinel.
type Predicate[T any] func(T) bool

// Rule couples a Predicate with a short description used in catalog
// listings, e.g. "false" or "-1".
type Rule[T any] struct {
	Desc   string
	Failed Predicate[T]
}

// String returns the rule description.
func (r Rule[T]) String() string { return r.Desc }

// Match applies the rule. A rule without a predicate never matches.
func (r Rule[T]) Match(v T) bool {
	if r.Failed == nil {
		return false
	}
	return r.Failed(v)
}

// Integer is the set of integer kinds MinusOne accepts.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// False matches a dynamic result that is identical to boolean false.
// Any other value, including 0, "" and nil, is a success.
func False() Rule[any] {
	return Rule[any]{Desc: "false", Failed: func(v any) bool {
		b, ok := v.(bool)
		return ok && !b
	}}
}

// FalseOrNil matches boolean false and nil. It is used by natives that
// return nil when they produced no value at all.
func FalseOrNil() Rule[any] {
	return Rule[any]{Desc: "false|null", Failed: func(v any) bool {
		if isNil(v) {
			return true
		}
		b, ok := v.(bool)
		return ok && !b
	}}
}

// Nil matches nil interfaces and nil pointers, maps, slices, channels and funcs.
func Nil[T any]() Rule[T] {
	return Rule[T]{Desc: "null", Failed: func(v T) bool { return isNil(v) }}
}

// MinusOne matches the integer -1.
func MinusOne[T Integer]() Rule[T] {
	return Rule[T]{Desc: "-1", Failed: func(v T) bool { return v == -1 }}
}

// Equal matches results equal to want.
func Equal[T comparable](want T) Rule[T] {
	return Rule[T]{Desc: "equal", Failed: func(v T) bool { return v == want }}
}

// Zero matches the zero value of T.
func Zero[T comparable]() Rule[T] {
	var zero T
	return Rule[T]{Desc: "zero", Failed: func(v T) bool { return v == zero }}
}

// Custom wraps an arbitrary predicate.
func Custom[T any](desc string, fn Predicate[T]) Rule[T] {
	return Rule[T]{Desc: desc, Failed: fn}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
