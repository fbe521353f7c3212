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

package args

import "fmt"

// ArityError describes an argv whose length is outside the accepted range.
type ArityError struct {
	Fn       string
	Min, Max int
	Given    int
}

func (e *ArityError) Error() string {
	switch {
	case e.Min == e.Max:
		return fmt.Sprintf("%s() expects exactly %d arguments, %d given", e.Fn, e.Min, e.Given)
	case e.Given < e.Min:
		return fmt.Sprintf("%s() expects at least %d arguments, %d given", e.Fn, e.Min, e.Given)
	default:
		return fmt.Sprintf("%s() expects at most %d arguments, %d given", e.Fn, e.Max, e.Given)
	}
}

// Check validates len(argv) against [min, max].
func Check(fn string, argv []any, min, max int) error {
	if len(argv) < min || len(argv) > max {
		return &ArityError{Fn: fn, Min: min, Max: max, Given: len(argv)}
	}
	return nil
}

// Arg reads argv[i] as T. A missing index or a nil placeholder yields def.
// A value of another type is reported as an error naming the 1-based position.
func Arg[T any](fn string, argv []any, i int, def T) (T, error) {
	if i >= len(argv) || argv[i] == nil {
		return def, nil
	}
	v, ok := argv[i].(T)
	if !ok {
		var want T
		return def, fmt.Errorf("%s(): Argument #%d must be of type %T, %T given", fn, i+1, want, argv[i])
	}
	return v, nil
}

// Supplied reports whether argv carries a non-placeholder value at i.
func Supplied(argv []any, i int) bool {
	return i < len(argv) && argv[i] != nil
}
