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

package guard

import (
	"context"

	"dirpx.dev/guard/sentinel"
)

// Out is the composite result of a native that reports part of its result
// through an output parameter. AuxSet records whether the native wrote Aux.
type Out[T, O any] struct {
	Value  T
	Aux    O
	AuxSet bool
}

// Primary lifts a rule on the primary value to Out. Aux never takes part in
// failure detection.
func Primary[T, O any](rule sentinel.Rule[T]) sentinel.Rule[Out[T, O]] {
	return sentinel.Custom(rule.Desc, func(o Out[T, O]) bool { return rule.Match(o.Value) })
}

// AuxUnset treats an output parameter the native never wrote as failure.
func AuxUnset[T, O any]() sentinel.Rule[Out[T, O]] {
	return sentinel.Custom("unset", func(o Out[T, O]) bool { return !o.AuxSet })
}

// CallOut guards a native with an output parameter. The auxiliary output is
// returned on both paths; the primary value only on success.
func CallOut[T, O any](ctx context.Context, site Site[Out[T, O]], fn func(context.Context) (T, O, bool)) (T, O, error) {
	var aux O
	out, err := Call(ctx, site, func(ctx context.Context) Out[T, O] {
		v, a, set := fn(ctx)
		aux = a
		return Out[T, O]{Value: v, Aux: a, AuxSet: set}
	})
	if err != nil {
		var zero T
		return zero, aux, err
	}
	return out.Value, out.Aux, nil
}
