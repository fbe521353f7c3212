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

// Package yaml provides error-returning YAML parsing and emitting.
package yaml

import (
	"context"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/yaml"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.YAML)

// AllDocuments makes YamlParse return every document of the stream.
const AllDocuments = rt.AllDocuments

var (
	yamlParse = guard.Define(category.YAML, "yaml.yaml_parse", guard.AuxUnset[any, int]())
	yamlEmit  = guard.Define(category.YAML, "yaml.yaml_emit", sentinel.False())
)

// YamlParse decodes the document at pos (default 0) and reports how many
// documents the stream holds. A document whose value is false is returned
// as false, not as an error.
func YamlParse(ctx context.Context, input string, pos args.Opt[int]) (v any, ndocs int, err error) {
	return guard.CallOut(ctx, yamlParse, func(ctx context.Context) (any, int, bool) {
		return rt.Parse(ctx, input, pos.Or(0))
	})
}

// YamlEmit renders value as a YAML document with explicit start and end
// markers.
func YamlEmit(ctx context.Context, value any) (string, error) {
	return guard.Invoke[string](ctx, yamlEmit, rt.Emit, []any{value})
}
