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

package mapper

import (
	"net/http"

	"dirpx.dev/guard/category"
	"google.golang.org/grpc/codes"
)

// prefixRule is an operation-name prefix rule before compilation.
type prefixRule[V any] struct {
	// prefix is the raw dotted operation prefix (may contain "*").
	// It is normalized and validated in New.
	prefix string
	val    V
}

// table is the per-transport part of the builder.
type table[V any] struct {
	defaults  map[category.Category]V
	overrides map[category.Category]V
	prefixes  map[category.Category][]prefixRule[V]
	fallback  V
}

func newTable[V any](fallback V, defaults map[category.Category]V) table[V] {
	t := table[V]{
		defaults:  make(map[category.Category]V, len(defaults)),
		overrides: make(map[category.Category]V),
		prefixes:  make(map[category.Category][]prefixRule[V]),
		fallback:  fallback,
	}
	for k, v := range defaults {
		t.defaults[k] = v
	}
	return t
}

func (t *table[V]) addPrefix(c category.Category, prefix string, v V) {
	t.prefixes[c] = append(t.prefixes[c], prefixRule[V]{prefix: prefix, val: v})
}

type builder struct {
	http table[int]
	grpc table[codes.Code]
}

// newBuilder returns a builder seeded with the library defaults.
func newBuilder() *builder {
	b := &builder{
		http: newTable(http.StatusInternalServerError, defaultHTTP),
		grpc: newTable(codes.Internal, defaultGRPC),
	}
	for _, d := range defaultPrefixes {
		b.http.addPrefix(d.category, d.prefix, d.http)
		b.grpc.addPrefix(d.category, d.prefix, d.grpc)
	}
	return b
}
