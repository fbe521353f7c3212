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
	"fmt"
	"maps"
	"strings"

	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/mapper/internal/segmenttrie"
	"dirpx.dev/guard/opname"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process:
//
//  1. Seed the builder with library defaults (per category and per operation prefix).
//  2. Apply user-provided options in order.
//  3. Normalize and validate every operation prefix (opname.Normalize).
//  4. Compile per-category segment tries for HTTP and gRPC.
//  5. Copy all maps so the snapshot shares nothing with the builder.
//
// Errors indicate an invalid category key or an invalid prefix.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	h, err := compile("HTTP", b.http)
	if err != nil {
		return nil, err
	}
	g, err := compile("gRPC", b.grpc)
	if err != nil {
		return nil, err
	}
	return &mapper{http: h, grpc: g}, nil
}

// resolver is the frozen, per-transport resolution table.
type resolver[V any] struct {
	defaults  map[category.Category]V
	overrides map[category.Category]V
	tries     map[category.Category]*segmenttrie.Trie[V]
	fallback  V
}

// source names the tier that produced a resolution.
type source string

const (
	sourceOverride source = "override"
	sourcePrefix   source = "prefix"
	sourceDefault  source = "default"
	sourceFallback source = "fallback"
)

// resolve applies, in order: category override, operation prefix (LPM),
// category default, global fallback.
func (r *resolver[V]) resolve(c category.Category, op opname.Name) (V, source, string) {
	if v, ok := r.overrides[c]; ok {
		return v, sourceOverride, ""
	}
	if op != opname.Empty {
		if t := r.tries[c]; t != nil {
			if v, ok, pat := t.MatchWithPattern(string(op)); ok {
				return v, sourcePrefix, pat
			}
		}
	}
	if v, ok := r.defaults[c]; ok {
		return v, sourceDefault, ""
	}
	return r.fallback, sourceFallback, ""
}

func compile[V any](transport string, t table[V]) (*resolver[V], error) {
	if err := validateKeys(t.defaults); err != nil {
		return nil, fmt.Errorf("mapper: %s default: %w", transport, err)
	}
	if err := validateKeys(t.overrides); err != nil {
		return nil, fmt.Errorf("mapper: %s override: %w", transport, err)
	}

	tries := make(map[category.Category]*segmenttrie.Trie[V], len(t.prefixes))
	for c, rules := range t.prefixes {
		if len(rules) == 0 {
			continue
		}
		if err := category.Validate(c); err != nil {
			return nil, fmt.Errorf("mapper: %s prefix category %q: %w", transport, c, err)
		}
		tr := segmenttrie.New[V]()
		for _, r := range rules {
			p, err := normalizePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid %s operation-prefix %q for category %q: %w", transport, r.prefix, c, err)
			}
			if err := tr.Insert(p, r.val); err != nil {
				return nil, fmt.Errorf("mapper: cannot insert %s prefix %q for category %q: %w", transport, p, c, err)
			}
		}
		tries[c] = tr
	}

	return &resolver[V]{
		defaults:  maps.Clone(t.defaults),
		overrides: maps.Clone(t.overrides),
		tries:     tries,
		fallback:  t.fallback,
	}, nil
}

func validateKeys[V any](m map[category.Category]V) error {
	for c := range m {
		if err := category.Validate(c); err != nil {
			return fmt.Errorf("category %q: %w", c, err)
		}
	}
	return nil
}

// normalizePrefix brings a prefix into canonical operation-name form.
// Segment validity is checked by the trie.
func normalizePrefix(raw string) (string, error) {
	p := opname.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	return p, nil
}

// mapper is the immutable apis.Mapper implementation. Lookups are O(depth)
// of the operation name and safe for concurrent use.
type mapper struct {
	http *resolver[int]
	grpc *resolver[codes.Code]
}

var _ apis.Mapper = (*mapper)(nil)

// HTTPStatus resolves an HTTP status for category c and operation op.
//
// Resolution order (highest to lowest):
//  1. category override;
//  2. longest operation-prefix rule of the category;
//  3. category default;
//  4. fallback (500).
func (m *mapper) HTTPStatus(c category.Category, op opname.Name) int {
	v, _, _ := m.http.resolve(c, op)
	return v
}

// GRPCStatus resolves a gRPC code with the same precedence as HTTPStatus;
// the fallback is codes.Internal.
func (m *mapper) GRPCStatus(c category.Category, op opname.Name) codes.Code {
	v, _, _ := m.grpc.resolve(c, op)
	return v
}

// Status resolves both transports for one error.
func (m *mapper) Status(c category.Category, op opname.Name) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(c, op),
		GRPC: m.GRPCStatus(c, op),
	}
}

// Explain renders which tier resolved each transport:
//
//	category="filesystem" operation="filesystem.file_get_contents"
//	http: source=prefix pattern="filesystem.file_get_contents" -> 404
//	grpc: source=prefix pattern="filesystem.file_get_contents" -> NOT_FOUND(5)
//
// The output is meant for people, not for parsing.
func (m *mapper) Explain(c category.Category, op opname.Name) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "category=%q operation=%q\n", c, op)

	hv, hsrc, hpat := m.http.resolve(c, op)
	writeLine(&b, "http", hsrc, hpat, fmt.Sprint(hv))
	b.WriteByte('\n')

	gv, gsrc, gpat := m.grpc.resolve(c, op)
	writeLine(&b, "grpc", gsrc, gpat, fmt.Sprintf("%s(%d)", CodeName(gv), int(gv)))
	return b.String()
}

func writeLine(b *strings.Builder, transport string, src source, pattern, value string) {
	if src == sourcePrefix {
		_, _ = fmt.Fprintf(b, "%s: source=%s pattern=%q -> %s", transport, src, pattern, value)
		return
	}
	_, _ = fmt.Fprintf(b, "%s: source=%s -> %s", transport, src, value)
}
