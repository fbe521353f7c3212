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

// Package url provides error-returning URL parsing, query building and
// base64 decoding.
package url

import (
	"context"
	"strconv"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/url"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.URL)

// Parts is the decomposition of a URL.
type Parts = rt.Parts

// URL components for ParseURLComponent.
const (
	ComponentScheme   = rt.ComponentScheme
	ComponentHost     = rt.ComponentHost
	ComponentPort     = rt.ComponentPort
	ComponentUser     = rt.ComponentUser
	ComponentPass     = rt.ComponentPass
	ComponentPath     = rt.ComponentPath
	ComponentQuery    = rt.ComponentQuery
	ComponentFragment = rt.ComponentFragment
)

// Query encodings for HTTPBuildQuery.
const (
	RFC1738 = rt.RFC1738
	RFC3986 = rt.RFC3986
)

var (
	parseURL       = guard.Define(category.URL, "url.parse_url", sentinel.False())
	httpBuildQuery = guard.Define(category.URL, "url.http_build_query", sentinel.False())
	base64Decode   = guard.Define(category.URL, "url.base64_decode", sentinel.False())
)

// ParseURL splits raw into its components.
func ParseURL(ctx context.Context, raw string) (*Parts, error) {
	return guard.Invoke[*Parts](ctx, parseURL, rt.ParseURL, []any{raw})
}

// ParseURLComponent returns one component of raw. ok is false when the
// component is absent.
func ParseURLComponent(ctx context.Context, raw string, component int) (v string, ok bool, err error) {
	res, err := guard.Invoke[any](ctx, parseURL, rt.ParseURL, []any{raw}, args.Some(component))
	if err != nil || res == nil {
		return "", false, err
	}
	switch t := res.(type) {
	case int:
		return strconv.Itoa(t), true, nil
	case string:
		return t, true, nil
	}
	return "", false, nil
}

// HTTPBuildQuery encodes data as a query string. Keys are sorted.
func HTTPBuildQuery(ctx context.Context, data map[string]any, numericPrefix, separator args.Opt[string], encoding args.Opt[int]) (string, error) {
	return guard.Invoke[string](ctx, httpBuildQuery, rt.HTTPBuildQuery, []any{data}, numericPrefix, separator, encoding)
}

// Base64Decode decodes s. In strict mode any character outside the
// alphabet is an error.
func Base64Decode(ctx context.Context, s string, strict args.Opt[bool]) ([]byte, error) {
	return guard.Invoke[[]byte](ctx, base64Decode, rt.Base64Decode, []any{s}, strict)
}
