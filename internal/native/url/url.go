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

// Package url is the native URL runtime: URL parsing, query building and
// base64 decoding.
package url

import (
	"context"
	"encoding/base64"
	"fmt"
	neturl "net/url"
	"sort"
	"strconv"
	"strings"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// URL components accepted by ParseURL.
const (
	ComponentAll = iota - 1
	ComponentScheme
	ComponentHost
	ComponentPort
	ComponentUser
	ComponentPass
	ComponentPath
	ComponentQuery
	ComponentFragment
)

// Query encodings accepted by HTTPBuildQuery.
const (
	RFC1738 = 1
	RFC3986 = 2
)

// Parts is the decomposition of a URL. Port is 0 when absent.
type Parts struct {
	Scheme   string `json:"scheme,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
	Pass     string `json:"pass,omitempty"`
	Path     string `json:"path,omitempty"`
	Query    string `json:"query,omitempty"`
	Fragment string `json:"fragment,omitempty"`
}

// ParseURL splits a URL into Parts, or returns one component. A missing
// component yields nil. Malformed URLs fail without a diagnostic.
// argv: url, component=ComponentAll.
func ParseURL(ctx context.Context, argv ...any) any {
	const fn = "parse_url"
	if err := args.Check(fn, argv, 1, 2); err != nil {
		return native.Bad(ctx, err)
	}
	raw, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	component, err := native.Int(fn, argv, 1, ComponentAll)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if component < ComponentAll || component > ComponentFragment {
		return native.Fail(ctx, "%s(): Argument #2 ($component) must be a valid URL component identifier, %d given", fn, component)
	}

	u, err := neturl.Parse(raw)
	if err != nil {
		return false
	}
	p := &Parts{
		Scheme:   u.Scheme,
		Host:     u.Hostname(),
		Path:     u.Path,
		Query:    u.RawQuery,
		Fragment: u.Fragment,
	}
	if u.Opaque != "" {
		p.Path = u.Opaque
	}
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > 65535 {
			return false
		}
		p.Port = n
	}
	if u.User != nil {
		p.User = u.User.Username()
		p.Pass, _ = u.User.Password()
	}

	switch component {
	case ComponentAll:
		return p
	case ComponentPort:
		if p.Port == 0 {
			return nil
		}
		return p.Port
	}
	v := [...]string{p.Scheme, p.Host, "", p.User, p.Pass, p.Path, p.Query, p.Fragment}[component]
	if v == "" {
		return nil
	}
	return v
}

// HTTPBuildQuery renders a URL-encoded query string with sorted keys.
// Nested maps and slices use bracket notation.
// argv: data, numeric_prefix="", arg_separator="&", encoding_type=RFC1738.
func HTTPBuildQuery(ctx context.Context, argv ...any) any {
	const fn = "http_build_query"
	if err := args.Check(fn, argv, 1, 4); err != nil {
		return native.Bad(ctx, err)
	}
	data, ok := argv[0].(map[string]any)
	if !ok {
		return native.Fail(ctx, "%s(): Argument #1 ($data) must be of type array, %T given", fn, argv[0])
	}
	prefix, err := native.String(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	sep, err := args.Arg(fn, argv, 2, "&")
	if err != nil {
		return native.Bad(ctx, err)
	}
	enc, err := native.Int(fn, argv, 3, RFC1738)
	if err != nil {
		return native.Bad(ctx, err)
	}
	escape := neturl.QueryEscape
	if enc == RFC3986 {
		escape = func(s string) string {
			return strings.ReplaceAll(neturl.QueryEscape(s), "+", "%20")
		}
	}

	var pairs []string
	var walk func(key string, v any) error
	walk = func(key string, v any) error {
		switch t := v.(type) {
		case nil:
		case map[string]any:
			for _, k := range sortedKeys(t) {
				if err := walk(key+"["+k+"]", t[k]); err != nil {
					return err
				}
			}
		case []any:
			for i, e := range t {
				if err := walk(key+"["+strconv.Itoa(i)+"]", e); err != nil {
					return err
				}
			}
		case bool:
			b := "0"
			if t {
				b = "1"
			}
			pairs = append(pairs, escape(key)+"="+b)
		case string, int, int64, float64:
			pairs = append(pairs, escape(key)+"="+escape(fmt.Sprint(t)))
		default:
			return fmt.Errorf("%s(): Unsupported value of type %T for key %q", fn, v, key)
		}
		return nil
	}
	for _, k := range sortedKeys(data) {
		key := k
		if _, err := strconv.Atoi(k); err == nil {
			key = prefix + k
		}
		if err := walk(key, data[k]); err != nil {
			return native.Bad(ctx, err)
		}
	}
	return strings.Join(pairs, sep)
}

// Base64Decode decodes standard base64. Outside strict mode characters
// outside the alphabet are skipped; in strict mode they fail the call
// without a diagnostic. argv: string, strict=false.
func Base64Decode(ctx context.Context, argv ...any) any {
	const fn = "base64_decode"
	if err := args.Check(fn, argv, 1, 2); err != nil {
		return native.Bad(ctx, err)
	}
	s, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	strict, err := native.Bool(fn, argv, 1, false)
	if err != nil {
		return native.Bad(ctx, err)
	}

	var body strings.Builder
	pad := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isAlphabet(c):
			if strict && pad > 0 {
				return false
			}
			body.WriteByte(c)
		case c == '=':
			pad++
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		default:
			if strict {
				return false
			}
		}
	}
	b := body.String()
	if len(b)%4 == 1 {
		if strict {
			return false
		}
		b = b[:len(b)-1]
	}
	if strict && pad > 0 && (pad > 2 || (len(b)+pad)%4 != 0) {
		return false
	}
	out, err := base64.RawStdEncoding.DecodeString(b)
	if err != nil {
		return false
	}
	return out
}

func isAlphabet(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '/'
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
