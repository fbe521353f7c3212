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
	"dirpx.dev/guard/category"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTPDefault sets or replaces the default HTTP status for category c.
func WithHTTPDefault(c category.Category, status int) Option {
	return func(b *builder) { b.http.defaults[c] = status }
}

// WithGRPCDefault sets or replaces the default gRPC code for category c.
func WithGRPCDefault(c category.Category, code codes.Code) Option {
	return func(b *builder) { b.grpc.defaults[c] = code }
}

// WithHTTPOverride forces the HTTP status of every error of category c,
// regardless of operation.
func WithHTTPOverride(c category.Category, status int) Option {
	return func(b *builder) { b.http.overrides[c] = status }
}

// WithGRPCOverride forces the gRPC code of every error of category c.
func WithGRPCOverride(c category.Category, code codes.Code) Option {
	return func(b *builder) { b.grpc.overrides[c] = code }
}

// WithHTTPPrefix adds an HTTP rule for operations of category c whose name
// starts with prefix, segment-wise. The deepest prefix wins; "*" matches
// exactly one segment.
func WithHTTPPrefix(c category.Category, prefix string, status int) Option {
	return func(b *builder) { b.http.addPrefix(c, prefix, status) }
}

// WithGRPCPrefix is the gRPC counterpart of WithHTTPPrefix.
func WithGRPCPrefix(c category.Category, prefix string, code codes.Code) Option {
	return func(b *builder) { b.grpc.addPrefix(c, prefix, code) }
}

// WithStatusPrefix adds the same prefix rule for both transports.
func WithStatusPrefix(c category.Category, prefix string, status int, code codes.Code) Option {
	return func(b *builder) {
		b.http.addPrefix(c, prefix, status)
		b.grpc.addPrefix(c, prefix, code)
	}
}
