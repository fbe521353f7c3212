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

// Package mapper provides deterministic, immutable mappings from translated
// error categories (dirpx.dev/guard/category) and failing operations
// (dirpx.dev/guard/opname) to transport-level statuses for HTTP and gRPC.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. category override;
//  2. per-category longest-prefix-match (LPM) on the operation name;
//  3. per-category default (library or user-adjusted);
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: operation names are "."-separated
// segments, and "*" matches exactly one segment:
//
//	WithHTTPPrefix(category.Filesystem, "filesystem.file_get_contents", http.StatusNotFound)
//	WithHTTPPrefix(category.Session, "session.*.write", http.StatusServiceUnavailable)
//
// The deeper prefix wins.
//
// # Library defaults
//
// Every category of the catalogue has a default. Input-processing categories
// (zlib, hash, xml, url, yaml, ...) map to 400 / InvalidArgument, host
// resource categories to 5xx / Internal, and a handful of operations are
// refined by prefix defaults (a missing file read maps to 404 / NotFound).
//
// # Building a mapper
//
//	opts, err := mapper.ParseOverrides(os.Getenv("GUARD_STATUS_OVERRIDES"))
//	if err != nil { ... }
//	m, err := mapper.New(opts...)
//	if err != nil { ... }
//
//	st := m.Status(category.Zlib, "zlib.gzuncompress")
//	// st.HTTP == 400, st.GRPC == codes.InvalidArgument
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of which tier matched and,
// for prefixes, which pattern was used.
//
// # Immutability
//
// All inputs are copied during New. A Mapper can be shared across handlers,
// goroutines and requests.
package mapper
