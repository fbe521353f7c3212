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

// Package category provides parsing, normalization and validation for guard
// error categories.
//
// A "category" names the functional domain a guarded native operation belongs
// to, such as "dir", "zlib", "hash" or "filesystem". Every translated error
// carries exactly one category, and callers match on it to tell a compression
// failure from a directory failure without inspecting message text.
//
// Categories are:
//
//   - short and stable;
//   - lowercased;
//   - underscore-separated (not dash-separated);
//   - suitable for use in JSON/proto payloads and as mapper keys.
//
// IMPORTANT: Empty categories ("") are NOT allowed on translated errors.
package category
