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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/guard/category"
	"dirpx.dev/guard/opname"
)

// ErrInvalidOverride is returned by ParseOverrides for a malformed entry.
var ErrInvalidOverride = errors.New("mapper: invalid status override")

// ParseOverrides turns a comma-separated override list into options:
//
//	filesystem=404,url=400/INVALID_ARGUMENT,sqlite.sqlite3.open=503/14
//
// A key without a dot names a category and yields WithHTTPOverride (and
// WithGRPCOverride when a gRPC code follows the slash). A dotted key is an
// operation prefix of the category named by its first segment and yields
// prefix rules. Empty entries are ignored.
func ParseOverrides(spec string) ([]Option, error) {
	var opts []Option
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, val, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q: missing '='", ErrInvalidOverride, entry)
		}
		httpPart, grpcPart, hasGRPC := strings.Cut(strings.TrimSpace(val), "/")

		status, err := strconv.Atoi(strings.TrimSpace(httpPart))
		if err != nil || status < 100 || status > 599 {
			return nil, fmt.Errorf("%w: %q: bad HTTP status %q", ErrInvalidOverride, entry, httpPart)
		}

		key = opname.Normalize(key)
		head, _, dotted := strings.Cut(key, ".")
		c, err := category.Parse(head)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidOverride, entry, err)
		}

		if dotted {
			opts = append(opts, WithHTTPPrefix(c, key, status))
		} else {
			opts = append(opts, WithHTTPOverride(c, status))
		}
		if !hasGRPC {
			continue
		}
		code, ok := ParseCode(grpcPart)
		if !ok {
			return nil, fmt.Errorf("%w: %q: bad gRPC code %q", ErrInvalidOverride, entry, grpcPart)
		}
		if dotted {
			opts = append(opts, WithGRPCPrefix(c, key, code))
		} else {
			opts = append(opts, WithGRPCOverride(c, code))
		}
	}
	return opts, nil
}
