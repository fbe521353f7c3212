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

// Package yaml is the native YAML runtime on gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// AllDocuments selects every document of a stream in Parse.
const AllDocuments = -1

// Parse decodes the document at pos, or all documents as a []any when pos
// is AllDocuments. ndocs is written only when the stream was read
// successfully, so a document holding the scalar false is still
// distinguishable from a failure.
func Parse(ctx context.Context, input string, pos int) (v any, ndocs int, ok bool) {
	const fn = "yaml_parse"
	if pos < AllDocuments {
		native.Fail(ctx, "%s(): Argument #2 ($pos) must be greater than or equal to -1", fn)
		return false, 0, false
	}

	var docs []any
	dec := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			native.Fail(ctx, "%s(): parsing error encountered during parsing: %s", fn, strings.TrimPrefix(err.Error(), "yaml: "))
			return false, 0, false
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		docs = []any{nil}
	}

	if pos == AllDocuments {
		return docs, len(docs), true
	}
	if pos >= len(docs) {
		native.Fail(ctx, "%s(): end of stream reached without finding document %d", fn, pos)
		return false, 0, false
	}
	return docs[pos], len(docs), true
}

// Emit renders value as a YAML document.
func Emit(ctx context.Context, argv ...any) any {
	const fn = "yaml_emit"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(argv[0]); err != nil {
		return native.Fail(ctx, "%s(): %s", fn, strings.TrimPrefix(err.Error(), "yaml: "))
	}
	if err := enc.Close(); err != nil {
		return native.Fail(ctx, "%s(): %s", fn, strings.TrimPrefix(err.Error(), "yaml: "))
	}
	return "---\n" + buf.String() + "...\n"
}
