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

// Package xml provides error-returning XML loading into element trees.
package xml

import (
	"context"

	"github.com/go-git/go-billy/v5"

	"dirpx.dev/guard"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/xml"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.XML)

// Element is a parsed XML element.
type Element = rt.Element

var (
	loadString = guard.Define(category.XML, "xml.simplexml_load_string", sentinel.False())
	loadFile   = guard.Define(category.XML, "xml.simplexml_load_file", sentinel.False())
)

// SimplexmlLoadString parses data and returns its root element.
func SimplexmlLoadString(ctx context.Context, data []byte) (*Element, error) {
	return guard.Invoke[*Element](ctx, loadString, rt.SimplexmlLoadString, []any{data})
}

// SimplexmlLoadFile parses the file name read from fs.
func SimplexmlLoadFile(ctx context.Context, fs billy.Filesystem, name string) (*Element, error) {
	r := &rt.Runtime{FS: fs}
	return guard.Invoke[*Element](ctx, loadFile, r.SimplexmlLoadFile, []any{name})
}
