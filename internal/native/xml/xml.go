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

// Package xml is the native XML runtime: documents parsed into an element
// tree.
package xml

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Element is one node of a parsed document.
type Element struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Element
}

// Attr returns the attribute name.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Child returns the direct children called name.
func (e *Element) Child(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Path walks a slash-separated list of child names, e.g. "items/item",
// and returns every element it reaches.
func (e *Element) Path(p string) []*Element {
	cur := []*Element{e}
	for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
		if seg == "" {
			continue
		}
		var next []*Element
		for _, el := range cur {
			next = append(next, el.Child(seg)...)
		}
		cur = next
	}
	return cur
}

// SimplexmlLoadString parses a document. argv: data.
func SimplexmlLoadString(ctx context.Context, argv ...any) any {
	const fn = "simplexml_load_string"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	data, err := native.Bytes(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	return parse(ctx, fn, data)
}

// Runtime serves the loaders that read files.
type Runtime struct {
	FS billy.Filesystem
}

// SimplexmlLoadFile parses the document stored in a file. argv: filename.
func (r *Runtime) SimplexmlLoadFile(ctx context.Context, argv ...any) any {
	const fn = "simplexml_load_file"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	f, err := r.FS.Open(name)
	if err != nil {
		return native.Fail(ctx, "%s(): I/O warning : failed to load external entity \"%s\"", fn, name)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
	}
	return parse(ctx, fn, data)
}

func parse(ctx context.Context, fn string, data []byte) any {
	if len(bytes.TrimSpace(data)) == 0 {
		return native.Fail(ctx, "%s(): Argument #1 ($data) cannot be empty", fn)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return native.Fail(ctx, "%s(): %s", fn, describe(err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return native.Fail(ctx, "%s(): Entity: line %d: parser error : Extra content at the end of the document", fn, line(data, dec.InputOffset()))
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return native.Fail(ctx, "%s(): Entity: line %d: parser error : Start tag expected, '<' not found", fn, line(data, dec.InputOffset()))
			}
		}
	}
	if root == nil {
		return native.Fail(ctx, "%s(): Entity: line 1: parser error : Start tag expected, '<' not found", fn)
	}
	trim(root)
	return root
}

func trim(e *Element) {
	if len(e.Children) > 0 {
		e.Text = strings.TrimSpace(e.Text)
	}
	for _, c := range e.Children {
		trim(c)
	}
}

func describe(err error) string {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return fmt.Sprintf("Entity: line %d: parser error : %s", syn.Line, syn.Msg)
	}
	return err.Error()
}

func line(data []byte, off int64) int {
	if off > int64(len(data)) {
		off = int64(len(data))
	}
	return bytes.Count(data[:off], []byte("\n")) + 1
}
