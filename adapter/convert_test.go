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

package adapter

import (
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/guard"
	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/mapper"
	"google.golang.org/grpc/codes"
)

func TestToDescriptor(t *testing.T) {
	e := guard.E(category.Zlib, "data error", guard.WithOperationOption("zlib.gzuncompress"))
	d := ToDescriptor(e, apis.Status{HTTP: 400, GRPC: codes.InvalidArgument})
	want := apis.ErrorDescriptor{
		Category:   "zlib",
		Operation:  "zlib.gzuncompress",
		HTTPStatus: 400,
		GRPCCode:   3,
		Message:    "data error",
	}
	if d != want {
		t.Fatalf("ToDescriptor = %+v, want %+v", d, want)
	}
	if ToDescriptor(nil, apis.Status{}) != (apis.ErrorDescriptor{}) {
		t.Fatal("nil error must give an empty descriptor")
	}
}

func TestToView(t *testing.T) {
	e := guard.E(category.Dir, "failed to open dir", guard.WithDetailOption("path", "/nope"))
	v := ToView(e)
	if v.Category != "dir" || v.Message != "failed to open dir" {
		t.Fatalf("view = %+v", v)
	}
	if len(v.Details) != 1 || v.Details[0].Field != "path" || v.Details[0].Value != "/nope" {
		t.Fatalf("details = %+v", v.Details)
	}
}

func TestDescribe(t *testing.T) {
	m, err := mapper.New()
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	wrapped := fmt.Errorf("handler: %w", guard.E(category.Filesystem, "No such file", guard.WithOperationOption("filesystem.file_get_contents")))
	if d := Describe(m, wrapped); d.HTTPStatus != 404 || d.Category != "filesystem" {
		t.Fatalf("Describe = %+v", d)
	}

	plain := errors.New("boom")
	d := Describe(m, plain)
	if d.Category != "internal" || d.HTTPStatus != 500 || d.Message != "boom" {
		t.Fatalf("Describe(plain) = %+v", d)
	}
	if !errors.Is(AsGuard(plain), plain) {
		t.Fatal("AsGuard must keep the cause")
	}
}
