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

package category

import (
	"encoding"
	"sort"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  zlib  ", "zlib"},
		{"to lower", "FileSystem", "filesystem"},
		{"dash to underscore", "file-system", "file_system"},
		{"exception suffix", "ZlibException", "zlib"},
		{"error suffix", "hash-error", "hash"},
		{"bare suffix kept", "exception", "exception"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Category
	}{
		{"simple", "dir", Dir},
		{"with spaces", "  filesystem  ", Filesystem},
		{"upper", "URL", URL},
		{"class name", "DirException", Dir},
		{"min length", "xml", XML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", "io"},
		{"starts with digit", "7zip"},
		{"dot", "zlib.gz"},
		{"too long", "a_very_long_category_that_is_definitely_more_than_sixty_four_chars"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", tt.in, got)
			}
			if err != ErrCategoryInvalid {
				t.Fatalf("Parse(%q) error = %v, want ErrCategoryInvalid", tt.in, err)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
			}
		})
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse should panic on invalid input")
		}
	}()
	_ = MustParse("?? not a category")
}

func TestCategory_TextRoundTrip(t *testing.T) {
	text, err := Zlib.MarshalText()
	if err != nil || string(text) != "zlib" {
		t.Fatalf("MarshalText() = %q, %v; want zlib, nil", text, err)
	}
	if _, err := Category("Bad-One").MarshalText(); err == nil {
		t.Fatalf("MarshalText() on invalid category must return error")
	}

	var c Category
	if err := c.UnmarshalText([]byte("  ShmopException ")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	if c != Shmop {
		t.Fatalf("UnmarshalText() = %q, want %q", c, Shmop)
	}
	var bad Category
	if err := bad.UnmarshalText([]byte("!!")); err == nil {
		t.Fatalf("UnmarshalText() expected error for invalid input")
	}
}

func TestCategory_ImplementsTextInterfaces(t *testing.T) {
	var _ encoding.TextMarshaler = (*Category)(nil)
	var _ encoding.TextUnmarshaler = (*Category)(nil)
}

func TestCatalogue_ValidSortedAndCopied(t *testing.T) {
	cats := All()
	if !sort.SliceIsSorted(cats, func(i, j int) bool { return cats[i] < cats[j] }) {
		t.Fatalf("All() must be sorted: %v", cats)
	}
	for _, c := range cats {
		if err := Validate(c); err != nil {
			t.Fatalf("catalogue entry %q invalid: %v", c, err)
		}
		if !Known(c) {
			t.Fatalf("Known(%q) = false", c)
		}
	}
	cats[0] = "mutated"
	if All()[0] == "mutated" {
		t.Fatalf("All() must return a copy")
	}
	if Known("made_up") {
		t.Fatalf("Known(made_up) = true")
	}
}
