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

// Package opname defines the identifier of a guarded native operation.
//
// An operation name is a dot-separated hierarchical identifier whose first
// segment is normally the category and whose last segment is the native
// function name:
//
//   - "zlib.gzcompress"
//   - "filesystem.file_get_contents"
//   - "session.redis.regenerate_id"
//
// Names are what translated errors report as "which call failed" and what
// the status mapper matches prefixes against.
package opname

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Name is the canonical, validated identifier of a native operation.
type Name string

// MinLength and MaxLength bound the length of a non-empty Name.
const (
	MinLength = 3
	MaxLength = 128
)

// nameFmt accepts 1 to 4 dot-separated segments, each [a-z][a-z0-9_]*.
const nameFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var nameRe = regexp.MustCompile(nameFmt)

var (
	// ErrNameInvalidFormat is returned when a name does not match nameFmt.
	ErrNameInvalidFormat = errors.New("guard: invalid operation name format")
	// ErrNameInvalidLength is returned when a name is too short or too long.
	ErrNameInvalidLength = errors.New("guard: invalid operation name length")
)

var (
	_ encoding.TextMarshaler   = (*Name)(nil)
	_ encoding.TextUnmarshaler = (*Name)(nil)
)

// Empty is the zero-value name, meaning "operation not recorded".
var Empty Name = ""

// Normalize trims, lowercases, converts "/" and "::" to "." and "-" to "_".
// It does NOT guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "::", ".")
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Parse normalizes and validates s. The empty string yields Empty without error.
func Parse(s string) (Name, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Name(s), nil
}

// MustParse is the panic-on-error variant of Parse. Unlike Parse it rejects
// the empty string: a call site without a name is a programmer error.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if n == Empty {
		panic("guard: empty operation name in MustParse")
	}
	return n
}

// Join builds "<prefix>.<fn>" and parses the result.
func Join(prefix, fn string) (Name, error) {
	return Parse(prefix + "." + fn)
}

// Validate reports whether n is canonical. Empty is valid.
func Validate(n Name) error {
	if n == Empty {
		return nil
	}
	return validate(string(n))
}

// String returns the canonical string representation of the name.
func (n Name) String() string {
	return string(n)
}

// Function returns the last segment of the name, i.e. the native function.
func (n Name) Function() string {
	s := string(n)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// MarshalText implements encoding.TextMarshaler. Empty marshals to an empty slice.
func (n Name) MarshalText() ([]byte, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}
	if n == Empty {
		return []byte{}, nil
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrNameInvalidLength
	}
	if !nameRe.MatchString(s) {
		return ErrNameInvalidFormat
	}
	return nil
}
