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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Category is the canonical, validated name of a functional domain.
//
// It is a distinct type (not just string) so that a raw diagnostic string can
// never be passed where a category is expected.
type Category string

// MinLength and MaxLength bound the length of a canonical category.
const (
	// MinLength keeps three-letter domains such as "url", "xml" and "var"
	// valid while rejecting ambiguous one- or two-letter names.
	MinLength = 3

	// MaxLength is the maximum length of a category.
	MaxLength = 64
)

const (
	// categoryFmt is the canonical pattern for categories.
	//
	//	^[a-z]          first character is a lowercase ASCII letter;
	//	[a-z0-9_]{2,63} the rest are lowercase letters, digits or underscore;
	//	$               total length 3..64.
	//
	// The {2,63} range is tied to MinLength / MaxLength above.
	categoryFmt = `^[a-z][a-z0-9_]{2,63}$`
)

var categoryRe = regexp.MustCompile(categoryFmt)

var (
	// ErrCategoryInvalid is returned when a value cannot be parsed or
	// validated as a category.
	ErrCategoryInvalid = errors.New("guard: invalid category")
)

var (
	_ encoding.TextMarshaler   = (*Category)(nil)
	_ encoding.TextUnmarshaler = (*Category)(nil)
)

// Empty is the zero-value category. It is what Parse returns on error and
// what a match-only lookup uses to mean "any category".
var Empty Category = ""

// Parse normalizes and validates s. On success it returns a canonical Category.
func Parse(s string) (Category, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Category(s), nil
}

// MustParse is the panic-on-error variant of Parse, meant for package-level
// declarations.
func MustParse(s string) Category {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings s closer to canonical form:
//
//   - trims surrounding spaces;
//   - lowercases the value;
//   - replaces '-' with '_';
//   - strips a trailing "exception" or "_error" suffix, so that names taken
//     from foreign error class names ("ZlibException", "hash-error") land on
//     the same category.
//
// It does NOT guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	for _, suffix := range []string{"exception", "_error"} {
		if trimmed := strings.TrimSuffix(s, suffix); trimmed != s && trimmed != "" {
			s = strings.TrimSuffix(trimmed, "_")
			break
		}
	}
	return s
}

// Validate checks whether c is a canonical category. Empty is invalid.
func Validate(c Category) error {
	return validate(string(c))
}

// String returns the canonical string representation of the category.
func (c Category) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It normalizes and validates the provided text before assigning.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if !categoryRe.MatchString(s) {
		return ErrCategoryInvalid
	}
	return nil
}
