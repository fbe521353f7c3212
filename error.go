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

package guard

import (
	"errors"
	"fmt"
	"sort"

	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/opname"
)

// UnknownError is the message used when a native signalled failure through
// its sentinel but left no diagnostic behind.
const UnknownError = "Unknown error"

// Error is the translated error produced by a guarded call.
//
// It carries:
//   - Category: the functional domain of the failing operation (required);
//   - Operation: the native operation that failed, e.g. "zlib.gzuncompress";
//   - Message: the diagnostic text captured at failure time;
//   - Details: optional key/value payload for logs and transports;
//   - Cause: wrapped underlying error, if any.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be shared between goroutines.
type Error struct {
	// Category selects the error kind. Callers match on it with errors.Is
	// against the Err value of a safe package, or with IsCategory.
	Category category.Category

	// Operation names the failing native. May be empty for errors built
	// outside a guarded call.
	Operation opname.Name

	// Message is the last diagnostic reported by the native, or UnknownError.
	Message string

	// Details is treated as immutable: WithDetail/WithDetails always copy it.
	Details map[string]any

	// Cause holds the wrapped underlying error (if any).
	Cause error
}

var (
	_ apis.CategorizedError = (*Error)(nil)
	_ apis.OperationError   = (*Error)(nil)
	_ apis.DetailedError    = (*Error)(nil)
	_ apis.CausedError      = (*Error)(nil)
	_ apis.ViewProvider     = (*Error)(nil)
)

// E is a convenience constructor for Error.
//
//	return guard.E(category.Filesystem, "No such file or directory",
//	    guard.WithOperationOption("filesystem.file_get_contents"),
//	    guard.WithDetailOption("path", p),
//	)
func E(c category.Category, msg string, opts ...Option) *Error {
	e := &Error{Category: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Kind returns a match-only error for category c:
//
//	if errors.Is(err, guard.Kind(category.Zlib)) { ... }
func Kind(c category.Category) *Error {
	return &Error{Category: c}
}

// Error implements the built-in error interface.
//
// The format is "<category>: <message>", or "<category>:<operation>: <message>"
// when the operation is known.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Operation != "" && e.Message != "":
		return fmt.Sprintf("%s:%s: %s", e.Category, e.Operation, e.Message)
	case e.Operation != "":
		return fmt.Sprintf("%s:%s", e.Category, e.Operation)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	default:
		return string(e.Category)
	}
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same category whose
// non-empty Operation and Message also match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Category != e.Category {
		return false
	}
	if t.Operation != "" && t.Operation != e.Operation {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// ErrorCategory implements apis.CategorizedError.
func (e *Error) ErrorCategory() string { return string(e.Category) }

// ErrorOperation implements apis.OperationError.
func (e *Error) ErrorOperation() string { return string(e.Operation) }

// ErrorCause implements apis.CausedError.
func (e *Error) ErrorCause() error { return e.Cause }

// ErrorDetails implements apis.DetailedError. Details are rendered with
// fmt.Sprint and ordered by key.
func (e *Error) ErrorDetails() []apis.Detail {
	if len(e.Details) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]apis.Detail, 0, len(keys))
	for _, k := range keys {
		out = append(out, apis.Detail{Type: "extra", Field: k, Value: fmt.Sprint(e.Details[k])})
	}
	return out
}

// ErrorView implements apis.ViewProvider.
func (e *Error) ErrorView() apis.ErrorView {
	return apis.ErrorView{
		Category:  string(e.Category),
		Operation: string(e.Operation),
		Message:   e.Message,
		Details:   e.ErrorDetails(),
	}
}

// WithOperation returns a shallow copy of e with the given Operation set.
func (e *Error) WithOperation(op opname.Name) *Error {
	cp := *e
	cp.Operation = op
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetail returns a shallow copy of e with one extra key/value in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	return e.WithDetails(map[string]any{k: v})
}

// WithDetails returns a shallow copy of e with kv merged into Details.
// kv wins on key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k, v := range cp.Details {
		m[k] = v
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of e with err attached as its cause.
// If err is nil, e is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// CategoryOf returns the category of the first *Error in err's chain.
func CategoryOf(err error) (category.Category, bool) {
	var ge *Error
	if errors.As(err, &ge) && ge != nil {
		return ge.Category, true
	}
	return category.Empty, false
}

// IsCategory reports whether err carries an *Error of category c.
func IsCategory(err error, c category.Category) bool {
	got, ok := CategoryOf(err)
	return ok && got == c
}
