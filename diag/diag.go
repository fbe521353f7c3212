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

// Package diag holds the diagnostic side channel that native operations use
// to explain a failure.
//
// A native operation signals failure through its return value and, as a side
// effect, deposits a human-readable message ("gzuncompress(): data error")
// into a Slot. The guard reads that message to build the translated error.
//
// Slots are bound to a context.Context, never to the process: every guarded
// call gets its own empty Slot through Scope, so concurrent calls cannot
// observe each other's messages and a stale message can never be attributed
// to a later call.
package diag

import (
	"context"
	"fmt"
	"sync"
)

// Severity classifies a diagnostic entry.
type Severity int

const (
	// Notice is informational; it does not imply failure on its own.
	Notice Severity = iota
	// Warning is the usual severity attached to a sentinel failure.
	Warning
	// Deprecated flags use of a deprecated argument or form.
	Deprecated
	// Error is a hard failure reported by the native runtime.
	Error
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Deprecated:
		return "deprecated"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Entry is one diagnostic message.
type Entry struct {
	Severity Severity
	Message  string
}

// Slot stores the most recent diagnostic entry of one execution context.
// The zero value is an empty, ready-to-use slot. Slot is safe for concurrent
// use, so natives may report from goroutines they spawn.
type Slot struct {
	mu   sync.Mutex
	last Entry
	set  bool
}

// NewSlot returns an empty slot.
func NewSlot() *Slot { return &Slot{} }

// Report records e as the latest entry, replacing any previous one.
// Entries with an empty message are ignored.
func (s *Slot) Report(e Entry) {
	if s == nil || e.Message == "" {
		return
	}
	s.mu.Lock()
	s.last, s.set = e, true
	s.mu.Unlock()
}

// Last returns the latest entry without clearing it.
func (s *Slot) Last() (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.set
}

// Take returns the latest entry and clears the slot.
func (s *Slot) Take() (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.last, s.set
	s.last, s.set = Entry{}, false
	return e, ok
}

// Clear discards the latest entry.
func (s *Slot) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.last, s.set = Entry{}, false
	s.mu.Unlock()
}

type slotKey struct{}

// Scope returns a child of ctx bound to a fresh, empty Slot.
// Any slot carried by ctx is shadowed, not cleared.
func Scope(ctx context.Context) (context.Context, *Slot) {
	s := NewSlot()
	return context.WithValue(ctx, slotKey{}, s), s
}

// FromContext returns the slot bound to ctx, if any.
func FromContext(ctx context.Context) (*Slot, bool) {
	s, ok := ctx.Value(slotKey{}).(*Slot)
	return s, ok && s != nil
}

// Report records msg with severity sev into the slot bound to ctx.
// It is a no-op when ctx carries no slot.
func Report(ctx context.Context, sev Severity, msg string) {
	if s, ok := FromContext(ctx); ok {
		s.Report(Entry{Severity: sev, Message: msg})
	}
}

// Warnf formats and reports a Warning.
func Warnf(ctx context.Context, format string, args ...any) {
	Report(ctx, Warning, fmt.Sprintf(format, args...))
}

// Noticef formats and reports a Notice.
func Noticef(ctx context.Context, format string, args ...any) {
	Report(ctx, Notice, fmt.Sprintf(format, args...))
}

// Errorf formats and reports an Error.
func Errorf(ctx context.Context, format string, args ...any) {
	Report(ctx, Error, fmt.Sprintf(format, args...))
}
