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

// Package catalog keeps a process-wide index of the guarded call sites
// declared with guard.Define. It exists for inspection (CLI, HTTP listing,
// tests asserting coverage); the guard itself never consults it.
package catalog

import (
	"sort"
	"sync"

	"dirpx.dev/guard/category"
	"dirpx.dev/guard/opname"
)

// Entry describes one guarded call site.
type Entry struct {
	Name     opname.Name       `json:"name"`
	Category category.Category `json:"category"`
	Sentinel string            `json:"sentinel"`
}

var (
	mu      sync.RWMutex
	entries = make(map[opname.Name]Entry)
)

// Register adds or replaces the entry for e.Name.
func Register(e Entry) {
	mu.Lock()
	entries[e.Name] = e
	mu.Unlock()
}

// Lookup returns the entry registered under name.
func Lookup(name opname.Name) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[name]
	return e, ok
}

// All returns every entry ordered by name.
func All() []Entry {
	mu.RLock()
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByCategory returns the entries of category c ordered by name.
func ByCategory(c category.Category) []Entry {
	all := All()
	out := all[:0]
	for _, e := range all {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}
