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

// Package segmenttrie implements a longest-prefix-match index over dotted
// operation names such as "filesystem.file_get_contents".
//
// Keys are matched segment by segment, never across a segment boundary, and
// the pattern segment "*" stands for exactly one arbitrary segment. When an
// exact segment and "*" both lead to a value at the same depth, the exact
// segment wins.
package segmenttrie

import (
	"errors"
	"strings"
)

// Wildcard is the pattern segment matching exactly one segment.
const Wildcard = "*"

// ErrInvalidPattern is returned by Insert for an empty pattern, an empty or
// malformed segment, or a pattern made of wildcards only.
var ErrInvalidPattern = errors.New("segmenttrie: invalid pattern")

type node[T any] struct {
	children map[string]*node[T]
	val      T
	pattern  string // set iff the node carries a value
	hasVal   bool
}

func (n *node[T]) child(seg string) *node[T] {
	if n.children == nil {
		n.children = make(map[string]*node[T])
	}
	c, ok := n.children[seg]
	if !ok {
		c = &node[T]{}
		n.children[seg] = c
	}
	return c
}

// Trie maps patterns to values. It is not safe for concurrent Insert; once
// built, concurrent Match calls are safe.
type Trie[T any] struct {
	root node[T]
	size int
}

// New returns an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{}
}

// Len returns the number of distinct patterns stored.
func (t *Trie[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Insert associates pattern with val, replacing the value of an equal
// pattern. Examples: "zlib.gzinflate", "filesystem.*.stat".
func (t *Trie[T]) Insert(pattern string, val T) error {
	if t == nil || pattern == "" {
		return ErrInvalidPattern
	}
	segs := strings.Split(pattern, ".")
	concrete := false
	for _, s := range segs {
		if s == Wildcard {
			continue
		}
		if !validSegment(s) {
			return ErrInvalidPattern
		}
		concrete = true
	}
	if !concrete {
		return ErrInvalidPattern
	}

	n := &t.root
	for _, s := range segs {
		n = n.child(s)
	}
	if !n.hasVal {
		t.size++
		n.pattern = pattern
	}
	n.val, n.hasVal = val, true
	return nil
}

// Match returns the value of the deepest pattern that is a segment prefix
// of key.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also returns the matched pattern as it was
// inserted.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best, bestDepth := (*node[T])(nil), -1
	t.walk(&t.root, key, 0, 0, &best, &bestDepth)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// walk visits every node reachable from n by consuming key[off:], keeping the
// deepest node with a value. Exact children are visited before the wildcard,
// so on equal depth the exact match is kept.
func (t *Trie[T]) walk(n *node[T], key string, off, depth int, best **node[T], bestDepth *int) {
	if n.hasVal && depth > *bestDepth {
		*best, *bestDepth = n, depth
	}
	if off >= len(key) || len(n.children) == 0 {
		return
	}
	seg, next, ok := nextSegment(key, off)
	if !ok {
		return
	}
	if c, ok := n.children[seg]; ok {
		t.walk(c, key, next, depth+1, best, bestDepth)
	}
	if c, ok := n.children[Wildcard]; ok {
		t.walk(c, key, next, depth+1, best, bestDepth)
	}
}

// nextSegment scans the segment starting at off. It returns the segment, the
// offset just past the following dot and whether the segment is well-formed.
func nextSegment(key string, off int) (string, int, bool) {
	end := strings.IndexByte(key[off:], '.')
	if end < 0 {
		end = len(key)
	} else {
		end += off
	}
	seg := key[off:end]
	if !validSegment(seg) {
		return "", 0, false
	}
	if end < len(key) {
		end++
	}
	return seg, end, true
}

// validSegment reports whether s matches [a-z][a-z0-9_]*.
func validSegment(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
