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

package segmenttrie

import "testing"

func TestInsertAndMatch(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("filesystem", 500))
	must(t, tr.Insert("filesystem.file_get_contents", 404))
	must(t, tr.Insert("sqlite.sqlite3.open", 503))

	cases := []struct {
		key     string
		want    int
		pattern string
	}{
		{"filesystem.file_get_contents", 404, "filesystem.file_get_contents"},
		{"filesystem.file_put_contents", 500, "filesystem"},
		{"sqlite.sqlite3.open.wal", 503, "sqlite.sqlite3.open"},
	}
	for _, tc := range cases {
		v, ok, p := tr.MatchWithPattern(tc.key)
		if !ok || v != tc.want || p != tc.pattern {
			t.Fatalf("match %q => ok=%v v=%d p=%q; want %d %q", tc.key, ok, v, p, tc.want, tc.pattern)
		}
	}
	if _, ok := tr.Match("sqlite.sqlite3.exec"); ok {
		t.Fatal("sqlite.sqlite3.exec must not match")
	}
	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}
}

func TestInsert_Replace(t *testing.T) {
	tr := New[string]()
	must(t, tr.Insert("zlib.gzinflate", "a"))
	must(t, tr.Insert("zlib.gzinflate", "b"))
	if v, _ := tr.Match("zlib.gzinflate"); v != "b" {
		t.Fatalf("replace failed: %q", v)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("session.*.write", 409))
	must(t, tr.Insert("session.redis.write", 503))

	if v, ok, p := tr.MatchWithPattern("session.redis.write"); !ok || v != 503 || p != "session.redis.write" {
		t.Fatalf("exact must win over wildcard, got ok=%v v=%v p=%q", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("session.memory.write.close"); !ok || v != 409 || p != "session.*.write" {
		t.Fatalf("wildcard match failed: ok=%v v=%v p=%q", ok, v, p)
	}
	if _, ok := tr.Match("session.write"); ok {
		t.Fatal("wildcard must not match zero segments")
	}
}

func TestLPM_PrefersDeeperWildcardPath(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("a.*.c", 7))
	must(t, tr.Insert("a.b", 1))

	if v, ok, p := tr.MatchWithPattern("a.b.c"); !ok || v != 7 || p != "a.*.c" {
		t.Fatalf("LPM must choose wildcard path: ok=%v v=%v p=%q", ok, v, p)
	}
}

func TestSegmentBoundary(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("hash.hash_hmac", 1))
	if _, ok := tr.Match("hash.hash"); ok {
		t.Fatal("match crossed a segment boundary")
	}
	if _, ok := tr.Match("hash.hash_hmac_algos"); ok {
		t.Fatal("partial segment must not match")
	}
}

func TestInvalidInputs(t *testing.T) {
	tr := New[int]()
	for _, p := range []string{"", "UPPER.case", "a..b", "*", "*.*", "a.", "9a"} {
		if err := tr.Insert(p, 1); err == nil {
			t.Fatalf("Insert(%q) must fail", p)
		}
	}

	must(t, tr.Insert("a.b", 1))
	for _, k := range []string{"UPPER.case", "a..b", ".a.b"} {
		if _, ok := tr.Match(k); ok {
			t.Fatalf("Match(%q) must fail", k)
		}
	}

	var nilTrie *Trie[int]
	if _, ok := nilTrie.Match("a.b"); ok || nilTrie.Len() != 0 {
		t.Fatal("nil trie must be empty")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
