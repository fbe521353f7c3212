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

// Filesystem and process domains
//
// These categories cover native operations that touch the host: files,
// directories, processes, shared memory and filesystem notifications.
const (
	// Dir covers directory handles and listings (opendir, scandir, chdir).
	Dir Category = "dir"

	// Filesystem covers file contents and metadata (file_get_contents,
	// rename, unlink, mkdir, tempnam).
	Filesystem Category = "filesystem"

	// Exec covers process execution (exec, shell_exec, system).
	Exec Category = "exec"

	// Posix covers POSIX identity and process-control calls.
	Posix Category = "posix"

	// Shmop covers System V shared memory segments.
	Shmop Category = "shmop"

	// Inotify covers filesystem change notifications.
	Inotify Category = "inotify"

	// Stream covers stream contexts, filters and socket streams.
	Stream Category = "stream"
)

// Data transformation domains
//
// These categories cover pure transformations whose failure almost always
// means the input was malformed.
const (
	// Zlib covers compression and decompression (gzcompress, gzdecode).
	Zlib Category = "zlib"

	// Hash covers message digests, HMAC and key derivation.
	Hash Category = "hash"

	// Openssl covers symmetric ciphers, digests and random bytes.
	Openssl Category = "openssl"

	// XML covers XML parsing into element trees (simplexml).
	XML Category = "xml"

	// URL covers URL parsing and base64 decoding.
	URL Category = "url"

	// JSON covers JSON encoding and decoding.
	JSON Category = "json"

	// YAML covers YAML parsing and emitting.
	YAML Category = "yaml"

	// Pcre covers regular expression compilation and matching.
	Pcre Category = "pcre"

	// Mbstring covers multibyte string conversions.
	Mbstring Category = "mbstring"

	// Strings covers byte-string helpers (hex2bin, convert_uudecode).
	Strings Category = "strings"

	// Array covers array helpers (array_combine, array_walk).
	Array Category = "array"

	// Var covers variable handling (settype, unserialize).
	Var Category = "var"

	// Datetime covers date parsing and timezone handling.
	Datetime Category = "datetime"
)

// Stateful service domains
const (
	// Session covers session lifecycle (start, regenerate, destroy).
	Session Category = "session"

	// Sqlite covers embedded SQL database handles.
	Sqlite Category = "sqlite"

	// Network covers DNS lookups and host resolution.
	Network Category = "network"

	// Sockets covers low-level socket calls.
	Sockets Category = "sockets"
)

// Internal is used for errors that are not attributable to a wrapped native
// operation, e.g. a non-guard error reaching a transport adapter.
const Internal Category = "internal"

var all = []Category{
	Array, Datetime, Dir, Exec, Filesystem, Hash, Inotify, Internal, JSON,
	Mbstring, Network, Openssl, Pcre, Posix, Session, Shmop, Sockets, Sqlite,
	Stream, Strings, URL, Var, XML, YAML, Zlib,
}

// All returns the catalogue of known categories in alphabetical order.
// The returned slice is a copy.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Known reports whether c is part of the built-in catalogue.
func Known(c Category) bool {
	for _, k := range all {
		if k == c {
			return true
		}
	}
	return false
}
