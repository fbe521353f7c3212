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

package mapper

import (
	"net/http"

	"dirpx.dev/guard/category"
	"google.golang.org/grpc/codes"
)

// defaultHTTP holds the built-in HTTP status per category. Categories whose
// natives parse or transform caller input map to 400; categories whose
// natives touch the host map to 5xx.
var defaultHTTP = map[category.Category]int{
	// Caller input could not be processed.
	category.Zlib:     http.StatusBadRequest,
	category.Hash:     http.StatusBadRequest,
	category.Openssl:  http.StatusBadRequest,
	category.XML:      http.StatusBadRequest,
	category.URL:      http.StatusBadRequest,
	category.JSON:     http.StatusBadRequest,
	category.YAML:     http.StatusBadRequest,
	category.Pcre:     http.StatusBadRequest,
	category.Mbstring: http.StatusBadRequest,
	category.Strings:  http.StatusBadRequest,
	category.Array:    http.StatusBadRequest,
	category.Var:      http.StatusBadRequest,
	category.Datetime: http.StatusBadRequest,

	// Host resources.
	category.Dir:        http.StatusNotFound,
	category.Filesystem: http.StatusInternalServerError,
	category.Exec:       http.StatusInternalServerError,
	category.Posix:      http.StatusInternalServerError,
	category.Shmop:      http.StatusInternalServerError,
	category.Inotify:    http.StatusInternalServerError,
	category.Sqlite:     http.StatusInternalServerError,
	category.Internal:   http.StatusInternalServerError,

	// Remote peers.
	category.Stream:  http.StatusBadGateway,
	category.Network: http.StatusServiceUnavailable,
	category.Sockets: http.StatusServiceUnavailable,

	// Session state does not allow the operation.
	category.Session: http.StatusConflict,
}

// defaultGRPC holds the built-in gRPC code per category, aligned with
// defaultHTTP.
var defaultGRPC = map[category.Category]codes.Code{
	category.Zlib:     codes.InvalidArgument,
	category.Hash:     codes.InvalidArgument,
	category.Openssl:  codes.InvalidArgument,
	category.XML:      codes.InvalidArgument,
	category.URL:      codes.InvalidArgument,
	category.JSON:     codes.InvalidArgument,
	category.YAML:     codes.InvalidArgument,
	category.Pcre:     codes.InvalidArgument,
	category.Mbstring: codes.InvalidArgument,
	category.Strings:  codes.InvalidArgument,
	category.Array:    codes.InvalidArgument,
	category.Var:      codes.InvalidArgument,
	category.Datetime: codes.InvalidArgument,

	category.Dir:        codes.NotFound,
	category.Filesystem: codes.Internal,
	category.Exec:       codes.Internal,
	category.Posix:      codes.Internal,
	category.Shmop:      codes.Internal,
	category.Inotify:    codes.Internal,
	category.Sqlite:     codes.Internal,
	category.Internal:   codes.Internal,

	category.Stream:  codes.Unavailable,
	category.Network: codes.Unavailable,
	category.Sockets: codes.Unavailable,

	category.Session: codes.FailedPrecondition,
}

// defaultPrefixes refine a few categories for single operations.
var defaultPrefixes = []struct {
	category category.Category
	prefix   string
	http     int
	grpc     codes.Code
}{
	{category.Filesystem, "filesystem.file_get_contents", http.StatusNotFound, codes.NotFound},
	{category.Filesystem, "filesystem.filesize", http.StatusNotFound, codes.NotFound},
	{category.Filesystem, "filesystem.realpath", http.StatusNotFound, codes.NotFound},
	{category.Openssl, "openssl.openssl_random_pseudo_bytes", http.StatusInternalServerError, codes.Internal},
	{category.Session, "session.session_decode", http.StatusBadRequest, codes.InvalidArgument},
	{category.Sqlite, "sqlite.sqlite3.open", http.StatusServiceUnavailable, codes.Unavailable},
}
