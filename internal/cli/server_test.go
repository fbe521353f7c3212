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

package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dirpx.dev/guard/internal/logging"
	"dirpx.dev/guard/mapper"
	"dirpx.dev/guard/safe/filesystem"
	"dirpx.dev/guard/safe/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// statusBody is the google.rpc.Status document written for failures.
type statusBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Reason   string            `json:"reason"`
		Metadata map[string]string `json:"metadata"`
	} `json:"details"`
}

func newTestRouter(t *testing.T, root string) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m, err := mapper.New()
	require.NoError(t, err)
	s := newServer(filesystem.OS(root), session.NewMemoryStore(), time.Minute, m, logging.Discard())
	return s.routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusBody {
	t.Helper()
	var b statusBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b), rec.Body.String())
	return b
}

func TestServer_Operations(t *testing.T) {
	h := newTestRouter(t, t.TempDir())

	rec := do(t, h, http.MethodGet, "/v1/operations?category=yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "yaml.yaml_emit", entries[0].Name)
	require.Equal(t, "yaml.yaml_parse", entries[1].Name)

	rec = do(t, h, http.MethodGet, "/v1/operations?category=!", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Zlib(t *testing.T) {
	h := newTestRouter(t, t.TempDir())

	rec := do(t, h, http.MethodPost, "/v1/zlib/gzcompress?level=9", "hello hello hello")
	require.Equal(t, http.StatusOK, rec.Code)
	compressed := rec.Body.String()

	rec = do(t, h, http.MethodPost, "/v1/zlib/gzuncompress", compressed)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello hello hello", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/zlib/gzuncompress", "not zlib data")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	b := decodeStatus(t, rec)
	require.Equal(t, 3, b.Code)
	require.Equal(t, "gzuncompress(): data error", b.Message)
	require.Len(t, b.Details, 1)
	require.Equal(t, "zlib", b.Details[0].Reason)
	require.Equal(t, "zlib.gzuncompress", b.Details[0].Metadata["operation"])

	rec = do(t, h, http.MethodPost, "/v1/zlib/gzcompress?level=x", "data")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/zlib/lz4", "data")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Hash(t *testing.T) {
	h := newTestRouter(t, t.TempDir())

	rec := do(t, h, http.MethodPost, "/v1/hash/sha256", "abc")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"algo":"sha256","digest":"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/hash/md5?key=key", "The quick brown fox jumps over the lazy dog")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"algo":"md5","digest":"80070713463e7749b90c2dc24911e275"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/hash/sha7", "abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeStatus(t, rec).Message, "must be a valid hashing algorithm")
}

func TestServer_URLAndYAML(t *testing.T) {
	h := newTestRouter(t, t.TempDir())

	rec := do(t, h, http.MethodPost, "/v1/url/parse", "https://ada:pw@example.com:8443/p?q=1#top\n")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"scheme":"https","host":"example.com","port":8443,"user":"ada","pass":"pw","path":"/p","query":"q=1","fragment":"top"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/url/parse", "http://[::1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Unknown error", decodeStatus(t, rec).Message)

	rec = do(t, h, http.MethodPost, "/v1/yaml/parse", "a: 1\nb: [x, y]\n")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"documents":1,"value":{"a":1,"b":["x","y"]}}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/yaml/parse?pos=-1", "--- 1\n--- 2\n")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"documents":2,"value":[1,2]}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/yaml/parse", "a: [unclosed\n")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 3, decodeStatus(t, rec).Code)
}

func TestServer_FS(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "note.txt"), []byte("0123456789"), 0o644))
	h := newTestRouter(t, root)

	rec := do(t, h, http.MethodGet, "/v1/fs/docs/note.txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0123456789", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/fs/docs/note.txt?offset=-3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "789", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/fs/docs/note.txt?offset=2&length=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "234", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/fs/docs/missing.txt", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	b := decodeStatus(t, rec)
	require.Equal(t, 5, b.Code)
	require.Contains(t, b.Message, "No such file or directory")
}

func TestServer_Session(t *testing.T) {
	h := newTestRouter(t, t.TempDir())

	rec := do(t, h, http.MethodPost, "/v1/session", `{"user":"ada","visits":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, `user|"ada"visits|3`, created.Data)

	rec = do(t, h, http.MethodGet, "/v1/session/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, created, got)

	rec = do(t, h, http.MethodDelete, "/v1/session/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/session/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/session/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/session/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/session", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ZlibInflateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, err := mapper.New()
	require.NoError(t, err)
	s := newServer(filesystem.Memory(), session.NewMemoryStore(), time.Minute, m, logging.Discard())
	require.Equal(t, defaultInflateLimit, s.inflateLimit)
	s.inflateLimit = 16
	h := s.routes()

	payload := strings.Repeat("a", 64)
	rec := do(t, h, http.MethodPost, "/v1/zlib/gzcompress", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	compressed := rec.Body.String()

	for _, target := range []string{
		"/v1/zlib/gzuncompress",
		"/v1/zlib/gzuncompress?max_length=0",
		"/v1/zlib/gzuncompress?max_length=1000",
	} {
		rec = do(t, h, http.MethodPost, target, compressed)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.Equal(t, "gzuncompress(): insufficient memory", decodeStatus(t, rec).Message, target)
	}

	rec = do(t, h, http.MethodPost, "/v1/zlib/gzuncompress?max_length=8", compressed)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	s.inflateLimit = 64
	rec = do(t, s.routes(), http.MethodPost, "/v1/zlib/gzuncompress", compressed)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, payload, rec.Body.String())
}
