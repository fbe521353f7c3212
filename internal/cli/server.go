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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/guard"
	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/catalog"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/httpx"
	"dirpx.dev/guard/safe/filesystem"
	"dirpx.dev/guard/safe/hash"
	"dirpx.dev/guard/safe/session"
	"dirpx.dev/guard/safe/url"
	"dirpx.dev/guard/safe/yaml"
	"dirpx.dev/guard/safe/zlib"
	"github.com/gin-gonic/gin"
)

// maxBody caps request bodies read by the operation routes.
const maxBody = 8 << 20

// defaultInflateLimit caps decompressed output when the client sends no
// max_length.
const defaultInflateLimit = 64 << 20

// server exposes a subset of the guarded operations over HTTP. Failed
// operations are rendered by errs as google.rpc.Status documents.
type server struct {
	fs    *filesystem.FS
	store session.Store
	ttl   time.Duration
	errs  httpx.Writer
	log   *slog.Logger

	inflateLimit int
}

func newServer(fs *filesystem.FS, store session.Store, ttl time.Duration, m apis.Mapper, log *slog.Logger) *server {
	return &server{
		fs:    fs,
		store: store,
		ttl:   ttl,
		errs:  httpx.Writer{Mapper: m},
		log:   log,

		inflateLimit: defaultInflateLimit,
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.withLogger)

	v1 := r.Group("/v1")
	v1.GET("/operations", s.listOperations)
	v1.POST("/zlib/:op", s.zlib)
	v1.POST("/hash/:algo", s.hash)
	v1.POST("/url/parse", s.parseURL)
	v1.POST("/yaml/parse", s.parseYAML)
	v1.GET("/fs/*path", s.readFile)
	v1.POST("/session", s.createSession)
	v1.GET("/session/:id", s.getSession)
	v1.DELETE("/session/:id", s.deleteSession)
	return r
}

// withLogger makes guarded calls of the request log their failures.
func (s *server) withLogger(c *gin.Context) {
	l := s.log.With("method", c.Request.Method, "path", c.FullPath())
	c.Request = c.Request.WithContext(guard.WithLogger(c.Request.Context(), l))
	c.Next()
}

func (s *server) listOperations(c *gin.Context) {
	if raw := c.Query("category"); raw != "" {
		cat, err := category.Parse(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, catalog.ByCategory(cat))
		return
	}
	c.JSON(http.StatusOK, catalog.All())
}

func (s *server) zlib(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var (
		out []byte
		err error
	)
	switch op := c.Param("op"); op {
	case "gzcompress", "gzencode", "gzdeflate":
		level, qerr := queryInt(c, "level")
		if qerr != nil {
			badRequest(c, qerr)
			return
		}
		switch op {
		case "gzcompress":
			out, err = zlib.Gzcompress(ctx, body, level, args.None[int]())
		case "gzencode":
			out, err = zlib.Gzencode(ctx, body, level, args.None[int]())
		default:
			out, err = zlib.Gzdeflate(ctx, body, level, args.None[int]())
		}
	case "gzuncompress", "gzdecode", "gzinflate":
		maxLen, qerr := queryInt(c, "max_length")
		if qerr != nil {
			badRequest(c, qerr)
			return
		}
		if n, set := maxLen.Get(); !set || n == 0 || n > s.inflateLimit {
			maxLen = args.Some(s.inflateLimit)
		}
		switch op {
		case "gzuncompress":
			out, err = zlib.Gzuncompress(ctx, body, maxLen)
		case "gzdecode":
			out, err = zlib.Gzdecode(ctx, body, maxLen)
		default:
			out, err = zlib.Gzinflate(ctx, body, maxLen)
		}
	default:
		notFound(c, fmt.Errorf("unknown zlib operation %q", op))
		return
	}
	if err != nil {
		s.errs.Abort(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (s *server) hash(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	algo := c.Param("algo")

	var (
		digest string
		err    error
	)
	if key, hmac := c.GetQuery("key"); hmac {
		digest, err = hash.HashHmac(c.Request.Context(), algo, body, []byte(key), args.None[bool]())
	} else {
		digest, err = hash.Hash(c.Request.Context(), algo, body, args.None[bool]())
	}
	if err != nil {
		s.errs.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"algo": algo, "digest": digest})
}

func (s *server) parseURL(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	parts, err := url.ParseURL(c.Request.Context(), strings.TrimSpace(string(body)))
	if err != nil {
		s.errs.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (s *server) parseYAML(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	pos, err := queryInt(c, "pos")
	if err != nil {
		badRequest(c, err)
		return
	}
	v, n, err := yaml.YamlParse(c.Request.Context(), string(body), pos)
	if err != nil {
		s.errs.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": n, "value": v})
}

func (s *server) readFile(c *gin.Context) {
	offset, err := queryInt(c, "offset")
	if err != nil {
		badRequest(c, err)
		return
	}
	length, err := queryInt(c, "length")
	if err != nil {
		badRequest(c, err)
		return
	}
	name := strings.TrimPrefix(c.Param("path"), "/")
	data, err := s.fs.FileGetContents(c.Request.Context(), name, offset, length)
	if err != nil {
		s.errs.Abort(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// sessionView is the response body of the session routes.
type sessionView struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

func (s *server) createSession(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	m := session.NewManager(s.store, s.ttl)
	if err := m.SessionStart(ctx, args.None[string]()); err != nil {
		s.errs.Abort(c, err)
		return
	}
	for k, v := range values {
		m.Set(k, v)
	}
	s.respondSession(c, m, http.StatusCreated)
}

func (s *server) getSession(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	m := session.NewManager(s.store, s.ttl)
	if err := m.SessionStart(ctx, args.Some(id)); err != nil {
		s.errs.Abort(c, err)
		return
	}
	if m.ID() != id {
		notFound(c, fmt.Errorf("session %q not found", id))
		return
	}
	s.respondSession(c, m, http.StatusOK)
}

func (s *server) deleteSession(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	m := session.NewManager(s.store, s.ttl)
	if err := m.SessionStart(ctx, args.Some(id)); err != nil {
		s.errs.Abort(c, err)
		return
	}
	if m.ID() != id {
		notFound(c, fmt.Errorf("session %q not found", id))
		return
	}
	if err := m.SessionDestroy(ctx); err != nil {
		s.errs.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondSession encodes and persists the active session of m.
func (s *server) respondSession(c *gin.Context, m *session.Manager, status int) {
	ctx := c.Request.Context()
	data, err := m.SessionEncode(ctx)
	if err != nil {
		s.errs.Abort(c, err)
		return
	}
	id := m.ID()
	if err := m.SessionWriteClose(ctx); err != nil {
		s.errs.Abort(c, err)
		return
	}
	c.JSON(status, sessionView{ID: id, Data: data})
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return nil, false
		}
		badRequest(c, err)
		return nil, false
	}
	return body, true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, key string) (args.Opt[int], error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return args.None[int](), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return args.None[int](), fmt.Errorf("query %s: %w", key, err)
	}
	return args.Some(n), nil
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
}
