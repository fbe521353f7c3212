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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dirpx.dev/guard"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/mapper"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Type     string            `json:"@type"`
		Reason   string            `json:"reason"`
		Domain   string            `json:"domain"`
		Metadata map[string]string `json:"metadata"`
	} `json:"details"`
}

func newWriter(t *testing.T) Writer {
	t.Helper()
	m, err := mapper.New()
	require.NoError(t, err)
	return Writer{Mapper: m}
}

func TestWriter_Write(t *testing.T) {
	w := newWriter(t)
	rec := httptest.NewRecorder()
	e := guard.E(category.Filesystem, "No such file or directory", guard.WithOperationOption("filesystem.file_get_contents"))

	w.Write(rec, e, Meta{Correlation: "req-7", RetryAfterSeconds: 3})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "3", rec.Header().Get("Retry-After"))

	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.Equal(t, 5, b.Code)
	require.Equal(t, "No such file or directory", b.Message)
	require.Len(t, b.Details, 1)
	require.Equal(t, "type.googleapis.com/google.rpc.ErrorInfo", b.Details[0].Type)
	require.Equal(t, "filesystem", b.Details[0].Reason)
	require.Equal(t, "guard.dirpx.dev", b.Details[0].Domain)
	require.Equal(t, "filesystem.file_get_contents", b.Details[0].Metadata["operation"])
	require.Equal(t, "req-7", b.Details[0].Metadata["correlation_id"])
}

func TestWriter_WriteNil(t *testing.T) {
	rec := httptest.NewRecorder()
	newWriter(t).Write(rec, nil, Meta{})
	require.Zero(t, rec.Body.Len())
}

func TestWriter_Abort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := newWriter(t)

	r := gin.New()
	r.GET("/zlib", func(c *gin.Context) {
		w.Abort(c, guard.E(category.Zlib, "data error"))
	})
	r.GET("/plain", func(c *gin.Context) {
		w.Abort(c, errors.New("boom"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/zlib", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.Equal(t, "boom", b.Message)
	require.Equal(t, "internal", b.Details[0].Reason)
}
