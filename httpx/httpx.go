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

// Package httpx writes translated errors as HTTP responses.
//
// The body is a google.rpc.Status rendered with protojson, the same document
// gRPC-JSON gateways emit, so HTTP and gRPC clients read one error shape:
//
//	{"code":5,"message":"No such file or directory","details":[{
//	  "@type":"type.googleapis.com/google.rpc.ErrorInfo",
//	  "reason":"filesystem","domain":"guard.dirpx.dev",
//	  "metadata":{"operation":"filesystem.file_get_contents"}}]}
package httpx

import (
	"net/http"
	"strconv"

	"dirpx.dev/guard"
	"dirpx.dev/guard/adapter"
	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/grpcx"
	"github.com/gin-gonic/gin"
	"google.golang.org/protobuf/encoding/protojson"
)

// Meta carries extra context the HTTP layer adds on top of the error.
// All fields are optional.
type Meta struct {
	Correlation       string
	TraceID           string
	SpanID            string
	RetryAfterSeconds int32
	Tags              map[string]string
}

func (m Meta) extras() grpcx.Extras {
	return grpcx.Extras{
		CorrelationID: m.Correlation,
		TraceID:       m.TraceID,
		SpanID:        m.SpanID,
		Tags:          m.Tags,
	}
}

// Writer turns a *guard.Error into an HTTP response using Mapper.
type Writer struct {
	Mapper apis.Mapper
}

var marshal = protojson.MarshalOptions{EmitUnpopulated: false}

// Write resolves the HTTP status of err and writes the google.rpc.Status body.
// No redaction is performed: whatever the error and meta carry is exposed.
func (w Writer) Write(rw http.ResponseWriter, err *guard.Error, meta Meta) {
	if err == nil {
		return
	}
	st := w.Mapper.Status(err.Category, err.Operation)
	body, mErr := marshal.Marshal(grpcx.Status(w.Mapper, err, meta.extras()).Proto())
	if mErr != nil {
		body = []byte(`{"code":13,"message":"error encoding failed"}`)
	}

	rw.Header().Set("Content-Type", "application/json")
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(int(meta.RetryAfterSeconds)))
	}
	rw.WriteHeader(st.HTTP)
	_, _ = rw.Write(body)
}

// Abort writes err through Write and aborts the gin chain. Errors without a
// *guard.Error in their chain are reported as category internal. The error
// is also recorded on the gin context.
func (w Writer) Abort(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	w.Write(c.Writer, adapter.AsGuard(err), Meta{Correlation: c.GetHeader("X-Request-Id")})
	c.Abort()
}
