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

// Package grpcx maps translated errors onto gRPC statuses.
//
// Server interceptors turn a *guard.Error returned by a handler into a
// status whose code comes from an apis.Mapper and whose details carry a
// google.rpc.ErrorInfo (reason = category, domain = Domain). Clients use
// FromStatus to rebuild the *guard.Error.
package grpcx

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/guard"
	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/opname"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/durationpb"
)

// Domain is the ErrorInfo domain of translated errors.
const Domain = "guard.dirpx.dev"

// ErrorInfo metadata keys.
const (
	MetaOperation     = "operation"
	MetaHTTPStatus    = "http_status"
	MetaCorrelationID = "correlation_id"
	MetaTraceID       = "trace_id"
	MetaSpanID        = "span_id"
	metaDetailPrefix  = "detail."
)

// Extras holds optional metadata added to the status. All fields are optional.
type Extras struct {
	// CorrelationID is a client/server correlation token.
	CorrelationID string

	// TraceID is the distributed trace identifier.
	TraceID string

	// SpanID is the span identifier within the trace.
	SpanID string

	// RetryAfter, when positive, is attached as google.rpc.RetryInfo.
	RetryAfter time.Duration

	// Tags are flat string annotations copied into ErrorInfo metadata.
	Tags map[string]string
}

// MetaFn extracts Extras from the request context and the error.
type MetaFn func(ctx context.Context, e *guard.Error) Extras

func noMeta(context.Context, *guard.Error) Extras { return Extras{} }

// Status converts e into a gRPC status resolved through m.
func Status(m apis.Mapper, e *guard.Error, ex Extras) *gstatus.Status {
	st := m.Status(e.Category, e.Operation)
	base := gstatus.New(st.GRPC, e.Message)

	md := map[string]string{
		MetaHTTPStatus: strconv.Itoa(st.HTTP),
	}
	if e.Operation != opname.Empty {
		md[MetaOperation] = string(e.Operation)
	}
	for _, d := range e.ErrorDetails() {
		md[metaDetailPrefix+d.Field] = d.Value
	}
	for k, v := range ex.Tags {
		md[k] = v
	}
	setIf(md, MetaCorrelationID, ex.CorrelationID)
	setIf(md, MetaTraceID, ex.TraceID)
	setIf(md, MetaSpanID, ex.SpanID)

	details := []protoadapt.MessageV1{&errdetails.ErrorInfo{
		Reason:   string(e.Category),
		Domain:   Domain,
		Metadata: md,
	}}
	if ex.RetryAfter > 0 {
		details = append(details, &errdetails.RetryInfo{RetryDelay: durationpb.New(ex.RetryAfter)})
	}

	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

// UnaryServerInterceptor maps *guard.Error results of unary handlers into
// gRPC statuses. Other errors are returned unchanged. metaFn may be nil.
func UnaryServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.UnaryServerInterceptor {
	if metaFn == nil {
		metaFn = noMeta
	}
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, translate(ctx, m, metaFn, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of UnaryServerInterceptor.
func StreamServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.StreamServerInterceptor {
	if metaFn == nil {
		metaFn = noMeta
	}
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		ctx := context.Background()
		if ss != nil {
			ctx = ss.Context()
		}
		return translate(ctx, m, metaFn, err)
	}
}

func translate(ctx context.Context, m apis.Mapper, metaFn MetaFn, err error) error {
	var ge *guard.Error
	if !errors.As(err, &ge) || ge == nil {
		return err
	}
	return Status(m, ge, metaFn(ctx, ge)).Err()
}

// ExtractInfo returns the guard ErrorInfo attached to a gRPC error.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return info, true
		}
	}
	return nil, false
}

// FromStatus rebuilds the *guard.Error carried by a gRPC error produced by
// the interceptors.
func FromStatus(err error) (*guard.Error, bool) {
	info, ok := ExtractInfo(err)
	if !ok {
		return nil, false
	}
	c, perr := category.Parse(info.GetReason())
	if perr != nil {
		return nil, false
	}
	st, _ := gstatus.FromError(err)
	e := guard.E(c, st.Message())
	md := info.GetMetadata()
	if op, err := opname.Parse(md[MetaOperation]); err == nil && op != opname.Empty {
		e = e.WithOperation(op)
	}
	details := make(map[string]any)
	for k, v := range md {
		if f, ok := strings.CutPrefix(k, metaDetailPrefix); ok {
			details[f] = v
		}
	}
	return e.WithDetails(details), true
}

func setIf(m map[string]string, k, v string) {
	if v != "" {
		m[k] = v
	}
}
