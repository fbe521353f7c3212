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

package apis

// ErrorDescriptor is a flat record of one translated error together with the
// transport statuses it resolved to. It is meant for structured logs, traces
// and message-bus propagation, where the concrete error type is not available.
//
// Plain strings are used on purpose so that the type can cross package and
// process boundaries without importing guard/category or guard/opname.
type ErrorDescriptor struct {
	// Category is the canonical category, e.g. "zlib" or "filesystem".
	Category string `json:"category"`

	// Operation is the failing native operation, e.g. "zlib.gzuncompress".
	// It MAY be empty.
	Operation string `json:"operation,omitempty"`

	// HTTPStatus is the status used when the error is exposed over HTTP.
	// 0 means "not resolved".
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is the gRPC status code (as integer). 0 means "not resolved".
	GRPCCode int `json:"grpc_code,omitempty"`

	// Message is the diagnostic text captured at failure time.
	Message string `json:"message,omitempty"`
}
