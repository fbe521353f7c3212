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

import (
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/opname"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe view of status mapping rules.
// It resolves an error category (and optionally the failing operation) into
// transport statuses for HTTP and gRPC.
type Mapper interface {
	// HTTPStatus returns the HTTP status for the category and operation.
	// Without an operation-specific rule it falls back to the category rule.
	HTTPStatus(c category.Category, op opname.Name) int

	// GRPCStatus returns the gRPC status for the category and operation.
	GRPCStatus(c category.Category, op opname.Name) codes.Code

	// Status resolves both transports with the same matching logic.
	Status(c category.Category, op opname.Name) Status

	// Explain returns a human-readable description of which rule matched.
	Explain(c category.Category, op opname.Name) string
}

// Status is a resolved pair of transport statuses for one error.
type Status struct {
	HTTP int        // Resolved HTTP status code (net/http compatible).
	GRPC codes.Code // Resolved gRPC status code.
}
