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

// CategorizedError is an error that belongs to one functional domain
// (directory, compression, hashing, ...).
//
// The category is the primary value adapters use to pick a transport status.
// Implementations return a canonical category (see guard/category); adapters
// treat unknown or empty categories as internal errors.
type CategorizedError interface {
	error

	// ErrorCategory returns the canonical category. MUST be non-empty.
	ErrorCategory() string
}

// OperationError is an error that knows which native operation produced it,
// e.g. "zlib.gzuncompress".
//
// The operation refines the category the same way a path refines a host:
// mappers may match on operation prefixes to special-case one call.
type OperationError interface {
	error

	// ErrorOperation returns the operation name. MAY be empty.
	ErrorOperation() string
}

// DetailedError exposes zero or more structured details.
//
// Implementations SHOULD return a slice the caller may iterate freely.
// Returning nil means "no extra details".
type DetailedError interface {
	error

	// ErrorDetails returns structured details of the error. May return nil.
	ErrorDetails() []Detail
}

// CausedError exposes the immediate underlying cause, if any.
type CausedError interface {
	error

	// ErrorCause returns the underlying error. May return nil.
	ErrorCause() error
}
