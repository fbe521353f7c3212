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

// ViewProvider is implemented by errors that can render a self-contained,
// transport-friendly snapshot of themselves.
type ViewProvider interface {
	error

	// ErrorView returns a transport-friendly snapshot of the error.
	ErrorView() ErrorView
}

// ErrorView is the serializable shape of a translated error: what we are
// comfortable putting on the wire or in a log line.
type ErrorView struct {
	// Category is the canonical category of the failing operation.
	Category string `json:"category"`
	// Operation is the failing native operation. MAY be empty.
	Operation string `json:"operation,omitempty"`
	// Message is the diagnostic text, or the generic fallback when the
	// native runtime reported nothing.
	Message string `json:"message,omitempty"`
	// Details carries optional structured context (arguments, paths, ...).
	Details []Detail `json:"details,omitempty"`
}
