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

// Detail is one structured piece of context attached to a translated error,
// such as the path a filesystem call was given or the cipher name an
// encryption call rejected.
type Detail struct {
	// Type is a short classifier: "argument", "path", "extra", ...
	Type string `json:"type,omitempty"`

	// Field names the argument or attribute the detail is about.
	Field string `json:"field,omitempty"`

	// Value is the rendered value of Field.
	Value string `json:"value,omitempty"`

	// Info carries optional extra string attributes.
	Info map[string]string `json:"info,omitempty"`
}
