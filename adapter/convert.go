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

// Package adapter converts guard errors into the transport-neutral records
// of package apis.
package adapter

import (
	"errors"

	"dirpx.dev/guard"
	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/category"
)

// ToDescriptor converts a translated error together with its resolved
// transport status into a portable ErrorDescriptor for structured logs,
// traces or message-bus propagation.
func ToDescriptor(e *guard.Error, st apis.Status) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Category:   string(e.Category),
		Operation:  string(e.Operation),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    e.Message,
	}
}

// ToView converts a translated error into its public ErrorView. No
// redaction happens here: details are copied as the error carries them.
func ToView(e *guard.Error) apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	return e.ErrorView()
}

// Describe resolves err through m and returns its descriptor. Errors that
// carry no *guard.Error are described as category internal with the error
// text as message.
func Describe(m apis.Mapper, err error) apis.ErrorDescriptor {
	if err == nil {
		return apis.ErrorDescriptor{}
	}
	ge := AsGuard(err)
	return ToDescriptor(ge, m.Status(ge.Category, ge.Operation))
}

// AsGuard returns the first *guard.Error in err's chain or wraps err into an
// internal one.
func AsGuard(err error) *guard.Error {
	var ge *guard.Error
	if errors.As(err, &ge) && ge != nil {
		return ge
	}
	return guard.E(category.Internal, err.Error()).WithCause(err)
}
