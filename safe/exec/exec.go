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

// Package exec provides error-returning shell command execution.
package exec

import (
	"context"
	"io"

	jexec "github.com/jmgilman/go/exec"

	"dirpx.dev/guard"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/exec"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Exec)

// Output carries the output lines and exit status of Exec.
type Output = rt.Output

var (
	execSite       = guard.Define(category.Exec, "exec.exec", guard.Primary[any, Output](sentinel.False()))
	systemSite     = guard.Define(category.Exec, "exec.system", guard.Primary[any, int](sentinel.False()))
	shellExec      = guard.Define(category.Exec, "exec.shell_exec", sentinel.False())
	escapeShellArg = guard.Define(category.Exec, "exec.escapeshellarg", sentinel.False())
)

// Runner executes shell commands.
type Runner struct {
	rt *rt.Runtime
}

// NewRunner returns a Runner working in dir. System output is copied to
// stdout when it is non-nil.
func NewRunner(dir string, stdout io.Writer, opts ...jexec.Option) *Runner {
	return &Runner{rt: rt.New(dir, stdout, opts...)}
}

// Exec runs command and returns its last output line. A non-zero exit
// status is not an error; it is reported in Output.ResultCode. Output is
// returned even when err is non-nil.
func (r *Runner) Exec(ctx context.Context, command string) (string, Output, error) {
	v, out, err := guard.CallOut(ctx, execSite, func(ctx context.Context) (any, Output, bool) {
		return r.rt.Exec(ctx, command)
	})
	if err != nil {
		return "", out, err
	}
	s, _ := v.(string)
	return s, out, nil
}

// System runs command with its stdout passed through and returns the last
// line together with the exit status.
func (r *Runner) System(ctx context.Context, command string) (string, int, error) {
	v, code, err := guard.CallOut(ctx, systemSite, func(ctx context.Context) (any, int, bool) {
		return r.rt.System(ctx, command)
	})
	if err != nil {
		return "", code, err
	}
	s, _ := v.(string)
	return s, code, nil
}

// ShellExec returns the complete stdout of command. A command that prints
// nothing yields "" and no error.
func (r *Runner) ShellExec(ctx context.Context, command string) (string, error) {
	return guard.Invoke[string](ctx, shellExec, r.rt.ShellExec, []any{command})
}

// EscapeShellArg single-quotes arg for safe use in a command line.
func (r *Runner) EscapeShellArg(ctx context.Context, arg string) (string, error) {
	return guard.Invoke[string](ctx, escapeShellArg, r.rt.EscapeShellArg, []any{arg})
}
