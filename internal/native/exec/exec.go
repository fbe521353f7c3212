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

// Package exec is the native process runtime. Commands run through
// "sh -c" using a jmgilman/go/exec executor.
package exec

import (
	"context"
	"io"
	"strings"

	jexec "github.com/jmgilman/go/exec"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Shell is the interpreter commands are passed to.
var Shell = []string{"sh", "-c"}

// Output is what exec() writes to its output parameters.
type Output struct {
	Lines      []string
	ResultCode int
}

// Runtime runs shell commands.
type Runtime struct {
	exec   jexec.Executor
	stdout io.Writer
	dir    string
}

// New returns a Runtime. stdout receives the passthrough output of System;
// nil discards it.
func New(dir string, stdout io.Writer, opts ...jexec.Option) *Runtime {
	if stdout == nil {
		stdout = io.Discard
	}
	return &Runtime{exec: jexec.New(opts...), stdout: stdout, dir: dir}
}

// Exec runs command and returns its last output line or false when the
// command could not be started. Exit status is reported through Output.
func (r *Runtime) Exec(ctx context.Context, command string) (any, Output, bool) {
	const fn = "exec"
	res, ok := r.run(ctx, fn, command, false)
	if !ok {
		return false, Output{ResultCode: -1}, false
	}
	out := Output{Lines: lines(res.Stdout), ResultCode: res.ExitCode}
	return last(out.Lines), out, true
}

// System runs command, streaming stdout to the runtime writer, and returns
// the last line or false.
func (r *Runtime) System(ctx context.Context, command string) (any, int, bool) {
	const fn = "system"
	res, ok := r.run(ctx, fn, command, true)
	if !ok {
		return false, -1, false
	}
	return last(lines(res.Stdout)), res.ExitCode, true
}

// ShellExec returns the full stdout of the command, nil when there was
// none, or false when the command could not be started. argv: command.
func (r *Runtime) ShellExec(ctx context.Context, argv ...any) any {
	const fn = "shell_exec"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	command, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	res, ok := r.run(ctx, fn, command, false)
	if !ok {
		return false
	}
	if res.Stdout == "" {
		return nil
	}
	return res.Stdout
}

// EscapeShellArg quotes arg for the shell. argv: arg.
func (r *Runtime) EscapeShellArg(ctx context.Context, argv ...any) any {
	const fn = "escapeshellarg"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	arg, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if strings.IndexByte(arg, 0) >= 0 {
		return native.Fail(ctx, "%s(): Argument #1 ($arg) must not contain any null bytes", fn)
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func (r *Runtime) run(ctx context.Context, fn, command string, passthrough bool) (*jexec.Result, bool) {
	if command == "" {
		native.Fail(ctx, "%s(): Argument #1 ($command) cannot be empty", fn)
		return nil, false
	}
	if strings.IndexByte(command, 0) >= 0 {
		native.Fail(ctx, "%s(): Argument #1 ($command) must not contain any null bytes", fn)
		return nil, false
	}

	e := r.exec.Clone().WithContext(ctx)
	if r.dir != "" {
		e = e.WithDir(r.dir)
	}
	if passthrough {
		e = e.WithStdout(r.stdout).WithPassthrough()
	}
	res, err := e.Run(append(append([]string{}, Shell...), command)...)
	if res == nil || res.ExitCode < 0 {
		reason := "unknown error"
		if err != nil {
			reason = err.Error()
		}
		native.Fail(ctx, "%s(): Unable to fork [%s]: %s", fn, command, reason)
		return nil, false
	}
	return res, true
}

func lines(stdout string) []string {
	stdout = strings.TrimRight(stdout, "\n")
	if stdout == "" {
		return nil
	}
	out := strings.Split(stdout, "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " \t\r\v")
	}
	return out
}

func last(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
