// Copyright (c) 2024 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package exec

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// lookPathFn and environFn are replaceable in tests.
var (
	lookPathFn = exec.LookPath
	environFn  = os.Environ
)

// Spawn starts name with args and returns as soon as the process is
// running. A reaper goroutine collects the exit status so the caller
// never has to wait. With Detached set the child runs in its own
// session and keeps running after this process exits.
func (e *Exec) Spawn(
	name string,
	args []string,
	opts SpawnOptions,
) (*Process, error) {
	path, err := lookPathFn(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTerminalNotFound, name)
	}

	cmd := exec.Command(path, args...)
	cmd.Args[0] = name
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = MergeEnv(environFn(), opts.Env)
	}
	if opts.Detached {
		daemonize(cmd)
	}

	p := &Process{done: make(chan struct{})}

	var c *capture
	if opts.Capture {
		if c, err = newCapture(opts.LogDir); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSpawn, err.Error())
		}
		cmd.Stdout = c.stdout
		cmd.Stderr = c.stderr
	}

	if err := cmd.Start(); err != nil {
		c.abort()

		e.logger.Debug(
			"spawn failed",
			slog.String("command", strings.Join(cmd.Args, " ")),
			slog.String("cwd", opts.Dir),
			slog.Any("error", err),
		)

		if isNotFound(err, path) {
			return nil, fmt.Errorf("%w: %s", ErrTerminalNotFound, name)
		}

		return nil, fmt.Errorf("%w: %s", ErrSpawn, err.Error())
	}

	// The child holds its own copies of the capture descriptors.
	c.attach(p)

	p.PID = cmd.Process.Pid

	e.logger.Debug(
		"spawned",
		slog.String("command", strings.Join(cmd.Args, " ")),
		slog.String("cwd", opts.Dir),
		slog.Bool("detached", opts.Detached),
		slog.Int("pid", p.PID),
		slog.String("stdout_log", p.StdoutPath),
		slog.String("stderr_log", p.StderrPath),
	)

	go func() {
		err := cmd.Wait()

		p.exitCode = -1
		if cmd.ProcessState != nil {
			p.exitCode = cmd.ProcessState.ExitCode()
		}
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			p.err = err
		}
		close(p.done)
	}()

	return p, nil
}

// isNotFound reports whether a start error means the executable at path
// is missing, as opposed to e.g. a missing working directory.
func isNotFound(
	err error,
	path string,
) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}

	var pathErr *fs.PathError
	return errors.As(err, &pathErr) && pathErr.Path == path && errors.Is(err, fs.ErrNotExist)
}

// NewExitedProcess returns a handle for a process that has already
// exited with exitCode.
func NewExitedProcess(
	pid int,
	exitCode int,
) *Process {
	p := &Process{
		PID:      pid,
		done:     make(chan struct{}),
		exitCode: exitCode,
	}
	close(p.done)

	return p
}

// Done is closed once the process has exited.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// ExitCode returns the exit code of the process. It is only meaningful
// after Done is closed; -1 means the process was killed by a signal.
func (p *Process) ExitCode() int {
	return p.exitCode
}

// Wait blocks until the process exits or ctx is done.
func (p *Process) Wait(
	ctx context.Context,
) (int, error) {
	select {
	case <-p.done:
		return p.exitCode, p.err
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}

// MergeEnv returns base with overrides applied. Overridden keys keep
// their original position; new keys are appended in sorted order.
func MergeEnv(
	base []string,
	overrides map[string]string,
) []string {
	out := make([]string, 0, len(base)+len(overrides))
	applied := make(map[string]bool, len(overrides))

	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if v, ok := overrides[key]; ok {
			out = append(out, key+"="+v)
			applied[key] = true
			continue
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		if !applied[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}

	return out
}
