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

// Package observe logs the output and exit of a spawned terminal.
package observe

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/retr0h/termrun/internal/exec"
)

// Info describes the launch being observed.
type Info struct {
	Platform     string
	ShellProgram string
	ShellOptions []string
	Interpreter  string
	Target       string
	Args         []string
	Dir          string
	Detached     bool
}

// Attach logs info, then every line the process writes and its exit
// code. It returns immediately; all reading happens on goroutines that
// end when the process exits. Lines are only logged while this process
// is alive; the capture files keep the full output either way.
func Attach(
	logger *slog.Logger,
	proc *exec.Process,
	info Info,
) {
	if logger == nil || proc == nil {
		return
	}

	logger.Info(
		"launch",
		slog.String("platform", info.Platform),
		slog.String("shell", info.ShellProgram),
		slog.String("option", strings.Join(info.ShellOptions, " ")),
		slog.String("call", info.Interpreter),
		slog.String("script", info.Target),
		slog.Any("args", info.Args),
		slog.String("cwd", info.Dir),
		slog.Bool("detached", info.Detached),
		slog.Int("pid", proc.PID),
		slog.String("stdout_log", proc.StdoutPath),
		slog.String("stderr_log", proc.StderrPath),
	)

	if proc.Stdout != nil {
		go stream(logger, "stdout", proc.Stdout)
	}
	if proc.Stderr != nil {
		go stream(logger, "stderr", proc.Stderr)
	}

	pid := proc.PID
	done := proc.Done()
	go func() {
		<-done
		logger.Info(
			"child process exited",
			slog.Int("pid", pid),
			slog.Int("code", proc.ExitCode()),
		)
	}()
}

func stream(
	logger *slog.Logger,
	name string,
	r io.Reader,
) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logger.Info(name, slog.String("line", scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		logger.Debug("stream closed", slog.String("stream", name), slog.Any("error", err))
	}
}
