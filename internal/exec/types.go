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

// Package exec starts terminal processes for the run pipeline.
package exec

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// Errors returned by Spawn. Both are wrapped with detail.
var (
	// ErrTerminalNotFound means the executable is not installed.
	ErrTerminalNotFound = errors.New("terminal not found")
	// ErrSpawn is any other failure to start the process.
	ErrSpawn = errors.New("spawn failed")
	// ErrCommandNotFound means a foreground command is not installed.
	ErrCommandNotFound = errors.New("command not found")
)

// Manager starts, runs and probes processes.
type Manager interface {
	// Spawn starts name with args and returns without waiting for it.
	Spawn(
		name string,
		args []string,
		opts SpawnOptions,
	) (*Process, error)
	// Run executes name in the foreground wired to the given streams
	// and returns its exit code.
	Run(
		ctx context.Context,
		name string,
		args []string,
		opts RunOptions,
	) (int, error)
	// Probe runs name to completion and captures its output.
	Probe(
		name string,
		args []string,
		timeout time.Duration,
	) (*ProbeResult, error)
}

// Exec implements Manager on top of os/exec.
type Exec struct {
	logger *slog.Logger
}

// SpawnOptions controls how Spawn starts a process. The zero value runs
// in the current directory, attached, with the parent environment.
type SpawnOptions struct {
	// Dir is the working directory. Empty inherits the parent's.
	Dir string
	// Detached starts the process in its own session so it outlives
	// the parent.
	Detached bool
	// Env is merged over the parent environment.
	Env map[string]string
	// Capture sends stdout and stderr to log files and exposes them on
	// the returned Process. The child writes to the files directly, so
	// it never depends on this process staying alive to read them.
	Capture bool
	// LogDir holds the capture files. Empty uses os.TempDir.
	LogDir string
}

// RunOptions wires a foreground command to its streams. Nil streams
// are connected to the null device.
type RunOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a handle to a started process.
type Process struct {
	// PID is the operating-system process id.
	PID int
	// Stdout and Stderr are nil unless SpawnOptions.Capture was set.
	// They follow the capture files and reach EOF once the process has
	// exited and everything it wrote has been read.
	Stdout io.Reader
	Stderr io.Reader
	// StdoutPath and StderrPath are the capture files.
	StdoutPath string
	StderrPath string

	done     chan struct{}
	exitCode int
	err      error
}

// ProbeResult is the captured output of Probe.
type ProbeResult struct {
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMs int64
}
