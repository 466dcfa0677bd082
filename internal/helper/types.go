// Copyright (c) 2026 John Dewey

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

// Package helper runs a formatted command inside the terminal window a
// run opened. It can send the output to a file, reports how the
// command exited, and can hold the window open until the user is done.
package helper

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/launch"
)

// Errors returned by Run.
var (
	ErrNoCommand = errors.New("no command to run")
	ErrPipeOpen  = errors.New("cannot open pipe destination")
)

// Options are the helper flags passed by the launcher.
type Options struct {
	// Pause waits for the user after the command exits.
	Pause bool
	// Pipe appends stdout and stderr to this file instead of the
	// terminal.
	Pipe string
}

// Helper runs one command in the foreground of the current terminal.
type Helper struct {
	logger      *slog.Logger
	appFs       afero.Fs
	execManager exec.Manager
	platform    launch.Platform
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}
