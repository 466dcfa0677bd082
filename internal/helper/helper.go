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

package helper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/launch"
)

// Prompts written before waiting for the user.
const (
	promptEnter = "Press [ENTER] to continue..."
	promptClose = "Close this window to continue..."
)

// nowFn is replaceable in tests.
var nowFn = time.Now

// New returns a Helper wired to the given terminal streams.
func New(
	logger *slog.Logger,
	appFs afero.Fs,
	execManager exec.Manager,
	platform launch.Platform,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) *Helper {
	return &Helper{
		logger:      logger,
		appFs:       appFs,
		execManager: execManager,
		platform:    platform,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}
}

// Run executes argv and returns its exit code. The summary line and the
// pause prompt are always written to the terminal, even when the output
// goes to a pipe file or the command could not start.
func (h *Helper) Run(
	ctx context.Context,
	opts Options,
	argv []string,
) (int, error) {
	if len(argv) == 0 {
		return -1, ErrNoCommand
	}

	out, errOut := h.stdout, h.stderr
	if opts.Pipe != "" {
		f, err := h.appFs.OpenFile(opts.Pipe, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return -1, fmt.Errorf("%w: %w", ErrPipeOpen, err)
		}
		defer func() { _ = f.Close() }()
		out, errOut = f, f
	}

	start := nowFn()
	code, err := h.execManager.Run(ctx, argv[0], argv[1:], exec.RunOptions{
		Stdin:  h.stdin,
		Stdout: out,
		Stderr: errOut,
	})
	elapsed := nowFn().Sub(start)

	h.logger.DebugContext(
		ctx,
		"command exited",
		slog.String("command", strings.Join(argv, " ")),
		slog.String("pipe", opts.Pipe),
		slog.Int("code", code),
		slog.Duration("elapsed", elapsed),
	)

	if err != nil {
		_, _ = fmt.Fprintf(h.stderr, "%s\n", err)
	}
	_, _ = fmt.Fprintf(
		h.stdout,
		"\nProcess returned %d (0x%x)\texecution time : %.3f s\n",
		code,
		code,
		elapsed.Seconds(),
	)

	if opts.Pause {
		h.pause()
	}

	return code, err
}

// pause holds the window open. Terminal.app keeps its window after the
// command ends, so darwin only prints a hint.
func (h *Helper) pause() {
	if h.platform == launch.Darwin {
		_, _ = fmt.Fprintln(h.stdout, promptClose)
		return
	}

	_, _ = fmt.Fprint(h.stdout, promptEnter)
	_, _ = bufio.NewReader(h.stdin).ReadString('\n')
}
