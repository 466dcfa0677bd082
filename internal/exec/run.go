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
	"log/slog"
	"os/exec"
	"strings"
)

// Run executes name in the foreground and blocks until it exits or ctx
// is done. A non-zero exit is reported through the code, not the
// error; the error is reserved for commands that could not run.
func (e *Exec) Run(
	ctx context.Context,
	name string,
	args []string,
	opts RunOptions,
) (int, error) {
	path, err := lookPathFn(name)
	if err != nil {
		return -1, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Args[0] = name
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	e.logger.DebugContext(
		ctx,
		"running",
		slog.String("command", strings.Join(cmd.Args, " ")),
	)

	err = cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case ctx.Err() != nil:
		return -1, ctx.Err()
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	case isNotFound(err, path):
		return -1, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	default:
		return -1, fmt.Errorf("%w: %s", ErrSpawn, err.Error())
	}
}
