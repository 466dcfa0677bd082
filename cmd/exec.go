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

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/retr0h/termrun/internal/cli"
	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/helper"
	"github.com/retr0h/termrun/internal/launch"
	"github.com/retr0h/termrun/internal/runner"
	"github.com/retr0h/termrun/internal/session"
	"github.com/retr0h/termrun/internal/telemetry"
)

var (
	execPause bool
	execPipe  string
	// exitFn is replaceable in tests.
	exitFn = os.Exit
)

// execCmd represents the exec command.
var execCmd = &cobra.Command{
	Use:   runner.ExecCommand + " [flags] -- <interpreter> [options] <file>",
	Short: "Run a command inside the terminal a run opened",
	Long: `Run the formatted command in the foreground of the current terminal.
This is what "termrun run" launches inside the new window; it is rarely
called by hand.

With --pipe the output is appended to a file instead of the terminal.
With --pause the window stays open until Enter is pressed.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shutdown, err := telemetry.InitTracer(
			cmd.Context(),
			runner.ExecCommand,
			appConfig.Telemetry.Tracing,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		ctx, span := telemetry.StartExec(cmd.Context(), os.Environ(), args)

		h := helper.New(
			logger,
			appFs,
			exec.New(logger),
			launch.FromGOOS(session.DetectOS()),
			os.Stdin,
			os.Stdout,
			os.Stderr,
		)
		code, err := h.Run(ctx, helper.Options{Pause: execPause, Pipe: execPipe}, args)

		span.SetAttributes(telemetry.ExitCodeKey.Int(code))
		telemetry.End(span, err)
		_ = shutdown(context.Background())

		if err != nil {
			return err
		}
		if code != 0 {
			exitFn(code)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)

	// Everything after the interpreter belongs to it.
	execCmd.Flags().SetInterspersed(false)
	execCmd.Flags().
		BoolVarP(&execPause, "pause", "p", false, "Wait for Enter after the command exits")
	execCmd.Flags().
		StringVarP(&execPipe, "pipe", "f", "", "Append the command's output to this file")
}
