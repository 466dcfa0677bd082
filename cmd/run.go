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

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retr0h/termrun/internal/cli"
	"github.com/retr0h/termrun/internal/config"
	"github.com/retr0h/termrun/internal/editor"
	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/launch"
	"github.com/retr0h/termrun/internal/runner"
	"github.com/retr0h/termrun/internal/session"
	"github.com/retr0h/termrun/internal/telemetry"
)

var (
	runFile        string
	runStdin       bool
	runWait        bool
	tracerShutdown func(context.Context) error
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Save a file and run it in a new terminal window",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cli.ValidatePlatform(logger)

		var err error
		tracerShutdown, err = telemetry.InitTracer(
			cmd.Context(),
			"run",
			appConfig.Telemetry.Tracing,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		logger.Debug(
			"run configuration",
			slog.String("config_file", viper.ConfigFileUsed()),
			slog.Bool("debug", appConfig.Debug),
			slog.String("output_policy", appConfig.OutputPolicy),
			slog.Bool("console_log", appConfig.ConsoleLog),
			slog.Bool("direct", appConfig.Direct),
		)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if tracerShutdown != nil {
			_ = tracerShutdown(context.Background())
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.PersistentFlags().
		BoolVar(&runStdin, "stdin", false, "Save the buffer read from stdin to the file before running")
	runCmd.PersistentFlags().
		BoolVarP(&runWait, "wait", "w", false, "Wait for the terminal process to exit")

	registry := &cobraRegistry{parent: runCmd, file: &runFile}
	for _, b := range []config.Binding{config.Primary, config.Secondary} {
		registry.Register("run", string(b), bindingHandler(b))
	}
}

func bindingHandler(
	binding config.Binding,
) editor.Handler {
	return func(ctx context.Context) error {
		r, err := newRunner()
		if err != nil {
			return err
		}

		if !runWait {
			return r.Handler(binding)(ctx)
		}

		result, err := r.Run(ctx, binding)
		if err != nil {
			return err
		}

		code, err := result.Process.Wait(ctx)
		logger.Info(
			"terminal exited",
			slog.String("run_id", result.RunID),
			slog.Int("code", code),
		)

		return err
	}
}

func newRunner() (*runner.Runner, error) {
	var contents []byte
	if runStdin {
		data, err := readBuffer(os.Stdin)
		if err != nil {
			return nil, err
		}
		contents = data
	}

	home, _ := os.UserHomeDir()
	self, err := os.Executable()
	if err != nil {
		logger.Debug("builtin helper unavailable", slog.String("error", err.Error()))
	}

	return runner.New(
		logger,
		appFs,
		editor.NewFileWorkspace(appFs, runFile, contents),
		cli.NewTermNotifier(logger, os.Stdout),
		&appConfig,
		session.NewResolver(nil),
		exec.New(logger),
		runner.Host{
			Platform: launch.FromGOOS(session.DetectOS()),
			Home:     home,
			Comspec:  os.Getenv("COMSPEC"),
			Self:     self,
		},
	), nil
}

// readBuffer reads the editor buffer piped to --stdin. An empty read
// leaves nothing to save, so the file on disk is kept as is.
func readBuffer(
	r io.Reader,
) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return data, nil
}
