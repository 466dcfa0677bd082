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

package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/retr0h/termrun/internal/config"
	"github.com/retr0h/termrun/internal/editor"
	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/launch"
	"github.com/retr0h/termrun/internal/observe"
	"github.com/retr0h/termrun/internal/session"
	"github.com/retr0h/termrun/internal/telemetry"
	"github.com/retr0h/termrun/internal/template"
)

// Notices shown to the user.
const (
	noticeNoPause     = "Running the program without pause at the end."
	noticePipeDirect  = "Pipe to file needs the helper; set direct to false or disable pipe."
	noticePauseDirect = "Pause needs the helper; the terminal may close as soon as the program exits."
)

const envFileName = ".env"

// New returns a Runner.
func New(
	logger *slog.Logger,
	appFs afero.Fs,
	workspace editor.Workspace,
	notifier editor.Notifier,
	cfg *config.Config,
	resolver *session.Resolver,
	execManager exec.Manager,
	host Host,
) *Runner {
	return &Runner{
		logger:      logger,
		appFs:       appFs,
		workspace:   workspace,
		notifier:    notifier,
		cfg:         cfg,
		resolver:    resolver,
		execManager: execManager,
		host:        host,
	}
}

// Handler returns the zero-argument entry point for binding.
func (r *Runner) Handler(
	binding config.Binding,
) editor.Handler {
	return func(ctx context.Context) error {
		_, err := r.Run(ctx, binding)
		return err
	}
}

// Run saves the active document and launches it in a new terminal
// using the command template of binding. Every failure is reported to
// the notifier before it is returned; nothing is retried.
func (r *Runner) Run(
	ctx context.Context,
	binding config.Binding,
) (*Result, error) {
	runID := uuid.NewString()
	ctx, span := telemetry.StartRun(ctx, runID, string(binding))

	result, err := r.run(ctx, binding)
	telemetry.End(span, err)
	if err != nil {
		r.logger.DebugContext(ctx, "run aborted", slog.String("error", err.Error()))

		return nil, err
	}
	result.RunID = runID

	return result, nil
}

func (r *Runner) run(
	ctx context.Context,
	binding config.Binding,
) (*Result, error) {
	doc, ok := r.workspace.ActiveDocument()
	if !ok {
		r.notifier.Notify(editor.LevelInfo, "No active document to run.")
		return nil, ErrNoActiveDocument
	}

	file, ok := doc.Path()
	if !ok {
		r.notifier.Notify(editor.LevelError, "Save the file to disk before running it.")
		return nil, ErrUnsavedDocument
	}

	if err := doc.Save().Await(ctx); err != nil {
		r.notifier.Notify(editor.LevelError, fmt.Sprintf("Could not save %s: %s", file, err))
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	req := request{
		file:     file,
		template: r.cfg.Template(binding),
		pause:    r.cfg.PauseFor(binding),
		env:      r.environment(ctx, filepath.Dir(file)),
	}

	if ext := filepath.Ext(file); !AllowedExtension(r.cfg.ExtensionFilter, ext) {
		r.notifier.Notify(
			editor.LevelWarning,
			fmt.Sprintf("%s is not in the extension filter (%s).", filepath.Base(file),
				strings.Join(r.cfg.ExtensionFilter, ", ")),
		)
		return nil, fmt.Errorf("%w: %q", ErrExtensionRejected, ext)
	}

	if r.cfg.Pipe.Enabled {
		if r.cfg.Pipe.Destination == "" {
			r.notifier.Notify(editor.LevelError, "Pipe to file is enabled but no destination is set.")
			return nil, ErrPipeMisconfigured
		}
		req.pipe = r.cfg.Pipe.Destination
	}

	if err := r.checkOutputPolicy(req); err != nil {
		return nil, err
	}

	tctx := template.NewContext(file)
	tokens := template.Expand(req.template, tctx)
	if len(tokens) < 2 {
		r.notifier.Notify(
			editor.LevelError,
			fmt.Sprintf("Command %q needs an interpreter and a target.", req.template),
		)
		return nil, fmt.Errorf("%w: %q", ErrMalformedCommand, req.template)
	}

	desc, mode, err := r.Descriptor()
	if err != nil {
		r.notifier.Notify(
			editor.LevelError,
			fmt.Sprintf("Platform %s is not supported.", r.host.Platform),
		)
		return nil, err
	}

	var payload []string
	switch mode {
	case HelperDirect:
		if req.pipe != "" {
			r.notifier.Notify(editor.LevelError, noticePipeDirect)
			return nil, fmt.Errorf("%w: pipe needs the helper", ErrPipeMisconfigured)
		}
		if req.pause {
			r.notifier.Notify(editor.LevelWarning, noticePauseDirect)
		}
		payload = tokens
	case HelperBuiltin:
		// "--" keeps interpreter flags away from the exec flag parser.
		payload = HelperArgs(
			req.pause,
			expandOne(req.pipe, tctx),
			append([]string{"--"}, tokens...),
		)
	default:
		payload = HelperArgs(req.pause, expandOne(req.pipe, tctx), tokens)
	}

	args := desc.Args(payload)
	opts := exec.SpawnOptions{
		Dir:      tctx.Dir,
		Detached: true,
		Env:      telemetry.InjectEnv(ctx, req.env),
		Capture:  r.cfg.ConsoleLog,
	}

	r.logger.DebugContext(
		ctx,
		"spawning terminal",
		slog.String("program", desc.ShellProgram),
		slog.String("args", strings.Join(args, " ")),
		slog.String("cwd", opts.Dir),
		slog.String("helper", string(mode)),
	)

	proc, err := r.execManager.Spawn(desc.ShellProgram, args, opts)
	if err != nil {
		r.notifySpawnError(desc.ShellProgram, err)
		return nil, err
	}

	if r.cfg.ConsoleLog {
		observe.Attach(r.logger.With(slog.String("file", file)), proc, observe.Info{
			Platform:     string(desc.Platform),
			ShellProgram: desc.ShellProgram,
			ShellOptions: desc.ShellOptions,
			Interpreter:  desc.Interpreter,
			Target:       desc.Target,
			Args:         payload,
			Dir:          opts.Dir,
			Detached:     opts.Detached,
		})
	}

	r.notifier.Notify(
		editor.LevelSuccess,
		fmt.Sprintf("Running %s in %s.", filepath.Base(file), desc.ShellProgram),
	)

	return &Result{
		Descriptor: desc,
		Helper:     mode,
		Args:       args,
		Dir:        opts.Dir,
		Process:    proc,
	}, nil
}

// checkOutputPolicy enforces that a run either pauses or pipes. The
// permissive policy lets a run do neither with a warning.
func (r *Runner) checkOutputPolicy(
	req request,
) error {
	piped := req.pipe != ""

	switch {
	case req.pause != piped:
		return nil
	case r.cfg.Permissive():
		if !req.pause {
			r.notifier.Notify(editor.LevelWarning, noticeNoPause)
		}
		return nil
	case req.pause:
		r.notifier.Notify(
			editor.LevelError,
			"Pause and pipe are both enabled; disable one or set output_policy to permissive.",
		)
	default:
		r.notifier.Notify(
			editor.LevelError,
			"Neither pause nor pipe is enabled; enable one or set output_policy to permissive.",
		)
	}

	return fmt.Errorf("%w: pause=%t pipe=%t", ErrOutputPolicy, req.pause, piped)
}

// Descriptor builds the launch descriptor and reports which helper it
// runs. A configured or installed helper script wins over the builtin
// exec subcommand; with neither, or with direct set, the formatted
// command runs straight in the terminal.
func (r *Runner) Descriptor() (*launch.Descriptor, HelperMode, error) {
	mode, target := r.helper()

	opts := []launch.Option{launch.WithComspec(r.host.Comspec)}
	switch mode {
	case HelperDirect:
		opts = append(opts, launch.WithInterpreter(""))
	case HelperBuiltin:
		opts = append(opts, launch.WithInterpreter(r.host.Self))
	case HelperScript:
		if r.cfg.Interpreter != "" {
			opts = append(opts, launch.WithInterpreter(r.cfg.Interpreter))
		}
	}

	var terminal session.Terminal
	if r.host.Platform == launch.Unix {
		terminal = r.resolver.Terminal()
	}

	desc, err := launch.Build(r.host.Platform, terminal, target, opts...)
	if err != nil {
		return nil, mode, err
	}

	ct := r.cfg.CustomTerminal

	return desc.WithTerminal(ct.Program, ct.Flags), mode, nil
}

func (r *Runner) helper() (HelperMode, string) {
	if r.cfg.Direct {
		return HelperDirect, ""
	}

	if r.cfg.ScriptPath != "" {
		return HelperScript, r.cfg.ScriptPath
	}

	if r.host.Home != "" {
		path := launch.DefaultScriptPath(r.host.Platform, r.host.Home)
		if exists, _ := afero.Exists(r.appFs, path); exists {
			return HelperScript, path
		}
	}

	if r.host.Self != "" {
		return HelperBuiltin, ExecCommand
	}

	return HelperDirect, ""
}

func (r *Runner) notifySpawnError(
	program string,
	err error,
) {
	if errors.Is(err, ErrTerminalNotFound) {
		r.notifier.Notify(
			editor.LevelError,
			fmt.Sprintf(
				"%s is not a command line terminal installed in the system. "+
					"Set custom_terminal to use another one.",
				program,
			),
		)
		return
	}

	r.notifier.Notify(editor.LevelError, fmt.Sprintf("Could not start %s: %s", program, err))
}

// environment layers the configured variables over the script
// directory's .env file when env_file is enabled.
func (r *Runner) environment(
	ctx context.Context,
	dir string,
) map[string]string {
	vars := r.cfg.Env()
	if !r.cfg.EnvFile {
		return vars
	}

	path := filepath.Join(dir, envFileName)
	f, err := r.appFs.Open(path)
	if err != nil {
		return vars
	}
	defer func() { _ = f.Close() }()

	env, err := godotenv.Parse(f)
	if err != nil {
		r.logger.WarnContext(
			ctx,
			"ignoring unreadable env file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return vars
	}

	for k, v := range vars {
		env[k] = v
	}
	r.logger.DebugContext(
		ctx,
		"environment merged",
		slog.String("env_file", path),
		slog.Int("count", len(env)),
	)

	return env
}

// HelperArgs returns the helper arguments: -p to pause after
// exit, -f with the pipe destination, then the formatted command.
func HelperArgs(
	pause bool,
	pipe string,
	tokens []string,
) []string {
	out := make([]string, 0, len(tokens)+3)
	if pause {
		out = append(out, "-p")
	}
	if pipe != "" {
		out = append(out, "-f", pipe)
	}

	return append(out, tokens...)
}

// AllowedExtension reports whether ext passes filter. An empty filter
// allows everything. Entries match with or without a leading dot and
// ignore case.
func AllowedExtension(
	filter []string,
	ext string,
) bool {
	if len(filter) == 0 {
		return true
	}

	ext = strings.TrimPrefix(ext, ".")
	for _, f := range filter {
		if strings.EqualFold(strings.TrimPrefix(f, "."), ext) {
			return true
		}
	}

	return false
}

func expandOne(
	s string,
	ctx template.Context,
) string {
	if s == "" {
		return ""
	}

	return template.Format([]string{s}, ctx)[0]
}
