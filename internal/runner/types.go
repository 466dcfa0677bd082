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

// Package runner implements the run pipeline behind the editor's run
// bindings: save the active file, pick a terminal, and launch the file's
// command inside it.
package runner

import (
	"errors"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/retr0h/termrun/internal/config"
	"github.com/retr0h/termrun/internal/editor"
	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/launch"
	"github.com/retr0h/termrun/internal/session"
)

// Errors returned by Run. The user has already been notified when Run
// returns one of them.
var (
	ErrNoActiveDocument  = errors.New("no active document")
	ErrUnsavedDocument   = errors.New("document is not saved to disk")
	ErrSaveFailed        = errors.New("save failed")
	ErrExtensionRejected = errors.New("extension rejected")
	ErrMalformedCommand  = errors.New("malformed command")
	ErrPipeMisconfigured = errors.New("pipe misconfigured")
	ErrOutputPolicy      = errors.New("output policy violated")

	ErrUnsupportedPlatform = launch.ErrUnsupportedPlatform
	ErrTerminalNotFound    = exec.ErrTerminalNotFound
	ErrSpawn               = exec.ErrSpawn
)

// HelperMode says how the formatted command reaches the terminal.
type HelperMode string

const (
	// HelperBuiltin wraps the command in the exec subcommand of the
	// termrun binary itself.
	HelperBuiltin HelperMode = "builtin"
	// HelperScript wraps the command in an external helper script.
	HelperScript HelperMode = "script"
	// HelperDirect hands the formatted command to the terminal as is.
	// Pause and pipe need a helper and are unavailable.
	HelperDirect HelperMode = "direct"
)

// ExecCommand is the termrun subcommand used as the builtin helper.
const ExecCommand = "exec"

// Host describes the machine a run launches on.
type Host struct {
	// Platform is the launch family.
	Platform launch.Platform
	// Home is the user's home directory, used to locate the helper
	// script.
	Home string
	// Comspec is the Windows command interpreter, usually %COMSPEC%.
	Comspec string
	// Self is the termrun executable, run as the builtin helper. Empty
	// leaves only the helper script or direct mode.
	Self string
}

// Runner executes run bindings.
type Runner struct {
	logger      *slog.Logger
	appFs       afero.Fs
	workspace   editor.Workspace
	notifier    editor.Notifier
	cfg         *config.Config
	resolver    *session.Resolver
	execManager exec.Manager
	host        Host
}

// Result describes a successful launch.
type Result struct {
	RunID      string
	Descriptor *launch.Descriptor
	Helper     HelperMode
	// Args is the argv passed to Descriptor.ShellProgram.
	Args    []string
	Dir     string
	Process *exec.Process
}

// request is the per-invocation input assembled from the document and
// the binding's configuration.
type request struct {
	file     string
	template string
	pause    bool
	pipe     string
	env      map[string]string
}
