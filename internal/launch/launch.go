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

package launch

import (
	"fmt"
	"strings"

	"github.com/retr0h/termrun/internal/session"
)

// Defaults used by Build.
const (
	DefaultInterpreter = "python"
	DefaultComspec     = "cmd.exe"
	ScriptHost         = "osascript"
)

// FromGOOS maps a GOOS value to its platform family. Unrecognised values
// are returned as-is and rejected by Build.
func FromGOOS(
	goos string,
) Platform {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return Unix
	default:
		return Platform(goos)
	}
}

// Build returns the descriptor for platform. terminal is only consulted
// on Unix.
func Build(
	platform Platform,
	terminal session.Terminal,
	scriptPath string,
	opts ...Option,
) (*Descriptor, error) {
	o := options{
		interpreter: DefaultInterpreter,
		comspec:     DefaultComspec,
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Descriptor{
		Platform:    platform,
		Interpreter: o.interpreter,
		Target:      scriptPath,
		Builder:     ArgvBuilder,
	}

	switch platform {
	case Windows:
		d.ShellProgram = o.comspec
		d.ShellOptions = []string{"/c", "start"}
	case Unix:
		d.ShellProgram = terminal.Program
		d.ShellOptions = []string{terminal.Flag}
	case Darwin:
		d.ShellProgram = ScriptHost
		d.ShellOptions = []string{"-e"}
		d.Builder = ScriptBuilder
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, string(platform))
	}

	return d, nil
}

// WithTerminal returns a copy of d launching through program instead of
// the detected terminal. Empty flags select the program's known execute
// flag on Unix. On Windows they keep "/c start" only when program is the
// command interpreter; any other program gets the payload with no
// options. Darwin descriptors are returned unchanged since the
// scripting host is the only supported route there.
func (d *Descriptor) WithTerminal(
	program string,
	flags []string,
) *Descriptor {
	if program == "" || d.Platform == Darwin {
		return d
	}

	out := *d
	out.ShellProgram = program
	switch {
	case len(flags) > 0:
		out.ShellOptions = append([]string(nil), flags...)
	case d.Platform == Unix:
		out.ShellOptions = []string{session.FlagFor(program)}
	case sameProgram(program, d.ShellProgram):
		out.ShellOptions = append([]string(nil), d.ShellOptions...)
	default:
		out.ShellOptions = nil
	}

	return &out
}

// sameProgram compares Windows executables by base name, ignoring case
// and the .exe suffix.
func sameProgram(
	a string,
	b string,
) bool {
	return strings.EqualFold(programName(a), programName(b))
}

func programName(
	path string,
) string {
	name := path[strings.LastIndexAny(path, `\/`)+1:]
	if len(name) > 4 && strings.EqualFold(name[len(name)-4:], ".exe") {
		name = name[:len(name)-4]
	}

	return name
}

// Args returns the argv passed to ShellProgram for the given trailing
// arguments.
func (d *Descriptor) Args(
	args []string,
) []string {
	out := make([]string, 0, len(d.ShellOptions)+len(args)+2)
	out = append(out, d.ShellOptions...)

	if d.Builder == ScriptBuilder {
		return append(out, d.Command(args))
	}

	out = append(out, d.payload(args)...)

	return out
}

// Command returns the scripting-host instruction for args. It is only
// meaningful for ScriptBuilder descriptors but is safe to call on any.
func (d *Descriptor) Command(
	args []string,
) string {
	line := strings.Join(d.payload(args), " ")

	return fmt.Sprintf(`tell app "Terminal" to do script "%s"`, escapeAppleScript(line))
}

func (d *Descriptor) payload(
	args []string,
) []string {
	out := make([]string, 0, len(args)+2)
	if d.Interpreter != "" {
		out = append(out, d.Interpreter, d.Target)
	}

	return append(out, args...)
}

func escapeAppleScript(
	s string,
) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// DefaultScriptPath returns the helper script location under home using
// the separator of platform.
func DefaultScriptPath(
	platform Platform,
	home string,
) string {
	parts := []string{home, ".termrun", "helper", "main.py"}
	sep := "/"
	if platform == Windows {
		sep = `\`
	}

	return strings.Join(parts, sep)
}
