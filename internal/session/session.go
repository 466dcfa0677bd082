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

package session

import (
	"os"
)

var sessionTerminals = map[string]string{
	"ubuntu":         "gnome-terminal",
	"ubuntu-2d":      "gnome-terminal",
	"gnome":          "gnome-terminal",
	"gnome-shell":    "gnome-terminal",
	"gnome-classic":  "gnome-terminal",
	"gnome-fallback": "gnome-terminal",
	"cinnamon":       "gnome-terminal",
	"xfce":           "xfce4-terminal",
	"kde-plasma":     "konsole",
	"Lubuntu":        "lxterminal",
}

var desktopTerminals = map[string]string{
	"Unity":      "gnome-terminal",
	"GNOME":      "gnome-terminal",
	"X-Cinnamon": "gnome-terminal",
	"XFCE":       "xfce4-terminal",
	"KDE":        "konsole",
	"LXDE":       "lxterminal",
}

// terminalFlags must cover every value of sessionTerminals,
// desktopTerminals and FallbackTerminal.
var terminalFlags = map[string]string{
	"gnome-terminal": "-x",
	"xfce4-terminal": "-x",
	"terminator":     "-x",
	"konsole":        "-e",
	"lxterminal":     "-e",
	"xterm":          "-e",
}

// defaultFlag is used for terminals outside the known set, which only
// happens for a user-supplied program.
const defaultFlag = "-e"

// NewResolver creates a Resolver reading hints through lookupEnv.
// A nil lookupEnv reads the process environment.
func NewResolver(
	lookupEnv LookupEnvFunc,
) *Resolver {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	return &Resolver{lookupEnv: lookupEnv}
}

// Terminal returns the terminal for the current session. The environment
// is read on the first call only.
func (r *Resolver) Terminal() Terminal {
	r.once.Do(func() {
		r.hints = r.readHints()
		r.terminal = Resolve(r.hints)
	})

	return r.terminal
}

// Hints returns the hints the cached terminal was resolved from.
func (r *Resolver) Hints() Hints {
	_ = r.Terminal()

	return r.hints
}

func (r *Resolver) readHints() Hints {
	s, _ := r.lookupEnv(SessionEnv)
	d, _ := r.lookupEnv(DesktopEnv)

	return Hints{Session: s, Desktop: d}
}

// Resolve maps session hints to a terminal. The session name wins over
// the desktop name; xterm is the fallback.
func Resolve(
	hints Hints,
) Terminal {
	program, ok := sessionTerminals[hints.Session]
	if !ok {
		program, ok = desktopTerminals[hints.Desktop]
		if !ok {
			program = FallbackTerminal
		}
	}

	return Terminal{
		Program: program,
		Flag:    FlagFor(program),
	}
}

// FlagFor returns the execute flag for a terminal program.
func FlagFor(
	program string,
) string {
	if flag, ok := terminalFlags[program]; ok {
		return flag
	}

	return defaultFlag
}

// KnownTerminals returns every terminal program Resolve can produce.
func KnownTerminals() []string {
	seen := map[string]struct{}{FallbackTerminal: {}}
	out := []string{FallbackTerminal}
	for _, table := range []map[string]string{sessionTerminals, desktopTerminals} {
		for _, p := range table {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}

	return out
}
