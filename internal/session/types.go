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

// Package session resolves the terminal emulator for the current desktop
// session on unix-like hosts.
package session

import (
	"sync"
)

// Environment variables consulted when resolving the terminal.
const (
	SessionEnv = "GDMSESSION"
	DesktopEnv = "XDG_CURRENT_DESKTOP"
)

// FallbackTerminal is used when neither hint matches a known desktop.
const FallbackTerminal = "xterm"

// LookupEnvFunc reads a single environment variable.
type LookupEnvFunc func(key string) (string, bool)

// Hints are the desktop identity signals read from the environment.
type Hints struct {
	// Session is the display-manager session name (GDMSESSION).
	Session string
	// Desktop is the current desktop environment (XDG_CURRENT_DESKTOP).
	Desktop string
}

// Terminal is a terminal emulator and the flag it uses to execute a
// command line.
type Terminal struct {
	Program string
	Flag    string
}

// Resolver resolves the session terminal once and serves the cached
// value for the rest of the process lifetime.
type Resolver struct {
	lookupEnv LookupEnvFunc

	once     sync.Once
	hints    Hints
	terminal Terminal
}
