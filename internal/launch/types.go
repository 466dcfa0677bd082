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

// Package launch builds the platform-specific description of how a
// terminal is asked to run a script.
package launch

import (
	"errors"
)

// ErrUnsupportedPlatform is returned by Build for platforms outside the
// three supported families.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Platform is an operating-system family.
type Platform string

// Supported platform families.
const (
	Windows Platform = "windows"
	Unix    Platform = "unix"
	Darwin  Platform = "darwin"
)

// Builder tags how a Descriptor turns its payload into arguments.
type Builder int

const (
	// ArgvBuilder passes every token as its own argv entry.
	ArgvBuilder Builder = iota
	// ScriptBuilder flattens the payload into one scripting-host
	// instruction.
	ScriptBuilder
)

// String returns the builder name.
func (b Builder) String() string {
	switch b {
	case ArgvBuilder:
		return "argv"
	case ScriptBuilder:
		return "script"
	default:
		return "unknown"
	}
}

// Descriptor describes how to invoke a terminal for one platform. It is
// built once per run and never modified.
type Descriptor struct {
	Platform Platform
	// ShellProgram is the terminal or shell executable.
	ShellProgram string
	// ShellOptions are passed to ShellProgram before the payload.
	ShellOptions []string
	// Interpreter runs Target. Empty means the payload is free-form and
	// neither Interpreter nor Target is emitted.
	Interpreter string
	// Target is the script Interpreter executes.
	Target  string
	Builder Builder
}

// Option configures Build.
type Option func(*options)

type options struct {
	interpreter string
	comspec     string
}

// WithInterpreter overrides the interpreter binary. An empty value
// selects free-form mode.
func WithInterpreter(
	interpreter string,
) Option {
	return func(o *options) {
		o.interpreter = interpreter
	}
}

// WithComspec sets the Windows command interpreter, normally the value
// of %COMSPEC%. Empty keeps the default.
func WithComspec(
	comspec string,
) Option {
	return func(o *options) {
		if comspec != "" {
			o.comspec = comspec
		}
	}
}
