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

// Package editor defines the host-editor collaborators the run pipeline
// consumes, plus implementations backed by the file system and the
// terminal for command-line use.
package editor

import (
	"context"
)

// Level is the severity of a user notification.
type Level string

// Notification levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Workspace exposes the focused editor pane.
type Workspace interface {
	// ActiveDocument returns the focused buffer, or false when no
	// editor pane has focus.
	ActiveDocument() (Document, bool)
}

// Document is an editable buffer.
type Document interface {
	// Path returns the absolute path backing the buffer, or false when
	// the buffer was never saved to disk.
	Path() (string, bool)
	// Save writes the buffer. The returned Completion may already be
	// resolved.
	Save() *Completion
}

// Notifier surfaces messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// Handler is a zero-argument command entry point.
type Handler func(ctx context.Context) error

// Registry binds handlers to user-invocable commands.
type Registry interface {
	Register(scope string, name string, handler Handler)
}
