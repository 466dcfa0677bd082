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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/retr0h/termrun/internal/editor"
)

var levelStyles = map[editor.Level]lipgloss.Style{
	editor.LevelInfo:    lipgloss.NewStyle().Bold(true).Foreground(Purple),
	editor.LevelSuccess: lipgloss.NewStyle().Bold(true).Foreground(Teal),
	editor.LevelWarning: lipgloss.NewStyle().Bold(true).Foreground(Amber),
	editor.LevelError:   lipgloss.NewStyle().Bold(true).Foreground(Red),
}

var slogLevels = map[editor.Level]slog.Level{
	editor.LevelInfo:    slog.LevelInfo,
	editor.LevelSuccess: slog.LevelInfo,
	editor.LevelWarning: slog.LevelWarn,
	editor.LevelError:   slog.LevelError,
}

// TermNotifier prints notices to a terminal and mirrors them to the log.
type TermNotifier struct {
	logger *slog.Logger
	out    io.Writer
}

// NewTermNotifier returns a notifier writing styled notices to out.
func NewTermNotifier(
	logger *slog.Logger,
	out io.Writer,
) *TermNotifier {
	return &TermNotifier{
		logger: logger,
		out:    out,
	}
}

// Notify prints message prefixed with its level.
func (n *TermNotifier) Notify(
	level editor.Level,
	message string,
) {
	style, ok := levelStyles[level]
	if !ok {
		style = levelStyles[editor.LevelInfo]
	}

	_, _ = fmt.Fprintf(n.out, "%s %s\n", style.Render(string(level)+":"), message)

	n.logger.Log(
		context.Background(),
		slogLevels[level],
		"notice",
		slog.String("level", string(level)),
		slog.String("message", message),
	)
}
