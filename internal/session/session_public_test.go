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

package session_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/termrun/internal/session"
)

type SessionPublicTestSuite struct {
	suite.Suite
}

func TestSessionPublicTestSuite(t *testing.T) {
	suite.Run(t, new(SessionPublicTestSuite))
}

func (s *SessionPublicTestSuite) TestResolve() {
	tests := []struct {
		name  string
		hints session.Hints
		want  session.Terminal
	}{
		{
			name:  "when session is gnome",
			hints: session.Hints{Session: "gnome"},
			want:  session.Terminal{Program: "gnome-terminal", Flag: "-x"},
		},
		{
			name:  "when session is cinnamon",
			hints: session.Hints{Session: "cinnamon"},
			want:  session.Terminal{Program: "gnome-terminal", Flag: "-x"},
		},
		{
			name:  "when session is xfce",
			hints: session.Hints{Session: "xfce"},
			want:  session.Terminal{Program: "xfce4-terminal", Flag: "-x"},
		},
		{
			name:  "when session is kde-plasma",
			hints: session.Hints{Session: "kde-plasma"},
			want:  session.Terminal{Program: "konsole", Flag: "-e"},
		},
		{
			name:  "when session is Lubuntu",
			hints: session.Hints{Session: "Lubuntu"},
			want:  session.Terminal{Program: "lxterminal", Flag: "-e"},
		},
		{
			name:  "when session wins over desktop",
			hints: session.Hints{Session: "xfce", Desktop: "KDE"},
			want:  session.Terminal{Program: "xfce4-terminal", Flag: "-x"},
		},
		{
			name:  "when session is unknown falls back to desktop",
			hints: session.Hints{Session: "sway", Desktop: "KDE"},
			want:  session.Terminal{Program: "konsole", Flag: "-e"},
		},
		{
			name:  "when desktop is X-Cinnamon",
			hints: session.Hints{Desktop: "X-Cinnamon"},
			want:  session.Terminal{Program: "gnome-terminal", Flag: "-x"},
		},
		{
			name:  "when desktop is LXDE",
			hints: session.Hints{Desktop: "LXDE"},
			want:  session.Terminal{Program: "lxterminal", Flag: "-e"},
		},
		{
			name:  "when nothing matches falls back to xterm",
			hints: session.Hints{Desktop: "unknown-de"},
			want:  session.Terminal{Program: "xterm", Flag: "-e"},
		},
		{
			name: "when no hints are set falls back to xterm",
			want: session.Terminal{Program: "xterm", Flag: "-e"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, session.Resolve(tt.hints))
		})
	}
}

func (s *SessionPublicTestSuite) TestFlagForIsTotal() {
	for _, program := range session.KnownTerminals() {
		s.Run(program, func() {
			flag := session.FlagFor(program)
			s.Contains([]string{"-x", "-e"}, flag)
		})
	}
}

func (s *SessionPublicTestSuite) TestFlagFor() {
	tests := []struct {
		name    string
		program string
		want    string
	}{
		{name: "gnome-terminal uses -x", program: "gnome-terminal", want: "-x"},
		{name: "terminator uses -x", program: "terminator", want: "-x"},
		{name: "konsole uses -e", program: "konsole", want: "-e"},
		{name: "unknown program uses -e", program: "alacritty", want: "-e"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, session.FlagFor(tt.program))
		})
	}
}

func (s *SessionPublicTestSuite) TestResolverCachesFirstLookup() {
	calls := 0
	env := map[string]string{session.SessionEnv: "gnome"}
	lookup := func(key string) (string, bool) {
		calls++
		v, ok := env[key]
		return v, ok
	}

	r := session.NewResolver(lookup)

	first := r.Terminal()
	env[session.SessionEnv] = "kde-plasma"
	second := r.Terminal()

	s.Equal(session.Terminal{Program: "gnome-terminal", Flag: "-x"}, first)
	s.Equal(first, second)
	s.Equal(2, calls)
	s.Equal(session.Hints{Session: "gnome"}, r.Hints())
}
