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
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) TestRegister() {
	tests := []struct {
		name       string
		args       []string
		handlerErr error
		wantErr    bool
		wantFile   string
		wantCalls  int
	}{
		{
			name:      "when file is given runs handler",
			args:      []string{"primary", "/tmp/hello.py"},
			wantFile:  "/tmp/hello.py",
			wantCalls: 1,
		},
		{
			name:       "when handler fails returns its error",
			args:       []string{"primary", "/tmp/hello.py"},
			handlerErr: errors.New("boom"),
			wantErr:    true,
			wantFile:   "/tmp/hello.py",
			wantCalls:  1,
		},
		{
			name:    "when file is missing does not run handler",
			args:    []string{"primary"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			parent := &cobra.Command{Use: "run", SilenceUsage: true, SilenceErrors: true}
			var file string
			calls := 0

			registry := &cobraRegistry{parent: parent, file: &file}
			registry.Register("run", "primary", func(_ context.Context) error {
				calls++
				return tc.handlerErr
			})

			parent.SetArgs(tc.args)
			err := parent.ExecuteContext(context.Background())

			if tc.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}
			s.Equal(tc.wantCalls, calls)
			s.Equal(tc.wantFile, file)
		})
	}
}

func (s *RegistryTestSuite) TestRunBindingsAreRegistered() {
	names := make([]string, 0)
	for _, c := range runCmd.Commands() {
		names = append(names, c.Name())
	}

	s.ElementsMatch([]string{"primary", "secondary"}, names)
}

func (s *RegistryTestSuite) TestBuildInfo() {
	original := version
	defer func() { version = original }()

	version = "v1.2.3"
	info := buildInfo()

	s.Equal("v1.2.3", info.GitVersion)
	s.Equal("termrun", info.Name)
}

func (s *RegistryTestSuite) TestTerminalHelpers() {
	s.Equal("unset", orUnset(""))
	s.Equal("gnome", orUnset("gnome"))
	s.Equal("GNOME Terminal 3.44.0", firstLine("\nGNOME Terminal 3.44.0\nusing VTE\n"))
	s.Empty(firstLine(""))
}
