// Copyright (c) 2026 John Dewey

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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/suite"
)

type ExecTestSuite struct {
	suite.Suite
}

func TestExecTestSuite(t *testing.T) {
	suite.Run(t, new(ExecTestSuite))
}

func (s *ExecTestSuite) TearDownTest() {
	execPause = false
	execPipe = ""
	exitFn = os.Exit
	rootCmd.SetArgs(nil)
}

func (s *ExecTestSuite) TestExecFlagsStopAtInterpreter() {
	tests := []struct {
		name      string
		args      []string
		wantPause bool
		wantPipe  string
		wantArgs  []string
	}{
		{
			name:      "when separator precedes the command",
			args:      []string{"-p", "-f", "/tmp/out.log", "--", "python", "-u", "a.py"},
			wantPause: true,
			wantPipe:  "/tmp/out.log",
			wantArgs:  []string{"python", "-u", "a.py"},
		},
		{
			name:     "when interpreter flags follow without a separator",
			args:     []string{"python", "-i", "a.py"},
			wantArgs: []string{"python", "-i", "a.py"},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.TearDownTest()
			fs := execCmd.Flags()
			s.Require().NoError(fs.Parse(tc.args))

			s.Equal(tc.wantPause, execPause)
			s.Equal(tc.wantPipe, execPipe)
			s.Equal(tc.wantArgs, fs.Args())
		})
	}
}

func (s *ExecTestSuite) TestExecRunsCommand() {
	tests := []struct {
		name     string
		args     func(dir string) []string
		wantExit int
		validate func(dir string)
	}{
		{
			name: "when command fails its exit code is returned",
			args: func(string) []string {
				return []string{"exec", "--", "/bin/sh", "-c", "exit 3"}
			},
			wantExit: 3,
		},
		{
			name: "when pipe is set output lands in the file",
			args: func(dir string) []string {
				return []string{
					"exec", "-f", filepath.Join(dir, "out.log"),
					"--", "/bin/sh", "-c", "echo piped",
				}
			},
			wantExit: -1,
			validate: func(dir string) {
				data, err := os.ReadFile(filepath.Join(dir, "out.log"))
				s.Require().NoError(err)
				s.Equal("piped\n", string(data))
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.TearDownTest()
			dir := s.T().TempDir()

			exited := -1
			exitFn = func(code int) { exited = code }

			rootCmd.SetArgs(tc.args(dir))
			s.Require().NoError(rootCmd.Execute())

			s.Equal(tc.wantExit, exited)
			if tc.validate != nil {
				tc.validate(dir)
			}
		})
	}
}

func (s *ExecTestSuite) TestReadBuffer() {
	tests := []struct {
		name    string
		input   func() *strings.Reader
		wantNil bool
		want    string
	}{
		{
			name:    "when stdin is empty nothing is saved",
			input:   func() *strings.Reader { return strings.NewReader("") },
			wantNil: true,
		},
		{
			name:  "when stdin has the buffer",
			input: func() *strings.Reader { return strings.NewReader("print('hi')\n") },
			want:  "print('hi')\n",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			data, err := readBuffer(tc.input())

			s.NoError(err)
			if tc.wantNil {
				s.Nil(data)
				return
			}
			s.Equal(tc.want, string(data))
		})
	}
}

func (s *ExecTestSuite) TestReadBufferError() {
	_, err := readBuffer(iotest.ErrReader(os.ErrClosed))

	s.ErrorContains(err, "reading stdin")
}
