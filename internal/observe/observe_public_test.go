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

package observe_test

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/observe"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type ObservePublicTestSuite struct {
	suite.Suite

	buf    *syncBuffer
	logger *slog.Logger
}

func TestObservePublicTestSuite(t *testing.T) {
	suite.Run(t, new(ObservePublicTestSuite))
}

func (s *ObservePublicTestSuite) SetupTest() {
	s.buf = &syncBuffer{}
	s.logger = slog.New(slog.NewTextHandler(s.buf, nil))
}

func (s *ObservePublicTestSuite) TestAttach() {
	em := exec.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	p, err := em.Spawn(
		"/bin/sh",
		[]string{"-c", "echo hello; echo oops >&2; exit 4"},
		exec.SpawnOptions{Capture: true, LogDir: s.T().TempDir()},
	)
	s.Require().NoError(err)

	observe.Attach(s.logger, p, observe.Info{
		Platform:     "unix",
		ShellProgram: "/bin/sh",
		ShellOptions: []string{"-c"},
		Interpreter:  "python",
		Target:       "/opt/helper/main.py",
		Args:         []string{"python", "/tmp/hello.py"},
	})

	s.Eventually(func() bool {
		out := s.buf.String()
		return strings.Contains(out, "child process exited") &&
			strings.Contains(out, "line=hello") &&
			strings.Contains(out, "line=oops")
	}, 5*time.Second, 10*time.Millisecond)

	out := s.buf.String()
	s.Contains(out, "msg=launch")
	s.Contains(out, "shell=/bin/sh")
	s.Contains(out, "script=/opt/helper/main.py")
	s.Contains(out, "code=4")
	s.Contains(out, "stdout_log="+p.StdoutPath)
}

func (s *ObservePublicTestSuite) TestAttachWithoutStreams() {
	p := exec.NewExitedProcess(42, 0)

	observe.Attach(s.logger, p, observe.Info{ShellProgram: "xterm"})

	s.Eventually(func() bool {
		return strings.Contains(s.buf.String(), "child process exited")
	}, time.Second, 10*time.Millisecond)
	s.Contains(s.buf.String(), "pid=42")
}

func (s *ObservePublicTestSuite) TestAttachIgnoresNil() {
	s.NotPanics(func() {
		observe.Attach(nil, exec.NewExitedProcess(1, 0), observe.Info{})
		observe.Attach(s.logger, nil, observe.Info{})
	})
	s.Empty(s.buf.String())
}
