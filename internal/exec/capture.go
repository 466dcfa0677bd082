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

package exec

import (
	"errors"
	"io"
	"os"
	"time"
)

// followInterval is how often a follower polls a capture file that has
// no new data yet.
const followInterval = 50 * time.Millisecond

// capture holds the log files a spawned process writes to. Each file
// is opened twice: the write side is handed to the child and the read
// side backs the follower exposed on Process.
type capture struct {
	stdout *os.File
	stderr *os.File
	outR   *os.File
	errR   *os.File
}

func newCapture(
	dir string,
) (*capture, error) {
	c := &capture{}

	var err error
	if c.stdout, c.outR, err = openLog(dir, "termrun-*.stdout.log"); err != nil {
		return nil, err
	}
	if c.stderr, c.errR, err = openLog(dir, "termrun-*.stderr.log"); err != nil {
		c.abort()
		return nil, err
	}

	return c, nil
}

func openLog(
	dir string,
	pattern string,
) (*os.File, *os.File, error) {
	w, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, nil, err
	}

	r, err := os.Open(w.Name())
	if err != nil {
		_ = w.Close()
		return nil, nil, err
	}

	return w, r, nil
}

// attach closes the parent's write side and exposes followers on p. It
// is a no-op on a nil capture.
func (c *capture) attach(
	p *Process,
) {
	if c == nil {
		return
	}

	p.StdoutPath = c.stdout.Name()
	p.StderrPath = c.stderr.Name()
	p.Stdout = &follower{f: c.outR, done: p.done}
	p.Stderr = &follower{f: c.errR, done: p.done}

	_ = c.stdout.Close()
	_ = c.stderr.Close()
}

// abort closes every handle and removes the files of a process that
// never started.
func (c *capture) abort() {
	if c == nil {
		return
	}

	for _, f := range []*os.File{c.stdout, c.stderr, c.outR, c.errR} {
		if f == nil {
			continue
		}
		_ = f.Close()
	}
	for _, f := range []*os.File{c.stdout, c.stderr} {
		if f != nil {
			_ = os.Remove(f.Name())
		}
	}
}

// follower reads a file that is still being written. It reports EOF
// only after done is closed and the file has been read to its end.
type follower struct {
	f    *os.File
	done <-chan struct{}
	eof  bool
}

func (r *follower) Read(
	p []byte,
) (int, error) {
	if r.eof {
		return 0, io.EOF
	}

	for {
		n, err := r.f.Read(p)
		if n > 0 || (err != nil && !errors.Is(err, io.EOF)) {
			return n, err
		}

		select {
		case <-r.done:
			if n, err = r.f.Read(p); n > 0 {
				return n, nil
			}
			r.eof = true
			_ = r.f.Close()
			if err != nil && !errors.Is(err, io.EOF) {
				return 0, err
			}
			return 0, io.EOF
		case <-time.After(followInterval):
		}
	}
}
