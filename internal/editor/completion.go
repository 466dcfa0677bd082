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

package editor

import (
	"context"
	"sync"
)

// Completion is the outcome of an operation that may finish now or
// later. Callers always Await it, whichever way it was created.
type Completion struct {
	done chan struct{}
	err  error
}

// Done returns a Completion that is already resolved with err.
func Done(
	err error,
) *Completion {
	c := &Completion{done: make(chan struct{}), err: err}
	close(c.done)

	return c
}

// Pending returns an unresolved Completion and the function that
// resolves it. Only the first call to resolve has an effect.
func Pending() (*Completion, func(error)) {
	c := &Completion{done: make(chan struct{})}
	var once sync.Once

	return c, func(err error) {
		once.Do(func() {
			c.err = err
			close(c.done)
		})
	}
}

// Await blocks until the Completion resolves or ctx is done.
func (c *Completion) Await(
	ctx context.Context,
) error {
	if c == nil {
		return nil
	}

	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
