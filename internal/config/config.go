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

package config

import (
	"errors"

	"github.com/retr0h/termrun/internal/validation"
)

// Binding is the name of a run hotkey.
type Binding string

// Bindings exposed to the host editor.
const (
	Primary   Binding = "primary"
	Secondary Binding = "secondary"
)

// Validate checks the configuration against its struct tags.
func Validate(
	cfg *Config,
) error {
	if errMsg, ok := validation.Struct(cfg); !ok {
		return errors.New(errMsg)
	}

	return nil
}

// Template returns the command template of b.
func (c *Config) Template(
	b Binding,
) string {
	if b == Secondary {
		return c.Commands.Secondary
	}

	return c.Commands.Primary
}

// PauseFor returns whether b keeps its terminal open after exit.
func (c *Config) PauseFor(
	b Binding,
) bool {
	if b == Secondary {
		return c.Pause.Secondary
	}

	return c.Pause.Primary
}

// Env returns EnvironmentVariables as a map. Malformed pairs are
// skipped; Validate reports them.
func (c *Config) Env() map[string]string {
	if len(c.EnvironmentVariables) == 0 {
		return nil
	}

	env := make(map[string]string, len(c.EnvironmentVariables))
	for _, pair := range c.EnvironmentVariables {
		if key, value, ok := validation.SplitEnvPair(pair); ok {
			env[key] = value
		}
	}

	return env
}

// Permissive reports whether runs without pause or pipe are allowed.
func (c *Config) Permissive() bool {
	return c.OutputPolicy == PolicyPermissive
}
