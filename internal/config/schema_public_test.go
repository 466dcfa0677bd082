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

package config_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/termrun/internal/config"
)

type ConfigPublicTestSuite struct {
	suite.Suite
}

func validConfig() config.Config {
	return config.Config{
		Commands: config.Commands{
			Primary:   "python {file}",
			Secondary: "python3 -u {file}",
		},
		Pause: config.Pause{Primary: true},
	}
}

func (s *ConfigPublicTestSuite) TestValidate() {
	tests := []struct {
		name        string
		mutate      func(*config.Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(*config.Config) {},
		},
		{
			name:        "missing primary command",
			mutate:      func(c *config.Config) { c.Commands.Primary = "" },
			expectError: true,
			errContains: "Primary",
		},
		{
			name:        "missing secondary command",
			mutate:      func(c *config.Config) { c.Commands.Secondary = "" },
			expectError: true,
			errContains: "Secondary",
		},
		{
			name: "malformed environment variable",
			mutate: func(c *config.Config) {
				c.EnvironmentVariables = []string{"GOOD:1", "BAD"}
			},
			expectError: true,
			errContains: "env_pair",
		},
		{
			name:        "unknown output policy",
			mutate:      func(c *config.Config) { c.OutputPolicy = "never" },
			expectError: true,
			errContains: "OutputPolicy",
		},
		{
			name:   "permissive output policy",
			mutate: func(c *config.Config) { c.OutputPolicy = config.PolicyPermissive },
		},
		{
			name:        "unknown trace exporter",
			mutate:      func(c *config.Config) { c.Telemetry.Tracing.Exporter = "zipkin" },
			expectError: true,
			errContains: "Exporter",
		},
		{
			name:        "empty config",
			mutate:      func(c *config.Config) { *c = config.Config{} },
			expectError: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := config.Validate(&cfg)

			if tt.expectError {
				s.Error(err)
				if tt.errContains != "" {
					s.Contains(err.Error(), tt.errContains)
				}
			} else {
				s.NoError(err)
			}
		})
	}
}

func (s *ConfigPublicTestSuite) TestBindingAccessors() {
	cfg := validConfig()

	s.Equal("python {file}", cfg.Template(config.Primary))
	s.Equal("python3 -u {file}", cfg.Template(config.Secondary))
	s.True(cfg.PauseFor(config.Primary))
	s.False(cfg.PauseFor(config.Secondary))
}

func (s *ConfigPublicTestSuite) TestEnv() {
	tests := []struct {
		name string
		vars []string
		want map[string]string
	}{
		{
			name: "when empty",
		},
		{
			name: "when pairs are valid",
			vars: []string{"PYTHONPATH:/opt/lib", "URL:http://x:8080"},
			want: map[string]string{
				"PYTHONPATH": "/opt/lib",
				"URL":        "http://x:8080",
			},
		},
		{
			name: "when a pair is malformed it is skipped",
			vars: []string{"A:1", "B"},
			want: map[string]string{"A": "1"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			cfg := config.Config{EnvironmentVariables: tt.vars}
			s.Equal(tt.want, cfg.Env())
		})
	}
}

func TestConfigPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigPublicTestSuite))
}
