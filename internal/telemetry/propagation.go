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

package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var _ propagation.TextMapCarrier = envCarrier{}

// envCarrier stores propagation fields as environment variables. Keys
// are upper-cased on write and looked up case-insensitively.
type envCarrier struct {
	env map[string]string
}

// Get returns the value for the key.
func (c envCarrier) Get(
	key string,
) string {
	return c.env[strings.ToUpper(key)]
}

// Set stores a key-value pair.
func (c envCarrier) Set(
	key string,
	value string,
) {
	c.env[strings.ToUpper(key)] = value
}

// Keys returns all keys in the carrier.
func (c envCarrier) Keys() []string {
	keys := make([]string, 0, len(c.env))
	for k := range c.env {
		keys = append(keys, k)
	}

	return keys
}

// InjectEnv adds the current span's trace context to env as TRACEPARENT
// (and TRACESTATE when set). If there is no active span, env is returned
// unchanged. A nil env is allocated only when something is injected.
func InjectEnv(
	ctx context.Context,
	env map[string]string,
) map[string]string {
	out := make(map[string]string, len(env)+2)
	for k, v := range env {
		out[k] = v
	}

	otel.GetTextMapPropagator().Inject(ctx, envCarrier{env: out})
	if len(out) == len(env) {
		return env
	}

	return out
}

// ExtractEnv returns a context carrying the trace found in env. If no
// trace context is present, the original context is returned.
func ExtractEnv(
	ctx context.Context,
	env map[string]string,
) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, envCarrier{env: env})
}
