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

package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartRun starts the span of one run and tags ctx with runID so log
// records carry it.
func StartRun(
	ctx context.Context,
	runID string,
	binding string,
) (context.Context, trace.Span) {
	ctx = WithRunID(ctx, runID)

	return otel.Tracer(TracerName).Start(
		ctx,
		"run",
		trace.WithAttributes(
			RunIDKey.String(runID),
			BindingKey.String(binding),
		),
	)
}

// StartExec starts the helper's span. environ is a KEY=VALUE list as
// returned by os.Environ; when it carries TRACEPARENT the span joins
// the launcher's trace.
func StartExec(
	ctx context.Context,
	environ []string,
	argv []string,
) (context.Context, trace.Span) {
	ctx = ExtractEnv(ctx, envMap(environ))

	return otel.Tracer(TracerName).Start(
		ctx,
		"exec",
		trace.WithAttributes(ArgvKey.StringSlice(argv)),
	)
}

// End records err on span when set and ends it.
func End(
	span trace.Span,
	err error,
) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func envMap(
	environ []string,
) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[strings.ToUpper(k)] = v
		}
	}

	return env
}
