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

package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/retr0h/termrun/internal/telemetry"
)

type SpanPublicTestSuite struct {
	suite.Suite

	ctx      context.Context
	recorder *tracetest.SpanRecorder
}

func TestSpanPublicTestSuite(t *testing.T) {
	suite.Run(t, new(SpanPublicTestSuite))
}

func (s *SpanPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.recorder = tracetest.NewSpanRecorder()

	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.recorder)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
}

func attrMap(
	kvs []attribute.KeyValue,
) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}

	return out
}

func (s *SpanPublicTestSuite) TestStartRun() {
	ctx, span := telemetry.StartRun(s.ctx, "run-1", "secondary")
	telemetry.End(span, nil)

	id, ok := telemetry.RunID(ctx)
	s.True(ok)
	s.Equal("run-1", id)

	ended := s.recorder.Ended()
	s.Require().Len(ended, 1)
	s.Equal("run", ended[0].Name())
	s.Equal(codes.Unset, ended[0].Status().Code)

	attrs := attrMap(ended[0].Attributes())
	s.Equal("run-1", attrs[telemetry.RunIDKey].AsString())
	s.Equal("secondary", attrs[telemetry.BindingKey].AsString())
}

func (s *SpanPublicTestSuite) TestEndRecordsError() {
	_, span := telemetry.StartRun(s.ctx, "run-2", "primary")
	telemetry.End(span, errors.New("spawn failed"))

	ended := s.recorder.Ended()
	s.Require().Len(ended, 1)
	s.Equal(codes.Error, ended[0].Status().Code)
	s.Equal("spawn failed", ended[0].Status().Description)
	s.Require().Len(ended[0].Events(), 1)
	s.Equal("exception", ended[0].Events()[0].Name)
}

func (s *SpanPublicTestSuite) TestStartExec() {
	tests := []struct {
		name       string
		withParent bool
	}{
		{
			name:       "when TRACEPARENT is inherited the span joins the run",
			withParent: true,
		},
		{
			name: "when no trace is inherited a new trace starts",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()

			environ := []string{"HOME=/root"}
			var parent trace.SpanContext
			if tc.withParent {
				ctx, span := telemetry.StartRun(s.ctx, "run-3", "primary")
				parent = span.SpanContext()
				for k, v := range telemetry.InjectEnv(ctx, nil) {
					environ = append(environ, k+"="+v)
				}
				span.End()
			}

			_, span := telemetry.StartExec(s.ctx, environ, []string{"python", "/tmp/hello.py"})
			telemetry.End(span, nil)

			ended := s.recorder.Ended()
			exec := ended[len(ended)-1]
			s.Equal("exec", exec.Name())
			s.Equal(
				[]string{"python", "/tmp/hello.py"},
				attrMap(exec.Attributes())[telemetry.ArgvKey].AsStringSlice(),
			)

			if !tc.withParent {
				s.False(exec.Parent().IsValid())
				return
			}
			s.Equal(parent.TraceID(), exec.SpanContext().TraceID())
			s.Equal(parent.SpanID(), exec.Parent().SpanID())
			s.True(exec.Parent().IsRemote())
		})
	}
}
