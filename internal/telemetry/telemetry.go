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

// Package telemetry wires OpenTelemetry tracing into a termrun
// invocation and carries the trace across the terminal boundary.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/retr0h/termrun/internal/config"
)

const (
	// ServiceName is the service.name of every termrun span.
	ServiceName = "termrun"
	// TracerName names the tracer used for run and exec spans.
	TracerName = "github.com/retr0h/termrun"
)

// Attribute keys set on the resource and on spans.
const (
	CommandKey  = attribute.Key("termrun.command")
	RunIDKey    = attribute.Key("termrun.run_id")
	BindingKey  = attribute.Key("termrun.binding")
	ArgvKey     = attribute.Key("termrun.argv")
	ExitCodeKey = attribute.Key("termrun.exit_code")
)

var (
	resourceNewFn    = resource.New
	stdouttraceNewFn = stdouttrace.New
	otlptraceNewFn   = otlptracegrpc.New
)

// InitTracer installs the tracer provider for one invocation of
// command ("run" or "exec"). The launcher and the helper started in the
// terminal share a trace, and command tells their spans apart. The W3C
// propagator is installed even when tracing is off so TRACEPARENT keeps
// flowing to the child. The returned function flushes pending spans.
func InitTracer(
	ctx context.Context,
	command string,
	cfg config.TracingConfig,
	attrs ...attribute.KeyValue,
) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())

		return func(context.Context) error { return nil }, nil
	}

	res, err := newResource(ctx, command, attrs...)
	if err != nil {
		return nil, err
	}

	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	// Without an exporter spans still carry ids for log correlation.
	if exp != nil {
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func newResource(
	ctx context.Context,
	command string,
	attrs ...attribute.KeyValue,
) (*resource.Resource, error) {
	kv := make([]attribute.KeyValue, 0, len(attrs)+2)
	kv = append(kv, semconv.ServiceNameKey.String(ServiceName), CommandKey.String(command))
	kv = append(kv, attrs...)

	res, err := resourceNewFn(ctx, resource.WithAttributes(kv...), resource.WithProcessPID())
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return res, nil
}

// newExporter returns the exporter selected by cfg, or nil when spans
// are kept in process only.
func newExporter(
	ctx context.Context,
	cfg config.TracingConfig,
) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "", "none":
		return nil, nil
	case "stdout":
		exp, err := stdouttraceNewFn(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		return exp, nil
	case "otlp":
		exp, err := otlptraceNewFn(
			ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %q", cfg.Exporter)
	}
}
