package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/omfj/appwash-cli/pkg/env"
)

const (
	serviceName    = "appwash-cli"
	serviceVersion = "1.0.0"
	tracerName     = "github.com/omfj/appwash-cli/internal/telemetry"
)

// InitTracing installs a global tracer provider exporting over OTLP/gRPC.
// When tracing is disabled it installs nothing and the returned shutdown
// func is a no-op.
func InitTracing(ctx context.Context) (func(), error) {
	if !env.OtelTracingEnabled.Get() {
		return func() {}, nil
	}

	resource := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}, nil
}

// StartCommand opens a span around one dispatched command. Only the command
// name is recorded, never its arguments.
func StartCommand(ctx context.Context, runID, command string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "command "+command,
		trace.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("appwash.run_id", runID),
		),
	)
}

// EndCommand closes span, marking it failed when err is set.
func EndCommand(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
