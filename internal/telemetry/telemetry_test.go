package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracing_Disabled(t *testing.T) {
	t.Setenv("OTEL_TRACING_ENABLED", "false")

	shutdown, err := InitTracing(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	shutdown()
	shutdown()
}

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestCommandSpan(t *testing.T) {
	recorder := recordSpans(t)

	_, span := StartCommand(context.Background(), "run-1", "list")
	EndCommand(span, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "command list", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("command.name", "list"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("appwash.run_id", "run-1"))
}

func TestCommandSpan_Error(t *testing.T) {
	recorder := recordSpans(t)

	_, span := StartCommand(context.Background(), "run-1", "clear")
	EndCommand(span, errors.New("no terminal"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "no terminal", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}
