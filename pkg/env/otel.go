package env

// OpenTelemetry variables. Tracing is off unless OTEL_TRACING_ENABLED is
// true; the exporter itself reads the standard OTEL_EXPORTER_OTLP_* variables.
var (
	OtelTracingEnabled = RegisterBoolVar(
		"OTEL_TRACING_ENABLED",
		"",
		false,
		"Export traces of commands and API calls over OTLP/gRPC.",
		ComponentTelemetry,
	)

	OtelExporterOTLPEndpoint = RegisterStringVar(
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"",
		"",
		"OTLP collector endpoint. Defaults to localhost:4317.",
		ComponentTelemetry,
	)
)
