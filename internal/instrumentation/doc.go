// Package instrumentation provides OpenTelemetry-based observability for
// the taskboard MCP server, including metrics, distributed tracing, and
// audit logging of tool invocations.
//
// The package is configured through environment variables. When disabled
// via INSTRUMENTATION_ENABLED=false, all recording methods are no-ops so
// callers never need to guard metric calls.
//
// # Metrics
//
// Metrics cover three areas: inbound HTTP requests on the streamable HTTP
// transport, outbound requests to the remote task service, and MCP tool
// invocations. The default exporter is Prometheus; OTLP and stdout
// exporters are available via METRICS_EXPORTER.
//
// # Tracing
//
// Tracing is off by default (TRACING_EXPORTER=none). When enabled, spans
// are sampled with a parent-based ratio sampler controlled by
// OTEL_TRACES_SAMPLER_ARG.
//
// # Audit logging
//
// Every tool invocation produces a structured audit record with outcome,
// duration, and trace correlation IDs when a span is active.
//
// Example usage:
//
//	cfg := instrumentation.DefaultConfig()
//	provider, err := instrumentation.NewProvider(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolInvocation(ctx, "list-tasks", "success", elapsed)
package instrumentation
