package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ToolInvocation represents an audit record for an MCP tool invocation.
type ToolInvocation struct {
	Tool      string
	Operation string
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string
	TraceID   string
	SpanID    string
}

// NewToolInvocation creates a new audit record for a tool invocation.
func NewToolInvocation(tool, operation string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		Operation: operation,
		StartTime: time.Now(),
	}
}

// WithSpanContext extracts trace and span IDs from the context if available.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		ti.TraceID = span.SpanContext().TraceID().String()
		ti.SpanID = span.SpanContext().SpanID().String()
	}
	return ti
}

// Complete marks the invocation as finished and records the outcome.
func (ti *ToolInvocation) Complete(success bool, err error) {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
}

// CompleteSuccess marks the invocation as successfully finished.
func (ti *ToolInvocation) CompleteSuccess() {
	ti.Complete(true, nil)
}

// CompleteWithError marks the invocation as failed with the given error.
func (ti *ToolInvocation) CompleteWithError(err error) {
	ti.Complete(false, err)
}

// Status returns the invocation status as a string.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns structured logging attributes for this invocation.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("operation", ti.Operation),
		slog.Time("start_time", ti.StartTime),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}

	return attrs
}

// AuditLogger provides structured audit logging for tool invocations.
type AuditLogger struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditLogger creates a new audit logger backed by the given slog logger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger:  logger,
		enabled: true,
	}
}

// NewAuditLoggerWithConfig creates an audit logger honoring the audit
// logging configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, cfg AuditLoggingConfig) *AuditLogger {
	return &AuditLogger{
		logger:  logger,
		enabled: cfg.Enabled,
	}
}

// LogToolInvocation writes an audit log entry for a completed invocation.
func (al *AuditLogger) LogToolInvocation(ctx context.Context, ti *ToolInvocation) {
	if al == nil || !al.enabled || al.logger == nil {
		return
	}

	if ti.Success {
		al.logger.LogAttrs(ctx, slog.LevelInfo, "tool_executed", ti.LogAttrs()...)
	} else {
		al.logger.LogAttrs(ctx, slog.LevelWarn, "tool_failed", ti.LogAttrs()...)
	}
}

// Enabled reports whether audit logging is active.
func (al *AuditLogger) Enabled() bool {
	return al != nil && al.enabled
}
