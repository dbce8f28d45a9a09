package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"taskboard/internal/instrumentation"
	"taskboard/internal/server"
	"taskboard/internal/taskapi"
)

// ToolHandler is the handler signature expected by the MCP server.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with metrics and audit logging.
//
// Tool failures are reported as ordinary results carrying an error payload
// rather than protocol errors, so the wrapper inspects the structured
// content to classify the outcome.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my-tool", "list", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	operation string,
	sc *server.ServerContext,
	handler ToolHandler,
) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Metrics and audit logger may be nil if not configured
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName, operation).
			WithSpanContext(ctx)

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			invocation.CompleteWithError(err)
		case resultCarriesError(result):
			status = instrumentation.StatusError
			invocation.Complete(false, nil)
		default:
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(ctx, invocation)
		}

		return result, err
	}
}

// resultCarriesError reports whether the result is a task tool result
// holding an error payload, or a protocol-level error result.
func resultCarriesError(result *mcp.CallToolResult) bool {
	if result == nil {
		return false
	}
	if result.IsError {
		return true
	}
	if tr, ok := result.StructuredContent.(taskapi.ToolResult); ok {
		return tr.Error != nil
	}
	return false
}
