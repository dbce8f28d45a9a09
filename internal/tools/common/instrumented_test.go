package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/server"
	"taskboard/internal/taskapi"
)

func TestInstrumentedToolHandler_NoInstrumentation(t *testing.T) {
	sc := server.NewServerContext(context.Background(), server.Config{})

	called := false
	handler := InstrumentedToolHandler("list-tasks", "list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, called, "wrapped handler should be invoked")
}

func TestInstrumentedToolHandler_PassesThroughError(t *testing.T) {
	sc := server.NewServerContext(context.Background(), server.Config{})

	wantErr := errors.New("boom")
	handler := InstrumentedToolHandler("add-task", "create", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := handler(context.Background(), mcp.CallToolRequest{})
	assert.ErrorIs(t, err, wantErr)
}

func TestResultCarriesError(t *testing.T) {
	tests := []struct {
		name   string
		result *mcp.CallToolResult
		want   bool
	}{
		{
			name:   "nil result",
			result: nil,
			want:   false,
		},
		{
			name:   "protocol error result",
			result: &mcp.CallToolResult{IsError: true},
			want:   true,
		},
		{
			name:   "task result without error",
			result: mcp.NewToolResultStructured(taskapi.NewTaskResult(nil), "0 tasks shown"),
			want:   false,
		},
		{
			name:   "task result with error payload",
			result: mcp.NewToolResultStructured(taskapi.NewErrorResult("db down"), "failed"),
			want:   true,
		},
		{
			name:   "plain text result",
			result: mcp.NewToolResultText("hello"),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resultCarriesError(tt.result))
		})
	}
}
