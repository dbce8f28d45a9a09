package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/taskapi"
)

func TestServerContext_TaskClientIsCached(t *testing.T) {
	sc := NewServerContext(context.Background(), Config{
		TaskAPI: taskapi.Config{BaseURL: "http://localhost:9999/api"},
	})

	first, err := sc.TaskClient()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := sc.TaskClient()
	require.NoError(t, err)
	assert.Same(t, first, second, "task client should be created once and reused")
}

func TestServerContext_SetTaskClient(t *testing.T) {
	sc := NewServerContext(context.Background(), Config{})

	client, err := taskapi.NewClient(context.Background(), taskapi.Config{BaseURL: "http://localhost:9999/api"})
	require.NoError(t, err)

	sc.SetTaskClient(client)

	got, err := sc.TaskClient()
	require.NoError(t, err)
	assert.Same(t, client, got)
}

func TestServerContext_Shutdown(t *testing.T) {
	sc := NewServerContext(context.Background(), Config{})

	assert.False(t, sc.IsShutdown())

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Error("expected context to be canceled after shutdown")
	}

	// Shutdown is idempotent
	require.NoError(t, sc.Shutdown())
}

func TestServerContext_PanelPath(t *testing.T) {
	sc := NewServerContext(context.Background(), Config{PanelPath: "/opt/taskboard/webui/taskboard.html"})
	assert.Equal(t, "/opt/taskboard/webui/taskboard.html", sc.PanelPath())

	sc = NewServerContext(context.Background(), Config{})
	assert.Empty(t, sc.PanelPath())
}
