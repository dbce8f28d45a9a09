package resources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/server"
)

func panelRequest() mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = PanelURI
	return req
}

func TestPanelResourceMetadata(t *testing.T) {
	res := newPanelResource()
	assert.Equal(t, PanelURI, res.URI)
	assert.Equal(t, "Task Board Panel", res.Name)
	assert.Equal(t, "text/html", res.MIMEType)
}

func TestHandleTaskPanel_ServesConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panel.html")
	require.NoError(t, os.WriteFile(path, []byte("<!DOCTYPE html><title>Tasks</title>"), 0o644))

	sc := server.NewServerContext(context.Background(), server.Config{PanelPath: path})

	contents, err := handleTaskPanel(panelRequest(), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok, "expected text resource contents")
	assert.Equal(t, PanelURI, text.URI)
	assert.Equal(t, "text/html", text.MIMEType)
	assert.Contains(t, text.Text, "<title>Tasks</title>")
}

func TestHandleTaskPanel_MissingFile(t *testing.T) {
	sc := server.NewServerContext(context.Background(), server.Config{
		PanelPath: filepath.Join(t.TempDir(), "does-not-exist.html"),
	})

	_, err := handleTaskPanel(panelRequest(), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read task panel")
}

func TestDefaultPanelPath(t *testing.T) {
	path, err := DefaultPanelPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join("webui", "taskboard.html"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
