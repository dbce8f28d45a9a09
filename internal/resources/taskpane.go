package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"taskboard/internal/server"
)

// PanelURI is the resource URI under which the task panel is published.
const PanelURI = "ui://taskboard/panel"

// PanelName is the human-readable resource name shown by hosts.
const PanelName = "Task Board Panel"

// panelMIMEType is the MIME type of the task panel resource. The panel is
// always served as HTML regardless of how the file on disk is named.
const panelMIMEType = "text/html"

// RegisterUIResources registers the embedded web UI resources with the MCP server.
func RegisterUIResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	s.AddResource(newPanelResource(), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleTaskPanel(request, sc)
	})

	return nil
}

// newPanelResource describes the task panel resource.
func newPanelResource() mcp.Resource {
	return mcp.NewResource(
		PanelURI,
		PanelName,
		mcp.WithResourceDescription("Interactive HTML panel for viewing and creating tasks"),
		mcp.WithMIMEType(panelMIMEType),
	)
}

// DefaultPanelPath returns the panel HTML location relative to the running
// executable. The webui directory ships alongside the binary.
func DefaultPanelPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "webui", "taskboard.html"), nil
}

// handleTaskPanel serves the pre-built panel HTML from disk. The file is
// read on every request so panel updates do not require a restart.
func handleTaskPanel(request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	path := sc.PanelPath()
	if path == "" {
		var err error
		path, err = DefaultPanelPath()
		if err != nil {
			return nil, err
		}
	}

	html, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task panel from %s: %w", path, err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: panelMIMEType,
			Text:     string(html),
		},
	}, nil
}
