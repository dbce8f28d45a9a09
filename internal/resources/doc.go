// Package resources registers MCP resources exposed by the taskboard
// server. The only resource today is the task panel, a pre-built HTML
// page the host embeds to give users an interactive task view.
package resources
