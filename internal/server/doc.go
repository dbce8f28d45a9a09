// Package server provides the shared runtime for the taskboard MCP
// server: the server context holding the task service client and
// observability hooks, health check endpoints, the streamable HTTP
// transport, and a dedicated Prometheus metrics server.
package server
