// Package logging provides structured logging helpers built on log/slog.
//
// It defines the attribute keys used across the codebase and small helpers
// that keep attribute naming consistent (Operation, Tool, Status, Err).
// Setup installs the default logger; it writes to stderr only, because on
// the stdio transport stdout belongs to the MCP protocol stream.
package logging
