// Package cmd implements the command-line interface for taskboard.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the remote task service
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
