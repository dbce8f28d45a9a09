// Package common provides shared helpers for MCP tool implementations,
// including the instrumentation wrapper that records metrics and audit
// logs for every tool invocation.
package common
