// Package taskboard_tools implements the MCP tools for the remote task
// service: list-tasks and add-task. Both tools report failures inside
// their result payload rather than as protocol errors, so hosts and the
// task panel always receive a well-formed task collection.
package taskboard_tools
