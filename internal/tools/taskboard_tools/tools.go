package taskboard_tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"taskboard/internal/logging"
	"taskboard/internal/resources"
	"taskboard/internal/server"
	"taskboard/internal/taskapi"
	"taskboard/internal/tools/common"
)

// Priority assigned to tasks created through the add-task tool. The task
// panel has no priority input, so every submission gets the same value.
const defaultCreatePriority = 1

// RegisterTaskboardTools registers the task management tools with the MCP server.
func RegisterTaskboardTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTasksTool := mcp.NewTool("list-tasks",
		mcp.WithDescription("List all tasks from the task service. Returns the task collection "+
			"together with a status line. Failures are reported in the result payload so the "+
			"task panel ("+resources.PanelURI+") can always render."),
		mcp.WithTitleAnnotation("List Tasks"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	s.AddTool(listTasksTool, mcpserver.ToolHandlerFunc(common.InstrumentedToolHandler("list-tasks", "list", sc, listTasksHandler(sc))))

	addTaskTool := mcp.NewTool("add-task",
		mcp.WithDescription("Create a new task and return the refreshed task collection. "+
			"Invoked by the task panel ("+resources.PanelURI+") when the user submits the form."),
		mcp.WithString("Title",
			mcp.Required(),
			mcp.Description("Title of the task. Must not be blank."),
		),
		mcp.WithString("Description",
			mcp.Required(),
			mcp.Description("Free-form description of the task. May be empty."),
		),
		mcp.WithString("DueDate",
			mcp.Required(),
			mcp.Description("Due date in ISO-8601 format, e.g. 2026-03-01T12:00:00Z"),
		),
		mcp.WithTitleAnnotation("Add Task"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	s.AddTool(addTaskTool, mcpserver.ToolHandlerFunc(common.InstrumentedToolHandler("add-task", "create", sc, addTaskHandler(sc))))

	return nil
}

// listTasksHandler returns the handler for the list-tasks tool.
//
// The tool never yields a protocol error: remote failures are folded into
// the result payload so hosts and the task panel always receive a
// renderable task collection.
func listTasksHandler(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logging.WithTool(slog.Default(), "list-tasks")

		client, err := sc.TaskClient()
		if err != nil {
			log.Error("task client unavailable", logging.Err(err))
			return errorResult(err), nil
		}

		tasks, err := client.FetchTasks(ctx)
		if err != nil {
			log.Warn("failed to fetch tasks", logging.Err(err))
			return errorResult(err), nil
		}

		return taskListResult(tasks), nil
	}
}

// addTaskHandler returns the handler for the add-task tool.
//
// The task is created and then the full collection is refetched so the
// caller sees the server-assigned Id. If either step fails, the result
// carries an empty collection and the error, never partial data.
func addTaskHandler(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logging.WithTool(slog.Default(), "add-task")

		args, _ := request.Params.Arguments.(map[string]interface{})

		title, _ := args["Title"].(string)
		if strings.TrimSpace(title) == "" {
			return errorResultMsg("Title must not be empty"), nil
		}

		description, _ := args["Description"].(string)
		dueDate, _ := args["DueDate"].(string)

		client, err := sc.TaskClient()
		if err != nil {
			log.Error("task client unavailable", logging.Err(err))
			return errorResult(err), nil
		}

		input := taskapi.Task{
			Title:       title,
			Description: description,
			DueDate:     dueDate,
			Priority:    defaultCreatePriority,
			Status:      taskapi.StatusNotStarted,
		}

		if _, err := client.CreateTask(ctx, input); err != nil {
			log.Warn("failed to create task", logging.Err(err))
			return errorResult(err), nil
		}

		tasks, err := client.FetchTasks(ctx)
		if err != nil {
			log.Warn("task created but refetch failed", logging.Err(err))
			return errorResult(err), nil
		}

		return mcp.NewToolResultStructured(
			taskapi.NewTaskResult(tasks),
			fmt.Sprintf("Added task %q; %d tasks shown", title, len(tasks)),
		), nil
	}
}

// taskListResult builds a success result carrying the task collection and
// a human-readable status line.
func taskListResult(tasks []taskapi.Task) *mcp.CallToolResult {
	return mcp.NewToolResultStructured(
		taskapi.NewTaskResult(tasks),
		fmt.Sprintf("%d tasks shown", len(tasks)),
	)
}

// errorResult builds a failure result with an empty task collection. The
// result is intentionally not marked as a protocol error so hosts always
// receive the structured payload.
func errorResult(err error) *mcp.CallToolResult {
	return errorResultMsg(err.Error())
}

func errorResultMsg(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultStructured(taskapi.NewErrorResult(msg), msg)
}
