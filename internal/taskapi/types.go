package taskapi

import (
	"fmt"
	"time"
)

// Known Status values. The service may return other integers; those pass
// through unlabeled.
const (
	StatusNotStarted = 0
	StatusDone       = 1
)

// Task represents one to-do item in the remote task service.
// The JSON field names match the service's wire format.
type Task struct {
	ID          int64  `json:"Id"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Priority    int    `json:"Priority"`
	DueDate     string `json:"DueDate"` // ISO-8601, passed through verbatim
	Status      int    `json:"Status"`
}

// DueTime parses the task's due date. The zero time is returned when the
// due date is absent or not a valid RFC 3339 timestamp.
func (t Task) DueTime() time.Time {
	if t.DueDate == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, t.DueDate)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// wireTask is the service's representation of a task. Priority and Status
// are optional on the wire, so pointers distinguish "absent" from zero.
type wireTask struct {
	ID          int64  `json:"Id"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Priority    *int   `json:"Priority"`
	DueDate     string `json:"DueDate"`
	Status      *int   `json:"Status"`
}

// toTask converts a wire task. Absent optional fields become their zero
// defaults, matching the service's own behavior.
func (w wireTask) toTask() Task {
	t := Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		DueDate:     w.DueDate,
	}
	if w.Priority != nil {
		t.Priority = *w.Priority
	}
	if w.Status != nil {
		t.Status = *w.Status
	}
	return t
}

// newTask is the create-request payload: a task without an Id. The service
// assigns Ids.
type newTask struct {
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Priority    int    `json:"Priority"`
	DueDate     string `json:"DueDate"`
	Status      int    `json:"Status"`
}

// createEnvelope wraps a new task under the "Task" key as the CreateTask
// endpoint expects.
type createEnvelope struct {
	Task newTask `json:"Task"`
}

// ToolResult is the structured envelope returned by both taskboard tools.
// Tasks is always present, possibly empty, even when Error is set.
type ToolResult struct {
	Tasks []Task  `json:"tasks"`
	Error *string `json:"error"`
}

// NewTaskResult returns a successful ToolResult. A nil slice is replaced
// with an empty one so the tasks field is never absent on the wire.
func NewTaskResult(tasks []Task) ToolResult {
	if tasks == nil {
		tasks = []Task{}
	}
	return ToolResult{Tasks: tasks}
}

// NewErrorResult returns a ToolResult carrying an error message and an
// empty (but present) task list.
func NewErrorResult(msg string) ToolResult {
	return ToolResult{Tasks: []Task{}, Error: &msg}
}

// RemoteError represents a non-success HTTP response from the task service.
type RemoteError struct {
	Op         string // "GetTasks" or "CreateTask"
	StatusCode int
	Status     string // status line, e.g. "500 Internal Server Error"
	Body       string // error body text, fetched best-effort
}

// Error returns a message containing the HTTP status code and, when one
// was readable, the response body.
func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("task service %s failed: %s: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Op, e.Status)
}
