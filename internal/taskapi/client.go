package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultBaseURL is the placeholder task service endpoint used when no
	// override is configured.
	DefaultBaseURL = "https://tasks.example.com/api"

	// EnvBaseURL overrides the task service base URL.
	EnvBaseURL = "TASKS_API_BASE_URL"

	// Environment variables for optional OAuth2 client-credentials
	// authentication against the task service.
	EnvTokenURL     = "TASKS_API_TOKEN_URL"
	EnvClientID     = "TASKS_API_CLIENT_ID"
	EnvClientSecret = "TASKS_API_CLIENT_SECRET"
)

// maxErrorBodyBytes caps how much of an error response body is read.
const maxErrorBodyBytes = 64 << 10

// MetricsRecorder records task service request metrics. A nil recorder
// disables recording.
type MetricsRecorder interface {
	RecordTaskServiceRequest(ctx context.Context, endpoint, status string, duration time.Duration)
}

// Config holds the settings for a task service client.
type Config struct {
	// BaseURL is the task service endpoint. Falls back to the
	// TASKS_API_BASE_URL environment variable, then DefaultBaseURL.
	BaseURL string

	// TokenURL, ClientID and ClientSecret enable OAuth2 client-credentials
	// authentication when TokenURL is non-empty.
	TokenURL     string
	ClientID     string
	ClientSecret string

	// HTTPClient overrides the underlying HTTP client. Ignored when
	// TokenURL is set.
	HTTPClient *http.Client

	// Metrics optionally records per-endpoint request metrics.
	Metrics MetricsRecorder
}

// ConfigFromEnv returns a Config populated from environment variables.
func ConfigFromEnv() Config {
	return Config{
		BaseURL:      os.Getenv(EnvBaseURL),
		TokenURL:     os.Getenv(EnvTokenURL),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}
}

// Client is a thin HTTP wrapper around the remote task service.
type Client struct {
	baseURL string
	httpc   *http.Client
	metrics MetricsRecorder
}

// NewClient creates a task service client. The context is used for the
// OAuth2 token source when client-credentials auth is configured.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv(EnvBaseURL)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpc := cfg.HTTPClient
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpc = cc.Client(ctx)
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}

	return &Client{
		baseURL: baseURL,
		httpc:   httpc,
		metrics: cfg.Metrics,
	}, nil
}

// BaseURL returns the resolved task service endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchTasks retrieves all tasks from the GetTasks endpoint in the order
// the service returns them. Optional Priority/Status fields missing on the
// wire are filled with their zero defaults, so downstream consumers can
// assume fully populated records.
func (c *Client) FetchTasks(ctx context.Context) ([]Task, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/GetTasks", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GetTasks request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.record(ctx, "GetTasks", "error", start)
		return nil, fmt.Errorf("failed to call GetTasks: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.record(ctx, "GetTasks", "error", start)
		return nil, remoteError("GetTasks", resp)
	}

	var wire []wireTask
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.record(ctx, "GetTasks", "error", start)
		return nil, fmt.Errorf("failed to decode GetTasks response: %w", err)
	}

	tasks := make([]Task, 0, len(wire))
	for _, w := range wire {
		tasks = append(tasks, w.toTask())
	}

	c.record(ctx, "GetTasks", "success", start)
	return tasks, nil
}

// CreateTask creates a new task via the CreateTask endpoint. The input's
// Id is ignored; the service assigns one. Callers that need the stored
// record re-fetch rather than trusting the create response.
func (c *Client) CreateTask(ctx context.Context, input Task) (*Task, error) {
	start := time.Now()

	body, err := json.Marshal(createEnvelope{Task: newTask{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Status:      input.Status,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode CreateTask request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/CreateTask", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build CreateTask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.record(ctx, "CreateTask", "error", start)
		return nil, fmt.Errorf("failed to call CreateTask: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.record(ctx, "CreateTask", "error", start)
		return nil, remoteError("CreateTask", resp)
	}

	// Decoded verbatim, without the wire-level default handling: fields
	// the service omits decode as zero either way.
	var created Task
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.record(ctx, "CreateTask", "error", start)
		return nil, fmt.Errorf("failed to decode CreateTask response: %w", err)
	}

	c.record(ctx, "CreateTask", "success", start)
	return &created, nil
}

// remoteError builds a RemoteError from a non-success response, reading
// the error body best-effort. A failed or empty body read never masks the
// primary HTTP error.
func remoteError(op string, resp *http.Response) *RemoteError {
	var body string
	if data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)); err == nil {
		body = strings.TrimSpace(string(data))
	}
	return &RemoteError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}
}

func (c *Client) record(ctx context.Context, endpoint, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordTaskServiceRequest(ctx, endpoint, status, time.Since(start))
}
