package server

import (
	"context"
	"sync"

	"taskboard/internal/instrumentation"
	"taskboard/internal/taskapi"
)

// Config holds the dependencies the MCP server needs at startup.
type Config struct {
	// TaskAPI configures the remote task service client.
	TaskAPI taskapi.Config

	// PanelPath overrides the location of the task panel HTML file.
	// When empty, the panel is resolved relative to the executable.
	PanelPath string
}

// ServerContext holds shared state for the MCP server.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	taskConfig  taskapi.Config
	taskClient  *taskapi.Client
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	panelPath   string
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context.
func NewServerContext(ctx context.Context, config Config) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		taskConfig: config.TaskAPI,
		panelPath:  config.PanelPath,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// TaskClient returns the shared task service client, creating it on first
// use. The client is cached so all tool invocations share one transport.
func (sc *ServerContext) TaskClient() (*taskapi.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.taskClient != nil {
		return sc.taskClient, nil
	}

	cfg := sc.taskConfig
	if cfg.Metrics == nil && sc.metrics != nil {
		cfg.Metrics = sc.metrics
	}

	client, err := taskapi.NewClient(sc.ctx, cfg)
	if err != nil {
		return nil, err
	}

	sc.taskClient = client
	return client, nil
}

// SetTaskClient sets the task service client. Intended for tests.
func (sc *ServerContext) SetTaskClient(client *taskapi.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.taskClient = client
}

// Metrics returns the metrics recorder, which may be nil when
// instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, which may be nil when audit
// logging is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// PanelPath returns the configured override for the task panel HTML file,
// or empty when the default executable-relative path should be used.
func (sc *ServerContext) PanelPath() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.panelPath
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
