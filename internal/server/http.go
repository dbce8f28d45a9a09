package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// DefaultHTTPAddr is the default listen address for the MCP HTTP transport.
const DefaultHTTPAddr = ":8080"

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the address to bind the HTTP server to (e.g., ":8080").
	Addr string

	// MCPServer is the MCP server to expose over HTTP.
	MCPServer *mcpserver.MCPServer

	// ServerContext provides shared state for health checks and metrics.
	ServerContext *ServerContext
}

// HTTPServer exposes the MCP server over the streamable HTTP transport,
// together with health endpoints for Kubernetes probes.
type HTTPServer struct {
	httpServer *http.Server
	handler    http.Handler
	health     *HealthChecker
	sc         *ServerContext
	addr       string
}

// NewHTTPServer creates an HTTP server hosting the MCP endpoint at /mcp.
func NewHTTPServer(config HTTPServerConfig) *HTTPServer {
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}

	health := NewHealthChecker(config.ServerContext)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(config.MCPServer,
		mcpserver.WithEndpointPath("/mcp"),
	))
	health.RegisterHealthEndpoints(mux)

	s := &HTTPServer{
		health: health,
		sc:     config.ServerContext,
		addr:   config.Addr,
	}

	// Browser-based MCP hosts talk to the endpoint cross-origin, so the
	// session header must be readable by scripts.
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Last-Event-ID"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	})

	s.handler = corsMiddleware.Handler(s.metricsMiddleware(mux))
	return s
}

// metricsMiddleware records request counts and latencies when
// instrumentation is enabled.
func (s *HTTPServer) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := s.sc.Metrics()
		if metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards flushes so streaming responses are not buffered.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Handler returns the fully assembled HTTP handler. Intended for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Health returns the health checker for readiness signaling.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.addr
}

// Start starts the HTTP server in a blocking manner.
func (s *HTTPServer) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting MCP HTTP server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	if s.httpServer != nil {
		slog.Info("shutting down MCP HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
