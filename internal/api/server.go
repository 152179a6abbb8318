package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wardlink/wardcall-core/internal/call"
	"github.com/wardlink/wardcall-core/internal/infrastructure/config"
	"github.com/wardlink/wardcall-core/internal/infrastructure/logging"
	"github.com/wardlink/wardcall-core/internal/infrastructure/mqtt"
	"github.com/wardlink/wardcall-core/internal/roster"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config  config.APIConfig
	WS      config.WebSocketConfig
	Logger  *logging.Logger
	Calls   *call.Service
	Roster  roster.Repository
	Records call.RecordRepository
	MQTT    *mqtt.Client // optional: device transport for MQTT-provisioned beds
	Hub     *Hub         // if set, the server uses this hub instead of creating its own
	Version string
}

// Server is the HTTP API server for WardCall Core.
//
// It manages the HTTP listener, routes, middleware, and the dashboard
// WebSocket hub. The server is created with New() and started with
// Start().
type Server struct {
	cfg         config.APIConfig
	wsCfg       config.WebSocketConfig
	logger      *logging.Logger
	calls       *call.Service
	roster      roster.Repository
	records     call.RecordRepository
	mqtt        *mqtt.Client
	version     string
	server      *http.Server
	hub         *Hub
	externalHub bool
	cancel      context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Calls == nil {
		return nil, fmt.Errorf("call service is required")
	}
	if deps.Roster == nil {
		return nil, fmt.Errorf("roster repository is required")
	}
	// MQTT is optional; HTTP intake works without it.

	s := &Server{
		cfg:     deps.Config,
		wsCfg:   deps.WS,
		logger:  deps.Logger,
		calls:   deps.Calls,
		roster:  deps.Roster,
		records: deps.Records,
		mqtt:    deps.MQTT,
		version: deps.Version,
	}

	// Use an externally-provided hub if available (needed when the hub
	// must be registered as a broadcaster before the server is built).
	if deps.Hub != nil {
		s.hub = deps.Hub
		s.externalHub = true
	}

	return s, nil
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub, subscribes to the MQTT device topics
// when a broker is configured, and launches the HTTP listener in a
// background goroutine. The server is stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
		go s.hub.Run(srvCtx)
	}

	if err := s.subscribeDeviceTopics(); err != nil {
		s.logger.Warn("failed to subscribe to device topics", "error", err)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}

// Hub returns the WebSocket hub (nil before Start unless injected).
func (s *Server) Hub() *Hub {
	return s.hub
}
