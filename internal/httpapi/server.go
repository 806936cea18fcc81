// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

// Package httpapi exposes the BoardKeep JSON API over HTTP. It is a thin
// request/response mapping: the auth gate resolves identity, handlers
// translate bodies and path parameters, and all business rules live in the
// auth and board services.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/auth"
	"github.com/boardkeep/boardkeep/internal/board"
	"github.com/boardkeep/boardkeep/internal/observability"
)

// AuthService is the part of the auth layer the API needs.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*auth.User, string, error)
	Login(ctx context.Context, email, password string) (*auth.User, string, error)
	ResolveUser(ctx context.Context, token string) (*auth.User, error)
}

// BoardService is the part of the board layer the API needs.
type BoardService interface {
	ListProjects(ctx context.Context, actor ulid.ULID) ([]*board.Project, error)
	CreateProject(ctx context.Context, actor ulid.ULID, name string) (*board.Project, error)
	ListTodos(ctx context.Context, actor, projectID ulid.ULID) ([]*board.Todo, error)
	CreateTodo(ctx context.Context, actor, projectID ulid.ULID, in board.TodoInput) (*board.Todo, error)
	UpdateTodo(ctx context.Context, actor, todoID ulid.ULID, patch board.TodoPatch) (*board.Todo, error)
	DeleteTodo(ctx context.Context, actor, todoID ulid.ULID) (*board.Todo, error)
}

// ServerConfig configures an API Server.
type ServerConfig struct {
	// Addr is the listen address in "host:port" form; ":0" picks a port.
	Addr string

	// Auth and Board supply the business operations.
	Auth  AuthService
	Board BoardService

	// Metrics is optional; when set, requests and auth failures are counted.
	Metrics *observability.Metrics

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	addr       string
	auth       AuthService
	board      BoardService
	metrics    *observability.Metrics
	logger     *slog.Logger
	router     *httprouter.Router
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates an API server and wires its routes.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		return nil, oops.Errorf("listen address is required")
	}
	if cfg.Auth == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if cfg.Board == nil {
		return nil, oops.Errorf("board service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:    cfg.Addr,
		auth:    cfg.Auth,
		board:   cfg.Board,
		metrics: cfg.Metrics,
		logger:  logger,
		router:  httprouter.New(),
	}
	s.routes()
	return s, nil
}

// routes wires every endpoint. The auth gate wraps everything except
// register and login.
func (s *Server) routes() {
	s.router.POST("/register", s.instrument("/register", s.handleRegister))
	s.router.POST("/login", s.instrument("/login", s.handleLogin))

	s.router.GET("/projects", s.instrument("/projects", s.authenticated(s.handleListProjects)))
	s.router.POST("/projects", s.instrument("/projects", s.authenticated(s.handleCreateProject)))

	s.router.GET("/todos/:projectId", s.instrument("/todos/:projectId", s.authenticated(s.handleListTodos)))
	s.router.POST("/todos/:projectId", s.instrument("/todos/:projectId", s.authenticated(s.handleCreateTodo)))

	s.router.PATCH("/todos/:id", s.instrument("/todos/:id", s.authenticated(s.handleUpdateTodo)))
	s.router.DELETE("/todos/:id", s.instrument("/todos/:id", s.authenticated(s.handleDeleteTodo)))
}

// Handler returns the routed handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving the API. The returned channel reports server errors
// after startup and is closed on graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown api server").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the address the server is listening on, or empty if not
// running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// statusWriter captures the response status for metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// instrument counts requests by route, method, and status.
func (s *Server) instrument(route string, next httprouter.Handle) httprouter.Handle {
	if s.metrics == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r, ps)
		s.metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
	}
}
