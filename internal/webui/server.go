package webui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"log/slog"

	"slaved/internal/api"
	"slaved/internal/config"
	"slaved/internal/identity"
	"slaved/internal/logging"
	"slaved/internal/registry"
	"slaved/internal/router"
)

// FrameworkSource is the read-only registry view the pages need.
type FrameworkSource interface {
	List(ctx context.Context, statuses ...registry.Status) ([]*registry.Framework, error)
	GetByID(ctx context.Context, id int64) (*registry.Framework, error)
}

// StatusProvider supplies daemon-level status for /api/status. Optional; when
// absent the server reports what it knows on its own.
type StatusProvider interface {
	Status(ctx context.Context) api.SlaveStatus
}

// Server is the slave's admin web UI: HTML pages, static assets, and the
// slave/framework log endpoints.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	identity   *identity.Store
	frameworks FrameworkSource
	status     StatusProvider
	templates  *templateCache
	routes     *router.Router
	startTime  time.Time

	listener net.Listener
	server   *http.Server
}

// New builds the web UI server and its route table.
func New(cfg *config.Config, ident *identity.Store, frameworks FrameworkSource, status StatusProvider, logger *slog.Logger) (*Server, error) {
	if cfg == nil || ident == nil || frameworks == nil {
		return nil, errors.New("webui requires config, identity store, and framework source")
	}

	srv := &Server{
		cfg:        cfg,
		logger:     logger,
		identity:   ident,
		frameworks: frameworks,
		status:     status,
		templates:  newTemplateCache(cfg.Paths.TemplateDir),
		startTime:  time.Now(),
	}

	routes := router.New(srv.log())
	for _, reg := range []struct {
		pattern string
		handler router.HandlerFunc
	}{
		{"/", srv.handleIndex},
		{"/framework/{id:num}", srv.handleFramework},
		{"/static/{filename:rest}", srv.handleStatic},
		{"/log/{level:upper}", srv.handleLogFull},
		{"/log/{level:upper}/{lines:num}", srv.handleLogTail},
		{"/framework-logs/{fid:num}/{type:lower}", srv.handleFrameworkLogFull},
		{"/framework-logs/{fid:num}/{type:lower}/{lines:num}", srv.handleFrameworkLogTail},
		{"/api/status", srv.handleAPIStatus},
		{"/api/frameworks", srv.handleAPIFrameworks},
	} {
		if err := routes.Handle(http.MethodGet, reg.pattern, reg.handler); err != nil {
			return nil, fmt.Errorf("register route %s: %w", reg.pattern, err)
		}
	}
	srv.routes = routes
	return srv, nil
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.routes
}

// StartTime reports when the server came up; it renders on the index page.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// Start begins listening on the configured bind address. Shutdown is tied to
// ctx cancellation.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Paths.WebBind)
	if err != nil {
		return fmt.Errorf("webui listen: %w", err)
	}
	s.listener = listener

	// A fresh http.Server per Start; Shutdown renders the old one unusable.
	server := &http.Server{
		Handler:           s.routes,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.server = server

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("webui server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log().Info("webui listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down and closes the listener.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return logging.WithComponent(s.logger, "webui")
	}
	return logging.NewNop()
}
