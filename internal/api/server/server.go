package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staking-api/internal/api/middleware"
	"github.com/feral-file/ff-staking-api/internal/api/rest"
	"github.com/feral-file/ff-staking-api/internal/api/shared/executor"
	"github.com/feral-file/ff-staking-api/internal/logger"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Auth         middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	executor   executor.Executor
	router     *gin.Engine
	httpServer *http.Server
}

// New creates a new API server. The http.Server is built here so Shutdown
// can be called from any goroutine, before or after Start.
func New(cfg Config, exec executor.Executor) *Server {
	s := &Server{
		config:   cfg,
		executor: exec,
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Router returns the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())
	router.NoRoute(middleware.NotFound())

	rest.SetupRoutes(router, rest.NewHandler(s.executor), s.config.Auth)

	return router
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	logger.Info("Starting API server",
		zap.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
