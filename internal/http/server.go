// Package http provides the HTTP API server and its routing.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountHTTP "github.com/allisson/notevault/internal/account/http"
	authHTTP "github.com/allisson/notevault/internal/auth/http"
	authUseCase "github.com/allisson/notevault/internal/auth/usecase"
	"github.com/allisson/notevault/internal/config"
	"github.com/allisson/notevault/internal/metrics"
	notesHTTP "github.com/allisson/notevault/internal/notes/http"
)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// RouterConfig holds the handlers and settings used to build the API routes.
type RouterConfig struct {
	Config          *config.Config
	AccountHandler  *accountHTTP.AccountHandler
	NoteHandler     *notesHTTP.NoteHandler
	TokenHandler    *authHTTP.TokenHandler
	TokenUseCase    authUseCase.TokenUseCase
	MetricsProvider *metrics.Provider
}

// NewServer creates a new HTTP API server.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:     db,
		logger: logger,
	}
}

// SetupRouter builds the Gin router with all middleware and API routes.
func (s *Server) SetupRouter(rc RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(rc.Config.CORSEnabled, rc.Config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if rc.Config.MetricsEnabled && rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(rc.MetricsProvider.MeterProvider(), rc.Config.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Unauthenticated endpoints, rate limited per client IP.
	public := router.Group("/v1")
	if rc.Config.RateLimitLoginEnabled {
		public.Use(authHTTP.LoginRateLimitMiddleware(
			rc.Config.RateLimitLoginRequestsPerSec,
			rc.Config.RateLimitLoginBurst,
			s.logger,
		))
	}
	public.POST("/accounts", rc.AccountHandler.SignupHandler)
	public.GET("/accounts/kdf-params", rc.AccountHandler.KdfParamsHandler)
	public.POST("/auth/login", rc.AccountHandler.LoginHandler)

	// Authenticated endpoints, rate limited per account.
	protected := router.Group("/v1")
	protected.Use(authHTTP.AuthenticationMiddleware(rc.TokenUseCase, s.logger))
	if rc.Config.RateLimitEnabled {
		protected.Use(authHTTP.RateLimitMiddleware(
			rc.Config.RateLimitRequestsPerSec,
			rc.Config.RateLimitBurst,
			s.logger,
		))
	}
	protected.POST("/auth/logout", rc.TokenHandler.LogoutHandler)
	protected.POST("/accounts/rotate", rc.AccountHandler.RotateHandler)
	protected.POST("/notes", rc.NoteHandler.CreateHandler)
	protected.GET("/notes", rc.NoteHandler.ListHandler)
	protected.GET("/notes/:id", rc.NoteHandler.GetHandler)
	protected.PUT("/notes/:id", rc.NoteHandler.UpdateHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP API server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
