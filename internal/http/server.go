// Package http provides the API and metrics servers and the route table.
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

	authHTTP "github.com/allisson/gatewayconsole/internal/auth/http"
	authService "github.com/allisson/gatewayconsole/internal/auth/service"
	authUseCase "github.com/allisson/gatewayconsole/internal/auth/usecase"
	"github.com/allisson/gatewayconsole/internal/config"
	consoleHTTP "github.com/allisson/gatewayconsole/internal/console/http"
	gatewayHTTP "github.com/allisson/gatewayconsole/internal/gateway/http"
	"github.com/allisson/gatewayconsole/internal/metrics"
)

// Server is the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new API server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the route table.
//
//	GET    /health, /ready
//	POST   /v1/sessions                               login (per-IP rate limit)
//	DELETE /v1/sessions                               logout
//	GET    /v1/sessions/me                            current claims
//	POST   /v1/gateways                               create gateway
//	GET    /v1/gateways/:gateway_id                   get gateway
//	PUT    /v1/gateways/:gateway_id                   update gateway
//	GET    /v1/tenants/:tenant_id/gateways            list tenant gateways
//	GET    /v1/console/gateways/:gateway_id/edit      render edit form
//	POST   /v1/console/gateways/:gateway_id/edit      submit edit form
//
// Everything under /v1 except login requires a bearer token. ctx bounds the
// background cleanup of the rate limiters.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	sessionHandler *authHTTP.SessionHandler,
	gatewayHandler *gatewayHTTP.GatewayHandler,
	consoleHandler *consoleHTTP.ConsoleHandler,
	sessionUseCase authUseCase.SessionUseCase,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(),
			metricsProvider.Namespace(),
			"/health", "/ready",
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	login := []gin.HandlerFunc{}
	if cfg.RateLimitEnabled {
		login = append(login, authHTTP.LoginRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	v1.POST("/sessions", append(login, sessionHandler.LoginHandler)...)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(sessionUseCase, tokenService, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	sessions := authenticated.Group("/sessions")
	{
		sessions.DELETE("", sessionHandler.LogoutHandler)
		sessions.GET("/me", sessionHandler.MeHandler)
	}

	gateways := authenticated.Group("/gateways")
	{
		gateways.POST("", gatewayHandler.CreateHandler)
		gateways.GET("/:gateway_id", gatewayHandler.GetHandler)
		gateways.PUT("/:gateway_id", gatewayHandler.UpdateHandler)
	}

	authenticated.GET("/tenants/:tenant_id/gateways", gatewayHandler.ListByTenantHandler)

	consoleGroup := authenticated.Group("/console")
	{
		consoleGroup.GET("/gateways/:gateway_id/edit", consoleHandler.EditFormHandler)
		consoleGroup.POST("/gateways/:gateway_id/edit", consoleHandler.SubmitEditHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	database := "ok"
	if s.db == nil || s.db.PingContext(ctx) != nil {
		database = "error"
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}
