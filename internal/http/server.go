// Package http provides HTTP server implementation and request handlers.
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

	auditHTTP "github.com/courtside/registration/internal/audit/http"
	authDomain "github.com/courtside/registration/internal/auth/domain"
	authHTTP "github.com/courtside/registration/internal/auth/http"
	eventHTTP "github.com/courtside/registration/internal/events/http"
	jobHTTP "github.com/courtside/registration/internal/jobs/http"
	paymentHTTP "github.com/courtside/registration/internal/payments/http"
	registrationHTTP "github.com/courtside/registration/internal/registrations/http"
)

// Handlers groups the route handlers the server exposes.
type Handlers struct {
	Event        *eventHTTP.EventHandler
	Registration *registrationHTTP.RegistrationHandler
	Payment      *paymentHTTP.PaymentHandler
	Job          *jobHTTP.JobHandler
	Token        *authHTTP.TokenHandler
	AuditLog     *auditHTTP.AuditLogHandler
}

// MiddlewareConfig carries the optional middleware applied by the router. A
// nil field disables that middleware.
type MiddlewareConfig struct {
	// Authentication validates bearer tokens on admin routes.
	Authentication gin.HandlerFunc
	// CheckoutRateLimit throttles the public registration and checkout
	// endpoints per client IP.
	CheckoutRateLimit gin.HandlerFunc
	// CORS handles cross-origin requests.
	CORS gin.HandlerFunc
	// Metrics records per-request HTTP metrics.
	Metrics gin.HandlerFunc
}

// Server represents the HTTP server.
type Server struct {
	server     *http.Server
	router     *gin.Engine
	db         *sql.DB
	logger     *slog.Logger
	handlers   *Handlers
	middleware *MiddlewareConfig
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness endpoint; handlers and middleware may be nil in tests.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
	handlers *Handlers,
	middleware *MiddlewareConfig,
) *Server {
	return &Server{
		db:         db,
		logger:     logger,
		handlers:   handlers,
		middleware: middleware,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// setupRouter builds the Gin engine with all middleware and routes.
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.middleware != nil && s.middleware.CORS != nil {
		router.Use(s.middleware.CORS)
	}
	if s.middleware != nil && s.middleware.Metrics != nil {
		router.Use(s.middleware.Metrics)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if s.handlers != nil {
		s.registerRoutes(router)
	}

	return router
}

// registerRoutes wires the versioned API routes.
func (s *Server) registerRoutes(router *gin.Engine) {
	v1 := router.Group("/v1")

	// Public routes.
	v1.GET("/events", s.handlers.Event.ListPublishedHandler)
	v1.GET("/events/:id", s.handlers.Event.GetHandler)
	v1.POST("/token", s.handlers.Token.IssueTokenHandler)
	v1.POST("/webhooks/payment", s.handlers.Payment.WebhookHandler)

	// Public registration routes, rate limited per client IP.
	public := v1.Group("")
	if s.middleware != nil && s.middleware.CheckoutRateLimit != nil {
		public.Use(s.middleware.CheckoutRateLimit)
	}
	public.POST("/registrations/free", s.handlers.Registration.FreeRegistrationHandler)
	public.POST("/checkout", s.handlers.Payment.CheckoutHandler)

	// Authenticated routes.
	if s.middleware == nil || s.middleware.Authentication == nil {
		return
	}

	authed := v1.Group("")
	authed.Use(s.middleware.Authentication)

	authed.POST("/payments/:id/refunds",
		authHTTP.RequireRole(s.logger, authDomain.RoleAdmin, authDomain.RoleFinance),
		s.handlers.Payment.RefundHandler)

	admin := authed.Group("/admin")

	anyRole := authHTTP.RequireRole(s.logger,
		authDomain.RoleAdmin, authDomain.RoleFinance, authDomain.RoleStaff)
	adminOnly := authHTTP.RequireRole(s.logger, authDomain.RoleAdmin)
	staffOrAdmin := authHTTP.RequireRole(s.logger, authDomain.RoleAdmin, authDomain.RoleStaff)
	financeOrAdmin := authHTTP.RequireRole(s.logger, authDomain.RoleAdmin, authDomain.RoleFinance)

	admin.GET("/events", anyRole, s.handlers.Event.AdminListHandler)
	admin.POST("/events", adminOnly, s.handlers.Event.CreateHandler)
	admin.PUT("/events/:id", adminOnly, s.handlers.Event.UpdateHandler)
	admin.PATCH("/events/:id/status", adminOnly, s.handlers.Event.UpdateStatusHandler)

	admin.GET("/events/:id/registrations", anyRole, s.handlers.Registration.ListByEventHandler)
	admin.POST("/events/:id/registrations/walkup", staffOrAdmin, s.handlers.Registration.WalkUpHandler)

	admin.GET("/audit", financeOrAdmin, s.handlers.AuditLog.ListHandler)
	admin.POST("/jobs/run", adminOnly, s.handlers.Job.RunHandler)
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.router = s.setupRouter()
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// GetHandler returns the http.Handler for testing purposes. The router is
// built on first use.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		s.router = s.setupRouter()
	}
	return s.router
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
