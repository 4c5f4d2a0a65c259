// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditHTTP "github.com/courtside/registration/internal/audit/http"
	auditUseCase "github.com/courtside/registration/internal/audit/usecase"
	authHTTP "github.com/courtside/registration/internal/auth/http"
	authService "github.com/courtside/registration/internal/auth/service"
	authUseCase "github.com/courtside/registration/internal/auth/usecase"
	"github.com/courtside/registration/internal/config"
	"github.com/courtside/registration/internal/database"
	eventHTTP "github.com/courtside/registration/internal/events/http"
	eventUseCase "github.com/courtside/registration/internal/events/usecase"
	"github.com/courtside/registration/internal/http"
	jobHTTP "github.com/courtside/registration/internal/jobs/http"
	jobUseCase "github.com/courtside/registration/internal/jobs/usecase"
	"github.com/courtside/registration/internal/mailer"
	"github.com/courtside/registration/internal/metrics"
	paymentHTTP "github.com/courtside/registration/internal/payments/http"
	"github.com/courtside/registration/internal/payments/provider"
	paymentUseCase "github.com/courtside/registration/internal/payments/usecase"
	registrationHTTP "github.com/courtside/registration/internal/registrations/http"
	registrationUseCase "github.com/courtside/registration/internal/registrations/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	mailer          mailer.Mailer

	// Auth
	secretService   authService.SecretService
	tokenService    authService.TokenService
	actorRepository authUseCase.ActorRepository
	tokenRepository authUseCase.TokenRepository
	actorUseCase    authUseCase.ActorUseCase
	tokenUseCase    authUseCase.TokenUseCase
	tokenHandler    *authHTTP.TokenHandler

	// Audit
	auditLogRepository auditUseCase.AuditLogRepository
	auditLogUseCase    auditUseCase.AuditLogUseCase
	auditLogHandler    *auditHTTP.AuditLogHandler

	// Events
	eventRepository eventUseCase.EventRepository
	eventUseCase    eventUseCase.EventUseCase
	eventHandler    *eventHTTP.EventHandler

	// Registrations
	registrationRepository registrationUseCase.RegistrationRepository
	intentUseCase          registrationUseCase.IntentUseCase
	adminUseCase           registrationUseCase.AdminUseCase
	registrationHandler    *registrationHTTP.RegistrationHandler

	// Payments
	paymentRepository      paymentUseCase.PaymentRepository
	refundRepository       paymentUseCase.RefundRepository
	webhookEventRepository paymentUseCase.WebhookEventRepository
	providerClient         provider.Client
	checkoutUseCase        paymentUseCase.CheckoutUseCase
	webhookUseCase         paymentUseCase.WebhookUseCase
	refundUseCase          paymentUseCase.RefundUseCase
	paymentHandler         *paymentHTTP.PaymentHandler

	// Jobs
	jobRepository    jobUseCase.JobRepository
	schedulerUseCase jobUseCase.SchedulerUseCase
	runnerUseCase    jobUseCase.RunnerUseCase
	jobHandler       *jobHTTP.JobHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                         sync.Mutex
	loggerInit                 sync.Once
	dbInit                     sync.Once
	txManagerInit              sync.Once
	metricsProviderInit        sync.Once
	businessMetricsInit        sync.Once
	mailerInit                 sync.Once
	secretServiceInit          sync.Once
	tokenServiceInit           sync.Once
	actorRepositoryInit        sync.Once
	tokenRepositoryInit        sync.Once
	actorUseCaseInit           sync.Once
	tokenUseCaseInit           sync.Once
	tokenHandlerInit           sync.Once
	auditLogRepositoryInit     sync.Once
	auditLogUseCaseInit        sync.Once
	auditLogHandlerInit        sync.Once
	eventRepositoryInit        sync.Once
	eventUseCaseInit           sync.Once
	eventHandlerInit           sync.Once
	registrationRepositoryInit sync.Once
	registrationUseCaseInit    sync.Once
	registrationHandlerInit    sync.Once
	paymentRepositoryInit      sync.Once
	refundRepositoryInit       sync.Once
	webhookEventRepositoryInit sync.Once
	providerClientInit         sync.Once
	checkoutUseCaseInit        sync.Once
	webhookUseCaseInit         sync.Once
	refundUseCaseInit          sync.Once
	paymentHandlerInit         sync.Once
	jobRepositoryInit          sync.Once
	schedulerUseCaseInit       sync.Once
	runnerUseCaseInit          sync.Once
	jobHandlerInit             sync.Once
	httpServerInit             sync.Once
	metricsServerInit          sync.Once
	initErrors                 map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider. Returns nil
// when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Mailer returns the outbound mail sender.
func (c *Container) Mailer() mailer.Mailer {
	c.mailerInit.Do(func() {
		c.mailer = c.initMailer()
	})
	return c.mailer
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance. Returns nil when metrics
// are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources. It should be called
// when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates the logger based on the configured log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if metricsProvider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(
		metricsProvider.MeterProvider(),
		c.config.MetricsNamespace,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initMailer creates the SMTP mailer.
func (c *Container) initMailer() mailer.Mailer {
	return mailer.NewSMTPMailer(mailer.Config{
		Addr:        c.config.SMTPAddr,
		User:        c.config.SMTPUser,
		Password:    c.config.SMTPPassword,
		FromAddress: c.config.MailFromAddress,
		FromName:    c.config.MailFromName,
	})
}

// initHTTPServer assembles the HTTP server with all handlers and middleware.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	eventHandler, err := c.EventHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get event handler: %w", err)
	}

	registrationHandler, err := c.RegistrationHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get registration handler: %w", err)
	}

	paymentHandler, err := c.PaymentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment handler: %w", err)
	}

	jobHandler, err := c.JobHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get job handler: %w", err)
	}

	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler: %w", err)
	}

	auditLogHandler, err := c.AuditLogHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log handler: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case: %w", err)
	}

	logger := c.Logger()

	handlers := &http.Handlers{
		Event:        eventHandler,
		Registration: registrationHandler,
		Payment:      paymentHandler,
		Job:          jobHandler,
		Token:        tokenHandler,
		AuditLog:     auditLogHandler,
	}

	middleware := &http.MiddlewareConfig{
		Authentication: authHTTP.AuthenticationMiddleware(tokenUseCase, c.TokenService(), logger),
		CORS:           http.CreateCORSMiddleware(c.config.CORSEnabled, c.config.CORSAllowOrigins, logger),
	}

	if c.config.RateLimitCheckoutEnabled {
		middleware.CheckoutRateLimit = http.ClientIPRateLimitMiddleware(
			c.config.RateLimitCheckoutRequestsPerSec,
			c.config.RateLimitCheckoutBurst,
			logger,
		)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if metricsProvider != nil {
		middleware.Metrics = metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	return http.NewServer(
		db,
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		handlers,
		middleware,
	), nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if metricsProvider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}
