// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"

	auditHTTP "github.com/saraivavision/privacy/internal/audit/http"
	auditService "github.com/saraivavision/privacy/internal/audit/service"
	auditUsecase "github.com/saraivavision/privacy/internal/audit/usecase"
	"github.com/saraivavision/privacy/internal/config"
	consentHTTP "github.com/saraivavision/privacy/internal/consent/http"
	consentUsecase "github.com/saraivavision/privacy/internal/consent/usecase"
	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoHTTP "github.com/saraivavision/privacy/internal/crypto/http"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
	cryptoUsecase "github.com/saraivavision/privacy/internal/crypto/usecase"
	"github.com/saraivavision/privacy/internal/database"
	"github.com/saraivavision/privacy/internal/http"
	"github.com/saraivavision/privacy/internal/metrics"
	retentionHTTP "github.com/saraivavision/privacy/internal/retention/http"
	retentionService "github.com/saraivavision/privacy/internal/retention/service"
	retentionUsecase "github.com/saraivavision/privacy/internal/retention/usecase"
	rightsHTTP "github.com/saraivavision/privacy/internal/rights/http"
	rightsUsecase "github.com/saraivavision/privacy/internal/rights/usecase"
)

// Container holds all application dependencies and provides methods to
// access them. It follows the lazy initialization pattern - components are
// created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Crypto primitives
	masterSecret *cryptoDomain.MasterSecret
	kmsService   cryptoService.KMSService
	keyManager   cryptoService.KeyManager
	hasher       cryptoService.Hasher
	anonymizer   cryptoService.Anonymizer
	signer       auditService.Signer

	// Repositories
	consentRepo   consentRepository
	eventRepo     eventRepository
	retentionRepo retentionUsecase.RetentionRepository
	rightsRepo    rightsUsecase.RightsRepository
	userDataRepo  userDataRepository

	// Use Cases
	consentUseCase    consentUsecase.ConsentUseCase
	encryptionUseCase cryptoUsecase.EncryptionUseCase
	retentionUseCase  retentionUsecase.RetentionUseCase
	rightsUseCase     rightsUsecase.RightsUseCase
	auditUseCase      auditUsecase.AuditUseCase

	// Handlers
	consentHandler    *consentHTTP.ConsentHandler
	encryptionHandler *cryptoHTTP.EncryptionHandler
	retentionHandler  *retentionHTTP.RetentionHandler
	rightsHandler     *rightsHTTP.RightsHandler
	auditHandler      *auditHTTP.AuditHandler

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	masterSecretInit      sync.Once
	kmsServiceInit        sync.Once
	keyManagerInit        sync.Once
	hasherInit            sync.Once
	anonymizerInit        sync.Once
	signerInit            sync.Once
	consentRepoInit       sync.Once
	eventRepoInit         sync.Once
	retentionRepoInit     sync.Once
	rightsRepoInit        sync.Once
	userDataRepoInit      sync.Once
	consentUseCaseInit    sync.Once
	encryptionUseCaseInit sync.Once
	retentionUseCaseInit  sync.Once
	rightsUseCaseInit     sync.Once
	auditUseCaseInit      sync.Once
	consentHandlerInit    sync.Once
	encryptionHandlerInit sync.Once
	retentionHandlerInit  sync.Once
	rightsHandlerInit     sync.Once
	auditHandlerInit      sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// consentRepository is the consent store as both the consent module and the
// retention deleter see it.
type consentRepository interface {
	consentUsecase.ConsentRepository
	retentionService.SessionPurger
}

// eventRepository is the audit event store as both the audit module and the
// retention deleter see it.
type eventRepository interface {
	auditUsecase.EventRepository
	retentionService.SessionPurger
}

// userDataRepository is the stored-data repository as both the rights
// workflows and the retention deleter see it.
type userDataRepository interface {
	rightsUsecase.UserDataStore
	retentionService.UserDataPurger
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
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
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
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
// It requires a database connection to be initialized first.
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

// MetricsProvider returns the OpenTelemetry/Prometheus metrics provider,
// or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
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

// BusinessMetrics returns the business metrics recorder used to decorate
// use cases. When metrics are disabled a no-op recorder is returned so
// decoration stays uniform.
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

// HTTPServer returns the HTTP server instance with all routes registered.
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

// MetricsServer returns the Prometheus metrics server instance.
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

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP servers if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Flush the metrics pipeline if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Zero the master secret if loaded
	if c.masterSecret != nil {
		c.masterSecret.Close()
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
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

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	consentHandler, err := c.ConsentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get consent handler for http server: %w", err)
	}

	encryptionHandler, err := c.EncryptionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption handler for http server: %w", err)
	}

	retentionHandler, err := c.RetentionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get retention handler for http server: %w", err)
	}

	rightsHandler, err := c.RightsHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get rights handler for http server: %w", err)
	}

	auditHandler, err := c.AuditHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit handler for http server: %w", err)
	}

	middleware, err := c.routeMiddleware(logger)
	if err != nil {
		return nil, err
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.RegisterRoutes(http.RouteHandlers{
		Consent:    consentHandler,
		Crypto:     encryptionHandler,
		Retention:  retentionHandler,
		Rights:     rightsHandler,
		Audit:      auditHandler,
		Middleware: middleware,
	})

	return server, nil
}

// routeMiddleware assembles the optional middleware chain installed ahead
// of the v1 routes: HTTP metrics, CORS, and rate limiting, each gated by
// configuration.
func (c *Container) routeMiddleware(logger *slog.Logger) ([]gin.HandlerFunc, error) {
	var middleware []gin.HandlerFunc

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http middleware: %w", err)
		}
		middleware = append(middleware, metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace))
	}

	if corsMiddleware := http.CreateCORSMiddleware(c.config.CORSEnabled, c.config.CORSAllowOrigins, logger); corsMiddleware != nil {
		middleware = append(middleware, corsMiddleware)
	}

	if c.config.RateLimitEnabled {
		middleware = append(middleware, http.RateLimitMiddleware(c.config.RateLimitRequestsPerSec, c.config.RateLimitBurst, logger))
	}

	return middleware, nil
}

// initMetricsServer creates the Prometheus metrics server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
