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
)

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// RouteHandlers groups the per-module handlers registered on the server.
type RouteHandlers struct {
	Consent    ConsentHandler
	Crypto     EncryptionHandler
	Retention  RetentionHandler
	Rights     RightsHandler
	Audit      AuditHandler
	Middleware []gin.HandlerFunc
}

// ConsentHandler is the set of consent endpoints the server routes to.
type ConsentHandler interface {
	ValidateHandler(c *gin.Context)
	RecordHandler(c *gin.Context)
	WithdrawHandler(c *gin.Context)
	HistoryHandler(c *gin.Context)
}

// EncryptionHandler is the set of encryption endpoints the server routes to.
type EncryptionHandler interface {
	EncryptHandler(c *gin.Context)
	DecryptHandler(c *gin.Context)
	EncryptPIIHandler(c *gin.Context)
	DecryptPIIHandler(c *gin.Context)
	EncryptMedicalHandler(c *gin.Context)
	DecryptMedicalHandler(c *gin.Context)
	AnonymizeHandler(c *gin.Context)
	RotateKeysHandler(c *gin.Context)
	StatusHandler(c *gin.Context)
}

// RetentionHandler is the set of retention endpoints the server routes to.
type RetentionHandler interface {
	ScheduleHandler(c *gin.Context)
	ExecuteHandler(c *gin.Context)
	CancelHandler(c *gin.Context)
	StatusHandler(c *gin.Context)
}

// RightsHandler is the set of data subject rights endpoints the server routes to.
type RightsHandler interface {
	SubmitHandler(c *gin.Context)
	GetHandler(c *gin.Context)
	ListHandler(c *gin.Context)
}

// AuditHandler is the set of audit trail endpoints the server routes to.
type AuditHandler interface {
	ListHandler(c *gin.Context)
	VerifyHandler(c *gin.Context)
}

// NewServer creates a new HTTP server with the base middleware chain
// installed. Routes are registered with RegisterRoutes before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	server := &Server{
		router: router,
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	return server
}

// RegisterRoutes installs the extra middleware and all v1 API routes.
func (s *Server) RegisterRoutes(handlers RouteHandlers) {
	for _, m := range handlers.Middleware {
		if m != nil {
			s.router.Use(m)
		}
	}

	v1 := s.router.Group("/v1")

	consent := v1.Group("/consent")
	consent.POST("/validate", handlers.Consent.ValidateHandler)
	consent.POST("", handlers.Consent.RecordHandler)
	consent.DELETE("", handlers.Consent.WithdrawHandler)
	consent.GET("/history", handlers.Consent.HistoryHandler)

	crypto := v1.Group("/crypto")
	crypto.POST("/encrypt", handlers.Crypto.EncryptHandler)
	crypto.POST("/decrypt", handlers.Crypto.DecryptHandler)
	crypto.POST("/pii/encrypt", handlers.Crypto.EncryptPIIHandler)
	crypto.POST("/pii/decrypt", handlers.Crypto.DecryptPIIHandler)
	crypto.POST("/medical/encrypt", handlers.Crypto.EncryptMedicalHandler)
	crypto.POST("/medical/decrypt", handlers.Crypto.DecryptMedicalHandler)
	crypto.POST("/anonymize", handlers.Crypto.AnonymizeHandler)
	crypto.POST("/rotate-keys", handlers.Crypto.RotateKeysHandler)
	crypto.GET("/status", handlers.Crypto.StatusHandler)

	retention := v1.Group("/retention")
	retention.POST("", handlers.Retention.ScheduleHandler)
	retention.POST("/execute", handlers.Retention.ExecuteHandler)
	retention.POST("/:id/cancel", handlers.Retention.CancelHandler)
	retention.GET("", handlers.Retention.StatusHandler)

	rights := v1.Group("/rights")
	rights.POST("", handlers.Rights.SubmitHandler)
	rights.GET("/:id", handlers.Rights.GetHandler)
	rights.GET("", handlers.Rights.ListHandler)

	audit := v1.Group("/audit")
	audit.GET("", handlers.Audit.ListHandler)
	audit.POST("/verify", handlers.Audit.VerifyHandler)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
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
