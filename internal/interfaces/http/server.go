// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procurehub/procurehub/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services bundles the application services the server exposes
type Services struct {
	Auth         service.AuthService
	Request      service.RequestService
	LineItem     service.LineItemService
	Approval     service.ApprovalService
	Notification service.NotificationService
	Report       service.ReportService
	Master       service.MasterService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		services: services,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(corsMiddleware())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")

	// Auth endpoints are the only unauthenticated API surface
	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/signup", handlers.Signup)
		auth.POST("/logout", handlers.Logout)
		auth.POST("/forgot-password", handlers.ForgotPassword)
	}

	authed := api.Group("")
	authed.Use(authMiddleware(s.services.Auth))
	{
		// Session restore
		authed.GET("/auth/user", handlers.GetCurrentUser)

		// Purchase requests
		authed.POST("/purchase-requests", handlers.SubmitRequest)
		authed.GET("/purchase-requests", handlers.ListRequests)
		authed.GET("/purchase-requests/:id", handlers.GetRequest)
		authed.PUT("/purchase-requests/:id/resubmit", handlers.ResubmitRequest)

		// Line items
		authed.GET("/purchase-requests/:id/line-items", handlers.ListLineItems)
		authed.POST("/purchase-requests/:id/line-items", handlers.CreateLineItem)
		authed.PUT("/purchase-requests/:id/line-items/:itemId", handlers.UpdateLineItem)
		authed.DELETE("/purchase-requests/:id/line-items/:itemId", handlers.DeleteLineItem)

		// Approval actions and audit trail
		authed.POST("/purchase-requests/:id/approve", handlers.ApproveRequest)
		authed.POST("/purchase-requests/:id/reject", handlers.RejectRequest)
		authed.POST("/purchase-requests/:id/return", handlers.ReturnRequest)
		authed.GET("/purchase-requests/:id/history", handlers.RequestHistory)

		// Approval chain lookup
		authed.GET("/workflows", handlers.GetWorkflow)

		// Stock on hand, readable by requesters building line items
		authed.GET("/inventory", handlers.ListInventory)

		// Notifications
		authed.GET("/notifications", handlers.ListNotifications)
		authed.PUT("/notifications/:id/read", handlers.MarkNotificationRead)

		// Dashboard and reports
		authed.GET("/stats", handlers.Stats)
		authed.GET("/reports", handlers.ListReport)
		authed.GET("/reports/export", handlers.ExportReport)

		// Admin masters
		admin := authed.Group("/admin")
		admin.Use(requireRole("admin"))
		registerMasterRoutes(admin, handlers)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
