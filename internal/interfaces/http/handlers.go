package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procurehub/procurehub/internal/domain/entity"
	"github.com/procurehub/procurehub/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, logger Logger) *Handlers {
	return &Handlers{
		services: services,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// respondError maps application errors onto HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrNoApproverConfigured):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
		message = "forbidden"
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, entity.ErrConflict),
		errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrGuardFailed):
		status = http.StatusConflict
		message = err.Error()
	default:
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}

func (h *Handlers) respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func (h *Handlers) respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

func (h *Handlers) respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   message,
	})
}
