package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procurehub/procurehub/internal/application/port"
)

// ListNotifications handles GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	notifications, err := h.services.Notification.ListForUser(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, notifications)
}

// MarkNotificationRead handles PUT /api/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Notification.MarkRead(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, gin.H{"message": "notification marked as read"})
}

// Stats handles GET /api/stats
func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.services.Report.Stats(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, stats)
}

func reportFilter(c *gin.Context) port.RequestFilter {
	return port.RequestFilter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Location:   c.Query("location"),
		Search:     c.Query("search"),
	}
}

// ListReport handles GET /api/reports
func (h *Handlers) ListReport(c *gin.Context) {
	requests, err := h.services.Report.ListForReport(c.Request.Context(), actorFrom(c), reportFilter(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, requests)
}

// ExportReport handles GET /api/reports/export, streaming an xlsx workbook
func (h *Handlers) ExportReport(c *gin.Context) {
	data, err := h.services.Report.ExportXLSX(c.Request.Context(), actorFrom(c), reportFilter(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("purchase-requests-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
