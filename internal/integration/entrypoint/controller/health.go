package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func(ctx context.Context) bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func(ctx context.Context) bool) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
	}
}

// Check handles GET /health requests. A disconnected database answers 503.
func (h *HealthController) Check(c *gin.Context) {
	status, code := "ok", http.StatusOK
	dbStatus := "connected"
	if h.dbHealthChecker == nil || !h.dbHealthChecker(c.Request.Context()) {
		status, code = "degraded", http.StatusServiceUnavailable
		dbStatus = "disconnected"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
