package handler

import (
	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness checks.
type HealthHandler struct{}

// NewHealthHandler creates the liveness handler. It has no dependencies:
// /health answers without touching the database.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	HandleSuccess(c, gin.H{"status": "ok"}, "Service is healthy")
}
