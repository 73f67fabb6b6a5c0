package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// HealthHandler reports service liveness.
type HealthHandler struct{}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	utils.Success(c, 200, "OK", gin.H{"status": "healthy"})
}
