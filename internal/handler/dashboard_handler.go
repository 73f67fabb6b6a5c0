package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mindx-ops/po-dashboard/internal/service"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// DashboardHandler serves the merged dataset consumed by the dashboard UI.
type DashboardHandler struct {
	dataset *service.DatasetService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dataset *service.DatasetService) *DashboardHandler {
	return &DashboardHandler{dataset: dataset}
}

// GetData handles GET /v1/data. Accepts the shared filter query parameters;
// an empty dataset is a normal 200 with an empty list.
func (h *DashboardHandler) GetData(c *gin.Context) {
	rows := parseFilters(c).Apply(h.dataset.FetchDataset(c.Request.Context()))
	utils.Success(c, 200, "Dashboard data retrieved", gin.H{
		"rows":  rows,
		"total": len(rows),
	})
}
