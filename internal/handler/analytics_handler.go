package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindx-ops/po-dashboard/internal/service"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// AnalyticsHandler serves the aggregated analytics endpoints. Absent data
// is a normal 200 with an empty result and an explanatory message, never
// an error.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetRFM handles GET /v1/analytics/rfm. top_contribution (0 < t <= 1)
// optionally restricts scoring to the publishers covering that share of
// revenue.
func (h *AnalyticsHandler) GetRFM(c *gin.Context) {
	topContribution := 0.0
	if raw := c.Query("top_contribution"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil || t <= 0 || t > 1 {
			utils.Error(c, 400, "INVALID_THRESHOLD", "top_contribution must be in (0, 1]")
			return
		}
		topContribution = t
	}

	records, err := h.analytics.RFM(c.Request.Context(), parseFilters(c), topContribution)
	if err != nil {
		utils.Error(c, 500, "COMPUTATION_FAILED", "RFM scoring could not resolve")
		return
	}
	if len(records) == 0 {
		utils.Success(c, 200, "No valid PO data after filtering", []any{})
		return
	}
	utils.Success(c, 200, "RFM data ready", records)
}

// GetMonthly handles GET /v1/analytics/monthly
func (h *AnalyticsHandler) GetMonthly(c *gin.Context) {
	points := h.analytics.Monthly(c.Request.Context(), parseFilters(c))
	if len(points) == 0 {
		utils.Success(c, 200, "No data after filtering", []any{})
		return
	}
	utils.Success(c, 200, "Monthly revenue retrieved", points)
}

// GetCampaign handles GET /v1/analytics/campaign
func (h *AnalyticsHandler) GetCampaign(c *gin.Context) {
	slices := h.analytics.Campaign(c.Request.Context(), parseFilters(c))
	if len(slices) == 0 {
		utils.Success(c, 200, "No data after filtering", []any{})
		return
	}
	utils.Success(c, 200, "Campaign share retrieved", slices)
}

// GetSegments handles GET /v1/analytics/segments
func (h *AnalyticsHandler) GetSegments(c *gin.Context) {
	summary, err := h.analytics.Segments(c.Request.Context(), parseFilters(c))
	if err != nil {
		utils.Error(c, 500, "COMPUTATION_FAILED", "RFM scoring could not resolve")
		return
	}
	if len(summary) == 0 {
		utils.Success(c, 200, "No revenue after filtering", []any{})
		return
	}
	utils.Success(c, 200, "Segment summary retrieved", summary)
}
