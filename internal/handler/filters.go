package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindx-ops/po-dashboard/internal/service"
)

var filterDateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05"}

// parseFilters reads the shared filter query parameters. Unparseable dates
// are ignored, leaving the bound unset.
func parseFilters(c *gin.Context) service.Filters {
	var f service.Filters
	if t, ok := parseFilterDate(c.Query("start_date")); ok {
		f.StartDate = &t
	}
	if t, ok := parseFilterDate(c.Query("end_date")); ok {
		f.EndDate = &t
	}
	f.ProductType = c.Query("product_type")
	f.PublisherName = c.Query("publisher_name")
	return f
}

func parseFilterDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range filterDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
