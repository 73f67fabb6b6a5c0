package service

import (
	"strings"
	"time"

	"github.com/mindx-ops/po-dashboard/internal/models"
)

// Filters narrows the merged dataset before analytics. Every predicate is
// optional and independent; a row that a predicate cannot evaluate (missing
// or unparseable field) is excluded rather than erroring.
type Filters struct {
	StartDate     *time.Time
	EndDate       *time.Time
	ProductType   string
	PublisherName string
}

// Apply returns the rows passing every configured predicate. Date bounds
// are inclusive; the substring matches are case-insensitive.
func (f Filters) Apply(rows []models.OrderRow) []models.OrderRow {
	out := make([]models.OrderRow, 0, len(rows))
	for _, row := range rows {
		if f.matches(row) {
			out = append(out, row)
		}
	}
	return out
}

func (f Filters) matches(row models.OrderRow) bool {
	if f.StartDate != nil || f.EndDate != nil {
		if row.CreatedAt.IsZero() {
			return false
		}
		if f.StartDate != nil && row.CreatedAt.Before(*f.StartDate) {
			return false
		}
		if f.EndDate != nil && row.CreatedAt.After(*f.EndDate) {
			return false
		}
	}
	if f.ProductType != "" && !containsFold(row.ProductType, f.ProductType) {
		return false
	}
	if f.PublisherName != "" && !containsFold(row.PublisherName, f.PublisherName) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
