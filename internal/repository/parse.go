package repository

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mindx-ops/po-dashboard/internal/models"
)

// Timestamp layouts accepted when parsing sheet cells. Cells are free text,
// so dates arrive in whatever shape the last writer used.
var createdAtLayouts = []string{
	models.CreatedAtLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseIntCell(s string) int {
	v, ok := numericValue(s)
	if !ok {
		return 0
	}
	return int(v)
}

// parseDecimalCell parses a money cell, stripping thousands separators.
// Unparseable cells become zero, matching the dashboard's fillna behavior.
func parseDecimalCell(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseTimeCell parses a timestamp cell, returning the zero time when no
// layout matches.
func parseTimeCell(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parsePublisher(rec Record) models.Publisher {
	return models.Publisher{
		ID:         parseIntCell(rec[models.ColPublisherID]),
		Code:       rec[models.ColPublisherCode],
		Name:       rec[models.ColPublisherName],
		Type:       rec[models.ColPublisherType],
		ClientCode: rec[models.ColClientCode],
	}
}

func parsePurchaseOrder(rec Record) models.PurchaseOrder {
	return models.PurchaseOrder{
		ID:              parseIntCell(rec[models.ColPOID]),
		PublisherID:     parseIntCell(rec[models.ColPOPublisherID]),
		Code:            rec[models.ColPOCode],
		Amount:          parseDecimalCell(rec[models.ColPOAmount]),
		AvailableAmount: parseDecimalCell(rec[models.ColPOAvailable]),
		CreatedAt:       parseTimeCell(rec[models.ColPOCreatedAt]),
		Status:          rec[models.ColPOStatus],
		ProductType:     rec[models.ColPOProductType],
		POType:          rec[models.ColPOType],
	}
}
