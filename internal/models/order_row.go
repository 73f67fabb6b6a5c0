package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRow is one row of the merged dashboard dataset: a purchase order
// left-joined with its publisher. CreatedAt is zero when the sheet value
// could not be parsed.
type OrderRow struct {
	POID          int             `json:"poId"`
	POCode        string          `json:"poCode"`
	PublisherID   int             `json:"publisherId"`
	PublisherName string          `json:"publisherName"`
	Amount        decimal.Decimal `json:"poAmount"`
	CreatedAt     time.Time       `json:"poCreatedAt"`
	Status        string          `json:"poStatus"`
	ProductType   string          `json:"productType"`
	POType        string          `json:"poType"`
}
