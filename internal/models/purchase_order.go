package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder represents one PO row. Code and CreatedAt are derived once
// at creation and never regenerated on update. AvailableAmount is an
// independently settable value, not derived from Amount minus consumption.
type PurchaseOrder struct {
	ID              int             `json:"poId"`
	PublisherID     int             `json:"publisherId"`
	Code            string          `json:"poCode"`
	Amount          decimal.Decimal `json:"poAmount"`
	AvailableAmount decimal.Decimal `json:"poAvailableAmount"`
	CreatedAt       time.Time       `json:"poCreatedAt"`
	Status          string          `json:"poStatus"`
	ProductType     string          `json:"productType"`
	POType          string          `json:"poType"`
}

// PO sheet column names, in physical order.
const (
	ColPOPublisherID  = "publisher_id"
	ColPOID           = "po_id"
	ColPOCode         = "po_code"
	ColPOAmount       = "po_amount"
	ColPOAvailable    = "po_available_amount"
	ColPOCreatedAt    = "po_created_at"
	ColPOStatus       = "po_status"
	ColPOProductType  = "product_type"
	ColPOType         = "po_type"
)

// CreatedAtLayout is the timestamp format written to and parsed from the sheet.
const CreatedAtLayout = "2006-01-02 15:04:05"
