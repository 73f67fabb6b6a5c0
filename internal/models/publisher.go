package models

// Publisher represents a legal entity that purchase orders are booked
// against. The ID is allocated by the store and immutable afterwards.
type Publisher struct {
	ID         int    `json:"publisherId"`
	Code       string `json:"publisherCode"`
	Name       string `json:"publisherName"`
	Type       string `json:"publisherType"`
	ClientCode string `json:"clientCode"`
}

// Publisher sheet column names, in physical order.
const (
	ColPublisherID   = "publisher_id"
	ColPublisherCode = "publisher_code"
	ColPublisherName = "publisher_name"
	ColPublisherType = "publisher_type"
	ColClientCode    = "client_code"
)
