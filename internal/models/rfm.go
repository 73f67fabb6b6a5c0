package models

import "github.com/shopspring/decimal"

// Customer segment labels, in classification priority order.
const (
	SegmentChampion  = "Champion"
	SegmentLoyal     = "Loyal"
	SegmentPotential = "Potential"
	SegmentAtRisk    = "At risk"
	SegmentOthers    = "Others"
)

// RFMRecord is the derived Recency/Frequency/Monetary result for a single
// publisher. Recency is nil when the publisher has no dated orders; its
// score then stays 0 and all recency comparisons classify as false.
type RFMRecord struct {
	PublisherID   int             `json:"publisherId"`
	PublisherName string          `json:"publisherName,omitempty"`
	Recency       *int            `json:"recency"`
	Frequency     int             `json:"frequency"`
	Monetary      decimal.Decimal `json:"monetary"`
	RScore        int             `json:"rScore"`
	FScore        int             `json:"fScore"`
	MScore        int             `json:"mScore"`
	Segment       string          `json:"segment"`
}
