package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mindx-ops/po-dashboard/internal/models"
)

// MonthlyPoint is one bar of the monthly revenue chart: total PO value and
// PO count for a calendar month.
type MonthlyPoint struct {
	Month       string          `json:"month"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderCount  int             `json:"orderCount"`
}

// CampaignSlice is one slice of the revenue-by-product-type breakdown.
type CampaignSlice struct {
	ProductType string          `json:"productType"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// SegmentSummaryRow aggregates Monetary per RFM segment with the running
// cumulative percentage used by the Pareto chart.
type SegmentSummaryRow struct {
	Segment       string          `json:"segment"`
	Monetary      decimal.Decimal `json:"monetary"`
	CumulativePct float64         `json:"cumulativePct"`
}

// MonthlyRevenue aggregates amount sum and order count per year-month,
// sorted chronologically. Rows without a parseable date are dropped.
func MonthlyRevenue(rows []models.OrderRow) []MonthlyPoint {
	type agg struct {
		total decimal.Decimal
		count int
	}
	byMonth := make(map[string]*agg)
	for _, row := range rows {
		if row.CreatedAt.IsZero() {
			continue
		}
		month := row.CreatedAt.Format("2006-01")
		a, ok := byMonth[month]
		if !ok {
			a = &agg{total: decimal.Zero}
			byMonth[month] = a
		}
		a.total = a.total.Add(row.Amount)
		a.count++
	}

	points := make([]MonthlyPoint, 0, len(byMonth))
	for month, a := range byMonth {
		points = append(points, MonthlyPoint{Month: month, TotalAmount: a.total, OrderCount: a.count})
	}
	sort.Slice(points, func(a, b int) bool { return points[a].Month < points[b].Month })
	return points
}

// CampaignShare aggregates revenue per product type, descending, collapsing
// everything past the top eight into an "Others" slice.
func CampaignShare(rows []models.OrderRow) []CampaignSlice {
	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		totals[row.ProductType] = totals[row.ProductType].Add(row.Amount)
	}

	slices := make([]CampaignSlice, 0, len(totals))
	for pt, total := range totals {
		slices = append(slices, CampaignSlice{ProductType: pt, TotalAmount: total})
	}
	sort.Slice(slices, func(a, b int) bool {
		if !slices[a].TotalAmount.Equal(slices[b].TotalAmount) {
			return slices[a].TotalAmount.GreaterThan(slices[b].TotalAmount)
		}
		return slices[a].ProductType < slices[b].ProductType
	})

	const topN = 8
	if len(slices) > topN {
		rest := decimal.Zero
		for _, s := range slices[topN:] {
			rest = rest.Add(s.TotalAmount)
		}
		slices = slices[:topN]
		if rest.IsPositive() {
			slices = append(slices, CampaignSlice{ProductType: "Others", TotalAmount: rest})
		}
	}
	return slices
}

// SegmentSummary sums Monetary per segment, descending, with cumulative
// percentage of total revenue. Zero total yields an empty summary.
func SegmentSummary(records []models.RFMRecord) []SegmentSummaryRow {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, rec := range records {
		totals[rec.Segment] = totals[rec.Segment].Add(rec.Monetary)
		grand = grand.Add(rec.Monetary)
	}
	if grand.IsZero() {
		return nil
	}

	out := make([]SegmentSummaryRow, 0, len(totals))
	for seg, total := range totals {
		out = append(out, SegmentSummaryRow{Segment: seg, Monetary: total})
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].Monetary.Equal(out[b].Monetary) {
			return out[a].Monetary.GreaterThan(out[b].Monetary)
		}
		return out[a].Segment < out[b].Segment
	})

	cumulative := decimal.Zero
	for i := range out {
		cumulative = cumulative.Add(out[i].Monetary)
		out[i].CumulativePct, _ = cumulative.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
	}
	return out
}
