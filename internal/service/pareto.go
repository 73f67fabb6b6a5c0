package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mindx-ops/po-dashboard/internal/models"
)

// TopRevenueContribution keeps only the rows of the publishers whose
// cumulative revenue share reaches threshold (0 < threshold <= 1): totals
// per publisher, sorted descending, accumulated until the first publisher
// at or past the threshold, inclusive. Zero total revenue yields an empty
// dataset.
func TopRevenueContribution(rows []models.OrderRow, threshold float64) []models.OrderRow {
	if len(rows) == 0 {
		return nil
	}

	totals := make(map[int]decimal.Decimal)
	for _, row := range rows {
		totals[row.PublisherID] = totals[row.PublisherID].Add(row.Amount)
	}

	type entry struct {
		id    int
		total decimal.Decimal
	}
	entries := make([]entry, 0, len(totals))
	grand := decimal.Zero
	for id, total := range totals {
		entries = append(entries, entry{id: id, total: total})
		grand = grand.Add(total)
	}
	if grand.IsZero() {
		return nil
	}

	sort.Slice(entries, func(a, b int) bool {
		if !entries[a].total.Equal(entries[b].total) {
			return entries[a].total.GreaterThan(entries[b].total)
		}
		return entries[a].id < entries[b].id
	})

	limit := decimal.NewFromFloat(threshold)
	keep := make(map[int]struct{}, len(entries))
	cumulative := decimal.Zero
	for _, e := range entries {
		keep[e.id] = struct{}{}
		cumulative = cumulative.Add(e.total)
		if cumulative.Div(grand).GreaterThanOrEqual(limit) {
			break
		}
	}

	out := make([]models.OrderRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := keep[row.PublisherID]; ok {
			out = append(out, row)
		}
	}
	return out
}
