package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mindx-ops/po-dashboard/internal/models"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// ComputeRFM derives Recency/Frequency/Monetary metrics, quintile scores
// and a segment label per publisher from order rows. Rows with amount <= 0
// or without a publisher are excluded up front. now is the reference point
// for recency; only its date part is used. An empty input yields an empty
// result, not an error.
func ComputeRFM(rows []models.OrderRow, now time.Time) ([]models.RFMRecord, error) {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type group struct {
		lastOrder time.Time
		orderIDs  map[int]struct{}
		monetary  decimal.Decimal
	}
	groups := make(map[int]*group)
	for _, row := range rows {
		if !row.Amount.IsPositive() || row.PublisherID == 0 {
			continue
		}
		g, ok := groups[row.PublisherID]
		if !ok {
			g = &group{orderIDs: make(map[int]struct{}), monetary: decimal.Zero}
			groups[row.PublisherID] = g
		}
		if !row.CreatedAt.IsZero() && row.CreatedAt.After(g.lastOrder) {
			g.lastOrder = row.CreatedAt
		}
		g.orderIDs[row.POID] = struct{}{}
		g.monetary = g.monetary.Add(row.Amount)
	}
	if len(groups) == 0 {
		return nil, nil
	}

	keys := make([]int, 0, len(groups))
	for id := range groups {
		keys = append(keys, id)
	}
	sort.Ints(keys)

	records := make([]models.RFMRecord, len(keys))
	for i, id := range keys {
		g := groups[id]
		rec := models.RFMRecord{
			PublisherID: id,
			Frequency:   len(g.orderIDs),
			Monetary:    g.monetary,
		}
		if !g.lastOrder.IsZero() {
			days := int(math.Floor(nowDate.Sub(g.lastOrder).Hours() / 24))
			rec.Recency = &days
		}
		records[i] = rec
	}

	if err := scoreRecords(records); err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Segment = classify(records[i])
	}
	return records, nil
}

// scoreRecords fills RScore/FScore/MScore in place. Recency is inverted
// (most recent = 5); frequency and monetary are direct.
func scoreRecords(records []models.RFMRecord) error {
	// Recency: score only records that have one.
	var rValues []float64
	var rIndex []int
	for i, rec := range records {
		if rec.Recency != nil {
			rValues = append(rValues, float64(*rec.Recency))
			rIndex = append(rIndex, i)
		}
	}
	for pos, score := range scoreDimension(rValues, false) {
		records[rIndex[pos]].RScore = score
	}

	fValues := make([]float64, len(records))
	mValues := make([]float64, len(records))
	for i, rec := range records {
		fValues[i] = float64(rec.Frequency)
		mValues[i] = rec.Monetary.InexactFloat64()
	}
	for i, score := range scoreDimension(fValues, true) {
		records[i].FScore = score
	}
	for i, score := range scoreDimension(mValues, true) {
		records[i].MScore = score
	}

	// The fallback guarantees a score for every value; a zero here means the
	// scoring could not resolve and must surface, not silently pass through.
	for i, rec := range records {
		if rec.FScore < 1 || rec.MScore < 1 || (rec.Recency != nil && rec.RScore < 1) {
			return fmt.Errorf("%w: unscored RFM row for publisher %d", utils.ErrComputation, records[i].PublisherID)
		}
	}
	return nil
}

// scoreDimension buckets values into quintile scores 1..5. The quantile
// partition is used when it yields five distinct buckets; otherwise the
// ordinal-rank fallback maps every value onto 1..5, so no value is ever
// left unscored. ascending=false inverts the scale (smallest value = 5).
func scoreDimension(values []float64, ascending bool) []int {
	n := len(values)
	if n == 0 {
		return nil
	}

	edges, ok := quintileEdges(values)
	scores := make([]int, n)
	if ok {
		for i, v := range values {
			bucket := 0
			for b := 1; b < 5; b++ {
				if v > edges[b] {
					bucket = b
				}
			}
			if ascending {
				scores[i] = bucket + 1
			} else {
				scores[i] = 5 - bucket
			}
		}
		return scores
	}

	// Rank fallback: ordinal rank (ties broken by original order) mapped
	// linearly onto 1..5 via clamp(1, 5, floor(rank/n*5)+1).
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if ascending {
			return values[order[a]] < values[order[b]]
		}
		return values[order[a]] > values[order[b]]
	})
	for pos, idx := range order {
		rank := pos + 1
		score := int(float64(rank)/float64(n)*5) + 1
		if score < 1 {
			score = 1
		}
		if score > 5 {
			score = 5
		}
		scores[idx] = score
	}
	return scores
}

// quintileEdges computes the 6 quantile boundaries (0%, 20%, ..., 100%)
// with linear interpolation. ok is false when the boundaries are not all
// distinct, i.e. the partition cannot produce 5 buckets.
func quintileEdges(values []float64) ([6]float64, bool) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var edges [6]float64
	for i := 0; i <= 5; i++ {
		edges[i] = quantile(sorted, float64(i)/5)
	}
	for i := 1; i <= 5; i++ {
		if !(edges[i] > edges[i-1]) {
			return edges, false
		}
	}
	return edges, true
}

// quantile returns the p-quantile of sorted values by linear interpolation.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// classify assigns the segment by score thresholds in priority order.
// Records without a recency score fail every recency condition.
func classify(rec models.RFMRecord) string {
	hasR := rec.Recency != nil && rec.RScore >= 1
	r, f, m := rec.RScore, rec.FScore, rec.MScore
	switch {
	case hasR && r >= 4 && f >= 4 && m >= 4:
		return models.SegmentChampion
	case hasR && r >= 4 && f >= 3:
		return models.SegmentLoyal
	case hasR && r >= 3 && m >= 3:
		return models.SegmentPotential
	case hasR && r <= 2 && f <= 2:
		return models.SegmentAtRisk
	default:
		return models.SegmentOthers
	}
}
