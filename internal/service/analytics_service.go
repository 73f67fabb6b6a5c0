package service

import (
	"context"
	"sort"
	"time"

	"github.com/mindx-ops/po-dashboard/internal/models"
)

// AnalyticsService runs the analytics pipeline: fetch the merged dataset,
// narrow it through the filters, optionally apply the revenue-contribution
// pre-filter, then aggregate.
type AnalyticsService struct {
	dataset *DatasetService
	now     func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(dataset *DatasetService) *AnalyticsService {
	return &AnalyticsService{dataset: dataset, now: time.Now}
}

// RFM computes the segmentation table for the filtered dataset. When
// topContribution is in (0, 1], only publishers inside that cumulative
// revenue share are scored. Output is sorted by Monetary, then R, F, M
// scores, all descending.
func (s *AnalyticsService) RFM(ctx context.Context, f Filters, topContribution float64) ([]models.RFMRecord, error) {
	rows := f.Apply(s.dataset.FetchDataset(ctx))
	if topContribution > 0 && topContribution <= 1 {
		rows = TopRevenueContribution(rows, topContribution)
	}

	records, err := ComputeRFM(rows, s.now())
	if err != nil {
		return nil, err
	}

	names := make(map[int]string)
	for _, row := range rows {
		if row.PublisherName != "" {
			names[row.PublisherID] = row.PublisherName
		}
	}
	for i := range records {
		records[i].PublisherName = names[records[i].PublisherID]
	}

	sort.Slice(records, func(a, b int) bool {
		ra, rb := records[a], records[b]
		if !ra.Monetary.Equal(rb.Monetary) {
			return ra.Monetary.GreaterThan(rb.Monetary)
		}
		if ra.RScore != rb.RScore {
			return ra.RScore > rb.RScore
		}
		if ra.FScore != rb.FScore {
			return ra.FScore > rb.FScore
		}
		return ra.MScore > rb.MScore
	})
	return records, nil
}

// Monthly returns the per-month revenue and order-count series for the
// filtered dataset.
func (s *AnalyticsService) Monthly(ctx context.Context, f Filters) []MonthlyPoint {
	return MonthlyRevenue(f.Apply(s.dataset.FetchDataset(ctx)))
}

// Campaign returns the revenue share per product type for the filtered
// dataset.
func (s *AnalyticsService) Campaign(ctx context.Context, f Filters) []CampaignSlice {
	return CampaignShare(f.Apply(s.dataset.FetchDataset(ctx)))
}

// Segments returns per-segment revenue with cumulative percentages for the
// filtered dataset.
func (s *AnalyticsService) Segments(ctx context.Context, f Filters) ([]SegmentSummaryRow, error) {
	records, err := s.RFM(ctx, f, 0)
	if err != nil {
		return nil, err
	}
	return SegmentSummary(records), nil
}
