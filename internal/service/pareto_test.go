package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindx-ops/po-dashboard/internal/models"
)

func TestTopRevenueContributionParetoCut(t *testing.T) {
	// Revenues 60/30/10: at threshold 0.8 the cumulative share crosses 80%
	// with the second publisher (90%), dropping the third.
	rows := []models.OrderRow{
		orderRow(1, 1, 60, "2024-01-01"),
		orderRow(2, 2, 30, "2024-01-02"),
		orderRow(3, 3, 10, "2024-01-03"),
	}

	kept := TopRevenueContribution(rows, 0.8)
	require.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].PublisherID)
	assert.Equal(t, 2, kept[1].PublisherID)
}

func TestTopRevenueContributionKeepsAllRowsOfKeptPublishers(t *testing.T) {
	rows := []models.OrderRow{
		orderRow(1, 1, 40, "2024-01-01"),
		orderRow(2, 2, 30, "2024-01-02"),
		orderRow(1, 3, 20, "2024-01-03"),
		orderRow(3, 4, 10, "2024-01-04"),
	}

	// Publisher 1 totals 60: its threshold prefix is publisher 1 alone.
	kept := TopRevenueContribution(rows, 0.5)
	require.Len(t, kept, 2)
	for _, row := range kept {
		assert.Equal(t, 1, row.PublisherID)
	}
	// Input order is preserved.
	assert.Equal(t, 1, kept[0].POID)
	assert.Equal(t, 3, kept[1].POID)
}

func TestTopRevenueContributionThresholdOneKeepsAll(t *testing.T) {
	rows := []models.OrderRow{
		orderRow(1, 1, 60, "2024-01-01"),
		orderRow(2, 2, 30, "2024-01-02"),
		orderRow(3, 3, 10, "2024-01-03"),
	}

	kept := TopRevenueContribution(rows, 1.0)
	assert.Len(t, kept, 3)
}

func TestTopRevenueContributionZeroRevenue(t *testing.T) {
	rows := []models.OrderRow{
		orderRow(1, 1, 0, "2024-01-01"),
		orderRow(2, 2, 0, "2024-01-02"),
	}

	assert.Empty(t, TopRevenueContribution(rows, 0.8))
	assert.Empty(t, TopRevenueContribution(nil, 0.8))
}

func TestTopRevenueContributionTieBreaksByID(t *testing.T) {
	rows := []models.OrderRow{
		orderRow(2, 1, 50, "2024-01-01"),
		orderRow(1, 2, 50, "2024-01-02"),
	}

	// Equal totals rank by publisher id, so the 50% threshold keeps only
	// publisher 1.
	kept := TopRevenueContribution(rows, 0.5)
	require.Len(t, kept, 1)
	assert.Equal(t, 1, kept[0].PublisherID)
}
