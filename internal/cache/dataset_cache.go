package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindx-ops/po-dashboard/internal/models"
)

const datasetKey = "dashboard:dataset"

// DatasetCache holds the merged dashboard dataset so that every analytics
// request does not re-read both sheets end to end.
type DatasetCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewDatasetCache creates a new DatasetCache.
func NewDatasetCache(redis *RedisClient, ttl time.Duration) *DatasetCache {
	return &DatasetCache{redis: redis, ttl: ttl}
}

// Set stores the merged dataset with the configured TTL.
func (c *DatasetCache) Set(ctx context.Context, rows []models.OrderRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	return c.redis.Set(ctx, datasetKey, string(data), c.ttl)
}

// Get retrieves the cached dataset. A cache miss returns an error from the
// underlying client; callers fall back to the sheets.
func (c *DatasetCache) Get(ctx context.Context) ([]models.OrderRow, error) {
	data, err := c.redis.Get(ctx, datasetKey)
	if err != nil {
		return nil, err
	}
	var rows []models.OrderRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}
	return rows, nil
}

// Invalidate drops the cached dataset. Called after every successful
// create or update so reads never serve stale rows for the full TTL.
func (c *DatasetCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, datasetKey)
}
