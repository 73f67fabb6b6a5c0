package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mindx-ops/po-dashboard/internal/service"
)

// RefreshWorker periodically rebuilds the merged dashboard dataset and
// warms the cache so interactive requests rarely hit the sheets directly.
type RefreshWorker struct {
	dataset  *service.DatasetService
	interval time.Duration
}

// NewRefreshWorker constructs a RefreshWorker.
func NewRefreshWorker(dataset *service.DatasetService, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		dataset:  dataset,
		interval: interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting dataset refresh worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Dataset refresh worker stopped")
			return
		}
	}
}

func (w *RefreshWorker) run(ctx context.Context) {
	start := time.Now()
	rows, err := w.dataset.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh dataset cache")
		return
	}
	log.Info().Int("rows", len(rows)).Dur("duration", time.Since(start)).Msg("Dataset refresh completed")
}
