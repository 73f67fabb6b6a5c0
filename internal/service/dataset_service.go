package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mindx-ops/po-dashboard/internal/cache"
	"github.com/mindx-ops/po-dashboard/internal/models"
	"github.com/mindx-ops/po-dashboard/internal/repository"
)

// DatasetService builds the merged dashboard dataset: every PO row
// left-joined with its publisher. The result feeds the filter pipeline and
// the analytics engines.
type DatasetService struct {
	publisherRepo *repository.PublisherRepository
	poRepo        *repository.PurchaseOrderRepository
	cache         *cache.DatasetCache // optional; nil disables caching
}

// NewDatasetService constructs a DatasetService. cache may be nil.
func NewDatasetService(publisherRepo *repository.PublisherRepository, poRepo *repository.PurchaseOrderRepository, datasetCache *cache.DatasetCache) *DatasetService {
	return &DatasetService{
		publisherRepo: publisherRepo,
		poRepo:        poRepo,
		cache:         datasetCache,
	}
}

// FetchDataset returns the merged dataset, served from cache when fresh.
// An empty dataset is a normal result, not an error.
func (s *DatasetService) FetchDataset(ctx context.Context) []models.OrderRow {
	if s.cache != nil {
		if rows, err := s.cache.Get(ctx); err == nil {
			return rows
		}
	}

	rows := s.buildDataset(ctx)

	if s.cache != nil && len(rows) > 0 {
		if err := s.cache.Set(ctx, rows); err != nil {
			log.Warn().Err(err).Msg("Failed to cache dataset")
		}
	}
	return rows
}

// Refresh rebuilds the dataset from the sheets and stores it in the cache,
// bypassing any cached copy. Used by the refresh worker.
func (s *DatasetService) Refresh(ctx context.Context) ([]models.OrderRow, error) {
	rows := s.buildDataset(ctx)
	if s.cache != nil {
		if err := s.cache.Set(ctx, rows); err != nil {
			return rows, err
		}
	}
	return rows, nil
}

// InvalidateCache drops the cached dataset after a write.
func (s *DatasetService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate dataset cache")
	}
}

func (s *DatasetService) buildDataset(ctx context.Context) []models.OrderRow {
	orders := s.poRepo.List(ctx)
	if len(orders) == 0 {
		return nil
	}

	publishers := make(map[int]models.Publisher)
	for _, p := range s.publisherRepo.List(ctx) {
		publishers[p.ID] = p
	}

	rows := make([]models.OrderRow, 0, len(orders))
	for _, po := range orders {
		row := models.OrderRow{
			POID:        po.ID,
			POCode:      po.Code,
			PublisherID: po.PublisherID,
			Amount:      po.Amount,
			CreatedAt:   po.CreatedAt,
			Status:      po.Status,
			ProductType: po.ProductType,
			POType:      po.POType,
		}
		if p, ok := publishers[po.PublisherID]; ok {
			row.PublisherName = p.Name
		}
		rows = append(rows, row)
	}
	return rows
}
