package repository

import (
	"context"
	"fmt"

	"github.com/mindx-ops/po-dashboard/internal/models"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// PublisherRepository provides data access for publisher (legal entity)
// records stored in the publisher table.
type PublisherRepository struct {
	store *RecordStore
	table string
}

// NewPublisherRepository creates a new PublisherRepository.
func NewPublisherRepository(store *RecordStore, table string) *PublisherRepository {
	return &PublisherRepository{store: store, table: table}
}

// UpdatePublisherParams holds the optional fields of a partial update.
// Nil fields keep their current sheet values. The ID is immutable.
type UpdatePublisherParams struct {
	Code       *string `json:"publisherCode"`
	Name       *string `json:"publisherName"`
	Type       *string `json:"publisherType"`
	ClientCode *string `json:"clientCode"`
}

// List retrieves all publishers.
func (r *PublisherRepository) List(ctx context.Context) []models.Publisher {
	records := r.store.FetchAll(ctx, r.table)
	publishers := make([]models.Publisher, 0, len(records))
	for _, rec := range records {
		publishers = append(publishers, parsePublisher(rec))
	}
	return publishers
}

// GetByID finds a publisher by id.
func (r *PublisherRepository) GetByID(ctx context.Context, id int) (*models.Publisher, error) {
	for _, rec := range r.store.FetchAll(ctx, r.table) {
		if v, ok := numericValue(rec[models.ColPublisherID]); ok && int(v) == id {
			p := parsePublisher(rec)
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: publisher %d", utils.ErrNotFound, id)
}

// Create allocates the next id and appends the publisher. A non-empty code
// must be unique across existing rows (exact string match). The whole
// check-allocate-append sequence runs under the store lock.
func (r *PublisherRepository) Create(ctx context.Context, p *models.Publisher) error {
	return r.store.Locked(func() error {
		records := r.store.FetchAll(ctx, r.table)

		if p.Code != "" {
			for _, rec := range records {
				if rec[models.ColPublisherCode] == p.Code {
					return fmt.Errorf("%w: publisher code %q already exists", utils.ErrDuplicateCode, p.Code)
				}
			}
		}

		p.ID = NextID(records, models.ColPublisherID)
		return r.store.Append(ctx, r.table, []any{
			p.ID,
			p.Code,
			p.Name,
			p.Type,
			p.ClientCode,
		})
	})
}

// Update applies a partial update to the publisher with the given id.
// Unsupplied fields keep their previous values.
func (r *PublisherRepository) Update(ctx context.Context, id int, params *UpdatePublisherParams) error {
	fields := make(map[string]any)
	if params.Code != nil {
		fields[models.ColPublisherCode] = *params.Code
	}
	if params.Name != nil {
		fields[models.ColPublisherName] = *params.Name
	}
	if params.Type != nil {
		fields[models.ColPublisherType] = *params.Type
	}
	if params.ClientCode != nil {
		fields[models.ColClientCode] = *params.ClientCode
	}
	return r.store.UpdateByID(ctx, r.table, models.ColPublisherID, id, fields)
}
