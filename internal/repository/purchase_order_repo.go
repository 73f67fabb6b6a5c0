package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mindx-ops/po-dashboard/internal/models"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// PurchaseOrderRepository provides data access for PO rows. PO codes and
// creation timestamps are derived once at creation time from the injected
// clock and never rewritten.
type PurchaseOrderRepository struct {
	store      *RecordStore
	publishers *PublisherRepository
	table      string
	now        func() time.Time
}

// NewPurchaseOrderRepository creates a new PurchaseOrderRepository.
func NewPurchaseOrderRepository(store *RecordStore, publishers *PublisherRepository, table string) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		store:      store,
		publishers: publishers,
		table:      table,
		now:        time.Now,
	}
}

// CreatePurchaseOrderParams holds the client-supplied fields of a new PO.
// AvailableAmount is an independent value; it is not derived from Amount.
type CreatePurchaseOrderParams struct {
	PublisherID     int             `json:"publisherId" binding:"required"`
	Amount          decimal.Decimal `json:"poAmount"`
	AvailableAmount decimal.Decimal `json:"poAvailableAmount"`
	Status          string          `json:"poStatus"`
	ProductType     string          `json:"productType"`
	POType          string          `json:"poType"`
}

// UpdatePurchaseOrderParams holds the optional fields of a partial update.
// ID, publisher, code and creation time are immutable and cannot appear here.
type UpdatePurchaseOrderParams struct {
	Amount          *decimal.Decimal `json:"poAmount"`
	AvailableAmount *decimal.Decimal `json:"poAvailableAmount"`
	Status          *string          `json:"poStatus"`
	ProductType     *string          `json:"productType"`
	POType          *string          `json:"poType"`
}

// List retrieves all purchase orders.
func (r *PurchaseOrderRepository) List(ctx context.Context) []models.PurchaseOrder {
	records := r.store.FetchAll(ctx, r.table)
	orders := make([]models.PurchaseOrder, 0, len(records))
	for _, rec := range records {
		orders = append(orders, parsePurchaseOrder(rec))
	}
	return orders
}

// Create validates the referenced publisher, allocates the next po_id,
// derives po_code as {client_code}_001_{yymmdd} and appends the row. The
// whole sequence runs under the store lock.
func (r *PurchaseOrderRepository) Create(ctx context.Context, params *CreatePurchaseOrderParams) (*models.PurchaseOrder, error) {
	if params.Amount.IsNegative() || params.AvailableAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must be >= 0", utils.ErrInvalidAmount)
	}

	var po models.PurchaseOrder
	err := r.store.Locked(func() error {
		publisher, err := r.publishers.GetByID(ctx, params.PublisherID)
		if err != nil {
			return fmt.Errorf("%w: id %d", utils.ErrPublisherNotFound, params.PublisherID)
		}

		records := r.store.FetchAll(ctx, r.table)
		now := r.now()

		po = models.PurchaseOrder{
			ID:              NextID(records, models.ColPOID),
			PublisherID:     publisher.ID,
			Code:            fmt.Sprintf("%s_001_%s", publisher.ClientCode, now.Format("060102")),
			Amount:          params.Amount,
			AvailableAmount: params.AvailableAmount,
			CreatedAt:       now,
			Status:          params.Status,
			ProductType:     params.ProductType,
			POType:          params.POType,
		}

		return r.store.Append(ctx, r.table, []any{
			po.PublisherID,
			po.ID,
			po.Code,
			po.Amount.String(),
			po.AvailableAmount.String(),
			po.CreatedAt.Format(models.CreatedAtLayout),
			po.Status,
			po.ProductType,
			po.POType,
		})
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Update applies a partial update to the PO with the given id. Immutable
// columns (po_id, publisher_id, po_code, po_created_at) are never touched;
// unsupplied fields keep their previous values.
func (r *PurchaseOrderRepository) Update(ctx context.Context, id int, params *UpdatePurchaseOrderParams) error {
	fields := make(map[string]any)
	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return fmt.Errorf("%w: po_amount must be >= 0", utils.ErrInvalidAmount)
		}
		fields[models.ColPOAmount] = params.Amount.String()
	}
	if params.AvailableAmount != nil {
		if params.AvailableAmount.IsNegative() {
			return fmt.Errorf("%w: po_available_amount must be >= 0", utils.ErrInvalidAmount)
		}
		fields[models.ColPOAvailable] = params.AvailableAmount.String()
	}
	if params.Status != nil {
		fields[models.ColPOStatus] = *params.Status
	}
	if params.ProductType != nil {
		fields[models.ColPOProductType] = *params.ProductType
	}
	if params.POType != nil {
		fields[models.ColPOType] = *params.POType
	}
	return r.store.UpdateByID(ctx, r.table, models.ColPOID, id, fields)
}
