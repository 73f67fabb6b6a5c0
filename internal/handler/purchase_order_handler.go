package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindx-ops/po-dashboard/internal/repository"
	"github.com/mindx-ops/po-dashboard/internal/service"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// PurchaseOrderHandler handles PO management HTTP endpoints.
type PurchaseOrderHandler struct {
	poRepo  *repository.PurchaseOrderRepository
	dataset *service.DatasetService
}

// NewPurchaseOrderHandler constructs a PurchaseOrderHandler.
func NewPurchaseOrderHandler(poRepo *repository.PurchaseOrderRepository, dataset *service.DatasetService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poRepo: poRepo, dataset: dataset}
}

// ListPurchaseOrders handles GET /v1/pos
func (h *PurchaseOrderHandler) ListPurchaseOrders(c *gin.Context) {
	orders := h.poRepo.List(c.Request.Context())
	utils.Success(c, 200, "Purchase orders retrieved", gin.H{
		"purchaseOrders": orders,
		"total":          len(orders),
	})
}

// CreatePurchaseOrder handles POST /v1/pos
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *gin.Context) {
	var req repository.CreatePurchaseOrderParams
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	po, err := h.poRepo.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrPublisherNotFound):
			utils.Error(c, 400, "PUBLISHER_NOT_FOUND", fmt.Sprintf("Publisher %d not found", req.PublisherID))
		case errors.Is(err, utils.ErrInvalidAmount):
			utils.Error(c, 400, "INVALID_AMOUNT", "Amounts must be >= 0")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create purchase order")
		}
		return
	}

	h.dataset.InvalidateCache(c.Request.Context())
	utils.Success(c, 201, fmt.Sprintf("Purchase order %s created", po.Code), po)
}

// UpdatePurchaseOrder handles PUT /v1/pos/:id
func (h *PurchaseOrderHandler) UpdatePurchaseOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid PO ID")
		return
	}

	var req repository.UpdatePurchaseOrderParams
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.poRepo.Update(c.Request.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.Error(c, 404, "PO_NOT_FOUND", fmt.Sprintf("Purchase order %d not found", id))
		case errors.Is(err, utils.ErrInvalidAmount):
			utils.Error(c, 400, "INVALID_AMOUNT", "Amounts must be >= 0")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update purchase order")
		}
		return
	}

	h.dataset.InvalidateCache(c.Request.Context())
	utils.Success(c, 200, fmt.Sprintf("Purchase order %d updated", id), nil)
}
