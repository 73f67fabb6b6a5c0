package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindx-ops/po-dashboard/internal/models"
	"github.com/mindx-ops/po-dashboard/internal/repository"
	"github.com/mindx-ops/po-dashboard/internal/service"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

// PublisherHandler handles publisher management HTTP endpoints.
type PublisherHandler struct {
	publisherRepo *repository.PublisherRepository
	dataset       *service.DatasetService
}

// NewPublisherHandler constructs a PublisherHandler.
func NewPublisherHandler(publisherRepo *repository.PublisherRepository, dataset *service.DatasetService) *PublisherHandler {
	return &PublisherHandler{publisherRepo: publisherRepo, dataset: dataset}
}

// CreatePublisherRequest represents the request to create a publisher.
type CreatePublisherRequest struct {
	Code       string `json:"publisherCode"`
	Name       string `json:"publisherName" binding:"required"`
	Type       string `json:"publisherType"`
	ClientCode string `json:"clientCode"`
}

// ListPublishers handles GET /v1/publishers
func (h *PublisherHandler) ListPublishers(c *gin.Context) {
	publishers := h.publisherRepo.List(c.Request.Context())
	utils.Success(c, 200, "Publishers retrieved", gin.H{
		"publishers": publishers,
		"total":      len(publishers),
	})
}

// CreatePublisher handles POST /v1/publishers
func (h *PublisherHandler) CreatePublisher(c *gin.Context) {
	var req CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	publisher := &models.Publisher{
		Code:       req.Code,
		Name:       req.Name,
		Type:       req.Type,
		ClientCode: req.ClientCode,
	}
	if err := h.publisherRepo.Create(c.Request.Context(), publisher); err != nil {
		if errors.Is(err, utils.ErrDuplicateCode) {
			utils.Error(c, 400, "DUPLICATE_CODE", fmt.Sprintf("Publisher code %q already exists", req.Code))
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create publisher")
		return
	}

	h.dataset.InvalidateCache(c.Request.Context())
	utils.Success(c, 201, fmt.Sprintf("Publisher %q created", publisher.Name), publisher)
}

// UpdatePublisher handles PUT /v1/publishers/:id
func (h *PublisherHandler) UpdatePublisher(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid publisher ID")
		return
	}

	var req repository.UpdatePublisherParams
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.publisherRepo.Update(c.Request.Context(), id, &req); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "PUBLISHER_NOT_FOUND", fmt.Sprintf("Publisher %d not found", id))
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update publisher")
		return
	}

	h.dataset.InvalidateCache(c.Request.Context())
	utils.Success(c, 200, fmt.Sprintf("Publisher %d updated", id), nil)
}
