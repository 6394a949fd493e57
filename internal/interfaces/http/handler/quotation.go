package handler

import (
	"context"

	billingapp "github.com/crm/backend/internal/application/billing"
	"github.com/crm/backend/internal/domain/authz"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationHandler handles quotation API endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *billingapp.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *billingapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Create creates a new draft quotation
func (h *QuotationHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, quotation)
}

// GetByID returns a single quotation
func (h *QuotationHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quotationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.GetByID(c.Request.Context(), actor, quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotation)
}

// List returns quotations matching the filter
func (h *QuotationHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter billingapp.QuotationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotations, total, err := h.quotationService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, quotations, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Update updates a draft quotation
func (h *QuotationHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quotationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req billingapp.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotationService.Update(c.Request.Context(), actor, quotationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Submit sends a draft quotation for approval
func (h *QuotationHandler) Submit(c *gin.Context) {
	h.transition(c, h.quotationService.Submit)
}

// Approve approves a pending quotation
func (h *QuotationHandler) Approve(c *gin.Context) {
	h.transition(c, h.quotationService.Approve)
}

// Reject rejects a pending quotation
func (h *QuotationHandler) Reject(c *gin.Context) {
	h.transition(c, h.quotationService.Reject)
}

// Convert converts an approved quotation into an invoice and returns
// the created invoice
func (h *QuotationHandler) Convert(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quotationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req billingapp.ConvertQuotationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	invoice, err := h.quotationService.Convert(c.Request.Context(), actor, quotationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Delete removes a quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quotationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), actor, quotationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs a status transition endpoint that takes no body
func (h *QuotationHandler) transition(c *gin.Context, op func(ctx context.Context, actor authz.Actor, quotationID uuid.UUID) (*billingapp.QuotationResponse, error)) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quotationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := op(c.Request.Context(), actor, quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotation)
}

// RegisterRoutes registers all quotation routes
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	{
		quotations.POST("", h.Create)
		quotations.GET("", h.List)
		quotations.GET("/:id", h.GetByID)
		quotations.PATCH("/:id", h.Update)
		quotations.DELETE("/:id", h.Delete)
		quotations.POST("/:id/submit", h.Submit)
		quotations.POST("/:id/approve", h.Approve)
		quotations.POST("/:id/reject", h.Reject)
		quotations.POST("/:id/convert", h.Convert)
	}
}
