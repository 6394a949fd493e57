package handler

import (
	"context"

	billingapp "github.com/crm/backend/internal/application/billing"
	"github.com/crm/backend/internal/domain/authz"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
	paymentService *billingapp.PaymentService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService, paymentService *billingapp.PaymentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		paymentService: paymentService,
	}
}

// Create creates a new draft invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID returns a single invoice
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), actor, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List returns invoices matching the filter
func (h *InvoiceHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Update updates a draft invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), actor, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Send issues a draft invoice to the client
func (h *InvoiceHandler) Send(c *gin.Context) {
	h.transition(c, h.invoiceService.Send)
}

// Cancel cancels an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoiceService.Cancel)
}

// MarkOverdue flags a sent invoice as overdue
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	h.transition(c, h.invoiceService.MarkOverdue)
}

// ListPayments returns the payments recorded against an invoice
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), actor, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// Delete removes an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), actor, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs a status transition endpoint that takes no body
func (h *InvoiceHandler) transition(c *gin.Context, op func(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID) (*billingapp.InvoiceResponse, error)) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := op(c.Request.Context(), actor, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.PATCH("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
		invoices.POST("/:id/send", h.Send)
		invoices.POST("/:id/cancel", h.Cancel)
		invoices.POST("/:id/mark-overdue", h.MarkOverdue)
		invoices.GET("/:id/payments", h.ListPayments)
	}
}
