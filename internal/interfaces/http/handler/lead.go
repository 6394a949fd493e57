package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// LeadHandler handles lead API endpoints
type LeadHandler struct {
	BaseHandler
	leadService *crmapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *crmapp.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create creates a new lead
func (h *LeadHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lead)
}

// GetByID returns a single lead
func (h *LeadHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), actor, leadID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// List returns leads matching the filter
func (h *LeadHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.LeadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	leads, total, err := h.leadService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, leads, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Update updates a lead
func (h *LeadHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req crmapp.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), actor, leadID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// Delete removes a lead
func (h *LeadHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), actor, leadID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all lead routes
func (h *LeadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leads := rg.Group("/leads")
	{
		leads.POST("", h.Create)
		leads.GET("", h.List)
		leads.GET("/:id", h.GetByID)
		leads.PATCH("/:id", h.Update)
		leads.DELETE("/:id", h.Delete)
	}
}
