package handler

import (
	"context"

	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/authz"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler handles service ticket API endpoints
type TicketHandler struct {
	BaseHandler
	ticketService *crmapp.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *crmapp.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create opens a new service ticket
func (h *TicketHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ticket)
}

// GetByID returns a single service ticket
func (h *TicketHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	ticket, err := h.ticketService.GetByID(c.Request.Context(), actor, ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// List returns service tickets matching the filter
func (h *TicketHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tickets, total, err := h.ticketService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, tickets, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Update updates a service ticket
func (h *TicketHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req crmapp.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.Update(c.Request.Context(), actor, ticketID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Assign assigns a ticket to an engineer
func (h *TicketHandler) Assign(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req crmapp.AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.Assign(c.Request.Context(), actor, ticketID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Start moves a ticket to in_progress
func (h *TicketHandler) Start(c *gin.Context) {
	h.transition(c, h.ticketService.Start)
}

// Resolve marks a ticket as resolved
func (h *TicketHandler) Resolve(c *gin.Context) {
	h.transition(c, h.ticketService.Resolve)
}

// Close closes a ticket
func (h *TicketHandler) Close(c *gin.Context) {
	h.transition(c, h.ticketService.Close)
}

// Delete removes a service ticket
func (h *TicketHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	if err := h.ticketService.Delete(c.Request.Context(), actor, ticketID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs a status transition endpoint that takes no body
func (h *TicketHandler) transition(c *gin.Context, op func(ctx context.Context, actor authz.Actor, ticketID uuid.UUID) (*crmapp.TicketResponse, error)) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	ticket, err := op(c.Request.Context(), actor, ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// RegisterRoutes registers all service ticket routes
func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tickets := rg.Group("/service-tickets")
	{
		tickets.POST("", h.Create)
		tickets.GET("", h.List)
		tickets.GET("/:id", h.GetByID)
		tickets.PATCH("/:id", h.Update)
		tickets.DELETE("/:id", h.Delete)
		tickets.POST("/:id/assign", h.Assign)
		tickets.POST("/:id/start", h.Start)
		tickets.POST("/:id/resolve", h.Resolve)
		tickets.POST("/:id/close", h.Close)
	}
}
