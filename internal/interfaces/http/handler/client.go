package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *crmapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *crmapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// GetByID returns a single client
func (h *ClientHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), actor, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// List returns clients matching the filter
func (h *ClientHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clients, total, err := h.clientService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, clients, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Update updates a client
func (h *ClientHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req crmapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), actor, clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete removes a client
func (h *ClientHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), actor, clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.GetByID)
		clients.PATCH("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
	}
}
