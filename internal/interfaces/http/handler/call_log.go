package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// CallLogHandler handles call log API endpoints
type CallLogHandler struct {
	BaseHandler
	callLogService *crmapp.CallLogService
}

// NewCallLogHandler creates a new CallLogHandler
func NewCallLogHandler(callLogService *crmapp.CallLogService) *CallLogHandler {
	return &CallLogHandler{callLogService: callLogService}
}

// Create records a new call log against a lead or a client
func (h *CallLogHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateCallLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	log, err := h.callLogService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, log)
}

// GetByID returns a single call log
func (h *CallLogHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	logID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid call log ID format")
		return
	}

	log, err := h.callLogService.GetByID(c.Request.Context(), actor, logID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, log)
}

// List returns call logs matching the filter
func (h *CallLogHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.CallLogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	logs, total, err := h.callLogService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, logs, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Update updates a call log
func (h *CallLogHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	logID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid call log ID format")
		return
	}

	var req crmapp.UpdateCallLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	log, err := h.callLogService.Update(c.Request.Context(), actor, logID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, log)
}

// Delete removes a call log
func (h *CallLogHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	logID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid call log ID format")
		return
	}

	if err := h.callLogService.Delete(c.Request.Context(), actor, logID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all call log routes
func (h *CallLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/call-logs")
	{
		logs.POST("", h.Create)
		logs.GET("", h.List)
		logs.GET("/:id", h.GetByID)
		logs.PATCH("/:id", h.Update)
		logs.DELETE("/:id", h.Delete)
	}
}
