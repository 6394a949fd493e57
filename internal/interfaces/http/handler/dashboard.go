package handler

import (
	reportapp "github.com/crm/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Metrics returns aggregate counts and revenue figures for the dashboard
func (h *DashboardHandler) Metrics(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	metrics, err := h.dashboardService.Metrics(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, metrics)
}

// RegisterRoutes registers all dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/metrics", h.Metrics)
	}
}
