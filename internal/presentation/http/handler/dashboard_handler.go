package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and report HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	reportService    *service.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, reportService: reportService}
}

// Stats handles retrieving today's dashboard statistics
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved", stats)
}

// SalesReport handles downloading a sales report for a date range
func (h *DashboardHandler) SalesReport(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		response.BadRequest(c, "start_date must be in YYYY-MM-DD format")
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		response.BadRequest(c, "end_date must be in YYYY-MM-DD format")
		return
	}
	if end.Before(start) {
		response.BadRequest(c, "end_date must not be before start_date")
		return
	}

	data, filename, err := h.reportService.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
