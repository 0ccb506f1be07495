package handler

import (
	"net/http"
	"strconv"

	"boskoback/internal/apierror"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	reports  service.ReportService
	activity service.ActivityService
}

func NewReportsHandler(reports service.ReportService, activity service.ActivityService) *ReportsHandler {
	return &ReportsHandler{reports: reports, activity: activity}
}

// Stats godoc
// @Summary      Dashboard totals with 30-day trends (staff)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardStatsResponse
// @Router       /api/admin/stats [get]
func (h *ReportsHandler) Stats(c *gin.Context) {
	resp, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not compute stats"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OrdersChart godoc
// @Summary      Monthly order/revenue chart over the last 12 months (staff)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.OrdersChartResponse
// @Router       /api/admin/charts/orders [get]
func (h *ReportsHandler) OrdersChart(c *gin.Context) {
	resp, err := h.reports.OrdersChart(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not compute chart"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Activity godoc
// @Summary      Recent activity log (staff)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max entries (default 50, max 200)"
// @Success      200 {array} dto.ActivityLogResponse
// @Router       /api/admin/activity [get]
func (h *ReportsHandler) Activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	resp, err := h.activity.ListLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list activity"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
