package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	summary, err := h.dashboardService.GetSummary(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get dashboard summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// HistoryHandler serves the net-worth time series
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// HistoryResponse wraps the filtered snapshots with the timeframe they cover
type HistoryResponse struct {
	Timeframe domain.Timeframe          `json:"timeframe"`
	Snapshots []domain.NetWorthSnapshot `json:"snapshots"`
}

// GetHistory handles GET /api/v1/history?timeframe=1D|1M|1Y|ALL
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	timeframe := domain.Timeframe(c.QueryParam("timeframe"))
	if timeframe == "" {
		timeframe = domain.TimeframeAll
	}
	if !timeframe.IsValid() {
		return NewValidationError(c, "Invalid timeframe", []ValidationError{
			{Field: "timeframe", Message: "Must be one of: 1D, 1M, 1Y, ALL"},
		})
	}

	snapshots, err := h.historyService.GetHistory(c.Request().Context(), timeframe)
	if err != nil {
		return respondError(c, err, "Failed to get history")
	}
	if snapshots == nil {
		snapshots = []domain.NetWorthSnapshot{}
	}
	return c.JSON(http.StatusOK, HistoryResponse{Timeframe: timeframe, Snapshots: snapshots})
}
