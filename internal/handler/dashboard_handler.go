package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/smartledger-ai/smartledger-backend/internal/service"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	ledgerService *service.LedgerService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(ledgerService *service.LedgerService) *DashboardHandler {
	return &DashboardHandler{ledgerService: ledgerService}
}

// DashboardSummaryResponse represents the header figures for the window
type DashboardSummaryResponse struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	Balance       string `json:"balance"`
	Days          int    `json:"days"`
	ActiveDays    int    `json:"activeDays"`
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	rows := h.ledgerService.Rows()
	totals := h.ledgerService.Totals()

	active := 0
	for i := range rows {
		if len(rows[i].Income)+len(rows[i].Expenses)+len(rows[i].Bills)+len(rows[i].ExtraIncome) > 0 {
			active++
		}
	}

	return c.JSON(http.StatusOK, DashboardSummaryResponse{
		TotalIncome:   totals.TotalIncome.String(),
		TotalExpenses: totals.TotalExpenses.String(),
		Balance:       totals.Balance.String(),
		Days:          len(rows),
		ActiveDays:    active,
	})
}
