package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/smartledger-ai/smartledger-backend/internal/service"
)

// ActivityHandler handles activity log HTTP requests
type ActivityHandler struct {
	ledgerService *service.LedgerService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(ledgerService *service.LedgerService) *ActivityHandler {
	return &ActivityHandler{ledgerService: ledgerService}
}

// LogEntryResponse represents an activity log entry in API responses
type LogEntryResponse struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// GetActivity handles GET /api/v1/activity. Entries come back newest first,
// capped at the log bound.
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	logs := h.ledgerService.Logs()

	response := make([]LogEntryResponse, len(logs))
	for i, entry := range logs {
		response[i] = LogEntryResponse{
			ID:          entry.ID.String(),
			Action:      string(entry.Action),
			Description: entry.Description,
			Timestamp:   entry.Timestamp.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, response)
}
