package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/service"
)

// AssistantHandler handles natural-language assistant HTTP requests
type AssistantHandler struct {
	assistantService *service.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// ProcessRequest represents the process request body
type ProcessRequest struct {
	Text string `json:"text"`
}

// ProcessResponse reports the outcome of an assistant batch
type ProcessResponse struct {
	Submitted int      `json:"submitted"`
	Accepted  int      `json:"accepted"`
	Dates     []string `json:"dates"`
}

// SummaryResponse carries the advisory summary text
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// Process handles POST /api/v1/assistant/process
func (h *AssistantHandler) Process(c echo.Context) error {
	var req ProcessRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.assistantService.Process(c.Request().Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "text", Message: "Must not be empty"},
			})
		}
		log.Error().Err(err).Msg("Assistant batch failed")
		return NewInternalError(c, "Failed to process text")
	}

	response := ProcessResponse{
		Submitted: result.Submitted,
		Accepted:  result.Accepted,
		Dates:     result.Dates,
	}
	if response.Dates == nil {
		response.Dates = []string{}
	}
	return c.JSON(http.StatusOK, response)
}

// Summary handles GET /api/v1/assistant/summary
func (h *AssistantHandler) Summary(c echo.Context) error {
	summary, err := h.assistantService.Summary(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Summary generation failed")
		return NewUpstreamError(c, "Failed to generate summary")
	}

	return c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}
