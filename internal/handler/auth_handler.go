package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/service"
)

// AuthHandler handles the simulated session endpoints. There is no real
// identity provider; login installs a fixed demo profile.
type AuthHandler struct {
	ledgerService *service.LedgerService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(ledgerService *service.LedgerService) *AuthHandler {
	return &AuthHandler{ledgerService: ledgerService}
}

// UserResponse represents the session profile in API responses
type UserResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	LastSync   string `json:"lastSync,omitempty"`
}

func toUserResponse(user domain.UserProfile, lastSync *time.Time) UserResponse {
	response := UserResponse{
		Name:       user.Name,
		Email:      user.Email,
		IsLoggedIn: user.LoggedIn,
	}
	if lastSync != nil {
		response.LastSync = lastSync.Format(time.RFC3339)
	}
	return response
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	user := h.ledgerService.Login(c.Request().Context())
	_, lastSync := h.ledgerService.User()
	return c.JSON(http.StatusOK, toUserResponse(user, lastSync))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	user := h.ledgerService.Logout(c.Request().Context())
	_, lastSync := h.ledgerService.User()
	return c.JSON(http.StatusOK, toUserResponse(user, lastSync))
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, lastSync := h.ledgerService.User()
	return c.JSON(http.StatusOK, toUserResponse(user, lastSync))
}
