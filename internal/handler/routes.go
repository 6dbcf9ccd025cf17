package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/smartledger-ai/smartledger-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, ledgerHandler *LedgerHandler, assistantHandler *AssistantHandler, activityHandler *ActivityHandler, authHandler *AuthHandler, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Ledger routes
	ledger := api.Group("/ledger")
	ledger.GET("", ledgerHandler.GetLedger)
	ledger.GET("/:date", ledgerHandler.GetRow)
	ledger.POST("/:date/entries", ledgerHandler.AddEntry)
	ledger.DELETE("/:date/entries/:id", ledgerHandler.DeleteEntry)
	ledger.PUT("/:date/notes", ledgerHandler.EditNotes)

	// Assistant routes (rate limited, they call the model API)
	assistant := api.Group("/assistant")
	assistant.Use(middleware.RateLimitMiddleware(rateLimiter))
	assistant.POST("/process", assistantHandler.Process)
	assistant.GET("/summary", assistantHandler.Summary)

	// Activity log
	api.GET("/activity", activityHandler.GetActivity)

	// Session routes
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// WebSocket endpoint
	e.GET("/ws", wsHandler.HandleWS)
}
