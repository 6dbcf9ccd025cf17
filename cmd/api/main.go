package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartledger-ai/smartledger-backend/internal/config"
	"github.com/smartledger-ai/smartledger-backend/internal/handler"
	"github.com/smartledger-ai/smartledger-backend/internal/middleware"
	"github.com/smartledger-ai/smartledger-backend/internal/repository/gemini"
	"github.com/smartledger-ai/smartledger-backend/internal/repository/sqlite"
	"github.com/smartledger-ai/smartledger-backend/internal/service"
	"github.com/smartledger-ai/smartledger-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open snapshot store
	snapshotRepo, err := sqlite.NewSnapshotRepository(cfg.SnapshotDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot store")
	}
	defer snapshotRepo.Close()
	log.Info().Str("path", cfg.SnapshotDBPath).Msg("Snapshot store ready")

	// Initialize the Gemini interpreter
	interpreter, err := gemini.NewInterpreter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create interpreter")
	}

	// WebSocket hub
	hub := websocket.NewHub()

	// Initialize services
	state := service.LoadOrCreateState(context.Background(), snapshotRepo, cfg.SnapshotKey, time.Now(), cfg.WindowDays)
	ledgerService := service.NewLedgerService(state, snapshotRepo, cfg.SnapshotKey, hub)
	assistantService := service.NewAssistantService(ledgerService, interpreter)

	// Rate limiter for the assistant routes
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.AssistantRateLimit, middleware.DefaultBurstSize)
	defer rateLimiter.Stop()

	// Initialize handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	activityHandler := handler.NewActivityHandler(ledgerService)
	authHandler := handler.NewAuthHandler(ledgerService)
	dashboardHandler := handler.NewDashboardHandler(ledgerService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, rateLimiter, ledgerHandler, assistantHandler, activityHandler, authHandler, dashboardHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
