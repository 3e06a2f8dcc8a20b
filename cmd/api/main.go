package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fortuna/networth/internal/config"
	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/handler"
	"github.com/dafibh/fortuna/networth/internal/middleware"
	"github.com/dafibh/fortuna/networth/internal/repository"
	"github.com/dafibh/fortuna/networth/internal/repository/storage"
	"github.com/dafibh/fortuna/networth/internal/scheduler"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/dafibh/fortuna/networth/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
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

	ctx := context.Background()

	// Open storage
	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to open storage")
	}
	defer closeRepo()

	// Optional backup storage; left as a nil interface when not configured
	var backupRepo domain.BackupRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3BackupRepository(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 backup storage")
		}
		backupRepo = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("S3 backup storage enabled")
	}

	// State store and notifications
	hub := websocket.NewHub()
	store := service.NewStore(repo, domain.SystemClock{Location: cfg.Location}, log.Logger)
	store.SetEventPublisher(hub)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load finance data")
	}

	// Initialize services
	assetService := service.NewAssetService(store)
	liabilityService := service.NewLiabilityService(store)
	creditCardService := service.NewCreditCardService(store)
	transactionService := service.NewTransactionService(store)
	settingsService := service.NewSettingsService(store)
	dashboardService := service.NewDashboardService(store)
	historyService := service.NewHistoryService(store)
	dataService := service.NewDataService(store)
	var backupService *service.BackupService
	if backupRepo != nil {
		backupService = service.NewBackupService(dataService, store, backupRepo)
	}

	// Scheduled jobs
	sched := scheduler.New(log.Logger, cfg.Location)
	if backupService != nil && cfg.BackupSchedule != "" {
		if err := sched.AddJob(cfg.BackupSchedule, scheduler.NewBackupJob(backupService, log.Logger)); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule backup job")
		}
	}
	if cfg.DueReminderSchedule != "" {
		if err := sched.AddJob(cfg.DueReminderSchedule, scheduler.NewDueReminderJob(transactionService, log.Logger)); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule due reminder job")
		}
	}
	sched.Start()

	// Initialize handlers
	handlers := handler.Handlers{
		Asset:       handler.NewAssetHandler(assetService),
		Liability:   handler.NewLiabilityHandler(liabilityService),
		CreditCard:  handler.NewCreditCardHandler(creditCardService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		History:     handler.NewHistoryHandler(historyService),
		Data:        handler.NewDataHandler(dataService, backupService),
		WebSocket:   handler.NewWebSocketHandler(hub, cfg.CORSOrigins),
	}

	authMiddleware := middleware.NewAPITokenAuthMiddleware(cfg.APIToken)
	if !authMiddleware.Enabled() {
		log.Warn().Msg("API_TOKEN not set, API is unauthenticated")
	}
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
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

	// Imports are the largest payloads accepted
	e.Use(echomiddleware.BodyLimit("10M"))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	handler.RegisterRoutes(e, handlers, authMiddleware, rateLimiter)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageDriver).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.CloseAll()

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

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
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
