package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/config"
	"github.com/NixySoftware/ns-flex-insights/internal/database"
	"github.com/NixySoftware/ns-flex-insights/internal/handlers"
	"github.com/NixySoftware/ns-flex-insights/internal/middleware"
	"github.com/NixySoftware/ns-flex-insights/internal/nsapi"
	"github.com/NixySoftware/ns-flex-insights/internal/repositories"
	"github.com/NixySoftware/ns-flex-insights/internal/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

	// Repositories
	importRepo := repositories.NewImportRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	stationRepo := repositories.NewStationRepository(db.DB)
	journeyRepo := repositories.NewJourneyRepository(db.DB)

	// NS API client
	nsClient := nsapi.NewClient(
		cfg.NSAPI.BaseURL,
		cfg.NSAPI.PricesAPIKey,
		cfg.NSAPI.TravelAPIKey,
		cfg.NSAPI.RequestTimeout,
	)

	// Services
	metrics := services.NewPrometheusMetrics()
	classifier := services.NewTimeClassifier()
	normalizer := services.NewNormalizerService(classifier, metrics)
	pricing := services.NewPricingService(metrics)
	journeys := services.NewJourneyService(journeyRepo, nsClient, metrics)
	stations := services.NewStationService(stationRepo, nsClient, metrics)

	// Handlers
	healthHandler := handlers.NewHealthCheckHandler(db)
	travelHistoryHandler := handlers.NewTravelHistoryHandler(importRepo, transactionRepo, normalizer, pricing)
	stationHandler := handlers.NewStationHandler(stations)
	journeyHandler := handlers.NewJourneyHandler(journeys)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/travel-history", travelHistoryHandler.Upload)
	api.GET("/travel-history", travelHistoryHandler.ListImports)
	api.GET("/travel-history/:importId/transactions", travelHistoryHandler.GetTransactions)
	api.POST("/travel-history/:importId/comparison", travelHistoryHandler.Compare)
	api.GET("/stations", stationHandler.Search)
	api.GET("/journeys/price", journeyHandler.GetPrice)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
