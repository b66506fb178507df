// Package main is the entry point for the farmassist-backend server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Rachiee-x/farmassist-backend/internal/adapter"
	"github.com/Rachiee-x/farmassist-backend/internal/config"
	"github.com/Rachiee-x/farmassist-backend/internal/handler"
	"github.com/Rachiee-x/farmassist-backend/internal/security"
	"github.com/Rachiee-x/farmassist-backend/internal/ui"
)

func main() {
	// .env is for local development; absence is fine.
	_ = godotenv.Load()

	logger := setupLogger()

	ui.PrintBanner()
	logger.Info("starting farmassist-backend")

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("text_model", cfg.Providers.Text.Model),
		slog.String("multimodal_model", cfg.Providers.Multimodal.Model),
	)

	// A missing secret disables its endpoints per-request rather than
	// refusing to start; warn so the operator notices.
	if !cfg.Providers.Text.Configured() {
		logger.Warn("translate endpoint disabled", slog.String("missing", config.EnvTextProviderKey))
	}
	if !cfg.Providers.Multimodal.Configured() {
		logger.Warn("chat and remedy endpoints degraded", slog.String("missing", config.EnvMultimodalProviderKey))
	}

	textProvider := adapter.NewOpenRouterAdapter(
		cfg.Providers.Text.APIKey,
		cfg.Providers.Text.Model,
		adapter.WithOpenRouterBaseURL(cfg.Providers.Text.BaseURL),
	)
	multimodalProvider := adapter.NewGeminiAdapter(
		cfg.Providers.Multimodal.APIKey,
		cfg.Providers.Multimodal.Model,
		adapter.WithGeminiBaseURL(cfg.Providers.Multimodal.BaseURL),
	)

	gatewayHandler := handler.NewGatewayHandler(
		cfg,
		textProvider,
		multimodalProvider,
		handler.WithLogger(logger),
	)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(handler.RecoveryMiddleware(logger))
	router.Use(handler.CORSMiddleware())
	router.Use(handler.LoggingMiddleware(logger))

	router.POST("/api/translate", gatewayHandler.HandleTranslate)
	router.POST("/api/chat", gatewayHandler.HandleChat)
	router.POST("/api/remedy", gatewayHandler.HandleRemedy)
	router.GET("/health", gatewayHandler.HandleHealth)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("address", addr))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// setupLogger creates a structured JSON logger wrapped in the redacting
// handler so provider keys never reach the log sink.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo

	switch os.Getenv("FARMASSIST_LOGGING_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(security.NewRedactedHandler(jsonHandler))

	slog.SetDefault(logger)

	return logger
}
