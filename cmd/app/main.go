package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cityweather.app/internal/app"
	"cityweather.app/internal/config"
	"cityweather.app/pkg/logger"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(os.Stdout, logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(log.Logger)

	application, err := app.NewApplication(cfg, log.Logger)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	slog.Info("Server configuration",
		"port", cfg.Server.Port,
		"providerBaseURL", cfg.Weather.OpenWeatherMapBaseURL,
		"strictUnits", cfg.Weather.StrictUnits,
		"useCityTimezone", cfg.Weather.UseCityTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting City Weather...")
	if err := application.Start(ctx); err != nil {
		slog.Error("HTTP server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
