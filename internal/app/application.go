package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cityweather.app/internal/adapters/api"
	"cityweather.app/internal/adapters/infrastructure"
	"cityweather.app/internal/config"
	"cityweather.app/internal/core/weather"
)

// ShutdownTimeout bounds the graceful shutdown started when the Start context ends
const ShutdownTimeout = 30 * time.Second

type Application struct {
	config *config.Config
	logger *slog.Logger

	weatherUseCase *weather.UseCase

	httpServer *http.Server
	router     *gin.Engine

	deps *DependencyContainer
}

// NewApplication wires every adapter and use case from cfg
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	deps, err := NewDependencyContainer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		logger: logger,
		deps:   deps,
	}

	if err := app.initializeUseCases(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	a.logger.Info("Initializing use cases...")

	p := a.deps.ApplicationPorts()
	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: p.WeatherProvider,
		Config:          p.ConfigProvider,
		Logger:          p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	a.logger.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	a.logger.Info("Initializing adapters...")

	gin.SetMode(a.config.Server.GinMode)

	p := a.deps.ApplicationPorts()

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		WeatherProviderChecker: infrastructure.NewWeatherProviderHealthChecker(
			p.WeatherProvider, p.ConfigProvider.GetAppConfig().ProviderBaseURL),
		ProviderStatsChecker: infrastructure.NewProviderStatsHealthChecker(p.ProviderMetrics),
		ConfigProvider:       p.ConfigProvider,
	})

	serverConfig := p.ConfigProvider.GetServerConfig()

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config:              api.ServerConfig{Port: serverConfig.Port},
		WeatherUseCase:      a.weatherUseCase,
		SystemHealthChecker: systemHealthChecker,
		RequestMetrics:      p.ProviderMetrics,
		Gatherer:            p.Registry,
		Logger:              p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", serverConfig.Port),
		Handler:      a.router,
		ReadTimeout:  serverConfig.ReadTimeout,
		WriteTimeout: serverConfig.WriteTimeout,
		IdleTimeout:  2 * serverConfig.ReadTimeout,
	}

	a.logger.Info("Adapters initialized successfully")
	return nil
}

// Start serves HTTP until ctx is done or the server is shut down
func (a *Application) Start(ctx context.Context) error {
	a.logger.Info("Starting HTTP server", "port", a.config.Server.Port)

	listener, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.httpServer.Addr, err)
	}
	return a.Serve(ctx, listener)
}

// Serve accepts connections on listener. When ctx is done the application
// shuts down gracefully within ShutdownTimeout.
func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := a.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *Application) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		a.logger.Warn("Error releasing resources", "error", err)
	}

	a.logger.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}
