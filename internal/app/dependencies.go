package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"cityweather.app/internal/adapters/external"
	"cityweather.app/internal/adapters/infrastructure"
	"cityweather.app/internal/config"
	"cityweather.app/internal/ports"
	"cityweather.app/metrics"
)

// ApplicationPorts groups the adapters the use cases and HTTP layer are built from
type ApplicationPorts struct {
	WeatherProvider ports.WeatherProvider
	ConfigProvider  ports.ConfigProvider
	Logger          ports.Logger
	ProviderMetrics *metrics.ProviderMetrics
	Registry        *prometheus.Registry
}

type DependencyContainer struct {
	config     *config.Config
	logger     *slog.Logger
	fileLogger *infrastructure.FileLoggerAdapter
	ports      *ApplicationPorts
}

func NewDependencyContainer(cfg *config.Config, logger *slog.Logger) (*DependencyContainer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	container := &DependencyContainer{
		config: cfg,
		logger: logger,
	}

	if err := container.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts() error {
	c.logger.Info("Initializing ports...")

	appLogger := infrastructure.NewSlogLoggerAdapter(c.logger)

	configProvider, err := infrastructure.NewConfigProviderAdapter(c.config)
	if err != nil {
		return fmt.Errorf("create config provider: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	providerMetrics := metrics.NewProviderMetrics(registry)

	// Provider calls go to the file as well when a log file is configured
	var providerLogger ports.Logger = appLogger
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			c.logger.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			providerLogger = infrastructure.NewMultiLogger(appLogger, fileLogger)
			c.logger.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	var weatherProvider ports.WeatherProvider = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:  c.config.Weather.OpenWeatherMapKey,
		BaseURL: c.config.Weather.OpenWeatherMapBaseURL,
		Timeout: c.config.Weather.RequestTimeout(),
		Logger:  providerLogger,
	})
	weatherProvider = external.NewWeatherProviderMetricsDecorator(weatherProvider, providerMetrics)

	if c.config.Weather.EnableLogging {
		weatherProvider = external.NewWeatherProviderLoggingDecorator(weatherProvider, providerLogger)
		c.logger.Info("Weather provider logging enabled")
	}

	c.ports = &ApplicationPorts{
		WeatherProvider: weatherProvider,
		ConfigProvider:  configProvider,
		Logger:          appLogger,
		ProviderMetrics: providerMetrics,
		Registry:        registry,
	}

	c.logger.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ApplicationPorts {
	return c.ports
}

// Cleanup releases resources held by the adapters
func (c *DependencyContainer) Cleanup() error {
	if c.fileLogger != nil {
		return c.fileLogger.Close()
	}
	return nil
}
