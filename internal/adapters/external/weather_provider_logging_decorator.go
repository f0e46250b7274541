package external

import (
	"context"
	"time"

	"cityweather.app/internal/ports"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) ports.WeatherProvider {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// GetCurrentWeather wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.Observation, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("city", query.City),
		ports.F("units", query.Units),
		ports.F("event", "request"))

	startTime := time.Now()
	observation, err := d.provider.GetCurrentWeather(ctx, query)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("city", query.City),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("city", query.City),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("temperature", observation.Temperature),
		ports.F("humidity", observation.Humidity),
		ports.F("description", observation.Description))

	d.logger.Debug("Weather API payload",
		ports.F("provider", providerName),
		ports.F("location", observation.Location),
		ports.F("wind_speed", observation.WindSpeed),
		ports.F("sunrise", observation.Sunrise.Unix()),
		ports.F("sunset", observation.Sunset.Unix()))

	return observation, nil
}

// GetProviderName returns the name of the wrapped provider with logging indication
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return "logged(" + d.provider.GetProviderName() + ")"
}
