package infrastructure

import (
	"context"

	"cityweather.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// WeatherProviderHealthChecker reports whether a weather provider is wired.
// The provider itself is never called.
type WeatherProviderHealthChecker struct {
	weatherProvider ports.WeatherProvider
	baseURL         string
}

// NewWeatherProviderHealthChecker creates a new weather provider health checker
func NewWeatherProviderHealthChecker(weatherProvider ports.WeatherProvider, baseURL string) *WeatherProviderHealthChecker {
	return &WeatherProviderHealthChecker{weatherProvider: weatherProvider, baseURL: baseURL}
}

// Check verifies the weather provider is available
func (w *WeatherProviderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherProvider",
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"baseURL": w.baseURL,
		},
	}

	if w.weatherProvider == nil {
		status.Status = statusUnhealthy
		status.Error = "weather provider is not available"
		return status
	}

	status.Details["provider"] = w.weatherProvider.GetProviderName()
	return status
}

// StatsSource exposes aggregated counters for health details
type StatsSource interface {
	GetStats() map[string]interface{}
}

// ProviderStatsHealthChecker surfaces provider call statistics
type ProviderStatsHealthChecker struct {
	stats StatsSource
}

func NewProviderStatsHealthChecker(stats StatsSource) *ProviderStatsHealthChecker {
	return &ProviderStatsHealthChecker{stats: stats}
}

func (p *ProviderStatsHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	return ports.HealthStatus{
		Component: "providerStats",
		Status:    statusHealthy,
		Details:   p.stats.GetStats(),
	}
}
