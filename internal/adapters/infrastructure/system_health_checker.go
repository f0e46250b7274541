package infrastructure

import (
	"context"

	"cityweather.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	WeatherProviderChecker ports.HealthChecker
	ProviderStatsChecker   ports.HealthChecker
	ConfigProvider         ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.WeatherProviderChecker != nil {
		checkers["weatherProvider"] = config.WeatherProviderChecker
	}
	if config.ProviderStatsChecker != nil {
		checkers["providerStats"] = config.ProviderStatsChecker
	}
	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}

	if s.configProvider != nil {
		weatherConfig := s.configProvider.GetWeatherConfig()
		details := map[string]interface{}{
			"strictUnits":     weatherConfig.StrictUnits,
			"requestTimeout":  weatherConfig.RequestTimeout.String(),
			"useCityTimezone": weatherConfig.UseCityTimezone,
		}
		if weatherConfig.DisplayLocation != nil {
			details["displayTimezone"] = weatherConfig.DisplayLocation.String()
		}
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details:   details,
		}
	}

	return results
}
