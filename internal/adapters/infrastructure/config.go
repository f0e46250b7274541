package infrastructure

import (
	"time"

	"cityweather.app/internal/config"
	"cityweather.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config          *config.Config
	displayLocation *time.Location
}

// NewConfigProviderAdapter creates a new config provider adapter. The display
// time zone is resolved once so an invalid name fails at startup.
func NewConfigProviderAdapter(cfg *config.Config) (*ConfigProviderAdapter, error) {
	loc, err := cfg.Weather.Location()
	if err != nil {
		return nil, err
	}
	return &ConfigProviderAdapter{
		config:          cfg,
		displayLocation: loc,
	}, nil
}

// GetAppConfig returns application configuration
func (c *ConfigProviderAdapter) GetAppConfig() ports.AppConfig {
	return ports.AppConfig{
		ProviderBaseURL: c.config.Weather.OpenWeatherMapBaseURL,
		GinMode:         c.config.Server.GinMode,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port:         c.config.Server.Port,
		ReadTimeout:  time.Duration(c.config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(c.config.Server.WriteTimeoutSeconds) * time.Second,
	}
}

// GetWeatherConfig returns weather configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		StrictUnits:     c.config.Weather.StrictUnits,
		RequestTimeout:  c.config.Weather.RequestTimeout(),
		DisplayLocation: c.displayLocation,
		UseCityTimezone: c.config.Weather.UseCityTimezone,
	}
}
