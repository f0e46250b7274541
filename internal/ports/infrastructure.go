package ports

import (
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	StrictUnits     bool
	RequestTimeout  time.Duration
	DisplayLocation *time.Location
	// UseCityTimezone shows times in the city's own offset when the provider reports one
	UseCityTimezone bool
}

// AppConfig represents application configuration
type AppConfig struct {
	ProviderBaseURL string
	GinMode         string
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetAppConfig() AppConfig
	GetServerConfig() ServerConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
