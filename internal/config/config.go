package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"cityweather.app/pkg/errors"
	"cityweather.app/pkg/validation"
)

const (
	maxPortNumber         = 65535
	maxRequestTimeoutSecs = 60
	maxServerTimeoutSecs  = 300
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Log     LogConfig     `split_words:"true"`
}

type ServerConfig struct {
	Port                int    `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSeconds  int    `envconfig:"SERVER_READ_TIMEOUT_SECONDS" default:"15"`
	WriteTimeoutSeconds int    `envconfig:"SERVER_WRITE_TIMEOUT_SECONDS" default:"15"`
	GinMode             string `envconfig:"GIN_MODE" default:"release"`
}

type WeatherConfig struct {
	OpenWeatherMapKey     string `envconfig:"OPENWEATHERMAP_API_KEY" required:"true"`
	OpenWeatherMapBaseURL string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	RequestTimeoutSeconds int    `envconfig:"WEATHER_REQUEST_TIMEOUT_SECONDS" default:"10"`
	StrictUnits           bool   `envconfig:"WEATHER_STRICT_UNITS" default:"true"`
	DisplayTimezone       string `envconfig:"WEATHER_DISPLAY_TIMEZONE" default:"Local"`
	UseCityTimezone       bool   `envconfig:"WEATHER_USE_CITY_TIMEZONE" default:"false"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath           string `envconfig:"WEATHER_LOG_FILE_PATH"`
}

// RequestTimeout returns the per-call provider timeout
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSeconds) * time.Second
}

// Location resolves DisplayTimezone to a *time.Location
func (w WeatherConfig) Location() (*time.Location, error) {
	if w.DisplayTimezone == "" || w.DisplayTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(w.DisplayTimezone)
	if err != nil {
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("WEATHER_DISPLAY_TIMEZONE %q is not a known time zone", w.DisplayTimezone), err)
	}
	return loc, nil
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if s.ReadTimeoutSeconds < 1 || s.ReadTimeoutSeconds > maxServerTimeoutSecs {
		return errors.NewConfigurationError("SERVER_READ_TIMEOUT_SECONDS must be between 1 and 300", nil)
	}
	if s.WriteTimeoutSeconds < 1 || s.WriteTimeoutSeconds > maxServerTimeoutSecs {
		return errors.NewConfigurationError("SERVER_WRITE_TIMEOUT_SECONDS must be between 1 and 300", nil)
	}
	validModes := []string{"debug", "release", "test"}
	if !validation.OneOf(s.GinMode, validModes...) {
		return errors.NewConfigurationError(
			fmt.Sprintf("GIN_MODE must be one of: %s", strings.Join(validModes, ", ")), nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if strings.TrimSpace(w.OpenWeatherMapKey) == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY cannot be empty", nil)
	}
	if !strings.HasPrefix(w.OpenWeatherMapBaseURL, "http://") && !strings.HasPrefix(w.OpenWeatherMapBaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.RequestTimeoutSeconds < 1 || w.RequestTimeoutSeconds > maxRequestTimeoutSecs {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT_SECONDS must be between 1 and 60", nil)
	}
	if _, err := w.Location(); err != nil {
		return err
	}
	return nil
}

func (l *LogConfig) Validate() error {
	if !validation.OneOf(strings.ToLower(l.Level), "debug", "info", "warn", "error") {
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	if !validation.OneOf(strings.ToLower(l.Format), "json", "text") {
		return errors.NewConfigurationError("LOG_FORMAT must be one of: json, text", nil)
	}
	return nil
}
